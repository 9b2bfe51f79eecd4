// Package view computes display-ready values from synchronizer snapshots.
// Every function here is pure: it derives, never mutates, and recomputes from
// scratch on each call so derived values can never drift from the snapshot.
package view

// DefaultTitle is the question list heading when no filter is active.
const DefaultTitle = "All Questions"

// PageTitle resolves the question list heading from the request parameters.
// The title depends only on how the page was reached, not on the data.
func PageTitle(search, tag string) string {
	if search != "" {
		return "Search Results"
	}
	if tag != "" {
		return tag
	}
	return DefaultTitle
}
