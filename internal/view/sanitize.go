package view

import "github.com/microcosm-cc/bluemonday"

var displayPolicy = newDisplayPolicy()

func newDisplayPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("br")
	return policy
}

// SanitizeHTML strips unsafe markup from user-generated text before display.
func SanitizeHTML(text string) string {
	return displayPolicy.Sanitize(text)
}
