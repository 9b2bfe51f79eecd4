package models

import "time"

// Notification is created server-side when a triggering event occurs and is
// only ever mutated by marking it read.
type Notification struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Type        string    `json:"type"`
	Caption     string    `json:"caption"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
	RedirectURL string    `json:"redirectUrl"`
}

// CloneNotifications copies a notification slice.
func CloneNotifications(notifications []Notification) []Notification {
	return append([]Notification(nil), notifications...)
}
