package view

import "github.com/quibbleapp/quibble-go/internal/models"

// UnreadCorrespondenceCount counts conversations the user belongs to but has
// not seen in their latest state.
func UnreadCorrespondenceCount(correspondences []models.Correspondence, username string) int {
	count := 0
	for i := range correspondences {
		if correspondences[i].HasMember(username) && !correspondences[i].ViewedBy(username) {
			count++
		}
	}
	return count
}

// UnreadNotificationCount counts unread notifications addressed to the user.
func UnreadNotificationCount(notifications []models.Notification, username string) int {
	count := 0
	for _, notification := range notifications {
		if notification.User == username && !notification.Read {
			count++
		}
	}
	return count
}
