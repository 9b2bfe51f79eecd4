package view

import "github.com/quibbleapp/quibble-go/internal/models"

// BadgeHover is the payload shown when hovering a badge.
type BadgeHover struct {
	Name        string
	Description string
	Tier        string
	EarnedCount int
	EarnedByYou bool
}

// BadgeHoverFor derives the hover payload for one badge and viewer.
func BadgeHoverFor(badge models.Badge, username string) BadgeHover {
	hover := BadgeHover{
		Name:        badge.Name,
		Description: badge.Description,
		Tier:        badge.Tier,
		EarnedCount: len(badge.Users),
	}
	for _, user := range badge.Users {
		if user == username {
			hover.EarnedByYou = true
			break
		}
	}
	return hover
}
