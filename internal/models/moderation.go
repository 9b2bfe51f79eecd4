package models

import "time"

// ModApplication is a user's request to become a moderator.
type ModApplication struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	ApplicationText string    `json:"applicationText"`
	CreatedAt       time.Time `json:"createdAt"`
	Accepted        bool      `json:"accepted"`
	Resolved        bool      `json:"resolved"`
}

// Badge is an achievement a user can earn in a category.
type Badge struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tier        string   `json:"tier"`
	TargetValue int      `json:"targetValue"`
	Users       []string `json:"users,omitempty"`
}

// BadgeProgress reports how far a user is towards the next badge in a category.
type BadgeProgress struct {
	Category     string `json:"category"`
	CurrentValue int    `json:"currentValue"`
	TargetValue  int    `json:"targetValue"`
}

// TagCount pairs a tag with the number of questions carrying it.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"qcnt"`
}

// VoteData is the server's response to a vote mutation: the full replacement
// vote arrays for the target question.
type VoteData struct {
	QID       string   `json:"qid"`
	UpVotes   []string `json:"upVotes"`
	DownVotes []string `json:"downVotes"`
}
