package view

import "github.com/quibbleapp/quibble-go/internal/models"

// VoteState is the display shape of a question's votes for one user.
type VoteState struct {
	// Voted is +1 when the user upvoted, -1 when downvoted, 0 otherwise.
	Voted int
	// Count is upvotes minus downvotes.
	Count int
}

// VoteStateFor derives the vote display for a question. The server keeps the
// two arrays mutually exclusive per user, but the display does not assume it:
// an upvote entry wins if both arrays somehow contain the user.
func VoteStateFor(question models.Question, username string) VoteState {
	state := VoteState{Count: len(question.UpVotes) - len(question.DownVotes)}

	for _, voter := range question.UpVotes {
		if voter == username {
			state.Voted = 1
			return state
		}
	}
	for _, voter := range question.DownVotes {
		if voter == username {
			state.Voted = -1
			return state
		}
	}
	return state
}
