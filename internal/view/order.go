package view

import (
	"sort"

	"github.com/quibbleapp/quibble-go/internal/models"
)

// Order names a question list sorting policy.
type Order string

// The named ordering policies. There are no other variants.
const (
	OrderNewest     Order = "newest"
	OrderActive     Order = "active"
	OrderUnanswered Order = "unanswered"
	OrderMostViewed Order = "mostViewed"
)

// SortQuestions returns the questions arranged by the named policy. Ties keep
// the original fetch order (stable sort); an unknown order falls back to
// newest. The input slice is not modified.
func SortQuestions(questions []models.Question, order Order) []models.Question {
	sorted := append([]models.Question(nil), questions...)

	switch order {
	case OrderActive:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].LatestActivity().After(sorted[j].LatestActivity())
		})
	case OrderUnanswered:
		unanswered := sorted[:0]
		for _, question := range sorted {
			if len(question.ActiveAnswers()) == 0 {
				unanswered = append(unanswered, question)
			}
		}
		sorted = unanswered
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].AskDateTime.After(sorted[j].AskDateTime)
		})
	case OrderMostViewed:
		sort.SliceStable(sorted, func(i, j int) bool {
			return len(sorted[i].Views) > len(sorted[j].Views)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].AskDateTime.After(sorted[j].AskDateTime)
		})
	}

	return sorted
}
