package sync

import (
	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/models"
)

// The merge rules below are the reconciliation primitive every synchronizer
// is built from. Each one is a total function: unknown target ids leave the
// input unchanged, so a foreign-keyed event can never fail a merge.

// upsertQuestion replaces the question in place when its id is already
// present, preserving list order; otherwise the question is prepended.
func upsertQuestion(list []models.Question, question models.Question) []models.Question {
	for i := range list {
		if list[i].ID == question.ID {
			list[i] = question
			return list
		}
	}
	return append([]models.Question{question}, list...)
}

// replaceQuestion swaps the matching question wholesale and ignores unknown
// ids. Used where the server copy is authoritative (views races).
func replaceQuestion(list []models.Question, question models.Question) []models.Question {
	for i := range list {
		if list[i].ID == question.ID {
			list[i] = question
			break
		}
	}
	return list
}

// appendAnswer adds the answer at the end of the matching question's answers.
// Ordering is creation order and is never re-sorted.
func appendAnswer(list []models.Question, qid string, answer models.Answer) []models.Question {
	for i := range list {
		if list[i].ID == qid {
			list[i].Answers = append(list[i].Answers, answer)
			break
		}
	}
	return list
}

// replaceVotes swaps only the two vote arrays on the matching question,
// leaving text, answers, and comments untouched.
func replaceVotes(question *models.Question, votes events.VotesChanged) {
	if question == nil || question.ID != votes.QID {
		return
	}
	question.UpVotes = votes.UpVotes
	question.DownVotes = votes.DownVotes
}

// replaceAnswer swaps the matching answer inside the question by id.
func replaceAnswer(question *models.Question, answer models.Answer) {
	if question == nil {
		return
	}
	if i := question.AnswerIndex(answer.ID); i >= 0 {
		question.Answers[i] = answer
	}
}

// removeAnswer filters the answer out of the question's answers.
func removeAnswer(question *models.Question, answerID string) {
	if question == nil {
		return
	}
	kept := question.Answers[:0]
	for _, answer := range question.Answers {
		if answer.ID != answerID {
			kept = append(kept, answer)
		}
	}
	question.Answers = kept
}

// dismissReports marks local reports dismissed when the refreshed copy says
// so, skipping reports that are already dismissed. Applying the same refresh
// twice yields the same result as applying it once.
func dismissReports(local []models.UserReport, refreshed []models.UserReport) {
	for i := range local {
		if local[i].Status == models.ReportDismissed {
			continue
		}
		for _, update := range refreshed {
			if update.ID == local[i].ID && update.Status == models.ReportDismissed {
				local[i].Status = models.ReportDismissed
				break
			}
		}
	}
}

// upsertCorrespondence replaces the correspondence in place when present,
// otherwise appends it.
func upsertCorrespondence(list []models.Correspondence, correspondence models.Correspondence) []models.Correspondence {
	for i := range list {
		if list[i].ID == correspondence.ID {
			list[i] = correspondence
			return list
		}
	}
	return append(list, correspondence)
}

// replaceMessage swaps the matching message by id inside the correspondence.
// Unknown ids are ignored.
func replaceMessage(correspondence *models.Correspondence, message models.Message) {
	if correspondence == nil {
		return
	}
	if i := correspondence.MessageIndex(message.ID); i >= 0 {
		correspondence.Messages[i] = message
	}
}
