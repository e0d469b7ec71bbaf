// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "github.com/danielhkuo/quickly-vote/models"

// Normalize returns a copy of questions in which every answer carries a vote.
// Missing votes default to "false" with both back-references set; existing
// votes are kept as they are, so normalizing twice changes nothing.
func Normalize(questions []models.Question) []models.Question {
	out := models.CloneQuestions(questions)
	if out == nil {
		out = []models.Question{}
	}

	for qi := range out {
		q := &out[qi]
		for ai := range q.Answers {
			a := &q.Answers[ai]
			if a.Vote == nil {
				v := models.NewVote(false, a.Key, q.Key)
				a.Vote = &v
			}
		}
	}
	return out
}

// Replace substitutes updated for the first question with the same key.
// The returned collection is a new slice; the order of all other questions is
// preserved. It reports false, and returns questions untouched, when no key matches.
func Replace(questions []models.Question, updated models.Question) ([]models.Question, bool) {
	for i, q := range questions {
		if q.Key != updated.Key {
			continue
		}
		out := make([]models.Question, len(questions))
		copy(out, questions)
		out[i] = updated.Clone()
		return out, true
	}
	return questions, false
}

// Flatten collects every present vote in question-then-answer order.
// Answers without a vote are skipped.
func Flatten(questions []models.Question) []models.Vote {
	n := 0
	for _, q := range questions {
		n += len(q.Answers)
	}

	votes := make([]models.Vote, 0, n)
	for _, q := range questions {
		for _, a := range q.Answers {
			if a.Vote != nil {
				votes = append(votes, a.Vote.Clone())
			}
		}
	}
	return votes
}

// Reconcile fills answers that arrived without a vote from a previously
// stored collection, matching by question key and answer key. Votes present
// in fetched always win.
func Reconcile(fetched, stored []models.Question) []models.Question {
	out := models.CloneQuestions(fetched)
	if len(stored) == 0 {
		return out
	}

	type answerRef struct{ question, answer string }
	saved := make(map[answerRef]models.Vote)
	for _, q := range stored {
		for _, a := range q.Answers {
			ref := answerRef{q.Key, a.Key}
			if _, seen := saved[ref]; seen || a.Vote == nil || !a.Vote.ValidSelection() {
				continue
			}
			saved[ref] = *a.Vote
		}
	}

	for qi := range out {
		q := &out[qi]
		for ai := range q.Answers {
			a := &q.Answers[ai]
			if a.Vote != nil {
				continue
			}
			if v, ok := saved[answerRef{q.Key, a.Key}]; ok {
				restored := models.NewVote(v.Selected(), a.Key, q.Key)
				a.Vote = &restored
			}
		}
	}
	return out
}
