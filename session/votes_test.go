// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"reflect"
	"testing"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestNormalize_DefaultsMissingVotes(t *testing.T) {
	input := []models.Question{
		testutil.NewQuestion("q1", "a1", "a2"),
		testutil.NewQuestion("q2", "b1"),
	}

	got := Normalize(input)

	for _, q := range got {
		for _, a := range q.Answers {
			if a.Vote == nil {
				t.Fatalf("answer %s/%s has no vote", q.Key, a.Key)
			}
			if a.Vote.Vote != models.VoteFalse {
				t.Errorf("answer %s/%s: expected default %q, got %q", q.Key, a.Key, models.VoteFalse, a.Vote.Vote)
			}
			if a.Vote.AnswerKey == nil || *a.Vote.AnswerKey != a.Key {
				t.Errorf("answer %s/%s: answer_key not set to the answer", q.Key, a.Key)
			}
			if a.Vote.QuestionKey == nil || *a.Vote.QuestionKey != q.Key {
				t.Errorf("answer %s/%s: question_key not set to the question", q.Key, a.Key)
			}
		}
	}

	// The input is not mutated
	if input[0].Answers[0].Vote != nil {
		t.Error("Normalize must not mutate its input")
	}
}

func TestNormalize_KeepsExistingVotes(t *testing.T) {
	q := testutil.WithVote(testutil.NewQuestion("q1", "a1", "a2"), "a1", true)

	got := Normalize([]models.Question{q})

	if !got[0].Answers[0].Vote.Selected() {
		t.Error("existing true vote was overwritten")
	}
	if got[0].Answers[1].Vote.Selected() {
		t.Error("missing vote should default to false")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	input := []models.Question{
		testutil.WithVote(testutil.NewQuestion("q1", "a1", "a2"), "a2", true),
		testutil.NewQuestion("q2", "b1", "b2", "b3"),
		{Key: "q3"},
	}

	once := Normalize(input)
	twice := Normalize(once)
	again := Normalize(input)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalizing a normalized collection changed it:\n%+v\n%+v", once, twice)
	}
	if !reflect.DeepEqual(once, again) {
		t.Error("normalizing the same input twice gave different results")
	}
}

func TestNormalize_Empty(t *testing.T) {
	got := Normalize(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil collection, got %#v", got)
	}
}

func TestReplace(t *testing.T) {
	questions := Normalize([]models.Question{
		testutil.NewQuestion("q1", "a1"),
		testutil.NewQuestion("q2", "b1", "b2"),
		testutil.NewQuestion("q3", "c1"),
	})

	t.Run("match replaces in place", func(t *testing.T) {
		updated := testutil.WithVote(questions[1], "b2", true)

		got, changed := Replace(questions, updated)
		if !changed {
			t.Fatal("expected a change")
		}
		if len(got) != len(questions) {
			t.Fatalf("length changed: %d -> %d", len(questions), len(got))
		}
		for i, q := range got {
			if q.Key != questions[i].Key {
				t.Errorf("position %d: expected %s, got %s", i, questions[i].Key, q.Key)
			}
		}
		if !got[1].Answers[1].Vote.Selected() {
			t.Error("replacement was not applied")
		}
		if !reflect.DeepEqual(got[0], questions[0]) || !reflect.DeepEqual(got[2], questions[2]) {
			t.Error("other questions changed")
		}
		if questions[1].Answers[1].Vote.Selected() {
			t.Error("Replace must not mutate the original collection")
		}
	})

	t.Run("no match is a no-op", func(t *testing.T) {
		got, changed := Replace(questions, testutil.NewQuestion("missing", "x"))
		if changed {
			t.Error("expected no change")
		}
		if !reflect.DeepEqual(got, questions) {
			t.Error("collection changed on a no-op")
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		if _, changed := Replace(nil, testutil.NewQuestion("q1")); changed {
			t.Error("expected no change on an empty collection")
		}
	})

	t.Run("duplicate keys first match wins", func(t *testing.T) {
		dup := []models.Question{
			{Key: "q1", Title: "first"},
			{Key: "q1", Title: "second"},
		}
		got, changed := Replace(dup, models.Question{Key: "q1", Title: "updated"})
		if !changed {
			t.Fatal("expected a change")
		}
		if got[0].Title != "updated" || got[1].Title != "second" {
			t.Errorf("expected only the first match replaced, got %+v", got)
		}
	})
}

func TestFlatten(t *testing.T) {
	questions := Normalize([]models.Question{
		testutil.WithVote(testutil.NewQuestion("q1", "a1", "a2"), "a2", true),
		testutil.NewQuestion("q2", "b1"),
		{Key: "q3"},
		testutil.NewQuestion("q4", "d1", "d2"),
	})

	votes := Flatten(questions)

	want := []struct {
		question, answer, vote string
	}{
		{"q1", "a1", "false"},
		{"q1", "a2", "true"},
		{"q2", "b1", "false"},
		{"q4", "d1", "false"},
		{"q4", "d2", "false"},
	}
	if len(votes) != len(want) {
		t.Fatalf("expected %d votes, got %d", len(want), len(votes))
	}
	for i, w := range want {
		v := votes[i]
		if *v.QuestionKey != w.question || *v.AnswerKey != w.answer || v.Vote != w.vote {
			t.Errorf("vote %d: expected %s/%s=%s, got %s/%s=%s",
				i, w.question, w.answer, w.vote, *v.QuestionKey, *v.AnswerKey, v.Vote)
		}
	}
}

func TestFlatten_SkipsAbsentVotes(t *testing.T) {
	q := testutil.WithVote(testutil.NewQuestion("q1", "a1", "a2", "a3"), "a2", true)

	votes := Flatten([]models.Question{q})
	if len(votes) != 1 {
		t.Fatalf("expected 1 vote, got %d", len(votes))
	}
	if *votes[0].AnswerKey != "a2" {
		t.Errorf("expected the a2 vote, got %s", *votes[0].AnswerKey)
	}
}

func TestFlatten_EmptyIsNonNil(t *testing.T) {
	votes := Flatten(nil)
	if votes == nil || len(votes) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", votes)
	}
}

func TestReconcile(t *testing.T) {
	stored := Normalize([]models.Question{
		testutil.WithVote(testutil.NewQuestion("q1", "a1", "a2"), "a1", true),
		testutil.WithVote(testutil.NewQuestion("q2", "b1"), "b1", true),
		testutil.WithVote(testutil.NewQuestion("gone", "z1"), "z1", true),
	})

	fetched := []models.Question{
		testutil.NewQuestion("q1", "a1", "a2", "a3"),
		testutil.WithVote(testutil.NewQuestion("q2", "b1"), "b1", false),
		testutil.NewQuestion("q5", "e1"),
	}

	got := Reconcile(fetched, stored)

	if len(got) != 3 {
		t.Fatalf("expected the fetched collection shape, got %d questions", len(got))
	}
	if v := got[0].Answers[0].Vote; v == nil || !v.Selected() {
		t.Error("q1/a1: expected stored selection restored")
	}
	if v := got[0].Answers[1].Vote; v == nil || v.Selected() {
		t.Error("q1/a2: expected stored false vote restored")
	}
	if got[0].Answers[2].Vote != nil {
		t.Error("q1/a3: nothing stored, expected no vote")
	}
	if got[1].Answers[0].Vote.Selected() {
		t.Error("q2/b1: fetched vote must win over stored vote")
	}
	if got[2].Answers[0].Vote != nil {
		t.Error("q5/e1: nothing stored, expected no vote")
	}
	if fetched[0].Answers[0].Vote != nil {
		t.Error("Reconcile must not mutate fetched")
	}
}

func TestReconcile_NoStored(t *testing.T) {
	fetched := []models.Question{testutil.NewQuestion("q1", "a1")}
	got := Reconcile(fetched, nil)
	if !reflect.DeepEqual(got, fetched) {
		t.Errorf("expected fetched unchanged, got %+v", got)
	}
}
