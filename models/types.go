package models

import "time"

// Vote selection literals. The wire form is a string, never a JSON boolean.
const (
	VoteTrue  = "true"
	VoteFalse = "false"
)

// Session phase names as exposed by the local API
const (
	PhaseIdle       = "idle"
	PhaseLoading    = "loading"
	PhaseLoaded     = "loaded"
	PhaseSubmitting = "submitting"
	PhaseConfirmed  = "confirmed"
	PhaseFailed     = "failed"
)

// Domain types

type Session struct {
	Session string `json:"session"`
}

// ConfirmationKey is returned by the vote endpoint as {"session": "<key>"}
type ConfirmationKey struct {
	Key string `json:"session"`
}

type Question struct {
	Key     string   `json:"key"`
	Title   string   `json:"title,omitempty"`
	Answers []Answer `json:"answers"`
}

type Answer struct {
	Key   string `json:"key"`
	Title string `json:"title,omitempty"`
	Vote  *Vote  `json:"vote"`
}

type Vote struct {
	Vote        string  `json:"vote"`
	AnswerKey   *string `json:"answer_key,omitempty"`
	QuestionKey *string `json:"question_key,omitempty"`
}

// StoredVotes is the collection mirrored to the local store, tagged with the
// session it belongs to
type StoredVotes struct {
	Session   string     `json:"session"`
	Questions []Question `json:"questions"`
}

// NewVote builds a vote with both back-references populated
func NewVote(selected bool, answerKey, questionKey string) Vote {
	v := VoteFalse
	if selected {
		v = VoteTrue
	}
	return Vote{
		Vote:        v,
		AnswerKey:   &answerKey,
		QuestionKey: &questionKey,
	}
}

// Selected reports whether the vote literal is "true"
func (v Vote) Selected() bool {
	return v.Vote == VoteTrue
}

// ValidSelection reports whether the vote literal is one of the wire values
func (v Vote) ValidSelection() bool {
	return v.Vote == VoteTrue || v.Vote == VoteFalse
}

// Clone returns a deep copy of the vote
func (v Vote) Clone() Vote {
	out := Vote{Vote: v.Vote}
	if v.AnswerKey != nil {
		k := *v.AnswerKey
		out.AnswerKey = &k
	}
	if v.QuestionKey != nil {
		k := *v.QuestionKey
		out.QuestionKey = &k
	}
	return out
}

// Clone returns a deep copy of the question, its answers and their votes
func (q Question) Clone() Question {
	out := Question{Key: q.Key, Title: q.Title}
	if q.Answers != nil {
		out.Answers = make([]Answer, len(q.Answers))
		for i, a := range q.Answers {
			out.Answers[i] = Answer{Key: a.Key, Title: a.Title}
			if a.Vote != nil {
				v := a.Vote.Clone()
				out.Answers[i].Vote = &v
			}
		}
	}
	return out
}

// CloneQuestions deep-copies a question collection. nil stays nil.
func CloneQuestions(questions []Question) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}

// Request types

type LoadRequest struct {
	Session string `json:"session"`
}

// Response types

type StateResponse struct {
	Session       string           `json:"session"`
	Phase         string           `json:"phase"`
	Questions     []Question       `json:"questions"`
	Confirmation  *ConfirmationKey `json:"confirmation,omitempty"`
	ConfirmedAt   *time.Time       `json:"confirmed_at,omitempty"`
	ConfirmedAgo  string           `json:"confirmed_ago,omitempty"`
	Fetching      bool             `json:"fetching"`
	Submitting    bool             `json:"submitting"`
	Error         string           `json:"error,omitempty"`
	ErrorCategory string           `json:"error_category,omitempty"`
}

type ChangeVoteResponse struct {
	Changed bool   `json:"changed"`
	Message string `json:"message,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
