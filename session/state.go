// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

// Phase is derived from State; it is never stored
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseSubmitting
	PhaseConfirmed
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return models.PhaseIdle
	case PhaseLoading:
		return models.PhaseLoading
	case PhaseLoaded:
		return models.PhaseLoaded
	case PhaseSubmitting:
		return models.PhaseSubmitting
	case PhaseConfirmed:
		return models.PhaseConfirmed
	case PhaseFailed:
		return models.PhaseFailed
	}
	return "unknown"
}

// State is a snapshot of the controller's render state
type State struct {
	Session      models.Session
	Questions    []models.Question
	Confirmation *models.ConfirmationKey
	ConfirmedAt  time.Time

	// Loaded is set by the first successful question load
	Loaded     bool
	Fetching   bool
	Submitting bool

	// Err holds the last fetch or submission failure until the next attempt
	// or success; questions and confirmation are left as they were.
	Err error
}

// Phase reports where the session is in its lifecycle
func (s State) Phase() Phase {
	switch {
	case s.Err != nil:
		return PhaseFailed
	case s.Submitting:
		return PhaseSubmitting
	case s.Confirmation != nil:
		return PhaseConfirmed
	case s.Loaded:
		return PhaseLoaded
	case s.Fetching:
		return PhaseLoading
	}
	return PhaseIdle
}

func (s State) clone() State {
	out := s
	out.Questions = models.CloneQuestions(s.Questions)
	if s.Confirmation != nil {
		c := *s.Confirmation
		out.Confirmation = &c
	}
	return out
}
