// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines wire, domain, and local API types.

# Domain Types

Types shared with the polling server:

  - Session: session identifier, {"session": "..."}
  - Question: key, optional title, ordered answers
  - Answer: key, optional title, optional vote
  - Vote: selection literal plus answer_key / question_key back-references
  - ConfirmationKey: token returned after a vote submission

Votes encode their selection as a string literal rather than a boolean:

	{"vote": "true", "answer_key": "a1", "question_key": "q1"}

Use NewVote to build a fully referenced vote:

	v := models.NewVote(false, answer.Key, question.Key)

# Copies

Question collections are copy-on-write. Clone and CloneQuestions return deep
copies so a caller never shares answer slices or vote pointers with the
controller.

# Local API Types

Types for the presentation API served by the daemon:

  - LoadRequest: session
  - StateResponse: phase, questions, confirmation, error
  - ChangeVoteResponse: changed, message
  - ErrorResponse: error, message

# Constants

Vote literals:

	VoteTrue  = "true"
	VoteFalse = "false"

Phases:

	PhaseIdle, PhaseLoading, PhaseLoaded,
	PhaseSubmitting, PhaseConfirmed, PhaseFailed
*/
package models
