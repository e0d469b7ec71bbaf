// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the voting session controller.

A Controller owns the question collection of one session. Run processes
intents and I/O results one at a time on a single goroutine; callers never
touch the state directly.

	ctrl := session.New(sessionID, client, backend, session.Options{Timeout: 10 * time.Second})
	go ctrl.Run(ctx)

	changed, err := ctrl.RequestVoteChange(ctx, question)
	err = ctrl.RequestSubmit(ctx)
	st, err := ctrl.State(ctx)

# Lifecycle

Run starts the first question fetch. State.Phase reports:

	idle → loading → loaded → submitting → confirmed
	                 ↘ failed (fetch or submit error; retry by RequestLoad or RequestSubmit)

At most one fetch and one submission are in flight. Each is bounded by
Options.Timeout.

# Votes

Every answer of a loaded question carries a vote; absent votes are set to
"false" with both back-references. A vote change replaces the question with
the same key, after normalizing it, and writes the whole collection tagged
with the session id to the store under
store.VoteKey before the intent returns. Submission sends the votes in
question then answer order.
*/
package session
