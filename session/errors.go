// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "errors"

var (
	ErrNotLoaded       = errors.New("questions not loaded")
	ErrFetchInFlight   = errors.New("question fetch already in flight")
	ErrSubmitInFlight  = errors.New("vote submission already in flight")
	ErrSessionMismatch = errors.New("session does not match this controller")
	ErrStopped         = errors.New("session controller stopped")
	ErrPersist         = errors.New("failed to persist votes")
)
