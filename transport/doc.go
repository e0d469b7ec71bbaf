// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package transport is the HTTP client for the polling API.

# Endpoints

	GET  {base}/question/{session} → FetchQuestions
	POST {base}/vote/{session}     → SubmitVotes

The vote body is the flattened vote sequence; the response is the
confirmation key, {"session": "<key>"}.

# Retries

FetchQuestions is idempotent. Network errors, 5xx and 429 responses are
retried up to FetchAttempts times, RetryInterval apart. 4xx responses and
malformed bodies are not retried.

SubmitVotes is never retried. Each call carries a fresh Idempotency-Key
header; a retry is the caller's decision.

# Errors

Every failure wraps one of two sentinels:

	errors.Is(err, transport.ErrTransport)       // network, timeout, non-2xx
	errors.Is(err, transport.ErrDeserialization) // unexpected response shape

Non-2xx responses also wrap a *StatusError with the status code.

# Timeouts

Requests are bounded by the caller's context:

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	questions, err := client.FetchQuestions(ctx, sessionID)
*/
package transport
