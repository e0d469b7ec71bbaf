// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics defines Prometheus collectors for the voting session.

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

# Collectors

  - quickly_vote_requests_total{op,result}: fetches and submissions
  - quickly_vote_request_duration_seconds{op}
  - quickly_vote_requests_in_flight{op}
  - quickly_vote_vote_changes_total{changed}
  - quickly_vote_persist_failures_total

A nil *Metrics is accepted everywhere and records nothing, so the session
controller can run without metrics.
*/
package metrics
