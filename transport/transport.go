// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

const (
	DefaultFetchAttempts = 3
	DefaultRetryInterval = 500 * time.Millisecond

	// IdempotencyKeyHeader lets a server that supports it deduplicate submissions
	IdempotencyKeyHeader = "Idempotency-Key"

	maxBodyBytes = 1 << 20
)

// Client talks to the polling API
type Client struct {
	BaseURL       string
	HTTPClient    *http.Client
	FetchAttempts int
	RetryInterval time.Duration
}

// NewClient returns a Client whose requests are logged through middleware.LoggingTransport.
// A nil httpClient gets a fresh client without its own timeout; callers bound requests with contexts.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	hc := &http.Client{}
	if httpClient != nil {
		copied := *httpClient
		hc = &copied
	}
	hc.Transport = middleware.LoggingTransport(hc.Transport)

	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		HTTPClient:    hc,
		FetchAttempts: DefaultFetchAttempts,
		RetryInterval: DefaultRetryInterval,
	}
}

// FetchQuestions handles GET {base}/question/{session}.
// The fetch is idempotent, so network failures and 5xx responses are retried.
func (c *Client) FetchQuestions(ctx context.Context, sessionID string) ([]models.Question, error) {
	const op = "fetch questions"
	endpoint := c.BaseURL + "/question/" + url.PathEscape(sessionID)

	attempts := max(c.FetchAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var questions []models.Question
		questions, err = c.fetchOnce(ctx, endpoint)
		if err == nil {
			return questions, nil
		}
		if !retryable(ctx, err) || attempt == attempts {
			break
		}

		slog.Warn("question fetch failed, retrying",
			"session", sessionID, "attempt", attempt, "max", attempts, "error", err)

		select {
		case <-ctx.Done():
			return nil, transportErr(op, ctx.Err())
		case <-time.After(c.RetryInterval):
		}
	}
	return nil, err
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]models.Question, error) {
	const op = "fetch questions"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, transportErr(op, err)
	}
	req.Header.Set("Accept", "application/json")

	var questions []models.Question
	if err := c.do(op, req, &questions); err != nil {
		return nil, err
	}
	if err := validateQuestions(questions); err != nil {
		return nil, deserializationErr(op, err)
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

// SubmitVotes handles POST {base}/vote/{session}.
// Submissions are not idempotent and are never retried here.
func (c *Client) SubmitVotes(ctx context.Context, sessionID string, votes []models.Vote) (models.ConfirmationKey, error) {
	const op = "submit votes"
	endpoint := c.BaseURL + "/vote/" + url.PathEscape(sessionID)

	if votes == nil {
		votes = []models.Vote{}
	}
	payload, err := json.Marshal(votes)
	if err != nil {
		return models.ConfirmationKey{}, fmt.Errorf("%s: failed to encode votes: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return models.ConfirmationKey{}, transportErr(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(IdempotencyKeyHeader, uuid.NewString())

	var key models.ConfirmationKey
	if err := c.do(op, req, &key); err != nil {
		return models.ConfirmationKey{}, err
	}
	if key.Key == "" {
		return models.ConfirmationKey{}, deserializationErr(op, errors.New("empty confirmation key"))
	}
	return key, nil
}

// do sends req and decodes a 2xx JSON body into v
func (c *Client) do(op string, req *http.Request, v any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return transportErr(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return transportErr(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportErr(op, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body[:min(len(body), 512)])),
		})
	}

	if len(body) > maxBodyBytes {
		return deserializationErr(op, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return deserializationErr(op, err)
	}
	return nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || !errors.Is(err, ErrTransport) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

func validateQuestions(questions []models.Question) error {
	for i, q := range questions {
		if q.Key == "" {
			return fmt.Errorf("question %d has no key", i)
		}
		for j, a := range q.Answers {
			if a.Key == "" {
				return fmt.Errorf("question %s: answer %d has no key", q.Key, j)
			}
			if a.Vote != nil && !a.Vote.ValidSelection() {
				return fmt.Errorf("question %s: answer %s has invalid vote %q", q.Key, a.Key, a.Vote.Vote)
			}
		}
	}
	return nil
}
