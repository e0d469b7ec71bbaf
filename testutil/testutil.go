// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// TestSession is the session id used across tests
const TestSession = "test-session"

// GetTestConfig returns a standard test configuration
func GetTestConfig(apiURL string) cliparse.Config {
	return cliparse.Config{
		Port:           3319,
		APIURL:         apiURL,
		SessionID:      TestSession,
		DatabaseType:   cliparse.StoreMemory,
		RequestTimeout: 2 * time.Second,
		FetchAttempts:  1,
	}
}

// NewQuestion builds a question whose answers carry no vote
func NewQuestion(key string, answerKeys ...string) models.Question {
	q := models.Question{Key: key, Answers: []models.Answer{}}
	for _, a := range answerKeys {
		q.Answers = append(q.Answers, models.Answer{Key: a})
	}
	return q
}

// WithVote returns a copy of q with answerKey's vote set
func WithVote(q models.Question, answerKey string, selected bool) models.Question {
	out := q.Clone()
	for i := range out.Answers {
		if out.Answers[i].Key == answerKey {
			v := models.NewVote(selected, answerKey, q.Key)
			out.Answers[i].Vote = &v
		}
	}
	return out
}

// APIServer fakes the polling API's question and vote endpoints
type APIServer struct {
	*httptest.Server

	mu             sync.Mutex
	questions      map[string][]models.Question
	confirmation   string
	fetchFailures  int
	submitFailures int
	fetchCount     int
	submissions    [][]models.Vote
	submitHeaders  []http.Header
}

// NewAPIServer starts a fake polling API serving questions for TestSession
func NewAPIServer(t *testing.T, questions []models.Question) *APIServer {
	t.Helper()

	s := &APIServer{
		questions:    map[string][]models.Question{TestSession: questions},
		confirmation: "confirmation-1",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /question/{session}", s.handleQuestions)
	mux.HandleFunc("POST /vote/{session}", s.handleVote)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// FailFetches makes the next n question fetches answer 503
func (s *APIServer) FailFetches(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchFailures = n
}

// FailSubmits makes the next n vote submissions answer 500
func (s *APIServer) FailSubmits(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitFailures = n
}

// SetConfirmation changes the key returned by the next submissions
func (s *APIServer) SetConfirmation(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmation = key
}

// FetchCount returns how many question requests reached the server
func (s *APIServer) FetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCount
}

// Submissions returns the vote sequences received so far
func (s *APIServer) Submissions() [][]models.Vote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]models.Vote(nil), s.submissions...)
}

// SubmitHeaders returns the request headers of every submission attempt
func (s *APIServer) SubmitHeaders() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]http.Header(nil), s.submitHeaders...)
}

func (s *APIServer) handleQuestions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetchCount++
	if s.fetchFailures > 0 {
		s.fetchFailures--
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	questions, ok := s.questions[r.PathValue("session")]
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *APIServer) handleVote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitHeaders = append(s.submitHeaders, r.Header.Clone())
	if s.submitFailures > 0 {
		s.submitFailures--
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}

	var votes []models.Vote
	if err := json.NewDecoder(r.Body).Decode(&votes); err != nil {
		http.Error(w, "bad votes", http.StatusBadRequest)
		return
	}
	s.submissions = append(s.submissions, votes)
	writeJSON(w, http.StatusOK, models.ConfirmationKey{Key: s.confirmation})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// FakeTransport implements the session controller's transport in memory.
// Nil funcs answer with empty successes.
type FakeTransport struct {
	FetchFunc  func(ctx context.Context, sessionID string) ([]models.Question, error)
	SubmitFunc func(ctx context.Context, sessionID string, votes []models.Vote) (models.ConfirmationKey, error)

	mu          sync.Mutex
	submissions [][]models.Vote
}

func (f *FakeTransport) FetchQuestions(ctx context.Context, sessionID string) ([]models.Question, error) {
	if f.FetchFunc == nil {
		return []models.Question{}, nil
	}
	return f.FetchFunc(ctx, sessionID)
}

func (f *FakeTransport) SubmitVotes(ctx context.Context, sessionID string, votes []models.Vote) (models.ConfirmationKey, error) {
	f.mu.Lock()
	f.submissions = append(f.submissions, votes)
	f.mu.Unlock()

	if f.SubmitFunc == nil {
		return models.ConfirmationKey{Key: "key-" + sessionID}, nil
	}
	return f.SubmitFunc(ctx, sessionID, votes)
}

// Submissions returns every vote sequence passed to SubmitVotes
func (f *FakeTransport) Submissions() [][]models.Vote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]models.Vote(nil), f.submissions...)
}

// RecordingStore is a readable store that records every write
type RecordingStore struct {
	SetErr error

	mu     sync.Mutex
	values map[string][]byte
	writes int
}

func NewRecordingStore() *RecordingStore {
	return &RecordingStore{values: make(map[string][]byte)}
}

func (s *RecordingStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *RecordingStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Writes returns the number of Set calls
func (s *RecordingStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// StoredQuestions decodes the collection mirrored under store.VoteKey
func (s *RecordingStore) StoredQuestions(t *testing.T) []models.Question {
	t.Helper()
	return s.StoredVotes(t).Questions
}

// StoredVotes decodes the session-tagged value mirrored under store.VoteKey
func (s *RecordingStore) StoredVotes(t *testing.T) models.StoredVotes {
	t.Helper()

	data, err := s.Get(context.Background(), store.VoteKey)
	if err != nil {
		t.Fatalf("Nothing stored under %s: %v", store.VoteKey, err)
	}
	var saved models.StoredVotes
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Failed to decode stored votes: %v", err)
	}
	return saved
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
