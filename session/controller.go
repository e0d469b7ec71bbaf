// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// DefaultTimeout bounds each fetch, submission and store access
const DefaultTimeout = 10 * time.Second

// Transport is the polling API as seen by the controller
type Transport interface {
	FetchQuestions(ctx context.Context, sessionID string) ([]models.Question, error)
	SubmitVotes(ctx context.Context, sessionID string, votes []models.Vote) (models.ConfirmationKey, error)
}

type Options struct {
	// Timeout defaults to DefaultTimeout
	Timeout time.Duration
	// Metrics may be nil
	Metrics *metrics.Metrics
}

// Controller owns one voting session. All state lives on the goroutine
// running Run; intents and I/O results reach it as events, one at a time.
type Controller struct {
	transport Transport
	store     store.Store
	timeout   time.Duration
	metrics   *metrics.Metrics

	events  chan any
	changed chan struct{}
	done    chan struct{}
	running atomic.Bool

	// loop goroutine only
	state  State
	runCtx context.Context
}

// Events handled by the loop
type (
	loadRequest struct {
		sessionID string
		reply     chan error
	}
	voteChange struct {
		question models.Question
		reply    chan voteChangeResult
	}
	submitRequest struct {
		reply chan error
	}
	stateRequest struct {
		reply chan State
	}
	questionsLoaded struct {
		questions []models.Question
	}
	sessionReceived struct {
		key models.ConfirmationKey
	}
	requestFailed struct {
		op  string
		err error
	}
)

type voteChangeResult struct {
	changed bool
	err     error
}

// New creates a controller for sessionID. A nil store keeps votes in memory.
func New(sessionID string, transport Transport, s store.Store, opts Options) *Controller {
	if s == nil {
		s = store.NewMemoryStore()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Controller{
		transport: transport,
		store:     s,
		timeout:   opts.Timeout,
		metrics:   opts.Metrics,
		events:    make(chan any),
		changed:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		state: State{
			Session:   models.Session{Session: sessionID},
			Questions: []models.Question{},
		},
	}
}

// Session returns the immutable session this controller was created for
func (c *Controller) Session() models.Session {
	return c.state.Session
}

// Changed receives a value after any state change. Notifications coalesce;
// read State to get the current snapshot.
func (c *Controller) Changed() <-chan struct{} {
	return c.changed
}

// Run issues the initial question fetch and processes events until ctx is
// done. It may be called once.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return errors.New("session controller already running")
	}
	defer close(c.done)

	c.runCtx = ctx
	c.startFetch()
	c.notify()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session controller stopped", "session", c.state.Session.Session)
			return nil
		case ev := <-c.events:
			if c.handle(ev) {
				c.notify()
			}
		}
	}
}

// RequestLoad fetches the questions again. An empty sessionID means this
// controller's session.
func (c *Controller) RequestLoad(ctx context.Context, sessionID string) error {
	reply := make(chan error, 1)
	if err := c.send(ctx, loadRequest{sessionID: sessionID, reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// RequestVoteChange replaces the question with the same key and mirrors the
// collection to the store before returning. It reports false when no question
// matched. A store failure is returned with changed == true: the in-memory
// change is kept.
func (c *Controller) RequestVoteChange(ctx context.Context, question models.Question) (bool, error) {
	reply := make(chan voteChangeResult, 1)
	if err := c.send(ctx, voteChange{question: question.Clone(), reply: reply}); err != nil {
		return false, err
	}
	res := <-reply
	return res.changed, res.err
}

// RequestSubmit flattens the current votes and submits them in the background
func (c *Controller) RequestSubmit(ctx context.Context) error {
	reply := make(chan error, 1)
	if err := c.send(ctx, submitRequest{reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// State returns a deep copy of the current state
func (c *Controller) State(ctx context.Context) (State, error) {
	reply := make(chan State, 1)
	if err := c.send(ctx, stateRequest{reply: reply}); err != nil {
		return State{}, err
	}
	return <-reply, nil
}

func (c *Controller) send(ctx context.Context, ev any) error {
	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post delivers an I/O result; it is dropped once the loop has stopped
func (c *Controller) post(ev any) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Controller) notify() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}

// handle applies one event and reports whether the state may have changed
func (c *Controller) handle(ev any) bool {
	switch ev := ev.(type) {
	case loadRequest:
		ev.reply <- c.requestLoad(ev.sessionID)
	case voteChange:
		changed, err := c.changeVote(ev.question)
		ev.reply <- voteChangeResult{changed: changed, err: err}
		return changed
	case submitRequest:
		ev.reply <- c.submit()
	case stateRequest:
		ev.reply <- c.state.clone()
		return false
	case questionsLoaded:
		c.loadQuestions(ev.questions)
	case sessionReceived:
		c.receiveSession(ev.key)
	case requestFailed:
		c.fail(ev.op, ev.err)
	default:
		slog.Error("unknown session event", "type", fmt.Sprintf("%T", ev))
		return false
	}
	return true
}

func (c *Controller) requestLoad(sessionID string) error {
	if sessionID != "" && sessionID != c.state.Session.Session {
		return ErrSessionMismatch
	}
	if c.state.Fetching {
		return ErrFetchInFlight
	}
	c.startFetch()
	return nil
}

func (c *Controller) startFetch() {
	c.state.Fetching = true
	c.state.Err = nil
	c.metrics.Started(metrics.OpFetch)
	go c.fetch(c.runCtx, c.state.Session.Session)
}

func (c *Controller) fetch(ctx context.Context, sessionID string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	questions, err := c.transport.FetchQuestions(ctx, sessionID)
	c.metrics.Finished(metrics.OpFetch, time.Since(start), err)
	if err != nil {
		c.post(requestFailed{op: metrics.OpFetch, err: err})
		return
	}
	c.post(questionsLoaded{questions: questions})
}

// loadQuestions replaces the collection. Normalizing does not persist.
func (c *Controller) loadQuestions(fetched []models.Question) {
	stored := c.restore()

	c.state.Fetching = false
	c.state.Err = nil
	c.state.Loaded = true
	c.state.Questions = Normalize(Reconcile(fetched, stored))

	slog.Info("questions loaded",
		"session", c.state.Session.Session,
		"questions", len(c.state.Questions),
		"votes", len(Flatten(c.state.Questions)),
	)
}

// restore reads the mirrored collection back if the store can be read and it
// was saved for this session
func (c *Controller) restore() []models.Question {
	getter, ok := c.store.(store.Getter)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.runCtx, c.timeout)
	defer cancel()

	data, err := getter.Get(ctx, store.VoteKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		slog.Warn("failed to read stored votes", "error", err)
		return nil
	}

	var saved models.StoredVotes
	if err := json.Unmarshal(data, &saved); err != nil {
		slog.Warn("ignoring unreadable stored votes", "error", err)
		return nil
	}
	if saved.Session != c.state.Session.Session {
		slog.Info("ignoring stored votes of another session", "stored", saved.Session)
		return nil
	}
	return saved.Questions
}

func (c *Controller) changeVote(question models.Question) (bool, error) {
	questions, changed := Replace(c.state.Questions, Normalize([]models.Question{question})[0])
	c.metrics.VoteChanged(changed)
	if !changed {
		slog.Debug("vote change for unknown question", "question", question.Key)
		return false, nil
	}

	c.state.Questions = questions
	if err := c.persist(); err != nil {
		c.metrics.PersistFailed()
		slog.Error("failed to persist votes", "question", question.Key, "error", err)
		return true, err
	}
	return true, nil
}

func (c *Controller) persist() error {
	data, err := json.Marshal(models.StoredVotes{
		Session:   c.state.Session.Session,
		Questions: c.state.Questions,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	ctx, cancel := context.WithTimeout(c.runCtx, c.timeout)
	defer cancel()

	if err := c.store.Set(ctx, store.VoteKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (c *Controller) submit() error {
	if !c.state.Loaded {
		return ErrNotLoaded
	}
	if c.state.Submitting {
		return ErrSubmitInFlight
	}

	votes := Flatten(c.state.Questions)
	c.state.Submitting = true
	c.state.Err = nil
	c.metrics.Started(metrics.OpSubmit)
	go c.submitVotes(c.runCtx, c.state.Session.Session, votes)
	return nil
}

func (c *Controller) submitVotes(ctx context.Context, sessionID string, votes []models.Vote) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	key, err := c.transport.SubmitVotes(ctx, sessionID, votes)
	c.metrics.Finished(metrics.OpSubmit, time.Since(start), err)
	if err != nil {
		c.post(requestFailed{op: metrics.OpSubmit, err: err})
		return
	}
	c.post(sessionReceived{key: key})
}

// receiveSession replaces any earlier confirmation
func (c *Controller) receiveSession(key models.ConfirmationKey) {
	c.state.Submitting = false
	c.state.Err = nil
	c.state.Confirmation = &key
	c.state.ConfirmedAt = time.Now()

	slog.Info("votes confirmed", "session", c.state.Session.Session)
}

func (c *Controller) fail(op string, err error) {
	switch op {
	case metrics.OpFetch:
		c.state.Fetching = false
	case metrics.OpSubmit:
		c.state.Submitting = false
	}
	c.state.Err = err

	slog.Warn("session request failed", "session", c.state.Session.Session, "op", op, "error", err)
}
