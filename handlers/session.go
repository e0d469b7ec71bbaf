// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/session"
	"github.com/danielhkuo/quickly-vote/transport"
)

// Error categories reported in StateResponse
const (
	CategoryTransport       = "transport"
	CategoryDeserialization = "deserialization"
	CategoryOther           = "other"
)

// Controller is the part of session.Controller the local API drives
type Controller interface {
	Session() models.Session
	State(ctx context.Context) (session.State, error)
	RequestLoad(ctx context.Context, sessionID string) error
	RequestVoteChange(ctx context.Context, question models.Question) (bool, error)
	RequestSubmit(ctx context.Context) error
}

type SessionHandler struct {
	ctrl Controller
}

func NewSessionHandler(ctrl Controller) *SessionHandler {
	return &SessionHandler{ctrl: ctrl}
}

// GetState handles GET /session
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	st, err := h.ctrl.State(r.Context())
	if err != nil {
		controllerUnavailable(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, NewStateResponse(st))
}

// Load handles POST /session/load. An empty body reloads the current session.
func (h *SessionHandler) Load(w http.ResponseWriter, r *http.Request) {
	var req models.LoadRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.ctrl.RequestLoad(r.Context(), req.Session)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrSessionMismatch):
		middleware.ErrorResponse(w, http.StatusBadRequest, "session does not match "+h.ctrl.Session().Session)
		return
	case errors.Is(err, session.ErrFetchInFlight):
		middleware.ErrorResponse(w, http.StatusConflict, "Questions are already loading")
		return
	default:
		controllerUnavailable(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusAccepted, h.ctrl.Session())
}

// ChangeVote handles PUT /session/questions/{key}
func (h *SessionHandler) ChangeVote(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question key is required")
		return
	}

	var q models.Question
	if err := middleware.ParseJSONBody(r, &q); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if q.Key == "" {
		q.Key = key
	}
	if q.Key != key {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question key does not match path")
		return
	}
	for _, a := range q.Answers {
		if a.Vote != nil && !a.Vote.ValidSelection() {
			middleware.ErrorResponse(w, http.StatusBadRequest, `vote must be "true" or "false"`)
			return
		}
	}

	changed, err := h.ctrl.RequestVoteChange(r.Context(), q)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrPersist):
		slog.Error("vote changed but not persisted", "question", key, "error", err)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.ChangeVoteResponse{
			Changed: changed,
			Message: "Vote changed but could not be saved",
		})
		return
	default:
		controllerUnavailable(w, err)
		return
	}

	if !changed {
		middleware.JSONResponse(w, http.StatusNotFound, models.ChangeVoteResponse{
			Changed: false,
			Message: "No question with that key",
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChangeVoteResponse{Changed: true})
}

// Submit handles POST /session/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.RequestSubmit(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNotLoaded):
		middleware.ErrorResponse(w, http.StatusConflict, "Questions are not loaded yet")
		return
	case errors.Is(err, session.ErrSubmitInFlight):
		middleware.ErrorResponse(w, http.StatusConflict, "Votes are already being submitted")
		return
	default:
		controllerUnavailable(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusAccepted, h.ctrl.Session())
}

// NewStateResponse renders a controller snapshot for the local API
func NewStateResponse(st session.State) models.StateResponse {
	resp := models.StateResponse{
		Session:    st.Session.Session,
		Phase:      st.Phase().String(),
		Questions:  st.Questions,
		Fetching:   st.Fetching,
		Submitting: st.Submitting,
	}
	if resp.Questions == nil {
		resp.Questions = []models.Question{}
	}

	if st.Confirmation != nil {
		resp.Confirmation = st.Confirmation
		confirmedAt := st.ConfirmedAt
		resp.ConfirmedAt = &confirmedAt
		resp.ConfirmedAgo = humanize.Time(confirmedAt)
	}

	if st.Err != nil {
		resp.Error = st.Err.Error()
		resp.ErrorCategory = ErrorCategory(st.Err)
	}
	return resp
}

// ErrorCategory names the failure class of err
func ErrorCategory(err error) string {
	switch {
	case errors.Is(err, transport.ErrDeserialization):
		return CategoryDeserialization
	case errors.Is(err, transport.ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return CategoryTransport
	}
	return CategoryOther
}

func controllerUnavailable(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrStopped) {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Session controller stopped")
		return
	}
	slog.Error("session controller request failed", "error", err)
	middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Session controller unavailable")
}
