package services

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/middleware"
	"github.com/sideputt/backend/internal/store"
)

// SessionService exposes game lifecycle endpoints: create, join, settings, end and delete
type SessionService struct {
	engine    *engine.Engine
	store     *store.Store
	validator *ValidationHelper
}

func NewSessionService(eng *engine.Engine, st *store.Store) *SessionService {
	return &SessionService{
		engine:    eng,
		store:     st,
		validator: NewValidationHelper(),
	}
}

type JoinRequest struct {
	JoinCode string `json:"join_code" validate:"required,min=4,max=12"`
}

// CreateSession starts a new game hosted by the caller
// @Summary Create game
// @Description Create a Three Putt Poker game. The caller becomes the host.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body engine.SessionParams true "Game settings"
// @Success 201 {object} object{session=models.Session,player=models.Player}
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /sessions [post]
func (s *SessionService) CreateSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		sendError(w, ErrUnauthorized)
		return
	}

	var req engine.SessionParams
	if !s.validator.decodeBody(w, r, &req) {
		return
	}

	session, player, err := s.engine.CreateSession(r.Context(), identity, req)
	if err != nil {
		sendError(w, err)
		return
	}

	log.Printf("[SESSION] %s created session %s (%s)", identity.UserID, session.ID, session.JoinCode)
	writeJSON(w, http.StatusCreated, map[string]any{
		"session": session,
		"player":  player,
	})
}

// ListSessions lists the caller's unfinished games
// @Summary List active games
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Session
// @Failure 401 {object} services.ErrorResponse
// @Router /sessions [get]
func (s *SessionService) ListSessions(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		sendError(w, ErrUnauthorized)
		return
	}

	sessions, err := s.engine.ListActiveSessions(r.Context(), identity.UserID)
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// JoinSession seats the caller in the game with the given join code
// @Summary Join game
// @Description Join by code. Joining a game you already play in returns your seat.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.JoinRequest true "Join code"
// @Success 200 {object} object{session=models.Session,player=models.Player,created=bool}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /sessions/join [post]
func (s *SessionService) JoinSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		sendError(w, ErrUnauthorized)
		return
	}

	var req JoinRequest
	if !s.validator.decodeBody(w, r, &req) {
		return
	}

	session, player, created, err := s.engine.JoinByCode(r.Context(), identity, req.JoinCode)
	if err != nil {
		sendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": session,
		"player":  player,
		"created": created,
	})
}

// UpdateSettings edits the game economics
// @Summary Update game settings
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param request body engine.SettingsUpdate true "Changed settings"
// @Success 200 {object} models.Session
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/settings [put]
func (s *SessionService) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		sendError(w, ErrUnauthorized)
		return
	}

	var req engine.SettingsUpdate
	if !s.validator.decodeBody(w, r, &req) {
		return
	}

	session, err := s.engine.UpdateSettings(r.Context(), identity.UserID, chi.URLParam(r, "sessionId"), req)
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// EndSession finishes the game and reveals every card
// @Summary End game
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} models.Session
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/end [post]
func (s *SessionService) EndSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		sendError(w, ErrUnauthorized)
		return
	}

	session, err := s.engine.EndSession(r.Context(), identity.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		sendError(w, err)
		return
	}
	s.store.Close(session.ID)
	writeJSON(w, http.StatusOK, session)
}

// DeleteSession removes the game for everyone
// @Summary Delete game
// @Tags Sessions
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 204
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /sessions/{sessionId} [delete]
func (s *SessionService) DeleteSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		sendError(w, ErrUnauthorized)
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	if err := s.engine.DeleteSession(r.Context(), identity.UserID, sessionID); err != nil {
		sendError(w, err)
		return
	}
	s.store.Discard(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}
