package services

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/middleware"
	"github.com/sideputt/backend/internal/models"
	"github.com/sideputt/backend/internal/payout"
	"github.com/sideputt/backend/internal/store"
)

// GameService serves the in-round endpoints: scorecard, putt entry, chip ties and payouts
type GameService struct {
	engine    *engine.Engine
	store     *store.Store
	validator *ValidationHelper
}

func NewGameService(eng *engine.Engine, st *store.Store) *GameService {
	return &GameService{
		engine:    eng,
		store:     st,
		validator: NewValidationHelper(),
	}
}

type SubmitPuttsRequest struct {
	Putts []engine.PuttEntry `json:"putts" validate:"required,min=1,dive"`
}

type ResolveChipRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type CurrentHoleRequest struct {
	Hole int `json:"hole" validate:"required,gte=1,lte=18"`
}

// memberState loads the game and the caller's seat in it
func (g *GameService) memberState(r *http.Request) (*store.GameState, *models.Player, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return nil, nil, ErrUnauthorized
	}

	state, err := g.store.Snapshot(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		return nil, nil, err
	}
	me := state.PlayerByUser(identity.UserID)
	if me == nil {
		return nil, nil, ErrNotMember
	}
	return state, me, nil
}

// hostState is memberState restricted to the host
func (g *GameService) hostState(r *http.Request) (*store.GameState, *models.Player, error) {
	state, me, err := g.memberState(r)
	if err != nil {
		return nil, nil, err
	}
	if !me.IsCreator {
		return nil, nil, engine.ErrNotHost
	}
	return state, me, nil
}

// GetGame returns the scorecard with cards masked per the deal method
// @Summary Get game
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} services.GameView
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /sessions/{sessionId} [get]
func (g *GameService) GetGame(w http.ResponseWriter, r *http.Request) {
	state, me, err := g.memberState(r)
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildGameView(state, me, state.Players, false))
}

// SubmitPutts records a hole for every listed player and deals its cards
// @Summary Submit putts
// @Description Record putts for a hole, deal cards, re-evaluate the chip and advance the hole pointer.
// @Tags Game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param hole path int true "Hole number (1-18)"
// @Param request body services.SubmitPuttsRequest true "Putts per player"
// @Success 200 {object} object{result=engine.SubmitResult,game=services.GameView}
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/holes/{hole}/putts [post]
func (g *GameService) SubmitPutts(w http.ResponseWriter, r *http.Request) {
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil || hole < 1 || hole > models.HoleCount {
		sendError(w, ErrBadHole)
		return
	}

	var req SubmitPuttsRequest
	if !g.validator.decodeBody(w, r, &req) {
		return
	}

	state, me, err := g.hostState(r)
	if err != nil {
		sendError(w, err)
		return
	}

	result, err := g.store.SubmitHole(r.Context(), state.Session.ID, hole, req.Putts)
	if err != nil {
		sendError(w, err)
		return
	}

	state, err = g.store.Snapshot(r.Context(), state.Session.ID)
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"result": result,
		"game":   buildGameView(state, me, state.Players, false),
	})
}

// SetCurrentHole moves the shared hole pointer
// @Summary Set current hole
// @Tags Game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param request body services.CurrentHoleRequest true "Hole"
// @Success 200 {object} object{current_hole=int}
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/current-hole [put]
func (g *GameService) SetCurrentHole(w http.ResponseWriter, r *http.Request) {
	var req CurrentHoleRequest
	if !g.validator.decodeBody(w, r, &req) {
		return
	}

	state, _, err := g.hostState(r)
	if err != nil {
		sendError(w, err)
		return
	}

	hole, err := g.store.SetCurrentHole(r.Context(), state.Session.ID, req.Hole)
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"current_hole": hole})
}

// ResolveChip hands the chip to one of the players tied on the latest three-putt hole
// @Summary Resolve chip tie
// @Tags Game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param request body services.ResolveChipRequest true "Chosen player"
// @Success 200 {object} engine.ChipDecision
// @Failure 403 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/chip [post]
func (g *GameService) ResolveChip(w http.ResponseWriter, r *http.Request) {
	var req ResolveChipRequest
	if !g.validator.decodeBody(w, r, &req) {
		return
	}

	state, _, err := g.hostState(r)
	if err != nil {
		sendError(w, err)
		return
	}

	decision, err := g.engine.ResolveChipTie(r.Context(), state.Session.ID, req.PlayerID)
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

// GetPayouts returns what every player owes
// @Summary Get payouts
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} object{payouts=[]payout.Payout,pot=int64}
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/payouts [get]
func (g *GameService) GetPayouts(w http.ResponseWriter, r *http.Request) {
	state, _, err := g.memberState(r)
	if err != nil {
		sendError(w, err)
		return
	}

	payouts := payout.Calculate(&state.Session, state.Players, state.Putts, state.ChipHolderID())
	writeJSON(w, http.StatusOK, map[string]any{
		"payouts": payouts,
		"pot":     payout.Pot(payouts),
	})
}

// GetPlayerPutts returns one player's putts on holes 1..18
// @Summary Get player putts
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param playerId path string true "Player ID"
// @Success 200 {object} object{player_id=string,putts=[]int}
// @Failure 404 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/players/{playerId}/putts [get]
func (g *GameService) GetPlayerPutts(w http.ResponseWriter, r *http.Request) {
	state, _, err := g.memberState(r)
	if err != nil {
		sendError(w, err)
		return
	}

	playerID := chi.URLParam(r, "playerId")
	if state.Player(playerID) == nil {
		sendError(w, engine.ErrUnknownPlayer)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"player_id": playerID,
		"putts":     state.Putts.History(playerID),
	})
}

// GetResults is the final reveal: host first, every card face up
// @Summary Get final results
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} services.GameView
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/results [get]
func (g *GameService) GetResults(w http.ResponseWriter, r *http.Request) {
	state, me, err := g.memberState(r)
	if err != nil {
		sendError(w, err)
		return
	}
	if !state.Session.IsEnded() {
		sendError(w, ErrSessionNotEnded)
		return
	}
	writeJSON(w, http.StatusOK, buildGameView(state, me, resultsOrder(state.Players), true))
}
