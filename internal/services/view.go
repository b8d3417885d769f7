package services

import (
	"sort"

	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/models"
	"github.com/sideputt/backend/internal/payout"
	"github.com/sideputt/backend/internal/store"
)

// PlayerView is one row of the scorecard as seen by the caller
type PlayerView struct {
	models.Player
	Putts          []*int            `json:"putts"`
	Cards          []models.CardView `json:"cards"`
	ThreePuttCount int               `json:"three_putt_count"`
	HasChip        bool              `json:"has_chip"`
	Total          int64             `json:"total"`
}

// GameView is the full game screen for one caller
type GameView struct {
	Session     models.Session      `json:"session"`
	MyPlayerID  string              `json:"my_player_id"`
	IsHost      bool                `json:"is_host"`
	CurrentHole int                 `json:"current_hole"`
	Chip        engine.ChipDecision `json:"chip"`
	Players     []PlayerView        `json:"players"`
	Pot         int64               `json:"pot"`
}

// cardVisible applies the session's deal method. Ended sessions show everything.
func cardVisible(session *models.Session, viewerID, ownerID string) bool {
	if session.IsEnded() {
		return true
	}
	switch session.DealMethod {
	case models.DealPublic:
		return true
	case models.DealEnd:
		return false
	default:
		return viewerID != "" && viewerID == ownerID
	}
}

func cardViews(state *store.GameState, viewerID, ownerID string, revealAll bool) []models.CardView {
	owned := state.CardsFor(ownerID)
	sort.SliceStable(owned, func(i, j int) bool {
		hi, hj := state.HoleNumber(owned[i].HoleID), state.HoleNumber(owned[j].HoleID)
		if hi != hj {
			return hi < hj
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})

	visible := revealAll || cardVisible(&state.Session, viewerID, ownerID)
	out := make([]models.CardView, 0, len(owned))
	for _, c := range owned {
		view := models.CardView{
			ID:       c.ID,
			HoleID:   c.HoleID,
			Hole:     state.HoleNumber(c.HoleID),
			FaceDown: !visible,
		}
		if visible {
			view.Suit = c.Suit
			view.Rank = c.Rank
		}
		out = append(out, view)
	}
	return out
}

// buildGameView renders state for viewer in players order
func buildGameView(state *store.GameState, viewer *models.Player, players []models.Player, revealAll bool) GameView {
	payouts := payout.Calculate(&state.Session, players, state.Putts, state.ChipHolderID())

	view := GameView{
		Session:     state.Session,
		CurrentHole: state.CurrentHole,
		Chip:        state.Chip,
		Players:     make([]PlayerView, 0, len(players)),
		Pot:         payout.Pot(payouts),
	}
	viewerID := ""
	if viewer != nil {
		viewerID = viewer.ID
		view.MyPlayerID = viewer.ID
		view.IsHost = viewer.IsCreator
	}

	for i, p := range players {
		view.Players = append(view.Players, PlayerView{
			Player:         p,
			Putts:          state.Putts.History(p.ID),
			Cards:          cardViews(state, viewerID, p.ID, revealAll),
			ThreePuttCount: payouts[i].ThreePuttCount,
			HasChip:        payouts[i].HasChip,
			Total:          payouts[i].Total,
		})
	}
	return view
}

// resultsOrder puts the host first and everyone else by id
func resultsOrder(players []models.Player) []models.Player {
	out := append([]models.Player(nil), players...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsCreator != out[j].IsCreator {
			return out[i].IsCreator
		}
		return out[i].ID < out[j].ID
	})
	return out
}
