package engine

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sideputt/backend/internal/deck"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
)

type PlayerDeal struct {
	PlayerID  string      `json:"player_id"`
	Desired   int         `json:"desired"`
	Requested int         `json:"requested"`
	Dealt     []deck.Card `json:"dealt,omitempty"`
	Removed   int         `json:"removed"`
	Shortfall int         `json:"shortfall"`
}

type HoleDeal struct {
	HoleNumber int          `json:"hole_number"`
	Players    []PlayerDeal `json:"players"`
}

// Shortfall totals the cards that could not be dealt because the deck ran out
func (h *HoleDeal) Shortfall() int {
	total := 0
	for _, p := range h.Players {
		total += p.Shortfall
	}
	return total
}

// Changed reports whether any card was dealt or removed
func (h *HoleDeal) Changed() bool {
	for _, p := range h.Players {
		if len(p.Dealt) > 0 || p.Removed > 0 {
			return true
		}
	}
	return false
}

// AssignCardsForHole brings every player's cards on a hole in line with their
// putt count. Running it again with unchanged putts changes nothing. New cards
// come from whatever part of the deck is not yet allocated in the session; when
// the deck runs out the remainder is dealt and the shortfall reported.
func (e *Engine) AssignCardsForHole(ctx context.Context, sessionID string, holeNumber int) (*HoleDeal, error) {
	attempts := e.cfg.CardInsertRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := e.assignOnce(ctx, sessionID, holeNumber)
		if err == nil {
			return result, nil
		}
		if !gateway.IsDuplicate(err) {
			return nil, err
		}
		log.Printf("[ENGINE] card collision on hole %d of session %s, retrying (%d/%d)", holeNumber, sessionID, attempt, attempts)
	}

	err := fmt.Errorf("assign cards for hole %d: %w", holeNumber, ErrCardConflict)
	e.audit.LogError(sessionID, holeNumber, err)
	return nil, err
}

func (e *Engine) assignOnce(ctx context.Context, sessionID string, holeNumber int) (*HoleDeal, error) {
	holes, err := e.gw.ListHoles(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("assign cards: %w", err)
	}
	hole := findHole(holes, holeNumber)
	if hole == nil {
		err := fmt.Errorf("assign cards for hole %d: %w", holeNumber, ErrHoleNotFound)
		log.Printf("[ENGINE] %v (session %s)", err, sessionID)
		e.audit.LogError(sessionID, holeNumber, err)
		return nil, err
	}

	players, err := e.gw.ListPlayers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("assign cards: %w", err)
	}
	putts, err := e.gw.ListPutts(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("assign cards: %w", err)
	}
	cards, err := e.gw.ListCards(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("assign cards: %w", err)
	}

	grid := models.NewPuttGrid(holes, putts)
	result := &HoleDeal{HoleNumber: holeNumber}
	removed := make(map[string]bool)

	for _, p := range players {
		var existing []models.CardAllocation
		for _, c := range cards {
			if c.PlayerID == p.ID && c.HoleID == hole.ID {
				existing = append(existing, c)
			}
		}
		desired := CardsAwarded(grid.Get(p.ID, holeNumber))
		diff := ReconcileCards(existing, desired)
		for _, id := range diff.Remove {
			removed[id] = true
		}
		result.Players = append(result.Players, PlayerDeal{
			PlayerID:  p.ID,
			Desired:   desired,
			Requested: diff.Draw,
			Removed:   len(diff.Remove),
		})
	}

	if len(removed) > 0 {
		ids := make([]string, 0, len(removed))
		for id := range removed {
			ids = append(ids, id)
		}
		if err := e.gw.DeleteCards(ctx, sessionID, ids); err != nil {
			return nil, fmt.Errorf("assign cards: %w", err)
		}
	}

	var kept []models.CardAllocation
	for _, c := range cards {
		if !removed[c.ID] {
			kept = append(kept, c)
		}
	}
	pool := e.shuffle(deck.Remaining(deck.NewDeck(1), toDeckCards(kept)))

	now := e.now()
	var inserts []models.CardAllocation
	for i := range result.Players {
		pd := &result.Players[i]
		if pd.Requested == 0 {
			continue
		}
		pd.Dealt, pool = deck.Deal(pool, pd.Requested)
		pd.Shortfall = pd.Requested - len(pd.Dealt)
		for _, c := range pd.Dealt {
			inserts = append(inserts, models.CardAllocation{
				ID:        e.newID(),
				SessionID: sessionID,
				PlayerID:  pd.PlayerID,
				HoleID:    hole.ID,
				Suit:      string(c.Suit),
				Rank:      string(c.Rank),
				IsHidden:  true,
				CreatedAt: now,
			})
		}
	}

	if len(inserts) > 0 {
		if err := e.gw.InsertCards(ctx, inserts); err != nil {
			if errors.Is(err, gateway.ErrDuplicate) {
				return nil, err
			}
			return nil, fmt.Errorf("assign cards: %w", err)
		}
	}

	for _, pd := range result.Players {
		if len(pd.Dealt) > 0 || pd.Removed > 0 {
			e.audit.LogDeal(sessionID, pd.PlayerID, holeNumber, cardStrings(pd.Dealt), pd.Removed)
		}
		if pd.Shortfall > 0 {
			log.Printf("[ENGINE] deck exhausted in session %s: player %s short %d card(s) on hole %d",
				sessionID, pd.PlayerID, pd.Shortfall, holeNumber)
			e.audit.LogShortfall(sessionID, pd.PlayerID, holeNumber, pd.Shortfall)
		}
	}
	if result.Changed() {
		e.publish(ctx, gateway.TableCards, sessionID)
	}
	return result, nil
}
