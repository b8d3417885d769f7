package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
)

// PuttEntry is one player's score for a hole. A nil NumPutts leaves the stored value alone.
type PuttEntry struct {
	PlayerID string `json:"player_id" validate:"required"`
	NumPutts *int   `json:"num_putts" validate:"omitempty,gte=0"`
}

type SubmitResult struct {
	HoleNumber int          `json:"hole_number"`
	NextHole   int          `json:"next_hole"`
	Deal       *HoleDeal    `json:"deal"`
	Chip       ChipDecision `json:"chip"`
}

// SubmitPutts records putts for a hole, deals cards for it, re-evaluates the
// chip and returns the next hole (18 stays at 18). Entries are validated as a
// whole before anything is written.
func (e *Engine) SubmitPutts(ctx context.Context, sessionID string, holeNumber int, entries []PuttEntry) (*SubmitResult, error) {
	if holeNumber < 1 || holeNumber > models.HoleCount {
		return nil, ErrInvalidHole
	}

	session, err := e.gw.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("submit putts: %w", err)
	}
	if session.IsEnded() {
		return nil, ErrSessionEnded
	}

	holes, err := e.gw.ListHoles(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("submit putts: %w", err)
	}
	hole := findHole(holes, holeNumber)
	if hole == nil {
		err := fmt.Errorf("submit putts for hole %d: %w", holeNumber, ErrHoleNotFound)
		log.Printf("[ENGINE] %v (session %s)", err, sessionID)
		return nil, err
	}

	players, err := e.gw.ListPlayers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("submit putts: %w", err)
	}
	known := make(map[string]bool, len(players))
	for _, p := range players {
		known[p.ID] = true
	}
	for _, entry := range entries {
		if !known[entry.PlayerID] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, entry.PlayerID)
		}
		if entry.NumPutts != nil && (*entry.NumPutts < 0 || *entry.NumPutts > e.cfg.MaxPutts) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidPutts, *entry.NumPutts)
		}
	}

	written := 0
	for _, entry := range entries {
		if entry.NumPutts == nil {
			continue
		}
		if err := e.gw.UpsertPutt(ctx, &models.Putt{
			ID:        e.newID(),
			SessionID: sessionID,
			PlayerID:  entry.PlayerID,
			HoleID:    hole.ID,
			NumPutts:  entry.NumPutts,
		}); err != nil {
			return nil, fmt.Errorf("submit putts: %w", err)
		}
		written++
	}
	if written > 0 {
		e.publish(ctx, gateway.TablePutts, sessionID)
	}
	log.Printf("[ENGINE] hole %d of session %s: %d putt value(s) saved", holeNumber, sessionID, written)

	deal, err := e.AssignCardsForHole(ctx, sessionID, holeNumber)
	if err != nil {
		return nil, err
	}
	chip, err := e.RecomputeChip(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		HoleNumber: holeNumber,
		NextHole:   NextHole(holeNumber),
		Deal:       deal,
		Chip:       chip,
	}, nil
}
