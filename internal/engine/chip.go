package engine

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
)

// CurrentChip evaluates the chip state without writing anything
func (e *Engine) CurrentChip(ctx context.Context, sessionID string) (ChipDecision, error) {
	players, err := e.gw.ListPlayers(ctx, sessionID)
	if err != nil {
		return ChipDecision{}, fmt.Errorf("current chip: %w", err)
	}
	holes, err := e.gw.ListHoles(ctx, sessionID)
	if err != nil {
		return ChipDecision{}, fmt.Errorf("current chip: %w", err)
	}
	putts, err := e.gw.ListPutts(ctx, sessionID)
	if err != nil {
		return ChipDecision{}, fmt.Errorf("current chip: %w", err)
	}
	latest, err := e.gw.LatestChipEvent(ctx, sessionID)
	if err != nil && !gateway.IsNotFound(err) {
		return ChipDecision{}, fmt.Errorf("current chip: %w", err)
	}

	return DetermineChip(playerIDs(players), models.NewPuttGrid(holes, putts), latest), nil
}

// RecomputeChip re-evaluates the chip after a putt change and records a chip
// event when exactly one player took the latest three-putt. Ties are returned
// for the host to resolve and nothing is written.
func (e *Engine) RecomputeChip(ctx context.Context, sessionID string) (ChipDecision, error) {
	decision, err := e.CurrentChip(ctx, sessionID)
	if err != nil {
		return decision, err
	}

	switch decision.Outcome {
	case ChipAssign:
		if err := e.recordChip(ctx, sessionID, decision.HolderID, decision.HoleNumber, "sole three-putt"); err != nil {
			return decision, err
		}
	case ChipTie:
		log.Printf("[ENGINE] chip tie on hole %d in session %s between %v", decision.HoleNumber, sessionID, decision.Candidates)
	}
	return decision, nil
}

// ResolveChipTie records the host's pick when several players share the latest three-putt
func (e *Engine) ResolveChipTie(ctx context.Context, sessionID, playerID string) (ChipDecision, error) {
	decision, err := e.CurrentChip(ctx, sessionID)
	if err != nil {
		return decision, err
	}
	if decision.Outcome != ChipTie {
		return decision, ErrNoTiePending
	}
	if !slices.Contains(decision.Candidates, playerID) {
		return decision, ErrNotTieCandidate
	}

	if err := e.recordChip(ctx, sessionID, playerID, decision.HoleNumber, "tie resolved by host"); err != nil {
		return decision, err
	}
	return ChipDecision{Outcome: ChipAssign, HolderID: playerID, HoleNumber: decision.HoleNumber}, nil
}

func (e *Engine) recordChip(ctx context.Context, sessionID, playerID string, hole int, reason string) error {
	event := &models.ChipEvent{
		ID:         e.newID(),
		SessionID:  sessionID,
		PlayerID:   playerID,
		HoleNumber: hole,
		CreatedAt:  e.now(),
	}
	if err := e.gw.InsertChipEvent(ctx, event); err != nil {
		return fmt.Errorf("record chip: %w", err)
	}
	e.audit.LogChip(sessionID, playerID, hole, reason)
	e.publish(ctx, gateway.TableChipEvents, sessionID)
	return nil
}
