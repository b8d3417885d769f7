package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
)

// EnsureHoles makes sure the session has holes 1..18 and returns them ordered
// by number. Concurrent callers converge on the same rows.
func (e *Engine) EnsureHoles(ctx context.Context, sessionID string) ([]models.Hole, error) {
	existing, err := e.gw.ListHoles(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("ensure holes: %w", err)
	}

	have := make(map[int]bool, len(existing))
	for _, h := range existing {
		have[h.Number] = true
	}

	var missing []models.Hole
	for n := 1; n <= models.HoleCount; n++ {
		if !have[n] {
			missing = append(missing, models.Hole{ID: e.newID(), SessionID: sessionID, Number: n})
		}
	}
	if len(missing) == 0 {
		return dedupeHoles(existing), nil
	}

	log.Printf("[ENGINE] inserting %d holes for session %s", len(missing), sessionID)
	if err := e.gw.InsertHoles(ctx, missing); err != nil && !gateway.IsDuplicate(err) {
		return nil, fmt.Errorf("ensure holes: %w", err)
	}

	all, err := e.gw.ListHoles(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("ensure holes: %w", err)
	}
	e.publish(ctx, gateway.TableHoles, sessionID)
	return dedupeHoles(all), nil
}

func dedupeHoles(holes []models.Hole) []models.Hole {
	seen := make(map[int]bool, len(holes))
	out := make([]models.Hole, 0, len(holes))
	for _, h := range holes {
		if seen[h.Number] {
			continue
		}
		seen[h.Number] = true
		out = append(out, h)
	}
	return out
}

// EnsurePutts creates an empty putt row for every hole the player lacks one for.
// It returns the number of rows inserted.
func (e *Engine) EnsurePutts(ctx context.Context, sessionID, playerID string) (int, error) {
	holes, err := e.gw.ListHoles(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("ensure putts: %w", err)
	}
	putts, err := e.gw.ListPutts(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("ensure putts: %w", err)
	}

	have := make(map[string]bool)
	for _, p := range putts {
		if p.PlayerID == playerID {
			have[p.HoleID] = true
		}
	}

	var rows []models.Putt
	for _, h := range holes {
		if !have[h.ID] {
			rows = append(rows, models.Putt{ID: e.newID(), SessionID: sessionID, PlayerID: playerID, HoleID: h.ID})
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}

	if err := e.gw.InsertPutts(ctx, rows); err != nil && !gateway.IsDuplicate(err) {
		return 0, fmt.Errorf("ensure putts: %w", err)
	}
	log.Printf("[ENGINE] created %d putt rows for player %s in session %s", len(rows), playerID, sessionID)
	e.publish(ctx, gateway.TablePutts, sessionID)
	return len(rows), nil
}
