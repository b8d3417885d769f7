// Package engine drives a Three Putt Poker round: hole and putt bootstrap,
// card reconciliation, chip assignment and session lifecycle. Operations are
// not transactional; each re-reads current state and converges on it, so
// repeating one is always safe.
package engine

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sideputt/backend/internal/audit"
	"github.com/sideputt/backend/internal/config"
	"github.com/sideputt/backend/internal/deck"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
	"github.com/sideputt/backend/internal/notify"
)

type Engine struct {
	gw       gateway.Gateway
	notifier notify.Notifier
	audit    *audit.Logger
	cfg      *config.GameConfig

	rngMu sync.Mutex
	rng   *rand.Rand

	now      func() time.Time
	newID    func() string
	joinCode func(length int) string
}

func New(gw gateway.Gateway, notifier notify.Notifier, auditLogger *audit.Logger, cfg *config.GameConfig) *Engine {
	if cfg == nil {
		cfg = config.LoadGameConfig()
	}
	return &Engine{
		gw:       gw,
		notifier: notifier,
		audit:    auditLogger,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		newID:    uuid.NewString,
		joinCode: generateJoinCode,
	}
}

// Gateway exposes the underlying store for read paths
func (e *Engine) Gateway() gateway.Gateway {
	return e.gw
}

// Config returns the game configuration in use
func (e *Engine) Config() *config.GameConfig {
	return e.cfg
}

func (e *Engine) shuffle(cards []deck.Card) []deck.Card {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return deck.Shuffle(cards, e.rng)
}

// publish is best effort; a lost signal only delays other viewers until their next fetch
func (e *Engine) publish(ctx context.Context, table, sessionID string) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Publish(ctx, table, sessionID); err != nil {
		log.Printf("[ENGINE] notify %s for session %s failed: %v", table, sessionID, err)
	}
}

func findHole(holes []models.Hole, number int) *models.Hole {
	for i := range holes {
		if holes[i].Number == number {
			return &holes[i]
		}
	}
	return nil
}

func playerIDs(players []models.Player) []string {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

func toDeckCards(cards []models.CardAllocation) []deck.Card {
	out := make([]deck.Card, len(cards))
	for i, c := range cards {
		out[i] = deck.Card{Suit: deck.Suit(c.Suit), Rank: deck.Rank(c.Rank)}
	}
	return out
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
