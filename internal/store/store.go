// Package store keeps a live view of open sessions. Views are loaded from the
// gateway and reloaded whenever a change notification arrives for the session;
// the reload always wins over anything edited locally.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
	"github.com/sideputt/backend/internal/notify"
)

var ErrNotOpen = errors.New("session is not open")

type Store struct {
	engine      *engine.Engine
	gw          gateway.Gateway
	notifier    notify.Notifier
	clientState GameClientState

	mu    sync.Mutex
	games map[string]*entry
}

type entry struct {
	mu     sync.RWMutex
	state  *GameState
	sub    notify.Subscription
	closed bool

	// guarded by Store.mu
	holds    int
	lastUsed time.Time
}

func New(eng *engine.Engine, notifier notify.Notifier, clientState GameClientState) *Store {
	if clientState == nil {
		clientState = NewMemoryClientState()
	}
	return &Store{
		engine:      eng,
		gw:          eng.Gateway(),
		notifier:    notifier,
		clientState: clientState,
		games:       make(map[string]*entry),
	}
}

func (s *Store) get(sessionID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games[sessionID]
}

// Open loads the session if needed, subscribes to its changes and returns a snapshot
func (s *Store) Open(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.Lock()
	ent, ok := s.games[sessionID]
	if !ok {
		ent = &entry{}
		s.games[sessionID] = ent
	}
	ent.lastUsed = time.Now()
	s.mu.Unlock()

	ent.mu.Lock()
	defer ent.mu.Unlock()
	if ent.state != nil {
		return ent.state.clone(), nil
	}

	state, err := s.load(ctx, sessionID)
	if err != nil {
		s.mu.Lock()
		if s.games[sessionID] == ent {
			delete(s.games, sessionID)
		}
		s.mu.Unlock()
		return nil, err
	}
	state.CurrentHole = s.restoreHole(ctx, sessionID, state)

	if s.notifier != nil {
		sub, err := s.notifier.Subscribe(context.Background(), sessionID, gateway.Tables, s.onChange)
		if err != nil {
			log.Printf("[STORE] live updates unavailable for %s: %v", sessionID, err)
		}
		ent.sub = sub
	}
	ent.state = state
	log.Printf("[STORE] opened session %s (%d players, hole %d)", sessionID, len(state.Players), state.CurrentHole)
	return state.clone(), nil
}

// Snapshot is Open under a name that reads better at call sites that only read
func (s *Store) Snapshot(ctx context.Context, sessionID string) (*GameState, error) {
	return s.Open(ctx, sessionID)
}

func (s *Store) restoreHole(ctx context.Context, sessionID string, state *GameState) int {
	hole, ok, err := s.clientState.Restore(ctx, sessionID)
	if err == nil && ok {
		return engine.ClampHole(hole)
	}
	return derivedHole(state.Players, state.Putts)
}

func (s *Store) onChange(ev notify.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Refresh(ctx, ev.SessionID); err != nil && !errors.Is(err, ErrNotOpen) {
		log.Printf("[STORE] refresh after %s change in %s failed: %v", ev.Table, ev.SessionID, err)
	}
}

// Refresh reloads an open session. A session that no longer exists is closed.
// On any other failure the previous view is kept.
func (s *Store) Refresh(ctx context.Context, sessionID string) error {
	ent := s.get(sessionID)
	if ent == nil {
		return ErrNotOpen
	}

	state, err := s.load(ctx, sessionID)
	if gateway.IsNotFound(err) {
		s.Close(sessionID)
		return err
	}
	if err != nil {
		return err
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()
	if ent.closed {
		return nil
	}
	if ent.state != nil {
		state.CurrentHole = ent.state.CurrentHole
	} else {
		state.CurrentHole = s.restoreHole(ctx, sessionID, state)
	}
	ent.state = state
	return nil
}

func (s *Store) load(ctx context.Context, sessionID string) (*GameState, error) {
	session, err := s.gw.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	players, err := s.gw.ListPlayers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	holes, err := s.gw.ListHoles(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load holes: %w", err)
	}
	putts, err := s.gw.ListPutts(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load putts: %w", err)
	}
	cards, err := s.gw.ListCards(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	latest, err := s.gw.LatestChipEvent(ctx, sessionID)
	if err != nil && !gateway.IsNotFound(err) {
		return nil, fmt.Errorf("load chip: %w", err)
	}

	knownPlayers := make(map[string]bool, len(players))
	for _, p := range players {
		knownPlayers[p.ID] = true
	}
	knownHoles := make(map[string]bool, len(holes))
	for _, h := range holes {
		knownHoles[h.ID] = true
	}

	validPutts := putts[:0]
	for _, p := range putts {
		if !knownPlayers[p.PlayerID] || !knownHoles[p.HoleID] {
			log.Printf("[STORE] dropping putt %s in %s: unknown player or hole", p.ID, sessionID)
			continue
		}
		validPutts = append(validPutts, p)
	}
	validCards := cards[:0]
	for _, c := range cards {
		if !knownPlayers[c.PlayerID] || !knownHoles[c.HoleID] {
			log.Printf("[STORE] dropping card %s in %s: unknown player or hole", c.ID, sessionID)
			continue
		}
		validCards = append(validCards, c)
	}

	state := &GameState{
		Session:  *session,
		Players:  players,
		Holes:    holes,
		Putts:    models.NewPuttGrid(holes, validPutts),
		Cards:    validCards,
		LoadedAt: time.Now(),
	}
	state.Chip = engine.DetermineChip(state.PlayerIDs(), state.Putts, latest)
	return state, nil
}

// SetPutt edits the local view only; it is overwritten by the next reload
func (s *Store) SetPutt(sessionID, playerID string, hole int, putts *int) error {
	if hole < 1 || hole > models.HoleCount {
		return engine.ErrInvalidHole
	}
	ent := s.get(sessionID)
	if ent == nil {
		return ErrNotOpen
	}
	ent.mu.Lock()
	defer ent.mu.Unlock()
	if ent.state == nil {
		return ErrNotOpen
	}
	if ent.state.Player(playerID) == nil {
		return engine.ErrUnknownPlayer
	}
	ent.state.Putts.Set(playerID, hole, putts)
	return nil
}

// SubmitHole saves a hole's putts through the engine, moves the pointer to the
// next hole and reloads the view.
func (s *Store) SubmitHole(ctx context.Context, sessionID string, hole int, entries []engine.PuttEntry) (*engine.SubmitResult, error) {
	if _, err := s.Open(ctx, sessionID); err != nil {
		return nil, err
	}

	result, err := s.engine.SubmitPutts(ctx, sessionID, hole, entries)
	if err != nil {
		return nil, err
	}
	if _, err := s.SetCurrentHole(ctx, sessionID, result.NextHole); err != nil {
		log.Printf("[STORE] persist hole pointer for %s: %v", sessionID, err)
	}
	if err := s.Refresh(ctx, sessionID); err != nil {
		log.Printf("[STORE] refresh after submit for %s: %v", sessionID, err)
	}
	return result, nil
}

// SetCurrentHole moves the pointer (clamped to 1..18) and persists it
func (s *Store) SetCurrentHole(ctx context.Context, sessionID string, hole int) (int, error) {
	hole = engine.ClampHole(hole)
	if ent := s.get(sessionID); ent != nil {
		ent.mu.Lock()
		if ent.state != nil {
			ent.state.CurrentHole = hole
		}
		ent.mu.Unlock()
	}
	return hole, s.clientState.Persist(ctx, sessionID, hole)
}

// Close drops the view and its subscriptions. Writes already in flight still
// complete; their notifications are ignored.
func (s *Store) Close(sessionID string) {
	s.mu.Lock()
	ent := s.games[sessionID]
	delete(s.games, sessionID)
	s.mu.Unlock()
	if ent != nil {
		s.closeEntry(sessionID, ent)
	}
}

func (s *Store) closeEntry(sessionID string, ent *entry) {
	ent.mu.Lock()
	defer ent.mu.Unlock()
	ent.closed = true
	if ent.sub != nil {
		if err := ent.sub.Close(); err != nil {
			log.Printf("[STORE] unsubscribe %s: %v", sessionID, err)
		}
		ent.sub = nil
	}
}

// Discard closes the view and forgets the stored hole pointer
func (s *Store) Discard(ctx context.Context, sessionID string) {
	s.Close(sessionID)
	if err := s.clientState.Forget(ctx, sessionID); err != nil {
		log.Printf("[STORE] forget hole pointer for %s: %v", sessionID, err)
	}
}

// Hold pins an open view while a live listener follows the session. It
// reports false when no view is open.
func (s *Store) Hold(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent := s.games[sessionID]
	if ent == nil {
		return false
	}
	ent.holds++
	return true
}

// Release drops a hold taken by Hold and closes the view with the last one
func (s *Store) Release(sessionID string) {
	s.mu.Lock()
	ent := s.games[sessionID]
	last := false
	if ent != nil && ent.holds > 0 {
		ent.holds--
		if last = ent.holds == 0; last {
			delete(s.games, sessionID)
		}
	}
	s.mu.Unlock()
	if last {
		s.closeEntry(sessionID, ent)
	}
}

// Sweep closes unheld views that have not been read for maxIdle and returns how many it closed
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	idle := make(map[string]*entry)
	for id, ent := range s.games {
		if ent.holds == 0 && ent.lastUsed.Before(cutoff) {
			idle[id] = ent
			delete(s.games, id)
		}
	}
	s.mu.Unlock()

	for id, ent := range idle {
		s.closeEntry(id, ent)
	}
	if len(idle) > 0 {
		log.Printf("[STORE] closed %d idle session view(s)", len(idle))
	}
	return len(idle)
}

// RunSweeper calls Sweep every interval until ctx is done
func (s *Store) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(maxIdle)
		}
	}
}

// IsOpen reports whether a live view exists for the session
func (s *Store) IsOpen(sessionID string) bool {
	return s.get(sessionID) != nil
}
