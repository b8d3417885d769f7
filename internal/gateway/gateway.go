// Package gateway is the persistence boundary for game data. Every write is
// safe to repeat: unique indexes back the invariants and duplicate inserts
// surface as ErrDuplicate, which callers treat as success.
package gateway

import (
	"context"
	"errors"

	"github.com/sideputt/backend/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert collides with a unique index
	ErrDuplicate = errors.New("duplicate insert")
	// ErrGateway wraps any other storage failure
	ErrGateway = errors.New("gateway failure")
)

// Collection names, shared with change notifications
const (
	TableSessions   = "sessions"
	TablePlayers    = "players"
	TableHoles      = "holes"
	TablePutts      = "putts"
	TableCards      = "cards"
	TableChipEvents = "chip_events"
)

// Tables lists every collection scoped to a session
var Tables = []string{TableSessions, TablePlayers, TableHoles, TablePutts, TableCards, TableChipEvents}

type Gateway interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	GetSessionByJoinCode(ctx context.Context, code string) (*models.Session, error)
	UpdateSession(ctx context.Context, s *models.Session) error
	DeleteSession(ctx context.Context, id string) error
	ListSessionsForUser(ctx context.Context, userID, status string) ([]models.Session, error)

	InsertPlayer(ctx context.Context, p *models.Player) error
	GetPlayerByUser(ctx context.Context, sessionID, userID string) (*models.Player, error)
	ListPlayers(ctx context.Context, sessionID string) ([]models.Player, error)
	UpdatePlayerName(ctx context.Context, playerID, name string) error

	// InsertHoles skips rows whose (session, number) already exists
	InsertHoles(ctx context.Context, holes []models.Hole) error
	ListHoles(ctx context.Context, sessionID string) ([]models.Hole, error)

	// InsertPutts skips rows whose (session, player, hole) already exists
	InsertPutts(ctx context.Context, putts []models.Putt) error
	UpsertPutt(ctx context.Context, p *models.Putt) error
	ListPutts(ctx context.Context, sessionID string) ([]models.Putt, error)

	// InsertCards is all-or-nothing; a (suit, rank) collision yields ErrDuplicate
	InsertCards(ctx context.Context, cards []models.CardAllocation) error
	ListCards(ctx context.Context, sessionID string) ([]models.CardAllocation, error)
	DeleteCards(ctx context.Context, sessionID string, ids []string) error

	InsertChipEvent(ctx context.Context, e *models.ChipEvent) error
	// LatestChipEvent returns ErrNotFound when the chip has never moved
	LatestChipEvent(ctx context.Context, sessionID string) (*models.ChipEvent, error)
	ListChipEvents(ctx context.Context, sessionID string) ([]models.ChipEvent, error)
}

// IsNotFound reports whether err is a missing-row error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is a benign duplicate insert
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
