package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
	"github.com/sideputt/backend/internal/models"
)

const sessionColumns = `id, name, status, game_type, buy_in_amount, three_putt_value,
	three_putt_chip_enabled, three_putt_chip_value, deal_method, creator_id, join_code, created_at`

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// wrap maps driver errors onto the gateway taxonomy
func wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	default:
		log.Printf("[GATEWAY] %s failed: %v", op, err)
		return fmt.Errorf("%s: %w: %w", op, ErrGateway, err)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*models.Session, error) {
	var s models.Session
	var chipValue sql.NullInt64
	var dealMethod string
	if err := row.Scan(&s.ID, &s.Name, &s.Status, &s.GameType, &s.BuyInAmount, &s.ThreePuttValue,
		&s.ThreePuttChipEnabled, &chipValue, &dealMethod, &s.CreatorID, &s.JoinCode, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.DealMethod = models.DealMethod(dealMethod)
	if chipValue.Valid {
		s.ThreePuttChipValue = models.Int64Ptr(chipValue.Int64)
	}
	return &s, nil
}

func (p *Postgres) CreateSession(ctx context.Context, s *models.Session) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, s.ID, s.Name, s.Status, s.GameType, s.BuyInAmount, s.ThreePuttValue,
		s.ThreePuttChipEnabled, s.ThreePuttChipValue, string(s.DealMethod), s.CreatorID, s.JoinCode, s.CreatedAt)
	return wrap("create session", err)
}

func (p *Postgres) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s, err := scanSession(p.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get session", err)
	}
	return s, nil
}

func (p *Postgres) GetSessionByJoinCode(ctx context.Context, code string) (*models.Session, error) {
	s, err := scanSession(p.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE join_code = $1`, code))
	if err != nil {
		return nil, wrap("get session by join code", err)
	}
	return s, nil
}

func (p *Postgres) UpdateSession(ctx context.Context, s *models.Session) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE sessions
		SET name = $2, status = $3, buy_in_amount = $4, three_putt_value = $5,
			three_putt_chip_enabled = $6, three_putt_chip_value = $7, deal_method = $8
		WHERE id = $1
	`, s.ID, s.Name, s.Status, s.BuyInAmount, s.ThreePuttValue,
		s.ThreePuttChipEnabled, s.ThreePuttChipValue, string(s.DealMethod))
	if err != nil {
		return wrap("update session", err)
	}
	return requireRow("update session", res)
}

// DeleteSession removes the session; child rows go with it via ON DELETE CASCADE
func (p *Postgres) DeleteSession(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return wrap("delete session", err)
	}
	return requireRow("delete session", res)
}

func requireRow(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (p *Postgres) ListSessionsForUser(ctx context.Context, userID, status string) ([]models.Session, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.status, s.game_type, s.buy_in_amount, s.three_putt_value,
			s.three_putt_chip_enabled, s.three_putt_chip_value, s.deal_method, s.creator_id, s.join_code, s.created_at
		FROM sessions s
		JOIN players p ON p.session_id = s.id
		WHERE p.user_id = $1 AND s.status = $2
		ORDER BY s.created_at DESC
	`, userID, status)
	if err != nil {
		return nil, wrap("list sessions", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, wrap("scan session", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, wrap("list sessions", rows.Err())
}

func (p *Postgres) InsertPlayer(ctx context.Context, pl *models.Player) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO players (id, session_id, user_id, name, is_creator, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, pl.ID, pl.SessionID, pl.UserID, pl.Name, pl.IsCreator, pl.CreatedAt)
	return wrap("insert player", err)
}

func (p *Postgres) GetPlayerByUser(ctx context.Context, sessionID, userID string) (*models.Player, error) {
	var pl models.Player
	err := p.db.QueryRowContext(ctx, `
		SELECT id, session_id, user_id, name, is_creator, created_at
		FROM players WHERE session_id = $1 AND user_id = $2
	`, sessionID, userID).Scan(&pl.ID, &pl.SessionID, &pl.UserID, &pl.Name, &pl.IsCreator, &pl.CreatedAt)
	if err != nil {
		return nil, wrap("get player", err)
	}
	return &pl, nil
}

// ListPlayers returns the host first, then players in join order
func (p *Postgres) ListPlayers(ctx context.Context, sessionID string) ([]models.Player, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, session_id, user_id, name, is_creator, created_at
		FROM players WHERE session_id = $1
		ORDER BY is_creator DESC, created_at, id
	`, sessionID)
	if err != nil {
		return nil, wrap("list players", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var pl models.Player
		if err := rows.Scan(&pl.ID, &pl.SessionID, &pl.UserID, &pl.Name, &pl.IsCreator, &pl.CreatedAt); err != nil {
			return nil, wrap("scan player", err)
		}
		players = append(players, pl)
	}
	return players, wrap("list players", rows.Err())
}

func (p *Postgres) UpdatePlayerName(ctx context.Context, playerID, name string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE players SET name = $2 WHERE id = $1`, playerID, name)
	if err != nil {
		return wrap("update player name", err)
	}
	return requireRow("update player name", res)
}

func (p *Postgres) InsertHoles(ctx context.Context, holes []models.Hole) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("insert holes", err)
	}
	defer tx.Rollback()

	for _, h := range holes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO holes (id, session_id, number) VALUES ($1, $2, $3)
			ON CONFLICT (session_id, number) DO NOTHING
		`, h.ID, h.SessionID, h.Number); err != nil {
			return wrap("insert holes", err)
		}
	}
	return wrap("insert holes", tx.Commit())
}

func (p *Postgres) ListHoles(ctx context.Context, sessionID string) ([]models.Hole, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, session_id, number FROM holes WHERE session_id = $1 ORDER BY number`, sessionID)
	if err != nil {
		return nil, wrap("list holes", err)
	}
	defer rows.Close()

	var holes []models.Hole
	for rows.Next() {
		var h models.Hole
		if err := rows.Scan(&h.ID, &h.SessionID, &h.Number); err != nil {
			return nil, wrap("scan hole", err)
		}
		holes = append(holes, h)
	}
	return holes, wrap("list holes", rows.Err())
}

func (p *Postgres) InsertPutts(ctx context.Context, putts []models.Putt) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("insert putts", err)
	}
	defer tx.Rollback()

	for _, pt := range putts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO putts (id, session_id, player_id, hole_id, num_putts) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (session_id, player_id, hole_id) DO NOTHING
		`, pt.ID, pt.SessionID, pt.PlayerID, pt.HoleID, pt.NumPutts); err != nil {
			return wrap("insert putts", err)
		}
	}
	return wrap("insert putts", tx.Commit())
}

func (p *Postgres) UpsertPutt(ctx context.Context, pt *models.Putt) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO putts (id, session_id, player_id, hole_id, num_putts) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, player_id, hole_id) DO UPDATE SET num_putts = EXCLUDED.num_putts
	`, pt.ID, pt.SessionID, pt.PlayerID, pt.HoleID, pt.NumPutts)
	return wrap("upsert putt", err)
}

func (p *Postgres) ListPutts(ctx context.Context, sessionID string) ([]models.Putt, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, session_id, player_id, hole_id, num_putts FROM putts WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, wrap("list putts", err)
	}
	defer rows.Close()

	var putts []models.Putt
	for rows.Next() {
		var pt models.Putt
		var num sql.NullInt64
		if err := rows.Scan(&pt.ID, &pt.SessionID, &pt.PlayerID, &pt.HoleID, &num); err != nil {
			return nil, wrap("scan putt", err)
		}
		if num.Valid {
			pt.NumPutts = models.IntPtr(int(num.Int64))
		}
		putts = append(putts, pt)
	}
	return putts, wrap("list putts", rows.Err())
}

func (p *Postgres) InsertCards(ctx context.Context, cards []models.CardAllocation) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("insert cards", err)
	}
	defer tx.Rollback()

	for _, c := range cards {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cards (id, session_id, player_id, hole_id, suit, rank, is_hidden, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, c.ID, c.SessionID, c.PlayerID, c.HoleID, c.Suit, c.Rank, c.IsHidden, c.CreatedAt); err != nil {
			return wrap("insert cards", err)
		}
	}
	return wrap("insert cards", tx.Commit())
}

func (p *Postgres) ListCards(ctx context.Context, sessionID string) ([]models.CardAllocation, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, session_id, player_id, hole_id, suit, rank, is_hidden, created_at
		FROM cards WHERE session_id = $1
		ORDER BY created_at, id
	`, sessionID)
	if err != nil {
		return nil, wrap("list cards", err)
	}
	defer rows.Close()

	var cards []models.CardAllocation
	for rows.Next() {
		var c models.CardAllocation
		if err := rows.Scan(&c.ID, &c.SessionID, &c.PlayerID, &c.HoleID, &c.Suit, &c.Rank, &c.IsHidden, &c.CreatedAt); err != nil {
			return nil, wrap("scan card", err)
		}
		cards = append(cards, c)
	}
	return cards, wrap("list cards", rows.Err())
}

func (p *Postgres) DeleteCards(ctx context.Context, sessionID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM cards WHERE session_id = $1 AND id = ANY($2)`, sessionID, pq.Array(ids))
	return wrap("delete cards", err)
}

func (p *Postgres) InsertChipEvent(ctx context.Context, e *models.ChipEvent) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO chip_events (id, session_id, player_id, hole_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.SessionID, e.PlayerID, e.HoleNumber, e.CreatedAt)
	return wrap("insert chip event", err)
}

func (p *Postgres) LatestChipEvent(ctx context.Context, sessionID string) (*models.ChipEvent, error) {
	var e models.ChipEvent
	err := p.db.QueryRowContext(ctx, `
		SELECT id, session_id, player_id, hole_number, created_at
		FROM chip_events WHERE session_id = $1
		ORDER BY hole_number DESC, created_at DESC
		LIMIT 1
	`, sessionID).Scan(&e.ID, &e.SessionID, &e.PlayerID, &e.HoleNumber, &e.CreatedAt)
	if err != nil {
		return nil, wrap("latest chip event", err)
	}
	return &e, nil
}

func (p *Postgres) ListChipEvents(ctx context.Context, sessionID string) ([]models.ChipEvent, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, session_id, player_id, hole_number, created_at
		FROM chip_events WHERE session_id = $1
		ORDER BY hole_number, created_at
	`, sessionID)
	if err != nil {
		return nil, wrap("list chip events", err)
	}
	defer rows.Close()

	var events []models.ChipEvent
	for rows.Next() {
		var e models.ChipEvent
		if err := rows.Scan(&e.ID, &e.SessionID, &e.PlayerID, &e.HoleNumber, &e.CreatedAt); err != nil {
			return nil, wrap("scan chip event", err)
		}
		events = append(events, e)
	}
	return events, wrap("list chip events", rows.Err())
}
