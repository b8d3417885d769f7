package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Schema is applied in order at startup. Every statement is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		game_type TEXT NOT NULL DEFAULT 'three-putt',
		buy_in_amount BIGINT NOT NULL DEFAULT 0,
		three_putt_value BIGINT NOT NULL DEFAULT 0,
		three_putt_chip_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		three_putt_chip_value BIGINT,
		deal_method TEXT NOT NULL DEFAULT 'private',
		creator_id TEXT NOT NULL,
		join_code TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS sessions_join_code_idx ON sessions (join_code)`,

	`CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		is_creator BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS players_session_user_idx ON players (session_id, user_id)`,

	`CREATE TABLE IF NOT EXISTS holes (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		number INTEGER NOT NULL CHECK (number BETWEEN 1 AND 18)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS holes_session_number_idx ON holes (session_id, number)`,

	`CREATE TABLE IF NOT EXISTS putts (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		player_id TEXT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		hole_id TEXT NOT NULL REFERENCES holes(id) ON DELETE CASCADE,
		num_putts INTEGER CHECK (num_putts >= 0)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS putts_session_player_hole_idx ON putts (session_id, player_id, hole_id)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		player_id TEXT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		hole_id TEXT NOT NULL REFERENCES holes(id) ON DELETE CASCADE,
		suit TEXT NOT NULL,
		rank TEXT NOT NULL,
		is_hidden BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS cards_session_card_idx ON cards (session_id, suit, rank)`,
	`CREATE INDEX IF NOT EXISTS cards_session_player_hole_idx ON cards (session_id, player_id, hole_id)`,

	`CREATE TABLE IF NOT EXISTS chip_events (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		player_id TEXT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		hole_number INTEGER NOT NULL CHECK (hole_number BETWEEN 1 AND 18),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS chip_events_session_hole_idx ON chip_events (session_id, hole_number DESC)`,
}

// ApplySchema creates any missing tables and indexes in a single transaction
func ApplySchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range Schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	log.Printf("[DATABASE] schema applied (%d statements)", len(Schema))
	return nil
}
