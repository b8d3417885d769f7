package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySchema(t *testing.T) {
	t.Run("applies every statement", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		for _, stmt := range Schema {
			mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()

		assert.NoError(t, ApplySchema(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(Schema[0]).WillReturnError(errors.New("permission denied"))
		mock.ExpectRollback()

		err = ApplySchema(context.Background(), db)
		assert.ErrorContains(t, err, "schema statement 0")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSchemaUniqueIndexes(t *testing.T) {
	joined := ""
	for _, stmt := range Schema {
		joined += stmt + "\n"
	}
	for _, idx := range []string{
		"ON sessions (join_code)",
		"ON players (session_id, user_id)",
		"ON holes (session_id, number)",
		"ON putts (session_id, player_id, hole_id)",
		"ON cards (session_id, suit, rank)",
	} {
		assert.Contains(t, joined, idx)
	}
}
