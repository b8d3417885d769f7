package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_Publish(t *testing.T) {
	client, mock := redismock.NewClientMock()
	n := NewRedis(client, "sideputt")
	ctx := context.Background()

	t.Run("channel naming", func(t *testing.T) {
		assert.Equal(t, "sideputt:changes:cards:s1", n.Channel("cards", "s1"))
	})

	t.Run("publishes invalidation payload", func(t *testing.T) {
		mock.ExpectPublish("sideputt:changes:putts:s1", `{"table":"putts","session_id":"s1"}`).SetVal(2)

		assert.NoError(t, n.Publish(ctx, "putts", "s1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("publish failure", func(t *testing.T) {
		mock.ExpectPublish("sideputt:changes:cards:s1", `{"table":"cards","session_id":"s1"}`).SetErr(errors.New("down"))

		assert.Error(t, n.Publish(ctx, "cards", "s1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	n := NewMemory()

	var got []Event
	sub, err := n.Subscribe(ctx, "s1", []string{"putts", "cards"}, func(ev Event) {
		got = append(got, ev)
	})
	require.NoError(t, err)

	require.NoError(t, n.Publish(ctx, "putts", "s1"))
	require.NoError(t, n.Publish(ctx, "cards", "s2"))
	require.NoError(t, n.Publish(ctx, "chip_events", "s1"))
	require.NoError(t, n.Publish(ctx, "cards", "s1"))

	assert.Equal(t, []Event{{Table: "putts", SessionID: "s1"}, {Table: "cards", SessionID: "s1"}}, got)
	assert.Equal(t, 1, n.Subscribers("cards", "s1"))

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	assert.Equal(t, 0, n.Subscribers("cards", "s1"))

	require.NoError(t, n.Publish(ctx, "putts", "s1"))
	assert.Len(t, got, 2)
}
