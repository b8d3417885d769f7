package services

import (
	"bytes"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteService_CreateInvite(t *testing.T) {
	h := newHarness(t)
	session, _, _ := h.startGame(t)
	ctx := t.Context()

	t.Run("renders without a cache", func(t *testing.T) {
		invite, err := h.invites.CreateInvite(ctx, "u2", session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.JoinCode, invite.JoinCode)
		assert.Equal(t, h.invites.JoinURL(session.JoinCode), invite.JoinURL)
		assert.True(t, bytes.HasPrefix(invite.PNG, []byte("\x89PNG")))
	})

	t.Run("strangers cannot share", func(t *testing.T) {
		_, err := h.invites.CreateInvite(ctx, "stranger", session.ID)
		assert.ErrorIs(t, err, ErrNotMember)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := h.invites.CreateInvite(ctx, "u1", "missing")
		assert.True(t, gateway.IsNotFound(err))
	})

	t.Run("cache hit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		svc := NewInviteService(h.gw, client, h.cfg)
		mock.ExpectGet(svc.cacheKey(session.JoinCode)).SetVal("cached-png")

		invite, err := svc.CreateInvite(ctx, "u1", session.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("cached-png"), invite.PNG)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss stores the render", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		svc := NewInviteService(h.gw, client, h.cfg)
		key := svc.cacheKey(session.JoinCode)
		expected, err := qrcode.Encode(svc.JoinURL(session.JoinCode), qrcode.Medium, 256)
		require.NoError(t, err)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, expected, h.cfg.InviteCacheTTL).SetVal("OK")

		invite, err := svc.CreateInvite(ctx, "u1", session.ID)
		require.NoError(t, err)
		assert.Equal(t, expected, invite.PNG)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
