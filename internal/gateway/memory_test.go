package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/sideputt/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(t *testing.T, gw *Memory, id, code string) {
	t.Helper()
	require.NoError(t, gw.CreateSession(context.Background(), &models.Session{
		ID: id, JoinCode: code, Status: models.SessionStatusActive, CreatedAt: time.Now(),
	}))
}

func TestMemory_UniqueIndexes(t *testing.T) {
	ctx := context.Background()
	gw := NewMemory()
	seedSession(t, gw, "s1", "AAAA22")

	t.Run("join code unique", func(t *testing.T) {
		err := gw.CreateSession(ctx, &models.Session{ID: "s2", JoinCode: "AAAA22"})
		assert.True(t, IsDuplicate(err))
	})

	t.Run("player unique per user", func(t *testing.T) {
		require.NoError(t, gw.InsertPlayer(ctx, &models.Player{ID: "p1", SessionID: "s1", UserID: "u1"}))
		err := gw.InsertPlayer(ctx, &models.Player{ID: "p2", SessionID: "s1", UserID: "u1"})
		assert.True(t, IsDuplicate(err))
	})

	t.Run("holes skip existing numbers", func(t *testing.T) {
		require.NoError(t, gw.InsertHoles(ctx, []models.Hole{{ID: "h1", SessionID: "s1", Number: 1}}))
		require.NoError(t, gw.InsertHoles(ctx, []models.Hole{{ID: "h1b", SessionID: "s1", Number: 1}}))
		holes, err := gw.ListHoles(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, holes, 1)
		assert.Equal(t, "h1", holes[0].ID)
	})

	t.Run("cards are all or nothing", func(t *testing.T) {
		require.NoError(t, gw.InsertCards(ctx, []models.CardAllocation{
			{ID: "c1", SessionID: "s1", PlayerID: "p1", HoleID: "h1", Suit: "hearts", Rank: "A"},
		}))
		err := gw.InsertCards(ctx, []models.CardAllocation{
			{ID: "c2", SessionID: "s1", PlayerID: "p1", HoleID: "h1", Suit: "clubs", Rank: "2"},
			{ID: "c3", SessionID: "s1", PlayerID: "p1", HoleID: "h1", Suit: "hearts", Rank: "A"},
		})
		assert.True(t, IsDuplicate(err))

		cards, err := gw.ListCards(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})
}

func TestMemory_PuttsAndChip(t *testing.T) {
	ctx := context.Background()
	gw := NewMemory()
	seedSession(t, gw, "s1", "BBBB22")

	require.NoError(t, gw.InsertPutts(ctx, []models.Putt{{ID: "pt1", SessionID: "s1", PlayerID: "p1", HoleID: "h1"}}))
	require.NoError(t, gw.InsertPutts(ctx, []models.Putt{{ID: "pt2", SessionID: "s1", PlayerID: "p1", HoleID: "h1"}}))
	require.NoError(t, gw.UpsertPutt(ctx, &models.Putt{ID: "pt3", SessionID: "s1", PlayerID: "p1", HoleID: "h1", NumPutts: models.IntPtr(3)}))

	putts, err := gw.ListPutts(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, putts, 1)
	assert.Equal(t, "pt1", putts[0].ID)
	assert.Equal(t, 3, *putts[0].NumPutts)

	_, err = gw.LatestChipEvent(ctx, "s1")
	assert.True(t, IsNotFound(err))

	base := time.Now()
	require.NoError(t, gw.InsertChipEvent(ctx, &models.ChipEvent{ID: "e1", SessionID: "s1", PlayerID: "p1", HoleNumber: 7, CreatedAt: base}))
	require.NoError(t, gw.InsertChipEvent(ctx, &models.ChipEvent{ID: "e2", SessionID: "s1", PlayerID: "p2", HoleNumber: 3, CreatedAt: base.Add(time.Second)}))
	require.NoError(t, gw.InsertChipEvent(ctx, &models.ChipEvent{ID: "e3", SessionID: "s1", PlayerID: "p3", HoleNumber: 7, CreatedAt: base.Add(2 * time.Second)}))

	latest, err := gw.LatestChipEvent(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "e3", latest.ID)

	events, err := gw.ListChipEvents(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "e2", events[0].ID)
	assert.Equal(t, "e3", events[2].ID)
}

func TestMemory_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	gw := NewMemory()
	seedSession(t, gw, "s1", "CCCC22")
	seedSession(t, gw, "s2", "DDDD22")

	require.NoError(t, gw.InsertPlayer(ctx, &models.Player{ID: "p1", SessionID: "s1", UserID: "u1"}))
	require.NoError(t, gw.InsertPlayer(ctx, &models.Player{ID: "p2", SessionID: "s2", UserID: "u1"}))
	require.NoError(t, gw.InsertHoles(ctx, []models.Hole{{ID: "h1", SessionID: "s1", Number: 1}}))
	require.NoError(t, gw.InsertCards(ctx, []models.CardAllocation{{ID: "c1", SessionID: "s1", Suit: "hearts", Rank: "A"}}))

	require.NoError(t, gw.DeleteSession(ctx, "s1"))

	players, _ := gw.ListPlayers(ctx, "s1")
	holes, _ := gw.ListHoles(ctx, "s1")
	cards, _ := gw.ListCards(ctx, "s1")
	assert.Empty(t, players)
	assert.Empty(t, holes)
	assert.Empty(t, cards)

	others, _ := gw.ListPlayers(ctx, "s2")
	assert.Len(t, others, 1)

	sessions, err := gw.ListSessionsForUser(ctx, "u1", models.SessionStatusActive)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s2", sessions[0].ID)

	assert.True(t, IsNotFound(gw.DeleteSession(ctx, "s1")))
}
