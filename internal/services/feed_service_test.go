package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialFeed(t *testing.T, ts *httptest.Server, sessionID, userID string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + sessionID + "/ws"
	header := http.Header{}
	header.Set(testUserHeader, userID)
	return websocket.DefaultDialer.Dial(wsURL, header)
}

func readFeed(t *testing.T, conn *websocket.Conn) FeedMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg FeedMessage
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func TestFeedService_RelaysChanges(t *testing.T) {
	h := newHarness(t)
	session, _, _ := h.startGame(t)
	ts := httptest.NewServer(h.router)
	t.Cleanup(ts.Close)

	conn, _, err := dialFeed(t, ts, session.ID, "u2")
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	defer conn.Close()

	hello := readFeed(t, conn)
	assert.Equal(t, "snapshot", hello.Type)
	assert.Equal(t, session.ID, hello.SessionID)
	assert.Equal(t, 1, hello.CurrentHole)
	assert.Equal(t, 1, h.feed.Listeners(session.ID))

	dealEnd := models.DealEnd
	_, err = h.engine.UpdateSettings(t.Context(), "u1", session.ID, engine.SettingsUpdate{DealMethod: &dealEnd})
	require.NoError(t, err)

	msg := readFeed(t, conn)
	assert.Equal(t, "change", msg.Type)
	assert.Equal(t, gateway.TableSessions, msg.Table)
	assert.Equal(t, session.ID, msg.SessionID)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool {
		return h.feed.Listeners(session.ID) == 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Eventually(t, func() bool {
		return h.notifier.Subscribers(gateway.TableSessions, session.ID) == 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.False(t, h.store.IsOpen(session.ID), "last listener closes the view")
}

type countingSub struct{ closed int }

func (s *countingSub) Close() error {
	s.closed++
	return nil
}

func TestFeedHub_SetSub(t *testing.T) {
	t.Run("empty group closes the subscription", func(t *testing.T) {
		hub := newFeedHub()
		sub := &countingSub{}
		hub.setSub("s1", sub)
		assert.Equal(t, 1, sub.closed)
	})

	t.Run("newer subscription replaces and closes the older", func(t *testing.T) {
		hub := newFeedHub()
		hub.add("s1", &feedConn{})
		older, newer := &countingSub{}, &countingSub{}

		hub.setSub("s1", older)
		hub.setSub("s1", newer)
		assert.Equal(t, 1, older.closed)
		assert.Equal(t, 0, newer.closed)
		assert.Same(t, newer, hub.subs["s1"])
	})
}

func TestFeedService_RejectsStrangers(t *testing.T) {
	h := newHarness(t)
	session, _, _ := h.startGame(t)
	ts := httptest.NewServer(h.router)
	t.Cleanup(ts.Close)

	conn, resp, err := dialFeed(t, ts, session.ID, "stranger")
	if conn != nil {
		conn.Close()
	}
	require.Error(t, err)
	if resp == nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, h.feed.Listeners(session.ID))
}
