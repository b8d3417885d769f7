package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/middleware"
	"github.com/sideputt/backend/internal/notify"
	"github.com/sideputt/backend/internal/store"
)

// FeedMessage is pushed to clients. Changes carry no row data; clients refetch the game.
type FeedMessage struct {
	Type        string `json:"type"`
	SessionID   string `json:"session_id"`
	Table       string `json:"table,omitempty"`
	CurrentHole int    `json:"current_hole,omitempty"`
}

type feedConn struct {
	ws   *websocket.Conn
	mu   sync.Mutex
	held bool // holds the store view open
}

func (c *feedConn) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// feedHub groups connections per session and holds one notifier subscription per group
type feedHub struct {
	mu     sync.Mutex
	groups map[string]map[*feedConn]struct{}
	subs   map[string]notify.Subscription

	release func(sessionID string)
}

func newFeedHub() *feedHub {
	return &feedHub{
		groups: make(map[string]map[*feedConn]struct{}),
		subs:   make(map[string]notify.Subscription),
	}
}

// add reports whether conn is the first in its group
func (h *feedHub) add(sessionID string, conn *feedConn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		group = make(map[*feedConn]struct{})
		h.groups[sessionID] = group
	}
	group[conn] = struct{}{}
	return len(group) == 1
}

// setSub stores the group's subscription. A subscription that lost a race,
// either to an empty group or to a newer one, is closed.
func (h *feedHub) setSub(sessionID string, sub notify.Subscription) {
	h.mu.Lock()
	stale := sub
	if _, live := h.groups[sessionID]; live {
		stale = h.subs[sessionID]
		h.subs[sessionID] = sub
	}
	h.mu.Unlock()

	if stale != nil {
		if err := stale.Close(); err != nil {
			log.Printf("[WS] unsubscribe %s: %v", sessionID, err)
		}
	}
}

func (h *feedHub) remove(sessionID string, conn *feedConn) {
	h.mu.Lock()
	var sub notify.Subscription
	present := false
	if group := h.groups[sessionID]; group != nil {
		_, present = group[conn]
		delete(group, conn)
		if len(group) == 0 {
			delete(h.groups, sessionID)
			sub = h.subs[sessionID]
			delete(h.subs, sessionID)
		}
	}
	h.mu.Unlock()

	_ = conn.ws.Close()
	if sub != nil {
		if err := sub.Close(); err != nil {
			log.Printf("[WS] unsubscribe %s: %v", sessionID, err)
		}
	}
	if present && conn.held && h.release != nil {
		h.release(sessionID)
	}
}

func (h *feedHub) broadcast(sessionID string, payload any) {
	h.mu.Lock()
	group := h.groups[sessionID]
	conns := make([]*feedConn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.send(data); err != nil {
			h.remove(sessionID, conn)
		}
	}
}

func (h *feedHub) size(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[sessionID])
}

// FeedService relays change notifications to websocket clients
type FeedService struct {
	store    *store.Store
	notifier notify.Notifier
	hub      *feedHub
	upgrader websocket.Upgrader
}

func NewFeedService(st *store.Store, notifier notify.Notifier) *FeedService {
	hub := newFeedHub()
	hub.release = st.Release
	return &FeedService{
		store:    st,
		notifier: notifier,
		hub:      hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Connect upgrades to a websocket that receives a message whenever the game changes
// @Summary Game change feed
// @Description WebSocket. Pass the token as access_token when headers cannot be set.
// @Tags Game
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 101
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/ws [get]
func (f *FeedService) Connect(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		sendError(w, ErrUnauthorized)
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	state, err := f.store.Snapshot(r.Context(), sessionID)
	if err != nil {
		sendError(w, err)
		return
	}
	if state.PlayerByUser(identity.UserID) == nil {
		sendError(w, ErrNotMember)
		return
	}

	ws, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn := &feedConn{ws: ws, held: f.store.Hold(sessionID)}
	log.Printf("[WS] connected session=%s user=%s remote=%s", sessionID, identity.UserID, r.RemoteAddr)

	if first := f.hub.add(sessionID, conn); first && f.notifier != nil {
		sub, err := f.notifier.Subscribe(context.Background(), sessionID, gateway.Tables, func(ev notify.Event) {
			f.hub.broadcast(ev.SessionID, FeedMessage{Type: "change", SessionID: ev.SessionID, Table: ev.Table})
		})
		if err != nil {
			log.Printf("[WS] subscribe %s: %v", sessionID, err)
		} else {
			f.hub.setSub(sessionID, sub)
		}
	}

	hello, _ := json.Marshal(FeedMessage{Type: "snapshot", SessionID: sessionID, CurrentHole: state.CurrentHole})
	if err := conn.send(hello); err != nil {
		f.hub.remove(sessionID, conn)
		return
	}
	go f.read(sessionID, conn)
}

func (f *FeedService) read(sessionID string, conn *feedConn) {
	defer f.hub.remove(sessionID, conn)
	for {
		if _, _, err := conn.ws.ReadMessage(); err != nil {
			log.Printf("[WS] disconnected session=%s error=%v", sessionID, err)
			return
		}
	}
}

// Listeners reports how many clients follow a session
func (f *FeedService) Listeners(sessionID string) int {
	return f.hub.size(sessionID)
}
