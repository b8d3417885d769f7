package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sideputt/backend/internal/audit"
	"github.com/sideputt/backend/internal/config"
	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/middleware"
	"github.com/sideputt/backend/internal/models"
	"github.com/sideputt/backend/internal/notify"
	"github.com/sideputt/backend/internal/store"
	"github.com/stretchr/testify/require"
)

const testUserHeader = "X-Test-User"

type harness struct {
	gw       *gateway.Memory
	notifier *notify.Memory
	engine   *engine.Engine
	store    *store.Store
	cfg      *config.GameConfig
	feed     *FeedService
	invites  *InviteService
	router   chi.Router
}

// withTestIdentity stands in for the JWT middleware
func withTestIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get(testUserHeader); userID != "" {
			r = r.WithContext(middleware.WithIdentity(r.Context(), models.Identity{UserID: userID, Name: "Player " + userID}))
		}
		next.ServeHTTP(w, r)
	})
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		gw:       gateway.NewMemory(),
		notifier: notify.NewMemory(),
		cfg:      config.LoadGameConfig(),
	}
	h.engine = engine.New(h.gw, h.notifier, audit.NewLoggerWithOutput(func(string) {}), h.cfg)
	h.store = store.New(h.engine, h.notifier, store.NewMemoryClientState())
	h.feed = NewFeedService(h.store, h.notifier)
	h.invites = NewInviteService(h.gw, nil, h.cfg)

	sessions := NewSessionService(h.engine, h.store)
	games := NewGameService(h.engine, h.store)

	r := chi.NewRouter()
	r.Use(withTestIdentity)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessions.CreateSession)
		r.Get("/", sessions.ListSessions)
		r.Post("/join", sessions.JoinSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", games.GetGame)
			r.Delete("/", sessions.DeleteSession)
			r.Put("/settings", sessions.UpdateSettings)
			r.Post("/end", sessions.EndSession)
			r.Post("/holes/{hole}/putts", games.SubmitPutts)
			r.Put("/current-hole", games.SetCurrentHole)
			r.Post("/chip", games.ResolveChip)
			r.Get("/payouts", games.GetPayouts)
			r.Get("/players/{playerId}/putts", games.GetPlayerPutts)
			r.Get("/results", games.GetResults)
			r.Get("/ws", h.feed.Connect)
		})
	})
	h.router = r
	return h
}

func (h *harness) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type seated struct {
	Session models.Session `json:"session"`
	Player  models.Player  `json:"player"`
	Created bool           `json:"created"`
}

// startGame creates a game hosted by u1 with u2 seated
func (h *harness) startGame(t *testing.T) (session models.Session, host, guest models.Player) {
	t.Helper()
	w := h.do(t, http.MethodPost, "/sessions", "u1", map[string]any{"name": "Saturday"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[seated](t, w)

	w = h.do(t, http.MethodPost, "/sessions/join", "u2", map[string]any{"join_code": created.Session.JoinCode})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	joined := decode[seated](t, w)
	return created.Session, created.Player, joined.Player
}

func putts(entries ...any) map[string]any {
	list := make([]map[string]any, 0, len(entries)/2)
	for i := 0; i+1 < len(entries); i += 2 {
		list = append(list, map[string]any{"player_id": entries[i], "num_putts": entries[i+1]})
	}
	return map[string]any{"putts": list}
}

