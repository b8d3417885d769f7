package handlers

import (
	"bytes"
	"encoding/base64"
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
	"github.com/sideputt/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInviteRouter(t *testing.T) (http.Handler, *models.Session) {
	t.Helper()
	gw := gateway.NewMemory()
	cfg := config.LoadGameConfig()
	eng := engine.New(gw, notify.NewMemory(), audit.NewLoggerWithOutput(func(string) {}), cfg)
	session, _, err := eng.CreateSession(t.Context(), models.Identity{UserID: "host", Name: "Host"}, engine.SessionParams{})
	require.NoError(t, err)

	handler := NewInviteHandler(services.NewInviteService(gw, nil, cfg))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := r.Header.Get("X-Test-User"); user != "" {
				r = r.WithContext(middleware.WithIdentity(r.Context(), models.Identity{UserID: user}))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/sessions/{sessionId}/invite/qr", handler.JoinQR)
	return r, session
}

func TestInviteHandler_JoinQR(t *testing.T) {
	router, session := newInviteRouter(t)
	get := func(path, user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if user != "" {
			req.Header.Set("X-Test-User", user)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}
	base := "/sessions/" + session.ID + "/invite/qr"

	t.Run("png", func(t *testing.T) {
		w := get(base, "host")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
	})

	t.Run("json", func(t *testing.T) {
		w := get(base+"?format=json", "host")
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, session.JoinCode, resp["join_code"])
		assert.Contains(t, resp["join_url"], session.JoinCode)
		img, err := base64.StdEncoding.DecodeString(resp["qr_image"])
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(base, "").Code)
	})

	t.Run("not a player", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, get(base, "stranger").Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/sessions/missing/invite/qr", "host").Code)
	})
}
