package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_GuestLogin(t *testing.T) {
	viper.Set("jwt.secret_key", "guest-secret")
	defer viper.Set("jwt.secret_key", "")
	svc := NewAuthService()

	login := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		svc.GuestLogin(w, httptest.NewRequest(http.MethodPost, "/auth/guest", strings.NewReader(body)))
		return w
	}

	t.Run("new guest", func(t *testing.T) {
		w := login(`{"name":"Alice"}`)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[map[string]string](t, w)
		assert.NotEmpty(t, resp["user_id"])

		token, err := jwt.Parse(resp["token"], func(*jwt.Token) (interface{}, error) {
			return []byte("guest-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, resp["user_id"], claims["user_id"])
		assert.Equal(t, "Alice", claims["name"])
	})

	t.Run("returning guest keeps the id", func(t *testing.T) {
		id := "6f1c2b1e-8f7a-4d4f-9b35-1d1f2f3a4b5c"
		w := login(`{"name":"Alice","user_id":"` + id + `"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, decode[map[string]string](t, w)["user_id"])
	})

	t.Run("name required", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, login(`{}`).Code)
	})

	t.Run("user id must be a uuid", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, login(`{"name":"Bob","user_id":"42"}`).Code)
	})
}
