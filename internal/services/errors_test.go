package services

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("get session: %w", gateway.ErrNotFound), http.StatusNotFound, "NotFound"},
		{"closed view", store.ErrNotOpen, http.StatusNotFound, "NotFound"},
		{"missing hole", fmt.Errorf("submit: %w", engine.ErrHoleNotFound), http.StatusNotFound, "HoleNotFound"},
		{"not host", engine.ErrNotHost, http.StatusForbidden, "NotHost"},
		{"ended", engine.ErrSessionEnded, http.StatusConflict, "SessionEnded"},
		{"no tie", engine.ErrNoTiePending, http.StatusConflict, "ChipTie"},
		{"bad putts", fmt.Errorf("%w: 99", engine.ErrInvalidPutts), http.StatusBadRequest, "InvalidRequest"},
		{"card conflict", engine.ErrCardConflict, http.StatusConflict, "InvariantViolation"},
		{"typed", ErrNotMember, http.StatusForbidden, "NotMember"},
		{"gateway", fmt.Errorf("list: %w: %w", gateway.ErrGateway, errors.New("conn reset")), http.StatusInternalServerError, "Internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toAPIError(tt.err)
			assert.Equal(t, tt.status, got.HTTP)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestSendAPIError_HidesInternals(t *testing.T) {
	w := httptest.NewRecorder()
	SendAPIError(w, fmt.Errorf("list: %w: %w", gateway.ErrGateway, errors.New("password=hunter2")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Equal(t, "internal error", decode[ErrorResponse](t, w).Error)
}
