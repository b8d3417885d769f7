package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/store"
)

// APIError is a structured error with the HTTP status it maps to
type APIError struct {
	HTTP    int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: %v", e.Code, e.Message)
}

var (
	ErrUnauthorized = &APIError{
		HTTP:    http.StatusUnauthorized,
		Code:    "Unauthorized",
		Message: "Unauthorized",
	}
	ErrNotMember = &APIError{
		HTTP:    http.StatusForbidden,
		Code:    "NotMember",
		Message: "you are not playing in this game",
	}
	ErrSessionNotEnded = &APIError{
		HTTP:    http.StatusConflict,
		Code:    "SessionNotEnded",
		Message: "results are available once the host ends the game",
	}
	ErrBadHole = &APIError{
		HTTP:    http.StatusBadRequest,
		Code:    "InvalidHole",
		Message: "hole must be a number between 1 and 18",
	}
)

// toAPIError maps engine and gateway errors onto HTTP responses
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case gateway.IsNotFound(err), errors.Is(err, store.ErrNotOpen):
		return &APIError{HTTP: http.StatusNotFound, Code: "NotFound", Message: "game not found"}
	case errors.Is(err, engine.ErrHoleNotFound):
		return &APIError{HTTP: http.StatusNotFound, Code: "HoleNotFound", Message: err.Error()}
	case errors.Is(err, engine.ErrNotHost):
		return &APIError{HTTP: http.StatusForbidden, Code: "NotHost", Message: err.Error()}
	case errors.Is(err, engine.ErrSessionEnded):
		return &APIError{HTTP: http.StatusConflict, Code: "SessionEnded", Message: err.Error()}
	case errors.Is(err, engine.ErrNoTiePending), errors.Is(err, engine.ErrNotTieCandidate):
		return &APIError{HTTP: http.StatusConflict, Code: "ChipTie", Message: err.Error()}
	case errors.Is(err, engine.ErrJoinCodeExhausted):
		return &APIError{HTTP: http.StatusServiceUnavailable, Code: "JoinCodeExhausted", Message: err.Error()}
	case engine.IsClientError(err):
		return &APIError{HTTP: http.StatusBadRequest, Code: "InvalidRequest", Message: err.Error()}
	case errors.Is(err, engine.ErrInvariant):
		return &APIError{HTTP: http.StatusConflict, Code: "InvariantViolation", Message: err.Error()}
	}
	return &APIError{HTTP: http.StatusInternalServerError, Code: "Internal", Message: "internal error"}
}

// SendAPIError writes err as an ErrorResponse with its mapped status
func SendAPIError(w http.ResponseWriter, err error) {
	sendError(w, err)
}

func sendError(w http.ResponseWriter, err error) {
	apiErr := toAPIError(err)
	if apiErr.HTTP >= http.StatusInternalServerError {
		log.Printf("[API] %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTP)
	json.NewEncoder(w).Encode(ErrorResponse{Error: apiErr.Message, Code: apiErr.Code})
}
