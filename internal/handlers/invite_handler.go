package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sideputt/backend/internal/middleware"
	"github.com/sideputt/backend/internal/services"
)

type InviteHandler struct {
	service *services.InviteService
}

func NewInviteHandler(service *services.InviteService) *InviteHandler {
	return &InviteHandler{service: service}
}

// JoinQR returns the QR code friends scan to join the game
// @Summary Join QR code
// @Description PNG by default; format=json returns the code, link and a base64 image.
// @Tags Invite
// @Produce png
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param format query string false "png or json"
// @Success 200 {object} object{join_code=string,join_url=string,qr_image=string}
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /sessions/{sessionId}/invite/qr [get]
func (h *InviteHandler) JoinQR(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	invite, err := h.service.CreateInvite(r.Context(), identity.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		services.SendAPIError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"join_code": invite.JoinCode,
			"join_url":  invite.JoinURL,
			"qr_image":  base64.StdEncoding.EncodeToString(invite.PNG),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(invite.PNG)
}
