package services

import (
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// AuthService issues tokens for players who have no account elsewhere
type AuthService struct {
	validator *ValidationHelper
}

func NewAuthService() *AuthService {
	return &AuthService{validator: NewValidationHelper()}
}

type GuestLoginRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=50"`
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

// GuestLogin hands out a signed token carrying a player id and display name
// @Summary Guest sign-in
// @Description Issue a token for a display name. Pass user_id to keep the same identity across devices.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.GuestLoginRequest true "Guest details"
// @Success 200 {object} object{token=string,user_id=string,name=string}
// @Failure 400 {object} services.ErrorResponse
// @Router /auth/guest [post]
func (s *AuthService) GuestLogin(w http.ResponseWriter, r *http.Request) {
	var req GuestLoginRequest
	if !s.validator.decodeBody(w, r, &req) {
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	token, err := generateJWT(userID, req.Name)
	if err != nil {
		log.Printf("[AUTH] Failed to sign token: %v", err)
		SendErrorResponse(w, "Failed to issue token", http.StatusInternalServerError, nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":   token,
		"user_id": userID,
		"name":    req.Name,
	})
}

func generateJWT(userID, name string) (string, error) {
	expiry := viper.GetInt("jwt.expiry_hours")
	if expiry <= 0 {
		expiry = 24
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"exp":     time.Now().Add(time.Duration(expiry) * time.Hour).Unix(),
	})

	return token.SignedString([]byte(viper.GetString("jwt.secret_key")))
}
