package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/sideputt/backend/internal/config"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/skip2/go-qrcode"
)

// Invite is what a player shares so friends can join
type Invite struct {
	JoinCode string `json:"join_code"`
	JoinURL  string `json:"join_url"`
	PNG      []byte `json:"-"`
}

// InviteService renders join QR codes. Rendered PNGs are cached in redis when available.
type InviteService struct {
	gw    gateway.Gateway
	redis *redis.Client
	cfg   *config.GameConfig
}

func NewInviteService(gw gateway.Gateway, redis *redis.Client, cfg *config.GameConfig) *InviteService {
	return &InviteService{
		gw:    gw,
		redis: redis,
		cfg:   cfg,
	}
}

func (s *InviteService) cacheKey(code string) string {
	return fmt.Sprintf("%s:invite:%s", s.cfg.ChannelPrefix, code)
}

// JoinURL is the link encoded in the QR code
func (s *InviteService) JoinURL(code string) string {
	return strings.TrimRight(s.cfg.JoinURLBase, "/") + "/" + code
}

// CreateInvite returns the session's join code and QR image. Only players of the session may share it.
func (s *InviteService) CreateInvite(ctx context.Context, userID, sessionID string) (*Invite, error) {
	session, err := s.gw.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.gw.GetPlayerByUser(ctx, sessionID, userID); err != nil {
		if gateway.IsNotFound(err) {
			return nil, ErrNotMember
		}
		return nil, err
	}

	invite := &Invite{
		JoinCode: session.JoinCode,
		JoinURL:  s.JoinURL(session.JoinCode),
	}

	key := s.cacheKey(session.JoinCode)
	if s.redis != nil {
		data, err := s.redis.Get(ctx, key).Bytes()
		if err == nil {
			invite.PNG = data
			return invite, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("[INVITE] cache read %s: %v", key, err)
		}
	}

	png, err := qrcode.Encode(invite.JoinURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("render join qr: %w", err)
	}
	invite.PNG = png

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, png, s.cfg.InviteCacheTTL).Err(); err != nil {
			log.Printf("[INVITE] cache write %s: %v", key, err)
		}
	}
	return invite, nil
}
