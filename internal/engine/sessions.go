package engine

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/models"
)

// SessionParams configures a new game. Nil fields take the configured defaults.
type SessionParams struct {
	Name           string            `json:"name" validate:"omitempty,max=100"`
	BuyInAmount    *int64            `json:"buy_in_amount" validate:"omitempty,gte=0"`
	ThreePuttValue *int64            `json:"three_putt_value" validate:"omitempty,gte=0"`
	ChipEnabled    *bool             `json:"three_putt_chip_enabled"`
	ChipValue      *int64            `json:"three_putt_chip_value" validate:"omitempty,gte=0"`
	DealMethod     models.DealMethod `json:"deal_method" validate:"omitempty,oneof=private public end"`
}

// SettingsUpdate carries host edits. Nil fields are left unchanged.
type SettingsUpdate struct {
	Name           *string            `json:"name" validate:"omitempty,min=1,max=100"`
	BuyInAmount    *int64             `json:"buy_in_amount" validate:"omitempty,gte=0"`
	ThreePuttValue *int64             `json:"three_putt_value" validate:"omitempty,gte=0"`
	ChipEnabled    *bool              `json:"three_putt_chip_enabled"`
	ChipValue      *int64             `json:"three_putt_chip_value" validate:"omitempty,gte=0"`
	DealMethod     *models.DealMethod `json:"deal_method" validate:"omitempty,oneof=private public end"`
}

func nonNegative(values ...*int64) bool {
	for _, v := range values {
		if v != nil && *v < 0 {
			return false
		}
	}
	return true
}

// CreateSession starts a game hosted by host, seats the host and lays out the 18 holes
func (e *Engine) CreateSession(ctx context.Context, host models.Identity, params SessionParams) (*models.Session, *models.Player, error) {
	if !nonNegative(params.BuyInAmount, params.ThreePuttValue, params.ChipValue) {
		return nil, nil, fmt.Errorf("%w: amounts must not be negative", ErrInvalidSettings)
	}
	if params.DealMethod == "" {
		params.DealMethod = models.DealPrivate
	}
	if !params.DealMethod.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown deal method %q", ErrInvalidSettings, params.DealMethod)
	}

	now := e.now()
	session := &models.Session{
		ID:                   e.newID(),
		Name:                 params.Name,
		Status:               models.SessionStatusActive,
		GameType:             models.GameTypeThreePutt,
		BuyInAmount:          e.cfg.DefaultBuyIn,
		ThreePuttValue:       e.cfg.DefaultThreePuttValue,
		ThreePuttChipEnabled: true,
		ThreePuttChipValue:   models.Int64Ptr(e.cfg.DefaultChipValue),
		DealMethod:           params.DealMethod,
		CreatorID:            host.UserID,
		CreatedAt:            now,
	}
	if session.Name == "" {
		session.Name = "Game " + now.Format("Jan 2, 2006 3:04 PM")
	}
	if params.BuyInAmount != nil {
		session.BuyInAmount = *params.BuyInAmount
	}
	if params.ThreePuttValue != nil {
		session.ThreePuttValue = *params.ThreePuttValue
	}
	if params.ChipEnabled != nil {
		session.ThreePuttChipEnabled = *params.ChipEnabled
	}
	if params.ChipValue != nil {
		session.ThreePuttChipValue = models.Int64Ptr(*params.ChipValue)
	}

	created := false
	for attempt := 0; attempt < max(e.cfg.JoinCodeAttempts, 1); attempt++ {
		session.JoinCode = e.joinCode(e.cfg.JoinCodeLength)
		err := e.gw.CreateSession(ctx, session)
		if err == nil {
			created = true
			break
		}
		if !gateway.IsDuplicate(err) {
			return nil, nil, fmt.Errorf("create session: %w", err)
		}
		log.Printf("[SESSION] join code %s already taken, retrying", session.JoinCode)
	}
	if !created {
		return nil, nil, ErrJoinCodeExhausted
	}

	host.Name = host.DisplayName()
	player := &models.Player{
		ID:        e.newID(),
		SessionID: session.ID,
		UserID:    host.UserID,
		Name:      host.Name,
		IsCreator: true,
		CreatedAt: now,
	}
	if err := e.gw.InsertPlayer(ctx, player); err != nil && !gateway.IsDuplicate(err) {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	if _, err := e.EnsureHoles(ctx, session.ID); err != nil {
		return nil, nil, err
	}
	if _, err := e.EnsurePutts(ctx, session.ID, player.ID); err != nil {
		return nil, nil, err
	}

	log.Printf("[SESSION] %s created by %s with join code %s", session.ID, host.UserID, session.JoinCode)
	e.audit.LogOperation(session.ID, player.ID, "SESSION_CREATED", session.JoinCode)
	e.publish(ctx, gateway.TableSessions, session.ID)
	e.publish(ctx, gateway.TablePlayers, session.ID)
	return session, player, nil
}

// JoinByCode seats the caller in the session with the given code. Joining a
// session the caller already belongs to returns the existing seat. The bool
// result reports whether a new seat was created.
func (e *Engine) JoinByCode(ctx context.Context, who models.Identity, code string) (*models.Session, *models.Player, bool, error) {
	code = NormalizeJoinCode(code)
	if len(code) < e.cfg.MinJoinCodeLength {
		return nil, nil, false, ErrInvalidJoinCode
	}

	session, err := e.gw.GetSessionByJoinCode(ctx, code)
	if err != nil {
		return nil, nil, false, fmt.Errorf("join %s: %w", code, err)
	}

	player, err := e.gw.GetPlayerByUser(ctx, session.ID, who.UserID)
	switch {
	case err == nil:
		if who.Name != "" && who.Name != player.Name {
			if err := e.gw.UpdatePlayerName(ctx, player.ID, who.Name); err != nil {
				log.Printf("[SESSION] name refresh for player %s failed: %v", player.ID, err)
			} else {
				player.Name = who.Name
				e.publish(ctx, gateway.TablePlayers, session.ID)
			}
		}
		if err := e.bootstrapSeat(ctx, session.ID, player.ID); err != nil {
			return nil, nil, false, err
		}
		return session, player, false, nil
	case !gateway.IsNotFound(err):
		return nil, nil, false, fmt.Errorf("join %s: %w", code, err)
	}

	if session.IsEnded() {
		return nil, nil, false, ErrSessionEnded
	}

	player = &models.Player{
		ID:        e.newID(),
		SessionID: session.ID,
		UserID:    who.UserID,
		Name:      who.DisplayName(),
		CreatedAt: e.now(),
	}
	created := true
	if err := e.gw.InsertPlayer(ctx, player); err != nil {
		if !gateway.IsDuplicate(err) {
			return nil, nil, false, fmt.Errorf("join %s: %w", code, err)
		}
		// lost a race with another join for the same user
		existing, lookupErr := e.gw.GetPlayerByUser(ctx, session.ID, who.UserID)
		if lookupErr != nil {
			return nil, nil, false, fmt.Errorf("join %s: %w", code, lookupErr)
		}
		player = existing
		created = false
	}

	if err := e.bootstrapSeat(ctx, session.ID, player.ID); err != nil {
		return nil, nil, false, err
	}
	if created {
		log.Printf("[SESSION] %s joined session %s as player %s", who.UserID, session.ID, player.ID)
		e.audit.LogOperation(session.ID, player.ID, "PLAYER_JOINED", who.UserID)
		e.publish(ctx, gateway.TablePlayers, session.ID)
	}
	return session, player, created, nil
}

func (e *Engine) bootstrapSeat(ctx context.Context, sessionID, playerID string) error {
	if _, err := e.EnsureHoles(ctx, sessionID); err != nil {
		return err
	}
	_, err := e.EnsurePutts(ctx, sessionID, playerID)
	return err
}

// RequireHost loads the session and checks that userID created it
func (e *Engine) RequireHost(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	session, err := e.gw.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CreatorID != userID {
		return nil, ErrNotHost
	}
	return session, nil
}

// UpdateSettings applies host edits to the game economics
func (e *Engine) UpdateSettings(ctx context.Context, userID, sessionID string, update SettingsUpdate) (*models.Session, error) {
	session, err := e.RequireHost(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !nonNegative(update.BuyInAmount, update.ThreePuttValue, update.ChipValue) {
		return nil, fmt.Errorf("%w: amounts must not be negative", ErrInvalidSettings)
	}
	if update.DealMethod != nil && !update.DealMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown deal method %q", ErrInvalidSettings, *update.DealMethod)
	}

	if update.Name != nil {
		session.Name = *update.Name
	}
	if update.BuyInAmount != nil {
		session.BuyInAmount = *update.BuyInAmount
	}
	if update.ThreePuttValue != nil {
		session.ThreePuttValue = *update.ThreePuttValue
	}
	if update.ChipEnabled != nil {
		session.ThreePuttChipEnabled = *update.ChipEnabled
	}
	if update.ChipValue != nil {
		session.ThreePuttChipValue = models.Int64Ptr(*update.ChipValue)
	}
	if update.DealMethod != nil {
		session.DealMethod = *update.DealMethod
	}

	if err := e.gw.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	e.publish(ctx, gateway.TableSessions, sessionID)
	return session, nil
}

// EndSession closes the game; all cards become visible. Ending twice is a no-op.
func (e *Engine) EndSession(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	session, err := e.RequireHost(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsEnded() {
		return session, nil
	}

	session.Status = models.SessionStatusEnded
	if err := e.gw.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	log.Printf("[SESSION] %s ended by host", sessionID)
	e.audit.LogOperation(sessionID, "", "SESSION_ENDED", "")
	e.publish(ctx, gateway.TableSessions, sessionID)
	return session, nil
}

// DeleteSession removes the game and everything recorded in it
func (e *Engine) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if _, err := e.RequireHost(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := e.gw.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	log.Printf("[SESSION] %s deleted by host", sessionID)
	e.audit.LogOperation(sessionID, "", "SESSION_DELETED", "")
	e.publish(ctx, gateway.TableSessions, sessionID)
	return nil
}

// ListActiveSessions returns the unfinished games userID plays in, newest first
func (e *Engine) ListActiveSessions(ctx context.Context, userID string) ([]models.Session, error) {
	sessions, err := e.gw.ListSessionsForUser(ctx, userID, models.SessionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, nil
}

// IsClientError reports whether err comes from bad input rather than a failure
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrInvalidHole, ErrInvalidPutts, ErrUnknownPlayer, ErrInvalidJoinCode, ErrInvalidSettings,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
