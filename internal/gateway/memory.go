package gateway

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sideputt/backend/internal/models"
)

// Memory is an in-process Gateway enforcing the same unique indexes and
// cascades as the Postgres schema. It backs tests and STORAGE=memory runs.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	players  map[string]models.Player
	holes    map[string]models.Hole
	putts    map[string]models.Putt
	cards    map[string]models.CardAllocation
	chips    map[string]models.ChipEvent
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]models.Session),
		players:  make(map[string]models.Player),
		holes:    make(map[string]models.Hole),
		putts:    make(map[string]models.Putt),
		cards:    make(map[string]models.CardAllocation),
		chips:    make(map[string]models.ChipEvent),
	}
}

func (m *Memory) CreateSession(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; ok {
		return fmt.Errorf("create session: %w", ErrDuplicate)
	}
	for _, existing := range m.sessions {
		if existing.JoinCode == s.JoinCode {
			return fmt.Errorf("create session: %w", ErrDuplicate)
		}
	}
	m.sessions[s.ID] = copySession(*s)
	return nil
}

func copySession(s models.Session) models.Session {
	if s.ThreePuttChipValue != nil {
		s.ThreePuttChipValue = models.Int64Ptr(*s.ThreePuttChipValue)
	}
	return s
}

func (m *Memory) GetSession(_ context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get session: %w", ErrNotFound)
	}
	s = copySession(s)
	return &s, nil
}

func (m *Memory) GetSessionByJoinCode(_ context.Context, code string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.JoinCode == code {
			s = copySession(s)
			return &s, nil
		}
	}
	return nil, fmt.Errorf("get session by join code: %w", ErrNotFound)
}

func (m *Memory) UpdateSession(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.sessions[s.ID]
	if !ok {
		return fmt.Errorf("update session: %w", ErrNotFound)
	}
	existing.Name = s.Name
	existing.Status = s.Status
	existing.BuyInAmount = s.BuyInAmount
	existing.ThreePuttValue = s.ThreePuttValue
	existing.ThreePuttChipEnabled = s.ThreePuttChipEnabled
	existing.ThreePuttChipValue = s.ThreePuttChipValue
	existing.DealMethod = s.DealMethod
	m.sessions[s.ID] = copySession(existing)
	return nil
}

func (m *Memory) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("delete session: %w", ErrNotFound)
	}
	delete(m.sessions, id)
	for k, v := range m.players {
		if v.SessionID == id {
			delete(m.players, k)
		}
	}
	for k, v := range m.holes {
		if v.SessionID == id {
			delete(m.holes, k)
		}
	}
	for k, v := range m.putts {
		if v.SessionID == id {
			delete(m.putts, k)
		}
	}
	for k, v := range m.cards {
		if v.SessionID == id {
			delete(m.cards, k)
		}
	}
	for k, v := range m.chips {
		if v.SessionID == id {
			delete(m.chips, k)
		}
	}
	return nil
}

func (m *Memory) ListSessionsForUser(_ context.Context, userID, status string) ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	member := make(map[string]bool)
	for _, p := range m.players {
		if p.UserID == userID {
			member[p.SessionID] = true
		}
	}
	var out []models.Session
	for _, s := range m.sessions {
		if member[s.ID] && s.Status == status {
			out = append(out, copySession(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) InsertPlayer(_ context.Context, p *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[p.SessionID]; !ok {
		return fmt.Errorf("insert player: %w: session %s missing", ErrGateway, p.SessionID)
	}
	for _, existing := range m.players {
		if existing.ID == p.ID || (existing.SessionID == p.SessionID && existing.UserID == p.UserID) {
			return fmt.Errorf("insert player: %w", ErrDuplicate)
		}
	}
	m.players[p.ID] = *p
	return nil
}

func (m *Memory) GetPlayerByUser(_ context.Context, sessionID, userID string) (*models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.players {
		if p.SessionID == sessionID && p.UserID == userID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("get player: %w", ErrNotFound)
}

func (m *Memory) ListPlayers(_ context.Context, sessionID string) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Player
	for _, p := range m.players {
		if p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsCreator != out[j].IsCreator {
			return out[i].IsCreator
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) UpdatePlayerName(_ context.Context, playerID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[playerID]
	if !ok {
		return fmt.Errorf("update player name: %w", ErrNotFound)
	}
	p.Name = name
	m.players[playerID] = p
	return nil
}

func (m *Memory) InsertHoles(_ context.Context, holes []models.Hole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range holes {
		if m.holeExists(h.SessionID, h.Number) {
			continue
		}
		m.holes[h.ID] = h
	}
	return nil
}

func (m *Memory) holeExists(sessionID string, number int) bool {
	for _, h := range m.holes {
		if h.SessionID == sessionID && h.Number == number {
			return true
		}
	}
	return false
}

func (m *Memory) ListHoles(_ context.Context, sessionID string) ([]models.Hole, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Hole
	for _, h := range m.holes {
		if h.SessionID == sessionID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *Memory) findPutt(sessionID, playerID, holeID string) (string, bool) {
	for k, p := range m.putts {
		if p.SessionID == sessionID && p.PlayerID == playerID && p.HoleID == holeID {
			return k, true
		}
	}
	return "", false
}

func copyPutt(p models.Putt) models.Putt {
	if p.NumPutts != nil {
		p.NumPutts = models.IntPtr(*p.NumPutts)
	}
	return p
}

func (m *Memory) InsertPutts(_ context.Context, putts []models.Putt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range putts {
		if _, ok := m.findPutt(p.SessionID, p.PlayerID, p.HoleID); ok {
			continue
		}
		m.putts[p.ID] = copyPutt(p)
	}
	return nil
}

func (m *Memory) UpsertPutt(_ context.Context, p *models.Putt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key, ok := m.findPutt(p.SessionID, p.PlayerID, p.HoleID); ok {
		existing := m.putts[key]
		existing.NumPutts = p.NumPutts
		m.putts[key] = copyPutt(existing)
		return nil
	}
	m.putts[p.ID] = copyPutt(*p)
	return nil
}

func (m *Memory) ListPutts(_ context.Context, sessionID string) ([]models.Putt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Putt
	for _, p := range m.putts {
		if p.SessionID == sessionID {
			out = append(out, copyPutt(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) InsertCards(_ context.Context, cards []models.CardAllocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	taken := make(map[string]bool)
	for _, c := range m.cards {
		taken[c.SessionID+"|"+c.Suit+"|"+c.Rank] = true
	}
	for _, c := range cards {
		key := c.SessionID + "|" + c.Suit + "|" + c.Rank
		if taken[key] {
			return fmt.Errorf("insert cards: %w", ErrDuplicate)
		}
		if _, ok := m.cards[c.ID]; ok {
			return fmt.Errorf("insert cards: %w", ErrDuplicate)
		}
		taken[key] = true
	}
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	return nil
}

func (m *Memory) ListCards(_ context.Context, sessionID string) ([]models.CardAllocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.CardAllocation
	for _, c := range m.cards {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeleteCards(_ context.Context, sessionID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if c, ok := m.cards[id]; ok && c.SessionID == sessionID {
			delete(m.cards, id)
		}
	}
	return nil
}

func (m *Memory) InsertChipEvent(_ context.Context, e *models.ChipEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chips[e.ID]; ok {
		return fmt.Errorf("insert chip event: %w", ErrDuplicate)
	}
	m.chips[e.ID] = *e
	return nil
}

func (m *Memory) LatestChipEvent(_ context.Context, sessionID string) (*models.ChipEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.ChipEvent
	for _, e := range m.chips {
		if e.SessionID != sessionID {
			continue
		}
		e := e
		if e.Later(latest) {
			latest = &e
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("latest chip event: %w", ErrNotFound)
	}
	return latest, nil
}

func (m *Memory) ListChipEvents(_ context.Context, sessionID string) ([]models.ChipEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.ChipEvent
	for _, e := range m.chips {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Later(&out[i]) })
	return out, nil
}
