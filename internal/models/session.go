package models

import "time"

// DealMethod controls who may see dealt cards while a game is in progress
type DealMethod string

const (
	DealPrivate DealMethod = "private" // owner sees own cards
	DealPublic  DealMethod = "public"  // everyone sees everything
	DealEnd     DealMethod = "end"     // nobody sees anything until the game ends
)

// Valid reports whether d is one of the known deal methods
func (d DealMethod) Valid() bool {
	switch d {
	case DealPrivate, DealPublic, DealEnd:
		return true
	}
	return false
}

// Session status
const (
	SessionStatusActive = "active"
	SessionStatusEnded  = "ended"
)

const (
	GameTypeThreePutt = "three-putt"
	HoleCount         = 18
)

// Session represents one round of Three Putt Poker
type Session struct {
	ID                   string     `json:"id" db:"id"`
	Name                 string     `json:"name" db:"name"`
	Status               string     `json:"status" db:"status"`
	GameType             string     `json:"game_type" db:"game_type"`
	BuyInAmount          int64      `json:"buy_in_amount" db:"buy_in_amount"`       // cents
	ThreePuttValue       int64      `json:"three_putt_value" db:"three_putt_value"` // cents
	ThreePuttChipEnabled bool       `json:"three_putt_chip_enabled" db:"three_putt_chip_enabled"`
	ThreePuttChipValue   *int64     `json:"three_putt_chip_value,omitempty" db:"three_putt_chip_value"`
	DealMethod           DealMethod `json:"deal_method" db:"deal_method"`
	CreatorID            string     `json:"creator_id" db:"creator_id"`
	JoinCode             string     `json:"join_code" db:"join_code"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
}

// IsEnded reports whether the host has closed the session
func (s *Session) IsEnded() bool {
	return s.Status == SessionStatusEnded
}

// ChipValueOrZero returns the chip value, treating an unset value as zero
func (s *Session) ChipValueOrZero() int64 {
	if s.ThreePuttChipValue == nil {
		return 0
	}
	return *s.ThreePuttChipValue
}

// Player is a user's seat in a session. Name is a snapshot of the display name.
type Player struct {
	ID        string    `json:"id" db:"id"`
	SessionID string    `json:"session_id" db:"session_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	IsCreator bool      `json:"is_creator" db:"is_creator"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Hole is one of the 18 holes of a session
type Hole struct {
	ID        string `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`
	Number    int    `json:"number" db:"number"`
}

// Putt is the recorded putt count for one player on one hole. NumPutts is nil until recorded.
type Putt struct {
	ID        string `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`
	PlayerID  string `json:"player_id" db:"player_id"`
	HoleID    string `json:"hole_id" db:"hole_id"`
	NumPutts  *int   `json:"num_putts" db:"num_putts"`
}

// ChipEvent records the three-putt chip moving to a player on a hole. Append-only.
type ChipEvent struct {
	ID         string    `json:"id" db:"id"`
	SessionID  string    `json:"session_id" db:"session_id"`
	PlayerID   string    `json:"player_id" db:"player_id"`
	HoleNumber int       `json:"hole_number" db:"hole_number"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Later reports whether e supersedes other as the current chip event
func (e *ChipEvent) Later(other *ChipEvent) bool {
	if other == nil {
		return true
	}
	if e.HoleNumber != other.HoleNumber {
		return e.HoleNumber > other.HoleNumber
	}
	return e.CreatedAt.After(other.CreatedAt)
}

// PuttGrid maps player id -> hole number -> recorded putts
type PuttGrid map[string]map[int]*int

// NewPuttGrid builds a grid from putt rows, resolving hole ids through holes.
// Rows referencing unknown holes are skipped.
func NewPuttGrid(holes []Hole, putts []Putt) PuttGrid {
	numbers := make(map[string]int, len(holes))
	for _, h := range holes {
		numbers[h.ID] = h.Number
	}

	grid := make(PuttGrid)
	for _, p := range putts {
		n, ok := numbers[p.HoleID]
		if !ok {
			continue
		}
		grid.Set(p.PlayerID, n, p.NumPutts)
	}
	return grid
}

// Get returns the putts a player recorded on a hole, or nil
func (g PuttGrid) Get(playerID string, hole int) *int {
	if g == nil || g[playerID] == nil {
		return nil
	}
	return g[playerID][hole]
}

// Set records putts for a player on a hole
func (g PuttGrid) Set(playerID string, hole int, putts *int) {
	row := g[playerID]
	if row == nil {
		row = make(map[int]*int)
		g[playerID] = row
	}
	if putts == nil {
		row[hole] = nil
		return
	}
	v := *putts
	row[hole] = &v
}

// Clone returns a deep copy
func (g PuttGrid) Clone() PuttGrid {
	out := make(PuttGrid, len(g))
	for playerID, row := range g {
		for hole, putts := range row {
			out.Set(playerID, hole, putts)
		}
	}
	return out
}

// History returns the player's putts on holes 1..18, nil where unrecorded
func (g PuttGrid) History(playerID string) []*int {
	out := make([]*int, HoleCount)
	for i := range out {
		if p := g.Get(playerID, i+1); p != nil {
			v := *p
			out[i] = &v
		}
	}
	return out
}

// IntPtr is a convenience for optional putt counts
func IntPtr(v int) *int {
	return &v
}

// Int64Ptr is a convenience for optional money values
func Int64Ptr(v int64) *int64 {
	return &v
}
