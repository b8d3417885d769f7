package store

import (
	"time"

	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/models"
)

// GameState is the in-memory view of one session
type GameState struct {
	Session     models.Session          `json:"session"`
	Players     []models.Player         `json:"players"` // host first, then join order
	Holes       []models.Hole           `json:"holes"`
	Putts       models.PuttGrid         `json:"-"`
	Cards       []models.CardAllocation `json:"-"`
	Chip        engine.ChipDecision     `json:"chip"`
	CurrentHole int                     `json:"current_hole"`
	LoadedAt    time.Time               `json:"loaded_at"`
}

func (g *GameState) clone() *GameState {
	out := *g
	if g.Session.ThreePuttChipValue != nil {
		out.Session.ThreePuttChipValue = models.Int64Ptr(*g.Session.ThreePuttChipValue)
	}
	out.Players = append([]models.Player(nil), g.Players...)
	out.Holes = append([]models.Hole(nil), g.Holes...)
	out.Cards = append([]models.CardAllocation(nil), g.Cards...)
	out.Putts = g.Putts.Clone()
	out.Chip.Candidates = append([]string(nil), g.Chip.Candidates...)
	return &out
}

func (g *GameState) Player(id string) *models.Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *GameState) PlayerByUser(userID string) *models.Player {
	for i := range g.Players {
		if g.Players[i].UserID == userID {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *GameState) PlayerIDs() []string {
	ids := make([]string, len(g.Players))
	for i, p := range g.Players {
		ids[i] = p.ID
	}
	return ids
}

// HoleNumber resolves a hole id, returning 0 when unknown
func (g *GameState) HoleNumber(holeID string) int {
	for _, h := range g.Holes {
		if h.ID == holeID {
			return h.Number
		}
	}
	return 0
}

// ChipHolderID is the settled chip holder; empty while nobody holds it or a tie is pending
func (g *GameState) ChipHolderID() string {
	switch g.Chip.Outcome {
	case engine.ChipStands, engine.ChipAssign:
		return g.Chip.HolderID
	}
	return ""
}

func (g *GameState) CardsFor(playerID string) []models.CardAllocation {
	var out []models.CardAllocation
	for _, c := range g.Cards {
		if c.PlayerID == playerID {
			out = append(out, c)
		}
	}
	return out
}

// derivedHole picks the hole after the last one with any recorded putt
func derivedHole(players []models.Player, grid models.PuttGrid) int {
	last := 0
	for _, p := range players {
		for hole := models.HoleCount; hole > last; hole-- {
			if grid.Get(p.ID, hole) != nil {
				last = hole
				break
			}
		}
	}
	if last == 0 {
		return 1
	}
	return engine.NextHole(last)
}
