package engine

import (
	"sort"

	"github.com/sideputt/backend/internal/models"
)

// ThreePutt is the putt count that earns the chip and a pot contribution
const ThreePutt = 3

// CardsAwarded maps a hole's putt count to the number of cards it earns
func CardsAwarded(numPutts *int) int {
	if numPutts == nil {
		return 0
	}
	switch *numPutts {
	case 0:
		return 2
	case 1:
		return 1
	default:
		return 0
	}
}

// CardDiff is the change needed to bring a player's cards on a hole to the desired count
type CardDiff struct {
	Remove []string // allocation ids, newest first
	Draw   int
}

// ReconcileCards diffs existing allocations against the desired count.
// Excess is trimmed newest first; ties on created_at drop the highest id first.
func ReconcileCards(existing []models.CardAllocation, desired int) CardDiff {
	if desired < 0 {
		desired = 0
	}
	if len(existing) < desired {
		return CardDiff{Draw: desired - len(existing)}
	}
	if len(existing) == desired {
		return CardDiff{}
	}

	sorted := make([]models.CardAllocation, len(existing))
	copy(sorted, existing)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	excess := len(existing) - desired
	ids := make([]string, 0, excess)
	for _, c := range sorted[:excess] {
		ids = append(ids, c.ID)
	}
	return CardDiff{Remove: ids}
}

type ChipOutcome string

const (
	ChipNone   ChipOutcome = "none"   // nobody has three-putted
	ChipStands ChipOutcome = "stands" // the latest event already covers the latest three-putt hole
	ChipAssign ChipOutcome = "assign" // a single player takes the chip
	ChipTie    ChipOutcome = "tie"    // the host must pick among Candidates
)

type ChipDecision struct {
	Outcome    ChipOutcome `json:"outcome"`
	HolderID   string      `json:"holder_id,omitempty"`
	HoleNumber int         `json:"hole_number,omitempty"`
	Candidates []string    `json:"candidates,omitempty"`
}

// NeedsTieBreak reports whether the host has to pick the holder
func (d ChipDecision) NeedsTieBreak() bool {
	return d.Outcome == ChipTie
}

// LatestThreePuttHole returns the highest hole on which anyone took three or
// more putts, with the players who did so in roster order. Zero means none.
func LatestThreePuttHole(playerIDs []string, grid models.PuttGrid) (int, []string) {
	for hole := models.HoleCount; hole >= 1; hole-- {
		var candidates []string
		for _, id := range playerIDs {
			if p := grid.Get(id, hole); p != nil && *p >= ThreePutt {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) > 0 {
			return hole, candidates
		}
	}
	return 0, nil
}

// DetermineChip decides who holds the three-putt chip given the full putt
// history and the most recent chip event (nil if the chip never moved).
func DetermineChip(playerIDs []string, grid models.PuttGrid, latest *models.ChipEvent) ChipDecision {
	hole, candidates := LatestThreePuttHole(playerIDs, grid)
	// a recorded event keeps the chip even after its three-putt is corrected away
	if latest != nil && latest.HoleNumber >= hole {
		return ChipDecision{Outcome: ChipStands, HolderID: latest.PlayerID, HoleNumber: latest.HoleNumber}
	}
	if hole == 0 {
		return ChipDecision{Outcome: ChipNone}
	}
	if len(candidates) == 1 {
		return ChipDecision{Outcome: ChipAssign, HolderID: candidates[0], HoleNumber: hole}
	}
	return ChipDecision{Outcome: ChipTie, HoleNumber: hole, Candidates: candidates}
}

// NextHole advances the hole pointer, stopping at 18
func NextHole(hole int) int {
	return ClampHole(hole + 1)
}

// PrevHole moves the hole pointer back, stopping at 1
func PrevHole(hole int) int {
	return ClampHole(hole - 1)
}

// ClampHole forces a hole number into 1..18
func ClampHole(hole int) int {
	if hole < 1 {
		return 1
	}
	if hole > models.HoleCount {
		return models.HoleCount
	}
	return hole
}
