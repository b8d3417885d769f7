// Package payout computes what each player owes the pot.
package payout

import "github.com/sideputt/backend/internal/models"

type Payout struct {
	PlayerID       string `json:"player_id"`
	Name           string `json:"name"`
	ThreePuttCount int    `json:"three_putt_count"`
	HasChip        bool   `json:"has_chip"`
	Total          int64  `json:"total"` // cents
}

// ThreePuttCount counts the holes where the player took three or more putts
func ThreePuttCount(grid models.PuttGrid, playerID string) int {
	count := 0
	for hole := 1; hole <= models.HoleCount; hole++ {
		if p := grid.Get(playerID, hole); p != nil && *p >= 3 {
			count++
		}
	}
	return count
}

// Calculate returns one payout per player in roster order:
// buy-in + three-putts * value + chip value for the holder when chips are on.
func Calculate(session *models.Session, players []models.Player, grid models.PuttGrid, chipHolderID string) []Payout {
	out := make([]Payout, 0, len(players))
	for _, p := range players {
		count := ThreePuttCount(grid, p.ID)
		hasChip := chipHolderID != "" && p.ID == chipHolderID

		total := session.BuyInAmount + int64(count)*session.ThreePuttValue
		if hasChip && session.ThreePuttChipEnabled {
			total += session.ChipValueOrZero()
		}

		out = append(out, Payout{
			PlayerID:       p.ID,
			Name:           p.Name,
			ThreePuttCount: count,
			HasChip:        hasChip,
			Total:          total,
		})
	}
	return out
}

// Pot sums every player's total
func Pot(payouts []Payout) int64 {
	var sum int64
	for _, p := range payouts {
		sum += p.Total
	}
	return sum
}
