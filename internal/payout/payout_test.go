package payout

import (
	"testing"

	"github.com/sideputt/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threePuttGrid() models.PuttGrid {
	g := make(models.PuttGrid)
	for _, hole := range []int{2, 9, 14} {
		g.Set("A", hole, models.IntPtr(3))
	}
	g.Set("A", 15, models.IntPtr(2))
	g.Set("B", 1, models.IntPtr(1))
	return g
}

func TestCalculate(t *testing.T) {
	players := []models.Player{{ID: "A", Name: "Avery"}, {ID: "B", Name: "Blake"}}

	t.Run("three three-putts no chip", func(t *testing.T) {
		s := &models.Session{BuyInAmount: 500, ThreePuttValue: 100, ThreePuttChipEnabled: false}
		payouts := Calculate(s, players, threePuttGrid(), "")

		require.Len(t, payouts, 2)
		assert.Equal(t, 3, payouts[0].ThreePuttCount)
		assert.Equal(t, int64(800), payouts[0].Total)
		assert.Equal(t, int64(500), payouts[1].Total)
		assert.Equal(t, int64(1300), Pot(payouts))
	})

	t.Run("chip holder pays the chip", func(t *testing.T) {
		s := &models.Session{BuyInAmount: 500, ThreePuttValue: 100, ThreePuttChipEnabled: true, ThreePuttChipValue: models.Int64Ptr(200)}
		payouts := Calculate(s, players, threePuttGrid(), "A")

		assert.True(t, payouts[0].HasChip)
		assert.Equal(t, int64(1000), payouts[0].Total)
		assert.False(t, payouts[1].HasChip)
	})

	t.Run("disabled chip is free", func(t *testing.T) {
		s := &models.Session{BuyInAmount: 500, ThreePuttValue: 100, ThreePuttChipValue: models.Int64Ptr(200)}
		payouts := Calculate(s, players, threePuttGrid(), "A")
		assert.True(t, payouts[0].HasChip)
		assert.Equal(t, int64(800), payouts[0].Total)
	})

	t.Run("unset chip value counts as zero", func(t *testing.T) {
		s := &models.Session{BuyInAmount: 500, ThreePuttValue: 100, ThreePuttChipEnabled: true}
		payouts := Calculate(s, players, threePuttGrid(), "A")
		assert.Equal(t, int64(800), payouts[0].Total)
	})

	t.Run("empty roster", func(t *testing.T) {
		assert.Empty(t, Calculate(&models.Session{}, nil, nil, ""))
	})
}
