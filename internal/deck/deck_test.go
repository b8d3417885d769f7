package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Run("single deck order", func(t *testing.T) {
		cards := NewDeck(1)
		require.Len(t, cards, Size)
		assert.Equal(t, Card{Suit: Hearts, Rank: "A"}, cards[0])
		assert.Equal(t, Card{Suit: Hearts, Rank: "K"}, cards[12])
		assert.Equal(t, Card{Suit: Diamonds, Rank: "A"}, cards[13])
		assert.Equal(t, Card{Suit: Spades, Rank: "K"}, cards[51])
	})

	t.Run("unique cards", func(t *testing.T) {
		seen := make(map[Card]bool)
		for _, c := range NewDeck(1) {
			assert.False(t, seen[c], "duplicate %s", c)
			seen[c] = true
		}
	})

	t.Run("multiple decks", func(t *testing.T) {
		assert.Len(t, NewDeck(2), 2*Size)
	})

	t.Run("zero decks treated as one", func(t *testing.T) {
		assert.Len(t, NewDeck(0), Size)
	})
}

func TestShuffle(t *testing.T) {
	original := NewDeck(1)
	snapshot := append([]Card(nil), original...)

	shuffled := Shuffle(original, rand.New(rand.NewSource(42)))

	assert.Equal(t, snapshot, original, "input must not be mutated")
	assert.ElementsMatch(t, original, shuffled)
	assert.NotEqual(t, original, shuffled)

	t.Run("independent shuffles", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		a := Shuffle(original, rng)
		b := Shuffle(original, rng)
		assert.NotEqual(t, a, b)
	})

	t.Run("nil rng", func(t *testing.T) {
		assert.ElementsMatch(t, original, Shuffle(original, nil))
	})
}

func TestDeal(t *testing.T) {
	t.Run("deal five", func(t *testing.T) {
		shuffled := Shuffle(NewDeck(1), rand.New(rand.NewSource(1)))
		dealt, rest := Deal(shuffled, 5)

		assert.Len(t, dealt, 5)
		assert.Len(t, rest, 47)
		assert.ElementsMatch(t, NewDeck(1), append(dealt, rest...))
	})

	t.Run("short deck", func(t *testing.T) {
		cards := NewDeck(1)[:3]
		dealt, rest := Deal(cards, 5)
		assert.Len(t, dealt, 3)
		assert.Empty(t, rest)
	})

	t.Run("negative count", func(t *testing.T) {
		dealt, rest := Deal(NewDeck(1), -1)
		assert.Empty(t, dealt)
		assert.Len(t, rest, Size)
	})
}

func TestRemaining(t *testing.T) {
	full := NewDeck(1)
	used := []Card{{Suit: Hearts, Rank: "A"}, {Suit: Spades, Rank: "10"}}

	rest := Remaining(full, used)
	assert.Len(t, rest, Size-2)
	assert.NotContains(t, rest, used[0])
	assert.NotContains(t, rest, used[1])
}

func TestCard(t *testing.T) {
	c, err := NewCard("hearts", "10")
	require.NoError(t, err)
	assert.Equal(t, "10♥", c.String())
	assert.Equal(t, "hearts:10", c.Key())

	_, err = NewCard("stars", "10")
	assert.Error(t, err)

	_, err = NewCard("clubs", "1")
	assert.Error(t, err)
}
