package deck

import (
	"fmt"
	"math/rand"
)

// Suit is a card suit as stored in card allocations
type Suit string

// Rank is a card rank as stored in card allocations
type Rank string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits in deck order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks in deck order
var Ranks = []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Size of a single standard deck
const Size = 52

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

// Card is a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a Card, rejecting unknown suits and ranks
func NewCard(suit, rank string) (Card, error) {
	s, err := ParseSuit(suit)
	if err != nil {
		return Card{}, err
	}
	r, err := ParseRank(rank)
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: s, Rank: r}, nil
}

// ParseSuit validates a suit name
func ParseSuit(v string) (Suit, error) {
	for _, s := range Suits {
		if string(s) == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid suit %q", v)
}

// ParseRank validates a rank name
func ParseRank(v string) (Rank, error) {
	for _, r := range Ranks {
		if string(r) == v {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid rank %q", v)
}

// String renders the card as rank followed by suit symbol, e.g. "10♥"
func (c Card) String() string {
	sym, ok := suitSymbols[c.Suit]
	if !ok {
		sym = "?"
	}
	return string(c.Rank) + sym
}

// Key identifies the card within a single deck
func (c Card) Key() string {
	return string(c.Suit) + ":" + string(c.Rank)
}

// NewDeck builds numDecks standard decks, suit-major then rank.
// numDecks below 1 is treated as 1.
func NewDeck(numDecks int) []Card {
	if numDecks < 1 {
		numDecks = 1
	}
	cards := make([]Card, 0, Size*numDecks)
	for d := 0; d < numDecks; d++ {
		for _, s := range Suits {
			for _, r := range Ranks {
				cards = append(cards, Card{Suit: s, Rank: r})
			}
		}
	}
	return cards
}

// Shuffle returns a Fisher-Yates permutation of cards. The input is left untouched.
// A nil rng falls back to the package-level source.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)

	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for i := len(out) - 1; i > 0; i-- {
		j := intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal splits off the first n cards. It returns fewer than n when the deck runs short.
func Deal(cards []Card, n int) (dealt, remainder []Card) {
	if n < 0 {
		n = 0
	}
	if n > len(cards) {
		n = len(cards)
	}
	dealt = make([]Card, n)
	copy(dealt, cards[:n])
	remainder = make([]Card, len(cards)-n)
	copy(remainder, cards[n:])
	return dealt, remainder
}

// Remaining returns full minus used, removing one copy per used card
func Remaining(full, used []Card) []Card {
	taken := make(map[Card]int, len(used))
	for _, c := range used {
		taken[c]++
	}
	out := make([]Card, 0, len(full))
	for _, c := range full {
		if taken[c] > 0 {
			taken[c]--
			continue
		}
		out = append(out, c)
	}
	return out
}
