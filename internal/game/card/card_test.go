package card

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Len(t, deck, DeckSize)

	perSuit := make(map[Suit]int)
	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
		perSuit[c.Suit]++
	}
	for _, s := range Suits {
		assert.Equal(t, 13, perSuit[s])
	}

	assert.Equal(t, Card{Suit: Clubs, Rank: Rank2}, deck[0])
	assert.Equal(t, Card{Suit: Spades, Rank: RankA}, deck[51])
	assert.Equal(t, deck, NewDeck(), "generation must be deterministic")
}

func TestShuffle_IsPermutation(t *testing.T) {
	t.Parallel()

	base := NewDeck()
	for seed := uint64(0); seed < 50; seed++ {
		shuffled := Shuffle(base, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
		require.Len(t, shuffled, DeckSize)
		assert.ElementsMatch(t, base, shuffled)
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	base := NewDeck()
	_ = Shuffle(base, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, NewDeck(), base)
}

func TestShuffle_DeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	a := Shuffle(NewDeck(), rand.New(rand.NewPCG(42, 7)))
	b := Shuffle(NewDeck(), rand.New(rand.NewPCG(42, 7)))
	c := Shuffle(NewDeck(), rand.New(rand.NewPCG(43, 7)))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Card
		hasError bool
	}{
		{name: "Ace of spades", input: "AS", expected: Card{Suit: Spades, Rank: RankA}},
		{name: "Ten lowercase", input: "10h", expected: Card{Suit: Hearts, Rank: Rank10}},
		{name: "T shorthand", input: "TD", expected: Card{Suit: Diamonds, Rank: Rank10}},
		{name: "Symbol suit", input: "Q♥", expected: Card{Suit: Hearts, Rank: RankQ}},
		{name: "Two of clubs", input: " 2c ", expected: Card{Suit: Clubs, Rank: Rank2}},
		{name: "Unknown rank", input: "1S", hasError: true},
		{name: "Unknown suit", input: "AX", hasError: true},
		{name: "Too long", input: "AAS", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := ParseCard(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestCard_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A♠", Card{Suit: Spades, Rank: RankA}.String())
	assert.Equal(t, "10H", Card{Suit: Hearts, Rank: Rank10}.Code())
	assert.Equal(t, Red, Diamonds.Color())
	assert.Equal(t, Black, Clubs.Color())
}
