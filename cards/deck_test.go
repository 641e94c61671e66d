package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()

	require.Equal(t, 52, deck.Remaining())

	// Every card must be distinct
	seen := make(map[Card]bool)
	for deck.Remaining() > 0 {
		card, err := deck.Draw()
		require.NoError(t, err)
		require.False(t, seen[card], "duplicate card %s in deck", card)
		seen[card] = true
	}
	require.Len(t, seen, 52)
}

func TestDeckShuffle(t *testing.T) {
	original := NewDeck()
	shuffled := NewDeck()
	shuffled.ShuffleWith(rand.New(rand.NewSource(1)))

	require.Equal(t, original.Remaining(), shuffled.Remaining())

	// Check that cards are shuffled (probabilistic but effectively certain)
	differences := 0
	for original.Remaining() > 0 {
		a, _ := original.Draw()
		b, _ := shuffled.Draw()
		if !a.Equals(b) {
			differences++
		}
	}
	require.NotZero(t, differences, "shuffled deck is identical to original deck")
}

func TestDeckDraw(t *testing.T) {
	deck := NewDeck()

	card, err := deck.Draw()
	require.NoError(t, err)
	require.Equal(t, 51, deck.Remaining())

	// The drawn card must be gone from the deck
	for deck.Remaining() > 0 {
		next, err := deck.Draw()
		require.NoError(t, err)
		require.False(t, card.Equals(next), "drawn card %s still present in deck", card)
	}
}

func TestDeckDrawN(t *testing.T) {
	deck := NewDeck()

	drawn, err := deck.DrawN(5)
	require.NoError(t, err)
	require.Len(t, drawn, 5)
	require.Equal(t, 47, deck.Remaining())
}

func TestDeckExhaustion(t *testing.T) {
	deck := NewDeck()

	_, err := deck.DrawN(52)
	require.NoError(t, err)
	require.Equal(t, 0, deck.Remaining())

	_, err = deck.Draw()
	require.ErrorIs(t, err, ErrDeckExhausted)

	_, err = deck.DrawN(1)
	require.ErrorIs(t, err, ErrDeckExhausted)
}
