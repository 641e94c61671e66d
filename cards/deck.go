package cards

import (
	"errors"
	"math/rand"
	"time"
)

// ErrDeckExhausted is returned when more cards are requested than the deck holds.
// With two players and at most five community cards this should never happen,
// so callers treat it as a broken invariant rather than a normal outcome.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is a consumable deck of 52 distinct cards. It is created fresh for
// each hand, shuffled once, and drawn from until the hand ends.
type Deck struct {
	cards Stack
}

// NewDeck creates a standard deck of 52 cards
func NewDeck() *Deck {
	var stack Stack
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	values := []Value{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	for _, suit := range suits {
		for _, value := range values {
			stack = append(stack, Card{Suit: suit, Value: value})
		}
	}

	return &Deck{cards: stack}
}

// Shuffle randomizes the deck order
func (d *Deck) Shuffle() {
	d.ShuffleWith(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ShuffleWith randomizes the deck order using the provided source,
// so tests can deal deterministic hands
func (d *Deck) ShuffleWith(r *rand.Rand) {
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card of the deck
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// DrawN removes and returns the top n cards of the deck
func (d *Deck) DrawN(n int) (Stack, error) {
	if n > len(d.cards) {
		return nil, ErrDeckExhausted
	}

	drawn := make(Stack, 0, n)
	for i := 0; i < n; i++ {
		card, err := d.Draw()
		if err != nil {
			return nil, err
		}
		drawn = append(drawn, card)
	}

	return drawn, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
