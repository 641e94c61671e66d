package poker

import "github.com/lazharichir/holdem/cards"

// Player represents a seat in the round: its chip stack, the bet committed
// on the current street, and its hole cards. A player with no hole cards
// during a hand has folded and takes no further actions.
type Player struct {
	Name       string
	Chips      int
	Bet        int
	HoleCards  cards.Stack
	LastAction string

	// acted tracks whether the player has taken an action on the current
	// street. Posting a blind does not count: the big blind keeps its
	// option even when every bet is matched.
	acted bool
}

// HasFolded reports whether the player is out of the current hand
func (p *Player) HasFolded() bool {
	return len(p.HoleCards) == 0
}

// CanAct reports whether the player can still take betting actions
func (p *Player) CanAct() bool {
	return !p.HasFolded() && p.Chips > 0
}
