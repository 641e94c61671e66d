package table

import (
	"math/rand"

	"github.com/lazharichir/holdem/poker"
)

// Bot is a simple automated opponent. It checks or makes small bets when
// there is nothing to call, bluff-raises occasionally, and folds when the
// price gets steep relative to its stack.
type Bot struct {
	rng *rand.Rand

	// Aggression is the probability of betting instead of checking when
	// the action is free.
	Aggression float64
	// BluffRate is the probability of raising instead of calling when
	// facing a bet.
	BluffRate float64
}

// NewBot returns a bot with default tendencies and its own RNG
func NewBot(rng *rand.Rand) *Bot {
	return &Bot{
		rng:        rng,
		Aggression: 0.4,
		BluffRate:  0.15,
	}
}

// Decide implements DecisionProvider
func (b *Bot) Decide(snapshot poker.Snapshot, legal []poker.LegalAction) poker.ProposedAction {
	byAction := make(map[poker.Action]poker.LegalAction, len(legal))
	for _, la := range legal {
		byAction[la.Action] = la
	}

	me := snapshot.Players[snapshot.CurrentPlayer]
	toCall := snapshot.CurrentBet - me.Bet

	if toCall <= 0 {
		if bet, ok := byAction[poker.Bet]; ok && b.rng.Float64() < b.Aggression {
			return poker.ProposedAction{Action: poker.Bet, Amount: b.betSize(bet)}
		}
		if _, ok := byAction[poker.Check]; ok {
			return poker.ProposedAction{Action: poker.Check}
		}
		return poker.ProposedAction{Action: poker.Fold}
	}

	if raise, ok := byAction[poker.Raise]; ok && b.rng.Float64() < b.BluffRate {
		return poker.ProposedAction{Action: poker.Raise, Amount: b.betSize(raise)}
	}

	// Too expensive relative to the stack: let it go
	if toCall > me.Chips/3 {
		return poker.ProposedAction{Action: poker.Fold}
	}

	if _, ok := byAction[poker.Call]; ok {
		return poker.ProposedAction{Action: poker.Call}
	}
	if _, ok := byAction[poker.AllIn]; ok {
		return poker.ProposedAction{Action: poker.AllIn}
	}
	return poker.ProposedAction{Action: poker.Fold}
}

// betSize picks an amount within the legal bounds, capped at a modest
// fraction of a starting stack so the bot does not overbet small pots
func (b *Bot) betSize(la poker.LegalAction) int {
	low := la.Min
	high := la.Max
	if high > 100 {
		high = 100
	}
	if high < low {
		high = low
	}
	if high == low {
		return low
	}
	return low + b.rng.Intn(high-low+1)
}
