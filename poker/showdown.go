package poker

import (
	"fmt"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/hands"
)

// Payout records one winner's share of the pot
type Payout struct {
	Seat   int    `json:"seat"`
	Player string `json:"player"`
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// ResolveShowdown settles the hand: a single remaining player takes the
// whole pot without evaluation; otherwise every contender's seven cards
// are evaluated and the best hand wins. Ties split the pot as evenly as
// integer division allows, with the odd chip going to the winner seated
// closest after the dealer. Calling it again on a settled hand is a no-op
// returning the same payouts.
func (r *Round) ResolveShowdown() ([]Payout, error) {
	if r.showdownResolved {
		return r.payouts, nil
	}

	if !r.IsRoundComplete() {
		return nil, fmt.Errorf("%w: betting is still open", ErrInvalidAction)
	}

	active := make([]int, 0, len(r.Players))
	for i := range r.Players {
		if !r.Players[i].HasFolded() {
			active = append(active, i)
		}
	}

	if len(active) == 0 {
		return nil, fmt.Errorf("%w: no active players at showdown", ErrInternalInvariant)
	}

	var winners []int
	reason := "showdown"

	if len(active) == 1 {
		winners = active
		reason = "last_player_standing"
	} else {
		evals := make(map[int]hands.HandEvaluation, len(active))
		for _, seat := range active {
			combined := append(cards.Stack{}, r.Players[seat].HoleCards...)
			combined = append(combined, r.CommunityCards...)
			eval, err := hands.Evaluate(combined)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInternalInvariant, err)
			}
			evals[seat] = eval
		}

		for _, seat := range active {
			if len(winners) == 0 {
				winners = []int{seat}
				continue
			}
			switch hands.Compare(evals[seat], evals[winners[0]]) {
			case 1:
				winners = []int{seat}
			case 0:
				winners = append(winners, seat)
			}
		}

		if len(winners) > 1 {
			reason = "split"
		}
	}

	// The odd chip goes to the winner seated closest after the dealer
	orderWinnersFromDealer(winners, r.DealerPosition, len(r.Players))

	share := r.Pot / len(winners)
	remainder := r.Pot % len(winners)

	r.payouts = make([]Payout, 0, len(winners))
	for i, seat := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}
		r.Players[seat].Chips += amount
		r.payouts = append(r.payouts, Payout{
			Seat:   seat,
			Player: r.Players[seat].Name,
			Amount: amount,
			Reason: reason,
		})
		r.emit(events.PotAwarded{
			HandID: r.ID,
			Player: r.Players[seat].Name,
			Amount: amount,
			Reason: reason,
		})
	}

	r.Pot = 0
	r.showdownResolved = true
	r.transitionTo(PhaseShowdown)

	return r.payouts, nil
}

// ShowdownResolved reports whether the pot has already been paid out
func (r *Round) ShowdownResolved() bool {
	return r.showdownResolved
}

// orderWinnersFromDealer sorts winner seats by distance from the seat
// after the dealer
func orderWinnersFromDealer(winners []int, dealer, seats int) {
	distance := func(seat int) int {
		return (seat - dealer - 1 + seats) % seats
	}
	for i := 1; i < len(winners); i++ {
		for j := i; j > 0 && distance(winners[j]) < distance(winners[j-1]); j-- {
			winners[j], winners[j-1] = winners[j-1], winners[j]
		}
	}
}
