package poker

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/events"
)

// Phase represents a stage of a hand
type Phase string

const (
	PhasePreFlop  Phase = "preflop"
	PhaseFlop     Phase = "flop"
	PhaseTurn     Phase = "turn"
	PhaseRiver    Phase = "river"
	PhaseShowdown Phase = "showdown"
)

// Round owns all hand-scoped state: the deck, community cards, the pot,
// per-player bets, and whose turn it is. It is a plain value held by its
// caller; nothing here is global. The round assumes serialized access —
// one call in flight at a time.
type Round struct {
	ID             string
	Players        []Player
	Deck           *cards.Deck
	CommunityCards cards.Stack
	Pot            int
	CurrentBet     int
	CurrentPlayer  int
	DealerPosition int
	SmallBlind     int
	BigBlind       int
	Phase          Phase

	started          bool
	showdownResolved bool
	payouts          []Payout
	handlers         []events.EventHandler
}

// NewRound creates a round for the given seats. The dealer button starts
// at seat 0 and rotates on every new hand.
func NewRound(players []Player, smallBlind, bigBlind int) (*Round, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidConfiguration, len(players))
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("%w: blinds %d/%d", ErrInvalidConfiguration, smallBlind, bigBlind)
	}

	seats := make([]Player, len(players))
	copy(seats, players)

	return &Round{
		Players:    seats,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		Phase:      PhasePreFlop,
	}, nil
}

// AddEventHandler registers a handler called for every event the round emits
func (r *Round) AddEventHandler(handler events.EventHandler) {
	r.handlers = append(r.handlers, handler)
}

func (r *Round) emit(event events.Event) {
	for _, handler := range r.handlers {
		handler(event)
	}
}

// StartHand resets all hand-scoped state, shuffles a fresh deck, posts the
// blinds, and deals two hole cards to each player. On every hand after the
// first, the dealer button moves one seat.
func (r *Round) StartHand() error {
	if len(r.Players) < 2 {
		return fmt.Errorf("%w: need at least 2 players", ErrInvalidConfiguration)
	}

	if r.started {
		r.DealerPosition = (r.DealerPosition + 1) % len(r.Players)
	}
	r.started = true

	r.ID = uuid.NewString()
	r.Pot = 0
	r.CurrentBet = 0
	r.CommunityCards = cards.Stack{}
	r.Phase = PhasePreFlop
	r.showdownResolved = false
	r.payouts = nil

	for i := range r.Players {
		r.Players[i].Bet = 0
		r.Players[i].HoleCards = cards.Stack{}
		r.Players[i].LastAction = ""
		r.Players[i].acted = false
	}

	r.Deck = cards.NewDeck()
	r.Deck.Shuffle()

	names := make([]string, len(r.Players))
	for i, p := range r.Players {
		names[i] = p.Name
	}
	r.emit(events.HandStarted{
		HandID:     r.ID,
		Players:    names,
		DealerSeat: r.DealerPosition,
		SmallBlind: r.SmallBlind,
		BigBlind:   r.BigBlind,
	})

	r.postBlinds()

	if err := r.dealHoleCards(); err != nil {
		return err
	}

	// First to act sits after the big blind; a blind can have put that
	// seat all-in already, so skip ahead to one that can still act
	for i := 0; i < len(r.Players); i++ {
		seat := (r.DealerPosition + 3 + i) % len(r.Players)
		if r.Players[seat].CanAct() {
			r.CurrentPlayer = seat
			break
		}
	}

	// Blinds can put a short stack all-in before anyone acts
	for r.Phase != PhaseShowdown && r.isPhaseComplete() {
		if err := r.nextPhase(); err != nil {
			return err
		}
	}

	return nil
}

// postBlinds moves the forced bets into the pot. A short stack posts what
// it has left.
func (r *Round) postBlinds() {
	sbSeat := (r.DealerPosition + 1) % len(r.Players)
	bbSeat := (r.DealerPosition + 2) % len(r.Players)

	sb := min(r.SmallBlind, r.Players[sbSeat].Chips)
	r.Players[sbSeat].Chips -= sb
	r.Players[sbSeat].Bet = sb
	r.Players[sbSeat].LastAction = fmt.Sprintf("Small Blind: %d", sb)
	r.Pot += sb
	r.emit(events.BlindPosted{HandID: r.ID, Player: r.Players[sbSeat].Name, Kind: "small", Amount: sb})

	bb := min(r.BigBlind, r.Players[bbSeat].Chips)
	r.Players[bbSeat].Chips -= bb
	r.Players[bbSeat].Bet = bb
	r.Players[bbSeat].LastAction = fmt.Sprintf("Big Blind: %d", bb)
	r.Pot += bb
	r.emit(events.BlindPosted{HandID: r.ID, Player: r.Players[bbSeat].Name, Kind: "big", Amount: bb})

	r.CurrentBet = r.BigBlind
}

// dealHoleCards deals two cards to each player, one at a time, starting
// left of the dealer
func (r *Round) dealHoleCards() error {
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < len(r.Players); i++ {
			seat := (r.DealerPosition + 1 + i) % len(r.Players)
			card, err := r.Deck.Draw()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInternalInvariant, err)
			}
			r.Players[seat].HoleCards = append(r.Players[seat].HoleCards, card)
		}
	}

	r.emit(events.HoleCardsDealt{HandID: r.ID})
	return nil
}

// CurrentPhase returns the phase the hand is currently in
func (r *Round) CurrentPhase() Phase {
	return r.Phase
}

// IsRoundComplete reports whether the hand has reached showdown or ended
// early because only one player remains
func (r *Round) IsRoundComplete() bool {
	return r.Phase == PhaseShowdown || r.countActive() <= 1
}

func (r *Round) countActive() int {
	count := 0
	for i := range r.Players {
		if !r.Players[i].HasFolded() {
			count++
		}
	}
	return count
}

// LegalActions returns the actions the current player may take, derived
// from the amount left to call and the player's stack. Nil once the hand
// is complete.
func (r *Round) LegalActions() []LegalAction {
	if r.IsRoundComplete() {
		return nil
	}

	player := &r.Players[r.CurrentPlayer]
	if !player.CanAct() {
		return nil
	}

	toCall := r.CurrentBet - player.Bet
	minRaise := r.CurrentBet + r.BigBlind

	legal := []LegalAction{{Action: Fold}}

	if toCall == 0 {
		legal = append(legal, LegalAction{Action: Check})
		if player.Chips >= minRaise-player.Bet {
			legal = append(legal, LegalAction{Action: Bet, Min: minRaise, Max: player.Bet + player.Chips})
		}
	} else {
		if player.Chips >= toCall {
			legal = append(legal, LegalAction{Action: Call, Min: toCall, Max: toCall})
		}
		if player.Chips >= minRaise-player.Bet {
			legal = append(legal, LegalAction{Action: Raise, Min: minRaise, Max: player.Bet + player.Chips})
		}
	}

	legal = append(legal, LegalAction{Action: AllIn, Min: player.Chips, Max: player.Chips})

	return legal
}

// ApplyAction validates and applies one action for the current player.
// A failed precondition returns an error wrapping ErrInvalidAction and
// leaves the round untouched, so the caller can re-prompt.
func (r *Round) ApplyAction(proposed ProposedAction) error {
	if r.IsRoundComplete() {
		return fmt.Errorf("%w: hand is complete", ErrInvalidAction)
	}

	player := &r.Players[r.CurrentPlayer]
	if !player.CanAct() {
		return fmt.Errorf("%w: player %s cannot act", ErrInvalidAction, player.Name)
	}

	switch proposed.Action {

	case Fold:
		player.HoleCards = cards.Stack{}
		player.LastAction = "Folded"
		player.acted = true

	case Check:
		if player.Bet != r.CurrentBet {
			return fmt.Errorf("%w: cannot check facing a bet of %d", ErrInvalidAction, r.CurrentBet)
		}
		player.LastAction = "Checked"
		player.acted = true

	case Bet, Raise:
		target := max(proposed.Amount, r.CurrentBet+r.BigBlind)
		cost := target - player.Bet
		if player.Chips < cost {
			return fmt.Errorf("%w: needs %d chips to make it %d, has %d", ErrInvalidAction, cost, target, player.Chips)
		}
		player.Chips -= cost
		player.Bet = target
		r.Pot += cost
		r.CurrentBet = target
		if proposed.Action == Bet {
			player.LastAction = fmt.Sprintf("Bet: %d", target)
		} else {
			player.LastAction = fmt.Sprintf("Raise: %d", target)
		}
		player.acted = true
		r.reopenBetting(r.CurrentPlayer)

	case Call:
		cost := r.CurrentBet - player.Bet
		if player.Chips < cost {
			return fmt.Errorf("%w: needs %d chips to call, has %d", ErrInvalidAction, cost, player.Chips)
		}
		player.Chips -= cost
		player.Bet = r.CurrentBet
		r.Pot += cost
		player.LastAction = fmt.Sprintf("Called: %d", cost)
		player.acted = true

	case AllIn:
		if player.Chips == 0 {
			return fmt.Errorf("%w: no chips left to go all-in", ErrInvalidAction)
		}
		amount := player.Chips
		player.Chips = 0
		player.Bet += amount
		r.Pot += amount
		// An all-in short of the current bet does not raise it and does
		// not reopen the betting; one that exceeds it does both
		if player.Bet > r.CurrentBet {
			r.CurrentBet = player.Bet
			r.reopenBetting(r.CurrentPlayer)
		}
		player.LastAction = fmt.Sprintf("All-In: %d", amount)
		player.acted = true

	default:
		return fmt.Errorf("%w: unknown action %d", ErrInvalidAction, proposed.Action)
	}

	r.emit(events.ActionApplied{
		HandID: r.ID,
		Player: player.Name,
		Action: proposed.Action.String(),
		Amount: proposed.Amount,
	})

	return r.advanceTurn()
}

// advanceTurn passes the action to the next player who can act, advancing
// the phase once every active player has matched the current bet (all-in
// players exempt)
func (r *Round) advanceTurn() error {
	if r.countActive() <= 1 {
		r.transitionTo(PhaseShowdown)
		return nil
	}

	for i := 1; i <= len(r.Players); i++ {
		seat := (r.CurrentPlayer + i) % len(r.Players)
		if r.Players[seat].CanAct() {
			r.CurrentPlayer = seat
			break
		}
	}

	for r.Phase != PhaseShowdown && r.isPhaseComplete() {
		if err := r.nextPhase(); err != nil {
			return err
		}
	}

	return nil
}

// reopenBetting clears the acted flag on everyone but the raiser, so each
// remaining player gets to respond to the new bet
func (r *Round) reopenBetting(raiserSeat int) {
	for i := range r.Players {
		if i != raiserSeat {
			r.Players[i].acted = false
		}
	}
}

// isPhaseComplete reports whether every active player has acted on this
// street and either matched the current bet or gone all-in
func (r *Round) isPhaseComplete() bool {
	for i := range r.Players {
		p := &r.Players[i]
		if p.HasFolded() || p.Chips == 0 {
			continue
		}
		if !p.acted || p.Bet != r.CurrentBet {
			return false
		}
	}
	return true
}

// nextPhase deals the next street, resets the per-street bets, and gives
// the action to the first player after the dealer
func (r *Round) nextPhase() error {
	switch r.Phase {
	case PhasePreFlop:
		if err := r.dealCommunityCards(3); err != nil {
			return err
		}
		r.transitionTo(PhaseFlop)
	case PhaseFlop:
		if err := r.dealCommunityCards(1); err != nil {
			return err
		}
		r.transitionTo(PhaseTurn)
	case PhaseTurn:
		if err := r.dealCommunityCards(1); err != nil {
			return err
		}
		r.transitionTo(PhaseRiver)
	case PhaseRiver:
		r.transitionTo(PhaseShowdown)
		return nil
	default:
		return nil
	}

	r.CurrentBet = 0
	for i := range r.Players {
		r.Players[i].Bet = 0
		r.Players[i].acted = false
	}

	for i := 1; i <= len(r.Players); i++ {
		seat := (r.DealerPosition + i) % len(r.Players)
		if r.Players[seat].CanAct() {
			r.CurrentPlayer = seat
			break
		}
	}

	return nil
}

func (r *Round) transitionTo(phase Phase) {
	if r.Phase == phase {
		return
	}
	previous := r.Phase
	r.Phase = phase
	r.emit(events.PhaseAdvanced{
		HandID:        r.ID,
		PreviousPhase: string(previous),
		NewPhase:      string(phase),
	})
}

func (r *Round) dealCommunityCards(count int) error {
	drawn, err := r.Deck.DrawN(count)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternalInvariant, err)
	}
	r.CommunityCards = append(r.CommunityCards, drawn...)
	r.emit(events.CommunityCardsDealt{
		HandID: r.ID,
		Phase:  string(r.Phase),
		Count:  count,
	})
	return nil
}
