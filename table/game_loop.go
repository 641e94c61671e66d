package table

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/poker"
)

// Config holds the table parameters. Defaults mirror a casual heads-up
// cash game: 10/20 blinds and 1000-chip stacks.
type Config struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
	// BotDelay paces automated decisions so a UI can animate them. The
	// round itself does not care when actions arrive.
	BotDelay time.Duration
}

// DefaultConfig returns the standard heads-up table configuration
func DefaultConfig() Config {
	return Config{
		SmallBlind:    10,
		BigBlind:      20,
		StartingChips: 1000,
		BotDelay:      800 * time.Millisecond,
	}
}

// DecisionProvider chooses one action for a seat, given a snapshot of the
// round and the set of legal actions. The loop is agnostic to whether the
// decision comes from a human or a bot.
type DecisionProvider interface {
	Decide(snapshot poker.Snapshot, legal []poker.LegalAction) poker.ProposedAction
}

// DecisionFunc adapts a plain function to the DecisionProvider interface
type DecisionFunc func(snapshot poker.Snapshot, legal []poker.LegalAction) poker.ProposedAction

// Decide implements DecisionProvider
func (f DecisionFunc) Decide(snapshot poker.Snapshot, legal []poker.LegalAction) poker.ProposedAction {
	return f(snapshot, legal)
}

// GameLoop drives a heads-up round to completion, asking each seat's
// DecisionProvider for an action whenever it is that seat's turn. All
// round access happens on the loop's goroutine; the round itself is never
// shared.
type GameLoop struct {
	round     *poker.Round
	providers []DecisionProvider
	config    Config
	store     events.EventStore
	logger    *zap.Logger
	onUpdate  func(poker.Snapshot)
}

// NewGameLoop creates a loop over the given seats. Seat names and
// providers are parallel: providers[i] decides for seats[i].
func NewGameLoop(seats []string, providers []DecisionProvider, config Config, store events.EventStore, logger *zap.Logger) (*GameLoop, error) {
	if len(seats) != len(providers) {
		return nil, fmt.Errorf("%w: %d seats but %d providers", poker.ErrInvalidConfiguration, len(seats), len(providers))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	players := make([]poker.Player, len(seats))
	for i, name := range seats {
		players[i] = poker.Player{Name: name, Chips: config.StartingChips}
	}

	round, err := poker.NewRound(players, config.SmallBlind, config.BigBlind)
	if err != nil {
		return nil, err
	}

	loop := &GameLoop{
		round:     round,
		providers: providers,
		config:    config,
		store:     store,
		logger:    logger,
	}

	round.AddEventHandler(loop.recordEvent)

	return loop, nil
}

// OnUpdate registers a callback invoked with a fresh snapshot after every
// state change, for a UI layer to render
func (g *GameLoop) OnUpdate(fn func(poker.Snapshot)) {
	g.onUpdate = fn
}

// Round exposes the underlying round for inspection
func (g *GameLoop) Round() *poker.Round {
	return g.round
}

func (g *GameLoop) recordEvent(event events.Event) {
	g.logger.Debug("hand event", zap.String("event", event.EventName()))
	if g.store != nil {
		if err := g.store.Append(event); err != nil {
			g.logger.Warn("failed to append event", zap.Error(err))
		}
	}
}

func (g *GameLoop) notify() {
	if g.onUpdate != nil {
		g.onUpdate(g.round.Snapshot())
	}
}

// PlayHand runs a single hand from deal to payout and returns the payouts.
// The context cancels the hand between decisions; a cancelled hand is
// simply abandoned, since the round owns all hand-scoped state.
func (g *GameLoop) PlayHand(ctx context.Context) ([]poker.Payout, error) {
	if err := g.round.StartHand(); err != nil {
		return nil, err
	}

	g.logger.Info("hand started",
		zap.String("hand_id", g.round.ID),
		zap.Int("dealer", g.round.DealerPosition),
	)
	g.notify()

	for !g.round.IsRoundComplete() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seat := g.round.CurrentPlayer
		legal := g.round.LegalActions()
		if len(legal) == 0 {
			// Everyone who could act is all-in; the round fast-forwards
			// on its own, so an empty legal set here means a stuck state
			return nil, fmt.Errorf("%w: no legal actions for seat %d", poker.ErrInternalInvariant, seat)
		}

		proposed := g.providers[seat].Decide(g.round.Snapshot(), legal)

		if err := g.pace(ctx); err != nil {
			return nil, err
		}

		if err := g.round.ApplyAction(proposed); err != nil {
			if !errors.Is(err, poker.ErrInvalidAction) {
				return nil, err
			}
			// An illegal decision costs the seat its mildest legal
			// action: check when possible, otherwise fold
			g.logger.Warn("illegal action, substituting",
				zap.String("player", g.round.Players[seat].Name),
				zap.String("action", proposed.Action.String()),
				zap.Error(err),
			)
			if err := g.round.ApplyAction(fallbackAction(legal)); err != nil {
				return nil, err
			}
		}

		g.notify()
	}

	payouts, err := g.round.ResolveShowdown()
	if err != nil {
		return nil, err
	}

	for _, payout := range payouts {
		g.logger.Info("pot awarded",
			zap.String("hand_id", g.round.ID),
			zap.String("player", payout.Player),
			zap.Int("amount", payout.Amount),
			zap.String("reason", payout.Reason),
		)
	}
	g.notify()

	return payouts, nil
}

// Run plays hands back to back until the context is cancelled or a seat
// runs out of chips
func (g *GameLoop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, p := range g.round.Players {
			if p.Chips == 0 {
				g.logger.Info("game over", zap.String("broke", p.Name))
				return nil
			}
		}

		if _, err := g.PlayHand(ctx); err != nil {
			return err
		}
	}
}

// pace waits the configured delay so decisions land at a human-watchable
// rhythm
func (g *GameLoop) pace(ctx context.Context) error {
	if g.config.BotDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(g.config.BotDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fallbackAction picks the mildest legal action: check if available,
// otherwise fold
func fallbackAction(legal []poker.LegalAction) poker.ProposedAction {
	for _, la := range legal {
		if la.Action == poker.Check {
			return poker.ProposedAction{Action: poker.Check}
		}
	}
	return poker.ProposedAction{Action: poker.Fold}
}
