package table

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/poker"
)

// script feeds a fixed sequence of actions in turn order, whichever seat
// asks. An exhausted script folds.
type script struct {
	actions []poker.ProposedAction
}

func (s *script) Decide(_ poker.Snapshot, _ []poker.LegalAction) poker.ProposedAction {
	if len(s.actions) == 0 {
		return poker.ProposedAction{Action: poker.Fold}
	}
	next := s.actions[0]
	s.actions = s.actions[1:]
	return next
}

func fastConfig() Config {
	config := DefaultConfig()
	config.BotDelay = 0
	return config
}

func newScriptedLoop(t *testing.T, actions []poker.ProposedAction) (*GameLoop, *events.InMemoryEventStore) {
	t.Helper()
	shared := &script{actions: actions}
	store := events.NewInMemoryEventStore()
	loop, err := NewGameLoop(
		[]string{"You", "Bot"},
		[]DecisionProvider{shared, shared},
		fastConfig(),
		store,
		nil,
	)
	require.NoError(t, err)
	return loop, store
}

func TestNewGameLoop_SeatProviderMismatch(t *testing.T) {
	_, err := NewGameLoop([]string{"You", "Bot"}, []DecisionProvider{&script{}}, fastConfig(), nil, nil)
	require.ErrorIs(t, err, poker.ErrInvalidConfiguration)
}

func TestPlayHand_CheckedDownToShowdown(t *testing.T) {
	loop, store := newScriptedLoop(t, []poker.ProposedAction{
		{Action: poker.Call},  // small blind completes
		{Action: poker.Check}, // big blind takes its option
		{Action: poker.Check}, {Action: poker.Check}, // flop
		{Action: poker.Check}, {Action: poker.Check}, // turn
		{Action: poker.Check}, {Action: poker.Check}, // river
	})

	payouts, err := loop.PlayHand(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, payouts)

	round := loop.Round()
	assert.True(t, round.IsRoundComplete())

	total := 0
	for _, payout := range payouts {
		total += payout.Amount
	}
	assert.Equal(t, 40, total, "both players put in one big blind")

	chips := round.Players[0].Chips + round.Players[1].Chips
	assert.Equal(t, 2000, chips)

	recorded, err := store.LoadEvents(round.ID)
	require.NoError(t, err)
	require.NotEmpty(t, recorded)
	assert.Equal(t, "HAND_STARTED", recorded[0].EventName())
	assert.Equal(t, "POT_AWARDED", recorded[len(recorded)-1].EventName())
}

func TestPlayHand_FoldEndsImmediately(t *testing.T) {
	loop, _ := newScriptedLoop(t, []poker.ProposedAction{
		{Action: poker.Fold}, // small blind gives up
	})

	payouts, err := loop.PlayHand(context.Background())
	require.NoError(t, err)
	require.Len(t, payouts, 1)

	assert.Equal(t, "You", payouts[0].Player)
	assert.Equal(t, 30, payouts[0].Amount)
	assert.Equal(t, "last_player_standing", payouts[0].Reason)
}

func TestPlayHand_IllegalActionFallsBack(t *testing.T) {
	// Checking while facing the big blind is illegal; the loop substitutes
	// a fold and the hand ends
	loop, _ := newScriptedLoop(t, []poker.ProposedAction{
		{Action: poker.Check},
	})

	payouts, err := loop.PlayHand(context.Background())
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, "You", payouts[0].Player)
}

func TestPlayHand_CancelledContext(t *testing.T) {
	loop, _ := newScriptedLoop(t, []poker.ProposedAction{
		{Action: poker.Call},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loop.PlayHand(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlayHand_UpdatesObserved(t *testing.T) {
	loop, _ := newScriptedLoop(t, []poker.ProposedAction{
		{Action: poker.Fold},
	})

	var snapshots []poker.Snapshot
	loop.OnUpdate(func(s poker.Snapshot) {
		snapshots = append(snapshots, s)
	})

	_, err := loop.PlayHand(context.Background())
	require.NoError(t, err)

	// At least: after deal, after the fold, after the payout
	require.GreaterOrEqual(t, len(snapshots), 3)
	assert.False(t, snapshots[0].Complete)
	assert.True(t, snapshots[len(snapshots)-1].Complete)
	assert.Equal(t, 0, snapshots[len(snapshots)-1].Pot)
}

func TestPlayHand_TwoBotsConserveChips(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	store := events.NewInMemoryEventStore()
	loop, err := NewGameLoop(
		[]string{"You", "Bot"},
		[]DecisionProvider{NewBot(rng), NewBot(rng)},
		fastConfig(),
		store,
		nil,
	)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		round := loop.Round()
		if round.Players[0].Chips == 0 || round.Players[1].Chips == 0 {
			break
		}

		payouts, err := loop.PlayHand(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, payouts)

		chips := round.Players[0].Chips + round.Players[1].Chips
		require.Equal(t, 2000, chips, "chips must be conserved across hands")
	}
}

func TestBot_ChecksOrBetsWhenFree(t *testing.T) {
	bot := NewBot(rand.New(rand.NewSource(7)))

	snapshot := poker.Snapshot{
		CurrentBet:    0,
		CurrentPlayer: 0,
		Players: []poker.PlayerSnapshot{
			{Name: "Bot", Chips: 1000, Bet: 0},
			{Name: "You", Chips: 1000, Bet: 0},
		},
	}
	legal := []poker.LegalAction{
		{Action: poker.Fold},
		{Action: poker.Check},
		{Action: poker.Bet, Min: 20, Max: 1000},
		{Action: poker.AllIn, Min: 1000, Max: 1000},
	}

	for i := 0; i < 50; i++ {
		proposed := bot.Decide(snapshot, legal)
		switch proposed.Action {
		case poker.Check:
		case poker.Bet:
			assert.GreaterOrEqual(t, proposed.Amount, 20)
			assert.LessOrEqual(t, proposed.Amount, 100)
		default:
			t.Fatalf("unexpected free action %s", proposed.Action)
		}
	}
}

func TestBot_FoldsWhenPriceTooHigh(t *testing.T) {
	bot := NewBot(rand.New(rand.NewSource(7)))
	bot.BluffRate = 0

	snapshot := poker.Snapshot{
		CurrentBet:    900,
		CurrentPlayer: 0,
		Players: []poker.PlayerSnapshot{
			{Name: "Bot", Chips: 1000, Bet: 0},
			{Name: "You", Chips: 100, Bet: 900},
		},
	}
	legal := []poker.LegalAction{
		{Action: poker.Fold},
		{Action: poker.Call, Min: 900, Max: 900},
		{Action: poker.AllIn, Min: 1000, Max: 1000},
	}

	proposed := bot.Decide(snapshot, legal)
	assert.Equal(t, poker.Fold, proposed.Action)
}

func TestBot_CallsAffordableBets(t *testing.T) {
	bot := NewBot(rand.New(rand.NewSource(7)))
	bot.BluffRate = 0

	snapshot := poker.Snapshot{
		CurrentBet:    100,
		CurrentPlayer: 0,
		Players: []poker.PlayerSnapshot{
			{Name: "Bot", Chips: 1000, Bet: 0},
			{Name: "You", Chips: 900, Bet: 100},
		},
	}
	legal := []poker.LegalAction{
		{Action: poker.Fold},
		{Action: poker.Call, Min: 100, Max: 100},
		{Action: poker.Raise, Min: 120, Max: 1000},
		{Action: poker.AllIn, Min: 1000, Max: 1000},
	}

	proposed := bot.Decide(snapshot, legal)
	assert.Equal(t, poker.Call, proposed.Action)
}
