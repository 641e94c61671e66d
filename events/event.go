package events

import "reflect"

// Event is the interface that all hand events must implement.
type Event interface {
	EventName() string // Returns a unique name for the event type
}

// EventHandler receives events as they are emitted by a round.
type EventHandler func(event Event)

// GetHandID extracts the HandID field from an event, if present.
func GetHandID(event Event) string {
	val := reflect.ValueOf(event)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	field := val.FieldByName("HandID")
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}

// HandStarted is emitted when a new hand begins.
type HandStarted struct {
	HandID     string
	Players    []string
	DealerSeat int
	SmallBlind int
	BigBlind   int
}

func (e HandStarted) EventName() string { return "HAND_STARTED" }

// BlindPosted is emitted when a forced blind bet enters the pot.
type BlindPosted struct {
	HandID string
	Player string
	Kind   string // "small" or "big"
	Amount int
}

func (e BlindPosted) EventName() string { return "BLIND_POSTED" }

// HoleCardsDealt is emitted once both players have their private cards.
type HoleCardsDealt struct {
	HandID string
}

func (e HoleCardsDealt) EventName() string { return "HOLE_CARDS_DEALT" }

// CommunityCardsDealt is emitted when community cards hit the board.
type CommunityCardsDealt struct {
	HandID string
	Phase  string
	Count  int
}

func (e CommunityCardsDealt) EventName() string { return "COMMUNITY_CARDS_DEALT" }

// ActionApplied is emitted after a legal player action mutates the round.
type ActionApplied struct {
	HandID string
	Player string
	Action string
	Amount int
}

func (e ActionApplied) EventName() string { return "ACTION_APPLIED" }

// PhaseAdvanced is emitted when the betting round moves to the next phase.
type PhaseAdvanced struct {
	HandID        string
	PreviousPhase string
	NewPhase      string
}

func (e PhaseAdvanced) EventName() string { return "PHASE_ADVANCED" }

// PotAwarded is emitted once per winner at payout.
type PotAwarded struct {
	HandID string
	Player string
	Amount int
	Reason string // "showdown", "split", "last_player_standing"
}

func (e PotAwarded) EventName() string { return "POT_AWARDED" }
