package poker

// Action represents the type of action a player can take
type Action int

const (
	// Fold discards the hand and forfeits interest in the pot
	Fold Action = iota
	// Check passes the action without betting (only when nothing to call)
	Check
	// Call matches the current bet
	Call
	// Bet opens the betting on a street
	Bet
	// Raise increases the current bet
	Raise
	// AllIn puts all remaining chips in the pot
	AllIn
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "all-in"
	default:
		return "unknown"
	}
}

// ActionFromString converts a string to an Action, used only at the wire
// boundary. Unknown strings map to Fold.
func ActionFromString(s string) Action {
	switch s {
	case "fold":
		return Fold
	case "check":
		return Check
	case "call":
		return Call
	case "bet":
		return Bet
	case "raise":
		return Raise
	case "all-in", "allin":
		return AllIn
	default:
		return Fold
	}
}

// ProposedAction is an action a player wants to take. Amount only matters
// for Bet and Raise.
type ProposedAction struct {
	Action Action
	Amount int
}

// LegalAction describes one action the current player may take, with the
// chip bounds that apply to it.
type LegalAction struct {
	Action Action
	Min    int
	Max    int
}
