package table

import (
	"time"

	"github.com/lazharichir/holdem/poker"
)

// Remote is a DecisionProvider fed by an external source, typically a
// connected client. When asked for a decision it invokes Prompt so the
// caller can solicit input, then waits on Actions. No answer within
// Timeout folds the hand.
type Remote struct {
	Actions chan poker.ProposedAction
	Timeout time.Duration
	Prompt  func(snapshot poker.Snapshot, legal []poker.LegalAction)
}

// NewRemote creates a remote provider with the given decision timeout.
// The Actions channel is buffered so a producer can submit without
// blocking even if the decision already timed out.
func NewRemote(timeout time.Duration) *Remote {
	return &Remote{
		Actions: make(chan poker.ProposedAction, 1),
		Timeout: timeout,
	}
}

// Submit offers an action without blocking. It reports whether the action
// was accepted; a full buffer means a decision is already pending.
func (r *Remote) Submit(proposed poker.ProposedAction) bool {
	select {
	case r.Actions <- proposed:
		return true
	default:
		return false
	}
}

// Decide implements DecisionProvider
func (r *Remote) Decide(snapshot poker.Snapshot, legal []poker.LegalAction) poker.ProposedAction {
	// Discard anything submitted before this turn started
	select {
	case <-r.Actions:
	default:
	}

	if r.Prompt != nil {
		r.Prompt(snapshot, legal)
	}

	timer := time.NewTimer(r.Timeout)
	defer timer.Stop()

	select {
	case proposed := <-r.Actions:
		return proposed
	case <-timer.C:
		return poker.ProposedAction{Action: poker.Fold}
	}
}
