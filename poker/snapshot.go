package poker

import "github.com/sanity-io/litter"

// PlayerSnapshot is the read-only view of one seat
type PlayerSnapshot struct {
	Name       string   `json:"name"`
	Chips      int      `json:"chips"`
	Bet        int      `json:"bet"`
	HoleCards  []string `json:"holeCards"`
	LastAction string   `json:"lastAction"`
	Folded     bool     `json:"folded"`
}

// Snapshot is a read-only view of the round for rendering. It copies all
// state, so holding onto one never observes later mutations.
type Snapshot struct {
	HandID         string           `json:"handId"`
	Phase          string           `json:"phase"`
	Pot            int              `json:"pot"`
	CurrentBet     int              `json:"currentBet"`
	CurrentPlayer  int              `json:"currentPlayer"`
	DealerPosition int              `json:"dealerPosition"`
	CommunityCards []string         `json:"communityCards"`
	Players        []PlayerSnapshot `json:"players"`
	Complete       bool             `json:"complete"`
}

// Snapshot builds a point-in-time view of the round
func (r *Round) Snapshot() Snapshot {
	community := make([]string, len(r.CommunityCards))
	for i, card := range r.CommunityCards {
		community[i] = card.String()
	}

	players := make([]PlayerSnapshot, len(r.Players))
	for i := range r.Players {
		p := &r.Players[i]
		hole := make([]string, len(p.HoleCards))
		for j, card := range p.HoleCards {
			hole[j] = card.String()
		}
		players[i] = PlayerSnapshot{
			Name:       p.Name,
			Chips:      p.Chips,
			Bet:        p.Bet,
			HoleCards:  hole,
			LastAction: p.LastAction,
			Folded:     p.HasFolded(),
		}
	}

	return Snapshot{
		HandID:         r.ID,
		Phase:          string(r.Phase),
		Pot:            r.Pot,
		CurrentBet:     r.CurrentBet,
		CurrentPlayer:  r.CurrentPlayer,
		DealerPosition: r.DealerPosition,
		CommunityCards: community,
		Players:        players,
		Complete:       r.IsRoundComplete(),
	}
}

// Dump returns a human-readable dump of the round state for debugging
func (r *Round) Dump() string {
	return litter.Sdump(r.Snapshot())
}
