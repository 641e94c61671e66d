package hands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lazharichir/holdem/cards"
)

// ErrInvalidInput is returned when Evaluate is called with fewer than 5
// or more than 7 cards.
var ErrInvalidInput = errors.New("evaluation requires between 5 and 7 cards")

// HandRank represents the category of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of a hand rank
func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandEvaluation is the result of evaluating a set of cards. Primary is the
// main tie-break value for the category (e.g. the pair rank for OnePair, the
// high card of a straight). Kickers hold the remaining tie-break values in
// descending significance. Their length is fixed per category:
//
//	StraightFlush: 0    FourOfAKind: 1    FullHouse: 1 (pair rank)
//	Flush: 4            Straight: 0       ThreeOfAKind: 2
//	TwoPair: 2 (low pair, kicker)         OnePair: 3    HighCard: 4
type HandEvaluation struct {
	Rank    HandRank
	Primary int
	Kickers []int
}

// String returns a short human-readable description of the evaluation
func (e HandEvaluation) String() string {
	return fmt.Sprintf("%s (%d)", e.Rank, e.Primary)
}

// Evaluate determines the best poker hand category contained in a set of
// 5 to 7 cards. It is pure: the input is never mutated, and a fresh
// evaluation is returned on every call.
func Evaluate(stack cards.Stack) (HandEvaluation, error) {
	if len(stack) < 5 || len(stack) > 7 {
		return HandEvaluation{}, fmt.Errorf("%w: got %d", ErrInvalidInput, len(stack))
	}

	rankCounts := make(map[int]int)
	suitCounts := make(map[cards.Suit]int)
	for _, card := range stack {
		rankCounts[card.Rank()]++
		suitCounts[card.Suit]++
	}

	// Distinct ranks, highest first. Duplicates are dropped here but kept
	// in rankCounts for the paired-hand checks.
	distinct := distinctRanksDesc(rankCounts)

	// Straight flush
	for suit, count := range suitCounts {
		if count < 5 {
			continue
		}
		suited := make(map[int]int)
		for _, card := range stack {
			if card.Suit == suit {
				suited[card.Rank()]++
			}
		}
		if high, ok := straightHigh(distinctRanksDesc(suited)); ok {
			return HandEvaluation{Rank: StraightFlush, Primary: high, Kickers: []int{}}, nil
		}
	}

	// Four of a kind
	if quad := highestRankWithCount(rankCounts, 4); quad > 0 {
		kicker := bestKickers(distinct, []int{quad}, 1)
		return HandEvaluation{Rank: FourOfAKind, Primary: quad, Kickers: kicker}, nil
	}

	// Full house: the best trips plus the best separate pair. With seven
	// cards a second set of trips can fill the pair slot.
	trips := ranksWithAtLeast(rankCounts, 3)
	if len(trips) > 0 {
		pair := 0
		for _, rank := range distinct {
			if rank == trips[0] {
				continue
			}
			if rankCounts[rank] >= 2 {
				pair = rank
				break
			}
		}
		if pair > 0 {
			return HandEvaluation{Rank: FullHouse, Primary: trips[0], Kickers: []int{pair}}, nil
		}
	}

	// Flush
	for suit, count := range suitCounts {
		if count < 5 {
			continue
		}
		var suited []int
		for _, card := range stack {
			if card.Suit == suit {
				suited = append(suited, card.Rank())
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(suited)))
		return HandEvaluation{Rank: Flush, Primary: suited[0], Kickers: suited[1:5]}, nil
	}

	// Straight
	if high, ok := straightHigh(distinct); ok {
		return HandEvaluation{Rank: Straight, Primary: high, Kickers: []int{}}, nil
	}

	// Three of a kind
	if len(trips) > 0 {
		kickers := bestKickers(distinct, []int{trips[0]}, 2)
		return HandEvaluation{Rank: ThreeOfAKind, Primary: trips[0], Kickers: kickers}, nil
	}

	// Two pair / one pair
	pairs := ranksWithAtLeast(rankCounts, 2)
	if len(pairs) >= 2 {
		kicker := bestKickers(distinct, []int{pairs[0], pairs[1]}, 1)
		return HandEvaluation{
			Rank:    TwoPair,
			Primary: pairs[0],
			Kickers: []int{pairs[1], kicker[0]},
		}, nil
	}
	if len(pairs) == 1 {
		kickers := bestKickers(distinct, []int{pairs[0]}, 3)
		return HandEvaluation{Rank: OnePair, Primary: pairs[0], Kickers: kickers}, nil
	}

	// High card
	return HandEvaluation{Rank: HighCard, Primary: distinct[0], Kickers: distinct[1:5]}, nil
}

// distinctRanksDesc returns the keys of a rank-count map sorted high to low
func distinctRanksDesc(rankCounts map[int]int) []int {
	ranks := make([]int, 0, len(rankCounts))
	for rank := range rankCounts {
		ranks = append(ranks, rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}

// straightHigh scans distinct descending ranks for five consecutive values
// and returns the high card of the best straight found. The wheel
// (A-2-3-4-5) is checked separately and ranks by the 5, not the Ace.
func straightHigh(distinct []int) (int, bool) {
	for i := 0; i+4 < len(distinct); i++ {
		if distinct[i]-distinct[i+4] == 4 {
			return distinct[i], true
		}
	}

	if containsAll(distinct, 14, 5, 4, 3, 2) {
		return 5, true
	}

	return 0, false
}

func containsAll(ranks []int, wanted ...int) bool {
	for _, w := range wanted {
		found := false
		for _, r := range ranks {
			if r == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// highestRankWithCount returns the highest rank appearing exactly count
// times, or 0 if none does
func highestRankWithCount(rankCounts map[int]int, count int) int {
	best := 0
	for rank, c := range rankCounts {
		if c == count && rank > best {
			best = rank
		}
	}
	return best
}

// ranksWithAtLeast returns all ranks with at least count occurrences,
// highest first
func ranksWithAtLeast(rankCounts map[int]int, count int) []int {
	var ranks []int
	for rank, c := range rankCounts {
		if c >= count {
			ranks = append(ranks, rank)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}

// bestKickers returns up to n of the highest distinct ranks not already
// used by the hand
func bestKickers(distinct []int, used []int, n int) []int {
	kickers := make([]int, 0, n)
	for _, rank := range distinct {
		if len(kickers) == n {
			break
		}
		skip := false
		for _, u := range used {
			if rank == u {
				skip = true
				break
			}
		}
		if !skip {
			kickers = append(kickers, rank)
		}
	}
	return kickers
}

// Compare totally orders two hand evaluations and returns:
// -1 if a is worse than b
// 0 if the hands are equal
// 1 if a is better than b
func Compare(a, b HandEvaluation) int {
	if c := compareInt(int(a.Rank), int(b.Rank)); c != 0 {
		return c
	}
	if c := compareInt(a.Primary, b.Primary); c != 0 {
		return c
	}
	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if c := compareInt(a.Kickers[i], b.Kickers[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
