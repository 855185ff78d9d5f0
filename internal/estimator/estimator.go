package estimator

import (
	"errors"
	"fmt"

	"github.com/lox/bjodds/internal/card"
)

// ErrIncompleteHand is returned when any of the three cards is missing.
var ErrIncompleteHand = errors.New("hand is incomplete: select both player cards and the dealer upcard")

const (
	// MaxProbability is the ceiling applied to both probabilities.
	MaxProbability = 95

	// StandThreshold is the lowest total handled by the stand-favored regime.
	StandThreshold = 17

	// lowDealerMax is the highest upcard treated as a weak dealer.
	lowDealerMax = 6

	constantHit   = 25
	constantStand = 20
)

// Regime names the branch of the heuristic a total falls into
type Regime int

const (
	HitFavored Regime = iota
	StandFavored
)

// String returns the regime name
func (r Regime) String() string {
	switch r {
	case HitFavored:
		return "hit-favored"
	case StandFavored:
		return "stand-favored"
	default:
		return "unknown"
	}
}

// RegimeFor returns the regime used for a player total.
func RegimeFor(total int) Regime {
	if total >= StandThreshold {
		return StandFavored
	}
	return HitFavored
}

// Hand is the input to Estimate: two player cards and the dealer upcard.
type Hand struct {
	Player [2]card.Symbol
	Dealer card.Symbol
}

// NewHand parses card text into a Hand
func NewHand(first, second, dealer string) (Hand, error) {
	var h Hand
	for i, text := range []string{first, second} {
		sym, err := card.Parse(text)
		if err != nil {
			return Hand{}, fmt.Errorf("player card %d: %w", i+1, err)
		}
		h.Player[i] = sym
	}
	sym, err := card.Parse(dealer)
	if err != nil {
		return Hand{}, fmt.Errorf("dealer card: %w", err)
	}
	h.Dealer = sym
	return h, nil
}

// Ready reports whether all three cards are selected
func (h Hand) Ready() bool {
	return !h.Player[0].IsNone() && !h.Player[1].IsNone() && !h.Dealer.IsNone()
}

// Total returns the sum of the player's card values
func (h Hand) Total() int {
	return h.Player[0].Value() + h.Player[1].Value()
}

// Result is one estimation. Probabilities are integer percentages.
type Result struct {
	PlayerTotal      int `json:"playerTotal"`
	DealerUpcard     int `json:"dealerUpcard"`
	HitProbability   int `json:"hitProbability"`
	StandProbability int `json:"standProbability"`
}

// Regime returns the branch this result was computed in
func (r Result) Regime() Regime {
	return RegimeFor(r.PlayerTotal)
}

// Estimate computes the hit and stand probabilities for a hand.
func Estimate(h Hand) (Result, error) {
	if !h.Ready() {
		return Result{}, ErrIncompleteHand
	}
	for _, sym := range []card.Symbol{h.Player[0], h.Player[1], h.Dealer} {
		if sym.Index() < 0 {
			return Result{}, fmt.Errorf("%w: %q", card.ErrInvalidCard, sym)
		}
	}

	total := h.Total()
	dealer := h.Dealer.Value()
	hit, stand := probabilities(total, dealer)

	return Result{
		PlayerTotal:      total,
		DealerUpcard:     dealer,
		HitProbability:   clamp(hit),
		StandProbability: clamp(stand),
	}, nil
}

// probabilities applies the raw formula without the ceiling.
func probabilities(total, dealer int) (hit, stand int) {
	if RegimeFor(total) == StandFavored {
		if dealer <= lowDealerMax {
			stand = 45 + (total-16)*2
		} else {
			stand = 30 + (total-16)*3
		}
		return constantHit, stand
	}

	if total <= 11 {
		hit = 60 - (11-total)*5
	} else {
		hit = 50 - (total-12)*5
	}
	return hit, constantStand
}

// clamp caps p at MaxProbability. Values below zero pass through.
func clamp(p int) int {
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}
