package session

import "github.com/lox/bjodds/internal/estimator"

// Snapshot is a point-in-time copy of a State for rendering or sending to a
// client.
type Snapshot struct {
	View           string                    `json:"view"`
	Player         [2]string                 `json:"player"`
	Dealer         string                    `json:"dealer"`
	CanCompute     bool                      `json:"canCompute"`
	Result         *estimator.Result         `json:"result,omitempty"`
	Recommendation *estimator.Recommendation `json:"recommendation,omitempty"`
	Pulsing        bool                      `json:"pulsing"`
}

// Snapshot copies the current state
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		View:       s.view.String(),
		Player:     [2]string{s.cards[PlayerFirst].String(), s.cards[PlayerSecond].String()},
		Dealer:     s.cards[Dealer].String(),
		CanCompute: s.hand().Ready(),
		Pulsing:    s.pulsing,
	}
	if s.result != nil {
		res := *s.result
		rec := estimator.Recommend(res)
		snap.Result = &res
		snap.Recommendation = &rec
	}
	return snap
}
