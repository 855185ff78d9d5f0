package estimator

import "fmt"

// Action is the move the analyzer suggests
type Action int

const (
	Stand Action = iota
	Hit
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// MarshalText encodes the action by name
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Recommendation pairs an action with the probability it was chosen for.
type Recommendation struct {
	Action      Action `json:"action"`
	Probability int    `json:"probability"`
}

// Recommend picks hit only when it is strictly more likely to win; ties stand.
func Recommend(r Result) Recommendation {
	if r.HitProbability > r.StandProbability {
		return Recommendation{Action: Hit, Probability: r.HitProbability}
	}
	return Recommendation{Action: Stand, Probability: r.StandProbability}
}

// String renders the recommendation sentence shown under a result
func (r Recommendation) String() string {
	verb := "standing"
	if r.Action == Hit {
		verb = "hitting"
	}
	return fmt.Sprintf("You should consider %s (%d%% chance of winning).", verb, r.Probability)
}
