// Package estimator turns a two-card blackjack hand and the dealer's upcard
// into heuristic win probabilities for hitting and standing.
//
// The numbers come from a fixed formula, not from enumerating deck
// outcomes:
//
//	hand := estimator.Hand{
//	    Player: [2]card.Symbol{card.Ten, card.Seven},
//	    Dealer: card.Six,
//	}
//	res, err := estimator.Estimate(hand)
//	// res.StandProbability == 47, res.HitProbability == 25
//	rec := estimator.Recommend(res)
//	// rec.Action == estimator.Stand
//
// Both probabilities are capped at MaxProbability. No lower bound is
// applied. For real hands the hit probability bottoms out at 25 (2+2) and
// the stand probability at its constant 20.
package estimator
