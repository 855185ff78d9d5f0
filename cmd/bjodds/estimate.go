package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lox/bjodds/internal/estimator"
	"github.com/lox/bjodds/internal/tui"
)

// EstimateCmd prints the heuristic probabilities for one hand
type EstimateCmd struct {
	Cards  []string `arg:"" help:"Your two cards (2-10, J, Q, K, A)"`
	Dealer string   `short:"d" required:"" help:"Dealer upcard"`
	JSON   bool     `help:"Print the result as JSON"`
}

type estimateOutput struct {
	Result         estimator.Result         `json:"result"`
	Recommendation estimator.Recommendation `json:"recommendation"`
	Regime         string                   `json:"regime"`
}

func (c *EstimateCmd) Run(g *Globals, out io.Writer) error {
	if _, err := g.loadConfig(); err != nil {
		return err
	}

	if len(c.Cards) != 2 {
		return fmt.Errorf("expected exactly two player cards, got %d", len(c.Cards))
	}

	hand, err := estimator.NewHand(c.Cards[0], c.Cards[1], c.Dealer)
	if err != nil {
		return err
	}
	res, err := estimator.Estimate(hand)
	if err != nil {
		return err
	}
	rec := estimator.Recommend(res)

	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(estimateOutput{
			Result:         res,
			Recommendation: rec,
			Regime:         res.Regime().String(),
		})
	}

	recStyle := tui.StandStyle
	if rec.Action == estimator.Hit {
		recStyle = tui.HitStyle
	}

	fmt.Fprintf(out, "Hand total: %d (%s) vs dealer %d\n", res.PlayerTotal, res.Regime(), res.DealerUpcard)
	fmt.Fprintf(out, "Stand: %s\n", tui.StandStyle.Render(fmt.Sprintf("%d%%", res.StandProbability)))
	fmt.Fprintf(out, "Hit:   %s\n", tui.HitStyle.Render(fmt.Sprintf("%d%%", res.HitProbability)))
	fmt.Fprintln(out, recStyle.Render(rec.String()))
	return nil
}
