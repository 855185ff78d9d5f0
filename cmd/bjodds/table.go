package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lox/bjodds/internal/strategy"
	"github.com/lox/bjodds/internal/tui"
)

// TableCmd prints the basic strategy chart
type TableCmd struct {
	JSON bool `help:"Print the table as JSON"`
}

func (c *TableCmd) Run(g *Globals, out io.Writer) error {
	if _, err := g.loadConfig(); err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(strategy.Rows())
	}

	_, err := fmt.Fprintln(out, tui.RenderStrategyTable())
	return err
}
