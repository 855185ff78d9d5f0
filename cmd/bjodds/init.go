package main

import (
	"fmt"
	"io"

	"github.com/lox/bjodds/internal/config"
)

// InitCmd writes a default configuration file
type InitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing file"`
}

func (c *InitCmd) Run(g *Globals, out io.Writer) error {
	if err := config.Write(g.Config, config.Default(), c.Force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Wrote %s\n", g.Config)
	return err
}
