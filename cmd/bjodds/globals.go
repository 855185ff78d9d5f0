package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/bjodds/internal/config"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every subcommand
type Globals struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"${defaultConfig}" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level (debug|info|warn|error), overrides config"`
	NoColor  bool             `help:"Disable colored output"`
}

// loadConfig reads the config file and applies flag overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", g.Config, err)
	}

	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if g.NoColor {
		cfg.UI.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}
