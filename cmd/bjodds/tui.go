package main

import (
	"github.com/lox/bjodds/cmd/bjodds/shared"
	"github.com/lox/bjodds/internal/session"
	"github.com/lox/bjodds/internal/tui"
)

// TUICmd runs the full-screen analyzer
type TUICmd struct {
	LogFile    string `help:"Write logs to this file (default: config log_file, or discard)"`
	Calculator bool   `help:"Open straight into the calculator view"`
}

func (c *TUICmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logFile := cfg.Server.LogFile
	if c.LogFile != "" {
		logFile = c.LogFile
	}
	logger, closeLog, err := shared.SetupFileLogger(logFile, cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	start, err := session.ParseView(cfg.UI.StartView)
	if err != nil {
		return err
	}
	if c.Calculator {
		start = session.Calculator
	}

	model := tui.NewModel(logger, tui.Options{
		Pulse:     cfg.Pulse(),
		StartView: start,
	})

	logger.Info("Starting TUI", "view", start, "pulse", cfg.Pulse())
	return tui.Run(shared.SetupSignalHandler(), model)
}
