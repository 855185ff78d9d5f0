package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lox/bjodds/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Estimate EstimateCmd `cmd:"" help:"Estimate hit and stand probabilities for a hand"`
	Table    TableCmd    `cmd:"" help:"Print the basic strategy reference table"`
	TUI      TUICmd      `cmd:"" name:"tui" help:"Run the interactive terminal analyzer"`
	Serve    ServeCmd    `cmd:"" help:"Serve the analyzer over HTTP and WebSocket"`
	Init     InitCmd     `cmd:"" help:"Write a default configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bjodds"),
		kong.Description("Blackjack probability analyzer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":       version,
			"defaultConfig": config.DefaultFile,
		},
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
