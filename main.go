package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", defaultConfigFile, "path to the TOML configuration file")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&serveCmd{}, "")
	commander.Register(&summaryCmd{}, "report")
	commander.Register(&allocationCmd{}, "report")
	commander.Register(&addCmd{}, "holdings")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// setup loads the configuration and wires the application for a command.
func setup(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	log := NewLogger(cfg.Logging, os.Stderr)
	return NewApp(ctx, cfg, log)
}
