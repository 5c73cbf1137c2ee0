// Command agentica runs the agent architecture demos from the terminal:
// single demos or the whole suite, episode training with a learning-curve
// chart, the recorded run history, an interactive tool-calling chat, and
// scenario config validation.
//
// Usage:
//
//	agentica demo reflex
//	agentica demo all --parallel
//	agentica train --episodes 500 --algorithm sarsa --chart curve.html
//	agentica runs --limit 10 --store runs.db
//	agentica chat --provider openai
//	agentica validate --config scenario.yaml
package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/agentica-go/agentica/config"
	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/logging"
	"github.com/agentica-go/agentica/runlog"
)

// CLI defines the command-line interface.
type CLI struct {
	Demo     DemoCmd     `cmd:"" help:"Run one architecture demo, or all of them."`
	Train    TrainCmd    `cmd:"" help:"Train the learning agent on the windy grid."`
	Runs     RunsCmd     `cmd:"" help:"Show the recorded run history."`
	Chat     ChatCmd     `cmd:"" help:"Chat with the tool-calling agent."`
	Validate ValidateCmd `cmd:"" help:"Validate a scenario configuration file."`

	Config    string `short:"c" help:"Path to the scenario config file." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error); overrides the config."`
	LogFormat string `help:"Log format (text, json); overrides the config."`
	Seed      int64  `help:"Random seed; overrides the config."`
}

// loadConfig loads the scenario config and applies the global flag
// overrides on top of it.
func (cli *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return config.Config{}, err
	}

	if cli.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(cli.LogLevel)
	}
	if cli.LogFormat != "" {
		cfg.Logging.Format = strings.ToLower(cli.LogFormat)
	}
	if cli.Seed != 0 {
		cfg.Training.Seed = cli.Seed
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg config.Config) logging.Logger {
	return logging.NewSlogLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format, false)
}

// openRunStore returns the run store for path: SQLite when set, in-memory
// otherwise. The returned func closes whatever was opened.
func openRunStore(path string) (core.RunStore, func(), error) {
	if path == "" {
		return runlog.NewInMemoryStore(), func() {}, nil
	}

	store, err := runlog.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return store, func() { _ = store.Close() }, nil
}

// printEvents replays run events as labeled terminal lines: text parts
// verbatim, action parts with their rationale.
func printEvents(events []core.Event) {
	for _, ev := range events {
		if ev.Content == nil || ev.IsPartial() {
			continue
		}
		for _, part := range ev.Content.Parts {
			switch p := part.(type) {
			case core.TextPart:
				fmt.Printf("[%s] %s\n", ev.Author, p.Text)
			case core.ActionPart:
				if p.Rationale != "" {
					fmt.Printf("[%s] %s (%s)\n", ev.Author, p.Action, p.Rationale)
				} else {
					fmt.Printf("[%s] %s\n", ev.Author, p.Action)
				}
			}
		}
	}
}

func newUserText(txt string) core.Content {
	return core.Content{Role: "user", Parts: []core.Part{core.TextPart{Text: txt}}}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("agentica"),
		kong.Description("Classical agent architectures as runnable demos."),
		kong.UsageOnError(),
	)

	ctx.FatalIfErrorf(ctx.Run(&cli))
}
