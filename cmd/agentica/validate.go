package main

import (
	"fmt"

	"github.com/agentica-go/agentica/config"
)

// ValidateCmd checks a scenario configuration file and optionally echoes
// the effective configuration with defaults applied.
type ValidateCmd struct {
	Path  string `arg:"" optional:"" help:"Config file to validate; defaults to the global --config." type:"path"`
	Print bool   `short:"p" help:"Print the effective configuration."`
}

func (c *ValidateCmd) Run(cli *CLI) error {
	path := c.Path
	if path == "" {
		path = cli.Config
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if path == "" {
		fmt.Println("no config file given; built-in defaults are valid")
	} else {
		fmt.Printf("%s is valid\n", path)
	}

	if c.Print {
		out, err := cfg.Dump()
		if err != nil {
			return err
		}
		fmt.Print(out)
	}

	return nil
}
