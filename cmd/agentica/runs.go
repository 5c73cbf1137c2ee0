package main

import (
	"fmt"

	"github.com/agentica-go/agentica/report"
	"github.com/agentica-go/agentica/runlog"
)

// RunsCmd lists the persisted run history, newest first.
type RunsCmd struct {
	Limit int    `help:"Show at most this many records (0 = all)." default:"20"`
	Store string `help:"SQLite run history file; overrides the config." type:"path"`
}

func (c *RunsCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}

	path := cfg.RunLog.Path
	if c.Store != "" {
		path = c.Store
	}
	if path == "" {
		return fmt.Errorf("no run history file: pass --store or set runlog.path in the config")
	}

	store, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(c.Limit)
	if err != nil {
		return err
	}
	fmt.Print(report.RunTable(recs))

	return nil
}
