package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/agentica-go/agentica/agent"
	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/env"
	"github.com/agentica-go/agentica/report"
	"github.com/agentica-go/agentica/runlog"
)

// TrainCmd trains the learning agent on the windy grid and reports the
// outcome: a one-line summary, the greedy policy, optionally a learning
// curve chart and a persisted run record.
type TrainCmd struct {
	Episodes  int    `help:"Training episodes; 0 uses the configured value."`
	Algorithm string `help:"Learning algorithm (q, sarsa); overrides the config."`
	Chart     string `help:"Write the learning curve to this HTML file." type:"path"`
	Store     string `help:"Record the run in this SQLite file; overrides the config." type:"path"`
}

func (c *TrainCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	if c.Episodes > 0 {
		cfg.Training.Episodes = c.Episodes
	}
	if c.Algorithm != "" {
		cfg.Training.Algorithm = strings.ToLower(c.Algorithm)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	alg := agent.QLearning
	if cfg.Training.Algorithm == "sarsa" {
		alg = agent.SARSA
	}

	world := env.NewWindyGrid()
	learner := agent.NewQLearningAgent(string(alg), world.States(), world.Actions(),
		agent.WithAlpha(cfg.Training.Alpha),
		agent.WithGamma(cfg.Training.Gamma),
		agent.WithEpsilon(cfg.Training.Epsilon),
		agent.WithAlgorithm(alg),
		agent.WithSeed(cfg.Training.Seed),
	)

	fmt.Printf("training %s on the windy grid (%dx%d, %d episodes, α=%g γ=%g ε=%g)\n",
		alg, world.Rows(), world.Cols(), cfg.Training.Episodes,
		cfg.Training.Alpha, cfg.Training.Gamma, cfg.Training.Epsilon)

	start := time.Now()
	rewards, err := learner.Train(nil, world, cfg.Training.Episodes)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	summary := report.TrainingSummary(string(alg), rewards, elapsed)
	fmt.Println(summary)

	fmt.Println("\ngreedy policy (G marks the goal):")
	for _, row := range policyRows(world, learner) {
		fmt.Printf("  %s\n", row)
	}

	if c.Chart != "" {
		series := []report.Series{
			{Name: "reward", Rewards: rewards},
			{Name: "smoothed", Rewards: report.Smooth(rewards, 20)},
		}
		title := fmt.Sprintf("Windy Grid, %s", alg)
		if err := report.SaveLearningCurve(c.Chart, title, series...); err != nil {
			return err
		}
		fmt.Printf("\nlearning curve written to %s\n", c.Chart)
	}

	storePath := cfg.RunLog.Path
	if c.Store != "" {
		storePath = c.Store
	}
	if storePath == "" {
		return nil
	}

	store, err := runlog.Open(storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := core.RunRecord{
		ID:          uuid.NewString(),
		SessionID:   "train",
		Agent:       learner.Name(),
		Scenario:    "windy-grid",
		StartedAt:   start,
		FinishedAt:  start.Add(elapsed),
		Steps:       cfg.Training.Episodes,
		TotalReward: floats.Sum(rewards),
		Summary:     summary,
	}
	if err := store.Save(rec); err != nil {
		return err
	}
	fmt.Printf("run %s recorded in %s\n", rec.ID[:8], storePath)

	return nil
}

// policyRows renders the greedy policy as one arrow glyph per cell.
func policyRows(world *env.Grid, learner *agent.QLearningAgent) []string {
	glyphs := [env.GridActions]byte{env.Up: '^', env.Right: '>', env.Down: 'v', env.Left: '<'}
	policy := learner.Policy()

	rows := make([]string, 0, world.Rows())
	for r := 0; r < world.Rows(); r++ {
		var b strings.Builder
		for col := 0; col < world.Cols(); col++ {
			state := world.StateAt(r, col)
			if state == world.Goal() {
				b.WriteByte('G')
				continue
			}
			b.WriteByte(glyphs[policy[state]])
		}
		rows = append(rows, b.String())
	}

	return rows
}
