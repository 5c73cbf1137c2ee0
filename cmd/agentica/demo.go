package main

import (
	"context"
	"fmt"
	"time"

	"github.com/agentica-go/agentica"
	"github.com/agentica-go/agentica/agent"
	"github.com/agentica-go/agentica/config"
	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/engine"
	"github.com/agentica-go/agentica/env"
	"github.com/agentica-go/agentica/mas"
	"github.com/agentica-go/agentica/report"
)

// DemoCmd runs one architecture demo through the engine, or chains all
// seven into a suite.
type DemoCmd struct {
	Name     string `arg:"" optional:"" default:"all" enum:"reflex,modelbased,goal,utility,qlearning,smarthome,warehouse,all" help:"Demo to run (default: all)."`
	Parallel bool   `help:"With 'all', run the demos concurrently instead of in order."`
}

// demoEntry binds a demo name to its agent builder. Builders take the
// loaded config so scenario tunables reach the agents.
type demoEntry struct {
	name  string
	title string
	build func(cfg config.Config) core.Agent
}

func demoRegistry() []demoEntry {
	return []demoEntry{
		{
			name:  "reflex",
			title: "Simple Reflex Agent: Vacuum World",
			build: func(config.Config) core.Agent {
				return agent.NewVacuumReflexAgent("vacuum")
			},
		},
		{
			name:  "modelbased",
			title: "Model-Based Reflex Agent: Vacuum World",
			build: func(config.Config) core.Agent {
				return agent.NewModelBasedAgent("cleaner")
			},
		},
		{
			name:  "goal",
			title: "Goal-Based Agent: Corridor Navigation",
			build: func(config.Config) core.Agent {
				return agent.NewGoalAgent("navigator", 50,
					agent.WithCorridor(env.NewCorridor(100, 47, 48)),
					agent.WithStartPosition(45),
				)
			},
		},
		{
			name:  "utility",
			title: "Utility-Based Agent: Campaign Selection",
			build: func(cfg config.Config) core.Agent {
				u := cfg.Scenarios.Utility
				return agent.NewUtilityAgent("chooser",
					agent.WithWeights(agent.Weights{
						Cost: u.CostWeight,
						Time: u.TimeWeight,
						Risk: u.RiskWeight,
					}),
				)
			},
		},
		{
			name:  "qlearning",
			title: "Learning Agent: Recorded Experience Replay",
			build: func(cfg config.Config) core.Agent {
				return agent.NewQLearningAgent("learner", 5, 4,
					agent.WithAlpha(cfg.Training.Alpha),
					agent.WithGamma(cfg.Training.Gamma),
					agent.WithEpsilon(cfg.Training.Epsilon),
					agent.WithSeed(cfg.Training.Seed),
				)
			},
		},
		{
			name:  "smarthome",
			title: "Hierarchical Agents: Smart Home",
			build: func(cfg config.Config) core.Agent {
				climate := agent.NewClimateAgent("climate",
					agent.WithTargetTemperature(cfg.Scenarios.Climate.Target),
					agent.WithTolerance(cfg.Scenarios.Climate.Tolerance),
				)
				return agent.NewSupervisorAgent("home", agent.WithClimate(climate))
			},
		},
		{
			name:  "warehouse",
			title: "Multi-Agent System: Warehouse",
			build: func(cfg config.Config) core.Agent {
				sys := mas.NewSystem(mas.WithSeed(cfg.Training.Seed))
				// IDs are distinct by construction
				_ = sys.Add(mas.NewCoordinator("COORD_01",
					mas.WithChargingStations(cfg.Scenarios.Warehouse.ChargingStations)))
				_ = sys.Add(mas.NewPicker("PICKER_01", mas.Point{X: 2, Y: 3}))
				_ = sys.Add(mas.NewPicker("PICKER_02", mas.Point{X: 7, Y: 8}))
				_ = sys.Add(mas.NewTransport("TRANSPORT_01", mas.Point{X: 1, Y: 1}))
				_ = sys.Add(mas.NewTransport("TRANSPORT_02", mas.Point{X: 9, Y: 9}))

				warehouse := mas.NewWarehouseAgent("warehouse", mas.WithSystem(sys))
				return agent.NewLoopAgent("floor", warehouse,
					agent.WithMaxIters(cfg.Scenarios.Warehouse.Ticks))
			},
		},
	}
}

func (c *DemoCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openRunStore(cfg.RunLog.Path)
	if err != nil {
		return err
	}
	defer closeStore()

	app := agentica.New(func(o *agentica.Options) {
		o.EngineConfig = engine.Config{
			MaxConcurrentRuns: cfg.Engine.MaxConcurrentRuns,
			EventBufferSize:   cfg.Engine.EventBufferSize,
			MaxSteps:          cfg.Engine.MaxSteps,
		}
		o.RunStore = store
		o.Scenario = c.Name
		o.Logger = newLogger(cfg)
	})

	target, title := c.buildTarget(cfg)
	app.RegisterAgent(target)

	fmt.Printf("=== %s ===\n", title)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	_, events, err := app.InvokeSync(ctx, "cli", target.Name(), newUserText("run the "+c.Name+" demo"))
	if err != nil {
		return err
	}
	printEvents(events)

	recs, err := app.Runs(1)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Printf("\n%s\n", report.RunLine(rec))
	}

	return nil
}

// buildTarget constructs the requested demo agent, or the suite wrapper
// when every demo runs.
func (c *DemoCmd) buildTarget(cfg config.Config) (core.Agent, string) {
	registry := demoRegistry()

	if c.Name == "all" {
		children := make([]core.Agent, 0, len(registry))
		for _, d := range registry {
			children = append(children, d.build(cfg))
		}
		if c.Parallel {
			return agent.NewParallelAgent("all", children...), "All Demos (parallel)"
		}
		return agent.NewSequentialAgent("all", children...), "All Demos"
	}

	for _, d := range registry {
		if d.name == c.Name {
			return d.build(cfg), d.title
		}
	}

	// the enum on Name makes this unreachable
	panic(fmt.Sprintf("unknown demo %q", c.Name))
}
