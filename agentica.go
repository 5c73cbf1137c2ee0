// Package agentica provides a high-level façade over the core Engine and its
// backing services (sessions, experience, run history & logging) for running
// the classical agent architecture demos. Most applications interact with
// this package by:
//  1. Creating an Agentica via New() (optionally overriding default in-memory services)
//  2. Registering one or more agents (reflex, goal, learning, supervisor, chat, custom)
//  3. Invoking agents asynchronously (Invoke) or synchronously (InvokeSync)
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; a durable run history only needs a runlog.SQLiteStore in Options.
package agentica

import (
	"context"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/engine"
	"github.com/agentica-go/agentica/experience"
	"github.com/agentica-go/agentica/logging"
	"github.com/agentica-go/agentica/runlog"
	"github.com/agentica-go/agentica/session"
)

// Options configures the Agentica instance.
type Options struct {
	// EngineConfig bounds concurrency, event buffering and per-run steps.
	EngineConfig engine.Config

	// Stores (default to in-memory implementations if not provided).
	SessionStore    core.SessionStore
	ExperienceStore core.ExperienceStore

	// RunStore receives a record for every finished run. Set it to nil to
	// disable run history.
	RunStore core.RunStore

	// Scenario labels recorded runs that carry no label of their own
	// (typically the demo or training scenario name).
	Scenario string

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Agentica is the high-level façade aggregating the underlying engine and services.
type Agentica struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new Agentica instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *Agentica {
	opts := Options{
		EngineConfig:    engine.DefaultConfig,
		SessionStore:    session.NewInMemoryStore(),
		ExperienceStore: experience.NewInMemoryStore(),
		RunStore:        runlog.NewInMemoryStore(),
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.SessionStore = opts.SessionStore
		o.ExperienceStore = opts.ExperienceStore
		o.Logger = opts.Logger
		if opts.RunStore != nil {
			o.Callbacks = []engine.Callback{
				engine.NewRunRecorder(opts.RunStore, func(ro *engine.RunRecorderOptions) {
					ro.Scenario = opts.Scenario
				}),
			}
		}
	})

	return &Agentica{opts: opts, engine: e}
}

// RegisterAgent adds an agent to the underlying engine.
func (m *Agentica) RegisterAgent(a core.Agent) { m.engine.Register(a) }

// RegisterCallback adds a lifecycle callback to the underlying engine.
// Register callbacks before starting runs.
func (m *Agentica) RegisterCallback(cb engine.Callback) { m.engine.RegisterCallback(cb) }

// Invoke starts an asynchronous run returning event & error channels.
func (m *Agentica) Invoke(
	ctx context.Context,
	sessionID string,
	agentName string,
	userContent core.Content,
) (string, <-chan core.Event, <-chan error, error) {
	return m.engine.Invoke(ctx, sessionID, agentName, userContent)
}

// InvokeSync executes an agent to completion, collecting the emitted events.
func (m *Agentica) InvokeSync(
	ctx context.Context,
	sessionID string,
	agentName string,
	userContent core.Content,
) (string, []core.Event, error) {
	return m.engine.InvokeSync(ctx, sessionID, agentName, userContent)
}

// StopRun cancels a running invocation by its run ID.
func (m *Agentica) StopRun(runID string) error { return m.engine.StopRun(runID) }

// Session returns a snapshot of the session by ID.
func (m *Agentica) Session(sessionID string) (*core.Session, error) {
	return m.engine.GetSession(sessionID)
}

// Runs returns the most recent run records, newest first. limit <= 0 returns
// all records.
func (m *Agentica) Runs(limit int) ([]core.RunRecord, error) {
	if m.opts.RunStore == nil {
		return nil, nil
	}
	return m.opts.RunStore.List(limit)
}
