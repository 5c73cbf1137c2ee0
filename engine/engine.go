package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/experience"
	"github.com/agentica-go/agentica/logging"
	"github.com/agentica-go/agentica/session"
)

// Config holds the engine's operational tuning knobs.
type Config struct {
	// MaxConcurrentRuns caps how many agent runs execute at once; runs over
	// the cap queue until a slot frees. 0 means unlimited.
	MaxConcurrentRuns int

	// EventBufferSize is the buffer of the per-run event channels.
	EventBufferSize int

	// MaxSteps bounds the decision steps of a single run through the run
	// context's StepLimiter. 0 means unlimited.
	MaxSteps int
}

// DefaultConfig is the baseline configuration used by New.
var DefaultConfig = Config{
	MaxConcurrentRuns: 10,
	EventBufferSize:   100,
	MaxSteps:          1000,
}

// Options configures an Engine. All services default to in-memory
// implementations, so a bare New() is immediately usable in demos and tests.
type Options struct {
	Config Config

	SessionStore    core.SessionStore
	ExperienceStore core.ExperienceStore
	Logger          logging.Logger

	// Callbacks are registered with the engine at construction time.
	Callbacks []Callback
}

// Engine is the concrete core.Engine: an agent registry plus the per-run
// goroutines wiring agents to the event pipeline and the backing stores.
type Engine struct {
	sessionStore    core.SessionStore
	experienceStore core.ExperienceStore
	logger          logging.Logger
	config          Config
	callbacks       *CallbackManager

	agents map[string]core.Agent
	mu     sync.RWMutex

	activeRuns map[string]context.CancelFunc
	runsMu     sync.Mutex

	sem chan struct{} // nil when MaxConcurrentRuns == 0
}

var _ core.Engine = (*Engine)(nil)

// New creates an Engine; see Options for the defaults.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:          DefaultConfig,
		SessionStore:    session.NewInMemoryStore(),
		ExperienceStore: experience.NewInMemoryStore(),
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	cm := NewCallbackManager()
	for _, cb := range opts.Callbacks {
		cm.Register(cb)
	}

	e := &Engine{
		sessionStore:    opts.SessionStore,
		experienceStore: opts.ExperienceStore,
		logger:          opts.Logger,
		config:          opts.Config,
		callbacks:       cm,
		agents:          make(map[string]core.Agent),
		activeRuns:      make(map[string]context.CancelFunc),
	}
	if opts.Config.MaxConcurrentRuns > 0 {
		e.sem = make(chan struct{}, opts.Config.MaxConcurrentRuns)
	}

	return e
}

// Register adds (or replaces) an agent under its name.
func (e *Engine) Register(a core.Agent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.agents[a.Name()] = a
}

// GetAgent returns a registered agent by name.
func (e *Engine) GetAgent(name string) (core.Agent, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.agents[name]
	return a, ok
}

// RegisterCallback adds a lifecycle callback. Register callbacks before
// starting runs; the manager is not synchronized against live execution.
func (e *Engine) RegisterCallback(cb Callback) {
	e.callbacks.Register(cb)
}

// Invoke starts an asynchronous agent run. It returns the run ID plus the
// streaming event channel and the terminal error channel (buffered size 1);
// both close when the run finishes.
func (e *Engine) Invoke(
	ctx context.Context,
	sessionID string,
	agentName string,
	userContent core.Content,
) (string, <-chan core.Event, <-chan error, error) {
	agent, ok := e.GetAgent(agentName)
	if !ok {
		return "", nil, nil, fmt.Errorf("agent %s not found", agentName)
	}

	sess, err := e.sessionStore.Get(sessionID)
	if err != nil {
		return "", nil, nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	runID := uuid.NewString()

	eventsCh := make(chan core.Event, e.config.EventBufferSize)
	errorsCh := make(chan error, 1)
	agentEmit := make(chan core.Event, e.config.EventBufferSize)
	resumeCh := make(chan struct{}, 1)

	runCtx, cancel := context.WithCancel(ctx)

	e.runsMu.Lock()
	e.activeRuns[runID] = cancel
	e.runsMu.Unlock()

	info := core.AgentInfo{Name: agent.Name(), Type: agentType(agent)}
	rc := core.NewRunContext(
		runCtx,
		sessionID,
		runID,
		info,
		userContent,
		e.config.MaxSteps,
		agentEmit,
		resumeCh,
		sess,
		e.sessionStore,
		e.experienceStore,
		e.logger,
	)

	// the user input opens this run's history
	userEvent := core.NewUserContentEvent(runID, &userContent)
	if err := e.sessionStore.AppendEvent(sessionID, userEvent); err != nil {
		cancel()
		e.runsMu.Lock()
		delete(e.activeRuns, runID)
		e.runsMu.Unlock()
		return "", nil, nil, fmt.Errorf("append user event: %w", err)
	}

	rec := &core.RunRecord{
		ID:        runID,
		SessionID: sessionID,
		Agent:     agent.Name(),
		StartedAt: time.Now().UTC(),
	}

	runDone := make(chan error, 1)

	go func() {
		defer func() {
			e.runsMu.Lock()
			delete(e.activeRuns, runID)
			e.runsMu.Unlock()
			close(agentEmit)
		}()

		if e.sem != nil {
			select {
			case <-runCtx.Done():
				runDone <- runCtx.Err()
				return
			case e.sem <- struct{}{}:
			}
			defer func() { <-e.sem }()
		}

		cc := &CallbackContext{RunContext: rc, Agent: agent.Name(), Type: CallbackBeforeAgent, Record: rec}
		if err := e.callbacks.Execute(runCtx, CallbackBeforeAgent, cc); err != nil {
			runDone <- fmt.Errorf("before agent callback: %w", err)
			return
		}

		e.logger.Debug("run %s started for agent %s in session %s", runID, agent.Name(), sessionID)
		runDone <- e.runAgent(rc, agent)
	}()

	go func() {
		defer close(eventsCh)
		defer close(errorsCh)
		defer cancel()

		pipeErr := e.pump(runCtx, rc, rec, agentEmit, resumeCh, eventsCh)
		if pipeErr != nil {
			cancel() // unblock an agent still emitting
		}

		runErr := <-runDone
		if pipeErr != nil {
			runErr = pipeErr
		}

		e.finishRun(rc, rec, runErr, errorsCh)
	}()

	return runID, eventsCh, errorsCh, nil
}

// InvokeSync executes an agent to completion and returns every event the run
// forwarded, in order, together with the run ID.
func (e *Engine) InvokeSync(
	ctx context.Context,
	sessionID string,
	agentName string,
	userContent core.Content,
) (string, []core.Event, error) {
	runID, eventsCh, errorsCh, err := e.Invoke(ctx, sessionID, agentName, userContent)
	if err != nil {
		return "", nil, err
	}

	var events []core.Event
	for {
		select {
		case <-ctx.Done():
			return runID, events, ctx.Err()

		case ev, ok := <-eventsCh:
			if !ok {
				select {
				case err, ok := <-errorsCh:
					if ok && err != nil {
						return runID, events, err
					}
				default:
				}
				return runID, events, nil
			}
			events = append(events, ev)

		case err, ok := <-errorsCh:
			if !ok {
				errorsCh = nil // closed without error, keep collecting events
				continue
			}
			if err != nil {
				// the pipeline closes eventsCh right after the error, so
				// draining here keeps already-forwarded events
				for ev := range eventsCh {
					events = append(events, ev)
				}
				return runID, events, err
			}
		}
	}
}

// StopRun cancels a running invocation by its run ID.
func (e *Engine) StopRun(runID string) error {
	e.runsMu.Lock()
	cancel, ok := e.activeRuns[runID]
	e.runsMu.Unlock()

	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}

	cancel()
	return nil
}

// GetSession returns a snapshot of the session by ID.
func (e *Engine) GetSession(sessionID string) (*core.Session, error) {
	return e.sessionStore.Get(sessionID)
}

// runAgent drives one agent through its Start/Run/Stop lifecycle.
func (e *Engine) runAgent(rc *core.RunContext, agent core.Agent) error {
	if err := agent.Start(rc); err != nil {
		return fmt.Errorf("start agent %s: %w", agent.Name(), err)
	}
	defer func() {
		if err := agent.Stop(rc); err != nil {
			e.logger.Warn("error stopping agent %s: %v", agent.Name(), err)
		}
	}()

	return agent.Run(rc)
}

// pump drives one run's event pipeline: event actions are applied,
// non-partial events are persisted and mined for the run record, every event
// is forwarded to the consumer, and non-partial events signal resume.
func (e *Engine) pump(
	ctx context.Context,
	rc *core.RunContext,
	rec *core.RunRecord,
	agentEmit <-chan core.Event,
	resumeCh chan<- struct{},
	eventsCh chan<- core.Event,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-agentEmit:
			if !ok {
				return nil
			}

			if err := e.applyEventActions(ctx, rc, rec, ev); err != nil {
				return err
			}

			if !ev.IsPartial() {
				if err := e.sessionStore.AppendEvent(rec.SessionID, ev); err != nil {
					return fmt.Errorf("append event %s: %w", ev.ID, err)
				}
				noteRecord(rec, ev)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case eventsCh <- ev:
				e.logger.Debug("delivered event %s to session %s", ev.ID, rec.SessionID)
			}

			if !ev.IsPartial() {
				select {
				case resumeCh <- struct{}{}:
				default: // a resume signal is already pending
				}
			}
		}
	}
}

// applyEventActions applies the side effects encoded in the event's Actions.
func (e *Engine) applyEventActions(ctx context.Context, rc *core.RunContext, rec *core.RunRecord, ev core.Event) error {
	if len(ev.Actions.StateDelta) > 0 {
		cc := &CallbackContext{RunContext: rc, Event: &ev, Agent: rec.Agent, Type: CallbackOnStateChange, Record: rec}
		if err := e.callbacks.Execute(ctx, CallbackOnStateChange, cc); err != nil {
			return fmt.Errorf("state change rejected: %w", err)
		}
		if err := e.sessionStore.ApplyDelta(rec.SessionID, ev.Actions.StateDelta); err != nil {
			return fmt.Errorf("apply state delta: %w", err)
		}
	}

	if ev.Actions.TransferToAgent != nil && *ev.Actions.TransferToAgent != "" {
		e.logger.Debug("event %s requests transfer to agent %s", ev.ID, *ev.Actions.TransferToAgent)
	}
	if ev.Actions.Escalate != nil && *ev.Actions.Escalate {
		e.logger.Debug("event %s escalates run %s", ev.ID, rec.ID)
	}

	return nil
}

// finishRun completes the run record, fires the terminal callbacks and
// surfaces the run error, if any, on the error channel.
func (e *Engine) finishRun(rc *core.RunContext, rec *core.RunRecord, runErr error, errorsCh chan<- error) {
	rec.FinishedAt = time.Now().UTC()
	rec.Steps = rc.Limiter.Count()
	if runErr != nil {
		rec.Err = runErr.Error()
	}

	if runErr != nil {
		cc := &CallbackContext{RunContext: rc, Agent: rec.Agent, Type: CallbackOnError, Record: rec, Err: runErr}
		if err := e.callbacks.Execute(rc.Context, CallbackOnError, cc); err != nil {
			e.logger.Warn("on error callback failed for run %s: %v", rec.ID, err)
		}
	}

	cc := &CallbackContext{RunContext: rc, Agent: rec.Agent, Type: CallbackAfterAgent, Record: rec, Err: runErr}
	if err := e.callbacks.Execute(rc.Context, CallbackAfterAgent, cc); err != nil {
		if runErr == nil {
			runErr = fmt.Errorf("after agent callback: %w", err)
			rec.Err = runErr.Error()
		} else {
			e.logger.Warn("after agent callback failed for run %s: %v", rec.ID, err)
		}
	}

	if runErr != nil {
		errorsCh <- runErr
		e.logger.Warn("run %s finished with error: %v", rec.ID, runErr)
		return
	}
	e.logger.Debug("run %s finished after %d steps", rec.ID, rec.Steps)
}

// noteRecord mines a persisted event for run record bookkeeping: the last
// narration becomes the summary, and a total_reward data value is carried
// into the record.
func noteRecord(rec *core.RunRecord, ev core.Event) {
	if text := ev.Text(); text != "" {
		rec.Summary = text
	}
	if ev.Content == nil {
		return
	}
	for _, part := range ev.Content.Parts {
		dp, ok := part.(core.DataPart)
		if !ok {
			continue
		}
		if v, ok := dp.Data["total_reward"].(float64); ok {
			rec.TotalReward = v
		}
	}
}

// agentType reports the architecture label of agents that expose one.
func agentType(a core.Agent) string {
	if t, ok := a.(interface{ Type() string }); ok {
		return t.Type()
	}
	return "agent"
}
