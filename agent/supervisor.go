package agent

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
)

// Signal names for smart-home sensor readings.
const (
	SignalIntruder    = "intruder"
	SignalTemperature = "temperature"
)

// Climate actions emitted by the climate sub-agent.
const (
	ActionCool     = "Cool"
	ActionHeat     = "Heat"
	ActionMaintain = "Maintain"
)

// SecurityProtocol lists the actions the security sub-agent performs, in
// order, when activated.
var SecurityProtocol = []string{
	"ActivateAlarm",
	"SecureEntryPoints",
	"NotifyAuthorities",
	"StartRecording",
}

// SupervisorAgent is the top level of a two-layer hierarchy: it inspects
// each sensor reading and delegates to the matching specialist. Security
// takes precedence over comfort, so an intruder reading always routes to
// the security sub-agent regardless of temperature.
type SupervisorAgent struct {
	BaseAgent
	security *SecurityAgent
	climate  *ClimateAgent
	readings []core.Percept
}

// SupervisorOption customizes a SupervisorAgent.
type SupervisorOption func(a *SupervisorAgent)

// WithReadings sets the sensor readings Run processes.
func WithReadings(readings ...core.Percept) SupervisorOption {
	return func(a *SupervisorAgent) { a.readings = readings }
}

// WithClimate replaces the default climate sub-agent, e.g. to change the
// target temperature.
func WithClimate(c *ClimateAgent) SupervisorOption {
	return func(a *SupervisorAgent) { a.climate = c }
}

// NewSupervisorAgent creates the smart-home supervisor with security and
// climate sub-agents attached.
func NewSupervisorAgent(name string, opts ...SupervisorOption) *SupervisorAgent {
	a := &SupervisorAgent{
		BaseAgent: NewBaseAgent(name),
		security:  NewSecurityAgent("security"),
	}
	a.SetType("supervisor")
	a.SetDescription("Hierarchical supervisor delegating to security and climate specialists")
	for _, opt := range opts {
		opt(a)
	}
	if a.climate == nil {
		a.climate = NewClimateAgent("climate")
	}
	if a.readings == nil {
		a.readings = DefaultSmartHomeReadings()
	}

	_ = a.SetSubAgents(a.security, a.climate)

	return a
}

// Coordinate routes one sensor reading: intruder readings activate the
// security sub-agent; everything else goes to climate control. It returns
// the sub-agent's resulting action.
func (a *SupervisorAgent) Coordinate(rc *core.RunContext, reading core.Percept) (core.Action, error) {
	if reading.Bool(SignalIntruder) {
		rc.LogInfo("agent %s detected intruder, delegating to security", a.Name())
		if err := rc.EmitText(a.Name(), "priority alert: intruder detected, delegating to security"); err != nil {
			return core.Action{}, err
		}

		branch := rc.WithBranch(buildBranchPath(rc.Branch, a.Name()+"."+a.security.Name()))
		return a.security.Activate(branch)
	}

	temp := reading.Int(SignalTemperature)
	rc.LogDebug("agent %s routing temperature %d to climate control", a.Name(), temp)
	if err := rc.EmitText(a.Name(), "no security threats, delegating to climate control"); err != nil {
		return core.Action{}, err
	}

	branch := rc.WithBranch(buildBranchPath(rc.Branch, a.Name()+"."+a.climate.Name()))
	return a.climate.Adjust(branch, temp)
}

// Run coordinates every configured sensor reading in order.
func (a *SupervisorAgent) Run(rc *core.RunContext) error {
	for _, reading := range a.readings {
		if err := rc.Limiter.Increment(); err != nil {
			return err
		}

		if _, err := a.Coordinate(rc, reading); err != nil {
			return err
		}
	}

	return rc.EmitText(a.Name(), fmt.Sprintf("coordinated %d sensor readings", len(a.readings)))
}

// DefaultSmartHomeReadings returns the demo sensor script: an intrusion at
// normal temperature, then hot, cold, and comfortable readings.
func DefaultSmartHomeReadings() []core.Percept {
	return []core.Percept{
		core.NewPercept("home", map[string]any{SignalIntruder: true, SignalTemperature: 68}),
		core.NewPercept("home", map[string]any{SignalIntruder: false, SignalTemperature: 78}),
		core.NewPercept("home", map[string]any{SignalIntruder: false, SignalTemperature: 65}),
		core.NewPercept("home", map[string]any{SignalIntruder: false, SignalTemperature: 71}),
	}
}

// SecurityAgent is the intrusion-response specialist. Activation walks the
// fixed security protocol, emitting one action per step.
type SecurityAgent struct {
	BaseAgent
}

// NewSecurityAgent creates the security specialist.
func NewSecurityAgent(name string) *SecurityAgent {
	a := &SecurityAgent{BaseAgent: NewBaseAgent(name)}
	a.SetDescription("Security specialist engaging the intrusion protocol")

	return a
}

// Activate engages the security protocol and returns its summary action.
func (a *SecurityAgent) Activate(rc *core.RunContext) (core.Action, error) {
	for _, step := range SecurityProtocol {
		action := core.NewAction(step)
		ev := core.NewActionEvent(a.Name(), action, "security protocol")
		ev.RunID = rc.RunID
		if err := rc.EmitEvent(ev); err != nil {
			return core.Action{}, err
		}
	}

	return core.NewAction("EngageSecurity").WithParam("steps", len(SecurityProtocol)), nil
}

// Run activates the protocol once; the supervisor normally drives this
// agent through Coordinate instead.
func (a *SecurityAgent) Run(rc *core.RunContext) error {
	_, err := a.Activate(rc)

	return err
}

// ClimateAgent is the comfort specialist: it compares readings against a
// target temperature band and picks Cool, Heat, or Maintain.
type ClimateAgent struct {
	BaseAgent
	target    int
	tolerance int
}

// ClimateOption customizes a ClimateAgent.
type ClimateOption func(a *ClimateAgent)

// WithTargetTemperature sets the comfort target in °F (default 72).
func WithTargetTemperature(target int) ClimateOption {
	return func(a *ClimateAgent) { a.target = target }
}

// WithTolerance sets the comfort band half-width (default 2).
func WithTolerance(tolerance int) ClimateOption {
	return func(a *ClimateAgent) { a.tolerance = tolerance }
}

// NewClimateAgent creates the climate specialist with a 72±2°F comfort band.
func NewClimateAgent(name string, opts ...ClimateOption) *ClimateAgent {
	a := &ClimateAgent{
		BaseAgent: NewBaseAgent(name),
		target:    72,
		tolerance: 2,
	}
	a.SetDescription("Climate specialist holding temperature inside the comfort band")
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Target returns the comfort target temperature.
func (a *ClimateAgent) Target() int { return a.target }

// Decide picks the climate action for a temperature without emitting
// anything: above the band cools, below heats, inside maintains.
func (a *ClimateAgent) Decide(temp int) (core.Action, string) {
	switch {
	case temp > a.target+a.tolerance:
		return core.NewAction(ActionCool),
			fmt.Sprintf("%d°F above comfort band %d±%d", temp, a.target, a.tolerance)
	case temp < a.target-a.tolerance:
		return core.NewAction(ActionHeat),
			fmt.Sprintf("%d°F below comfort band %d±%d", temp, a.target, a.tolerance)
	default:
		return core.NewAction(ActionMaintain),
			fmt.Sprintf("%d°F inside comfort band %d±%d", temp, a.target, a.tolerance)
	}
}

// Adjust decides for the reading and emits the decision step.
func (a *ClimateAgent) Adjust(rc *core.RunContext, temp int) (core.Action, error) {
	action, rationale := a.Decide(temp)

	p := core.NewPercept("home", map[string]any{SignalTemperature: temp})
	if err := rc.EmitStep(a.Name(), p, action, rationale); err != nil {
		return core.Action{}, err
	}

	return action, nil
}

// Run adjusts for every temperature percept found in the user content.
func (a *ClimateAgent) Run(rc *core.RunContext) error {
	for _, part := range rc.UserContent.Parts {
		pp, ok := part.(core.PerceptPart)
		if !ok {
			continue
		}

		if _, err := a.Adjust(rc, pp.Percept.Int(SignalTemperature)); err != nil {
			return err
		}
	}

	return nil
}
