package agent

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
)

// Weights define the relative importance of the three decision criteria.
// Cost and time contribute through their reciprocals (cheaper and faster
// score higher); risk subtracts directly.
type Weights struct {
	Cost float64
	Time float64
	Risk float64
}

// DefaultWeights returns the classic cost-leaning business profile:
// 50% cost, 30% time, 20% risk.
func DefaultWeights() Weights {
	return Weights{Cost: 0.5, Time: 0.3, Risk: 0.2}
}

// Candidate is one action alternative under evaluation.
type Candidate struct {
	Name        string
	Cost        float64
	Time        float64
	Risk        float64
	Description string
}

// Breakdown reports the per-criterion utility contributions for one
// candidate, rounded nowhere: callers format to four decimals for display.
type Breakdown struct {
	Candidate   Candidate
	CostUtility float64
	TimeUtility float64
	RiskPenalty float64
	Total       float64
}

// String renders the breakdown in the four-decimal form the demos print.
func (b Breakdown) String() string {
	return fmt.Sprintf("%s: cost %.4f + time %.4f - risk %.4f = %.4f",
		b.Candidate.Name, b.CostUtility, b.TimeUtility, b.RiskPenalty, b.Total)
}

// UtilityAgent chooses among candidates by maximizing a weighted utility
// over cost, time, and risk. Unlike the goal-based agent's binary
// reached-or-not view, it grades every alternative on a continuous scale
// and picks the argmax.
type UtilityAgent struct {
	BaseAgent
	weights    Weights
	candidates []Candidate
	decisions  []Breakdown
}

// UtilityOption customizes a UtilityAgent.
type UtilityOption func(a *UtilityAgent)

// WithWeights overrides the criterion weights.
func WithWeights(w Weights) UtilityOption {
	return func(a *UtilityAgent) { a.weights = w }
}

// WithCandidates sets the alternatives Run evaluates.
func WithCandidates(candidates ...Candidate) UtilityOption {
	return func(a *UtilityAgent) { a.candidates = candidates }
}

// NewUtilityAgent creates a utility-based decision agent with the default
// weights and, unless overridden, the canonical business candidates.
func NewUtilityAgent(name string, opts ...UtilityOption) *UtilityAgent {
	a := &UtilityAgent{
		BaseAgent: NewBaseAgent(name),
		weights:   DefaultWeights(),
	}
	a.SetType("utility")
	a.SetDescription("Utility-based agent maximizing weighted cost/time/risk scores")
	for _, opt := range opts {
		opt(a)
	}
	if a.candidates == nil {
		a.candidates = BusinessCandidates()
	}

	return a
}

// Weights returns the agent's criterion weights.
func (a *UtilityAgent) Weights() Weights { return a.weights }

// Utility scores a single candidate:
//
//	utility = wCost·(1/cost) + wTime·(1/time) − wRisk·risk
func (a *UtilityAgent) Utility(c Candidate) Breakdown {
	b := Breakdown{
		Candidate:   c,
		CostUtility: a.weights.Cost * (1 / c.Cost),
		TimeUtility: a.weights.Time * (1 / c.Time),
		RiskPenalty: a.weights.Risk * c.Risk,
	}
	b.Total = b.CostUtility + b.TimeUtility - b.RiskPenalty

	return b
}

// EvaluateActions scores every candidate and returns the best one along
// with all breakdowns in input order. Ties keep the earlier candidate.
func (a *UtilityAgent) EvaluateActions(candidates []Candidate) (Breakdown, []Breakdown, error) {
	if len(candidates) == 0 {
		return Breakdown{}, nil, fmt.Errorf("utility agent %s: no candidates to evaluate", a.Name())
	}

	breakdowns := make([]Breakdown, len(candidates))
	best := 0
	for i, c := range candidates {
		breakdowns[i] = a.Utility(c)
		if breakdowns[i].Total > breakdowns[best].Total {
			best = i
		}
	}

	a.decisions = append(a.decisions, breakdowns[best])

	return breakdowns[best], breakdowns, nil
}

// Compare scores two candidates and returns the preferred breakdown.
func (a *UtilityAgent) Compare(x, y Candidate) Breakdown {
	bx, by := a.Utility(x), a.Utility(y)
	if bx.Total >= by.Total {
		return bx
	}

	return by
}

// DecisionHistory returns every decision taken by EvaluateActions so far.
func (a *UtilityAgent) DecisionHistory() []Breakdown {
	h := make([]Breakdown, len(a.decisions))
	copy(h, a.decisions)

	return h
}

// Run evaluates the configured candidates, emitting one scored step per
// candidate and a final decision event naming the winner.
func (a *UtilityAgent) Run(rc *core.RunContext) error {
	best, breakdowns, err := a.EvaluateActions(a.candidates)
	if err != nil {
		return err
	}

	for _, b := range breakdowns {
		if err := rc.Limiter.Increment(); err != nil {
			return err
		}

		p := core.NewPercept("options", map[string]any{
			"cost": b.Candidate.Cost,
			"time": b.Candidate.Time,
			"risk": b.Candidate.Risk,
		})
		action := core.NewAction("Score").
			WithTarget(b.Candidate.Name).
			WithParam("utility", b.Total)
		if err := rc.EmitStep(a.Name(), p, action, b.String()); err != nil {
			return err
		}
	}

	rc.SetState("decision", best.Candidate.Name)
	decision := core.NewAction("Choose").
		WithTarget(best.Candidate.Name).
		WithParam("utility", best.Total)
	ev := core.NewActionEvent(a.Name(), decision, "highest utility among all evaluated options")
	ev.RunID = rc.RunID
	if err := rc.EmitEvent(ev); err != nil {
		return err
	}

	return rc.EmitText(a.Name(), fmt.Sprintf("optimal choice: %s (utility %.4f)", best.Candidate.Name, best.Total))
}

// BusinessCandidates returns the canonical campaign alternatives: Budget
// (200, 5h, 0.1), Premium (300, 3h, 0.2), Aggressive (150, 2h, 0.4).
func BusinessCandidates() []Candidate {
	return []Candidate{
		{
			Name:        "Budget Option",
			Cost:        200,
			Time:        5,
			Risk:        0.1,
			Description: "Low-cost, slower approach with minimal risk",
		},
		{
			Name:        "Premium Option",
			Cost:        300,
			Time:        3,
			Risk:        0.2,
			Description: "Higher-cost, faster approach with moderate risk",
		},
		{
			Name:        "Aggressive Option",
			Cost:        150,
			Time:        2,
			Risk:        0.4,
			Description: "Lowest-cost, fastest approach with high risk",
		},
	}
}
