package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"time"

	"github.com/agentica-go/agentica/agent"
	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/internal/util"
	"github.com/agentica-go/agentica/model"
	"github.com/agentica-go/agentica/tool"
)

// DefaultInstruction is the decision-protocol instruction. It is rendered as
// a template before each model call with tool_descriptions bound to the
// registered tools.
const DefaultInstruction = `You are a helpful assistant with access to a toolbox. Given a user query,
decide which tool, if any, is best suited to answer it.

Reply with a JSON object of this exact shape:

{"tool_choice": "name_of_the_tool", "tool_input": "inputs_to_the_tool"}

- tool_choice: the name of one tool from the toolbox, or "none" when the
  query needs no tool.
- tool_input: the arguments for the selected tool, matching the input
  format its description gives. When tool_choice is "none", put your
  answer to the query here instead.

These are your tools:

{{.tool_descriptions}}

Reply with the JSON object only, no extra prose.`

// Options configures an Agent instance.
//
// Use functional options with NewAgent to override defaults.
type Options struct {
	Instruction        agent.Instruction
	OutputKey          string
	ToolTimeout        time.Duration
	MaxHistoryMessages int
	Tools              []tool.Tool
}

// Agent asks a chat model to pick a tool for each user query and dispatches
// the call. It embeds BaseAgent for lifecycle and hierarchy management.
type Agent struct {
	agent.BaseAgent
	llm                model.Model
	instruction        agent.Instruction
	tools              map[string]tool.Tool
	toolTimeout        time.Duration
	outputKey          string
	maxHistoryMessages int
}

var _ core.Agent = (*Agent)(nil)

// NewAgent creates a chat agent backed by llm.
//
// Defaults: the decision-protocol instruction, a 15 second tool timeout,
// 20 prior conversation messages sent as context, and an empty toolbox.
// Tools can be supplied through the options or registered later with
// RegisterTool.
func NewAgent(name string, llm model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Instruction:        agent.NewInstructionFromText(DefaultInstruction),
		ToolTimeout:        15 * time.Second,
		MaxHistoryMessages: 20,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	a := &Agent{
		BaseAgent:          agent.NewBaseAgent(name),
		llm:                llm,
		instruction:        opts.Instruction,
		tools:              make(map[string]tool.Tool),
		toolTimeout:        opts.ToolTimeout,
		outputKey:          opts.OutputKey,
		maxHistoryMessages: opts.MaxHistoryMessages,
	}
	a.SetType("chat")
	a.SetDescription("Conversational agent dispatching to tools through a prompt-embedded protocol")
	a.RegisterTools(opts.Tools...)

	return a
}

// RegisterTool adds a tool to the toolbox, replacing any tool with the same
// name.
func (a *Agent) RegisterTool(t tool.Tool) {
	a.tools[t.Name()] = t
}

// RegisterTools adds multiple tools at once.
func (a *Agent) RegisterTools(tools ...tool.Tool) {
	for _, t := range tools {
		a.RegisterTool(t)
	}
}

// ListTools returns the registered tool names in sorted order.
func (a *Agent) ListTools() []string {
	names := make([]string, 0, len(a.tools))
	for name := range a.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Run asks the model for a tool decision on the current user input,
// dispatches it, and emits the final answer as a single narration event.
func (a *Agent) Run(rc *core.RunContext) error {
	if err := rc.Limiter.Increment(); err != nil {
		return err
	}

	prompt, err := a.systemPrompt(rc)
	if err != nil {
		return fmt.Errorf("resolve instruction: %w", err)
	}

	rc.LogDebug("agent %s asks model %s for a tool decision", a.Name(), a.llm.Info().Name)

	resp, err := a.llm.Generate(rc.Context, model.Request{
		Instructions: prompt,
		Contents:     a.conversation(rc),
	})
	if err != nil {
		return fmt.Errorf("generate decision: %w", err)
	}

	answer, err := a.dispatch(rc, resp.Text())
	if err != nil {
		return err
	}

	if a.outputKey != "" {
		rc.SetState(a.outputKey, answer)
	}

	return rc.EmitText(a.Name(), answer)
}

// systemPrompt resolves the instruction and renders it with the session
// state plus the tool_descriptions variable.
func (a *Agent) systemPrompt(rc *core.RunContext) (string, error) {
	text, err := a.instruction.Resolve(rc)
	if err != nil {
		return "", err
	}

	state := map[string]any{}
	if rc.Session != nil {
		maps.Copy(state, rc.Session.State)
	}
	state["tool_descriptions"] = a.toolDescriptions()

	return util.RenderTemplate(text, state)
}

// toolDescriptions renders one "name: description" block per registered
// tool, sorted by name so the instruction is deterministic.
func (a *Agent) toolDescriptions() string {
	names := a.ListTools()
	blocks := make([]string, 0, len(names))
	for _, name := range names {
		blocks = append(blocks, fmt.Sprintf("%s: %s", name, a.tools[name].Description()))
	}

	return strings.Join(blocks, "\n\n")
}

// conversation assembles the model contents: up to MaxHistoryMessages prior
// conversational turns followed by the current user input.
func (a *Agent) conversation(rc *core.RunContext) []core.Content {
	var contents []core.Content

	if rc.Session != nil && a.maxHistoryMessages != 0 {
		for _, ev := range rc.Session.GetConversationHistory() {
			text := ev.Content.Text()
			if text == "" {
				continue
			}

			role := "assistant"
			if ev.Content.Role == "user" {
				role = "user"
			}

			contents = append(contents, core.Content{
				Role:  role,
				Parts: []core.Part{core.TextPart{Text: text}},
			})
		}

		if a.maxHistoryMessages > 0 && len(contents) > a.maxHistoryMessages {
			contents = contents[len(contents)-a.maxHistoryMessages:]
		}
	}

	user := rc.UserContent
	if user.Role == "" {
		user.Role = "user"
	}

	return append(contents, user)
}

// dispatch interprets the model's reply. A JSON decision routes to the named
// tool; "none" answers directly; a reply that is no decision at all is taken
// verbatim as the answer.
func (a *Agent) dispatch(rc *core.RunContext, reply string) (string, error) {
	d, ok := parseDecision(reply)
	if !ok {
		rc.LogDebug("agent %s got a non-decision reply, using it as the answer", a.Name())
		return strings.TrimSpace(reply), nil
	}

	choice := strings.ToLower(strings.TrimSpace(d.ToolChoice))
	switch choice {
	case "", "none", "no tool":
		return inputText(d.ToolInput), nil
	}

	t, ok := a.tools[choice]
	if !ok {
		rc.LogWarn("agent %s has no tool %q, answering with the raw input", a.Name(), choice)
		return inputText(d.ToolInput), nil
	}

	ctx := rc.Context
	if a.toolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.toolTimeout)
		defer cancel()
	}

	rc.LogDebug("agent %s dispatches to tool %s", a.Name(), choice)

	result, err := t.Call(ctx, decodeArgs(d.ToolInput))
	if err != nil {
		var toolErr *tool.ToolError
		if errors.As(err, &toolErr) {
			// expected tool failures become part of the conversation
			rc.LogWarn("tool %s failed with code %s: %s", choice, toolErr.Code, toolErr.Message)
			return fmt.Sprintf("Error: %s", toolErr.Message), nil
		}
		return "", fmt.Errorf("call tool %s: %w", choice, err)
	}

	return fmt.Sprint(result), nil
}

// decision is the JSON reply shape the instruction asks the model for.
type decision struct {
	ToolChoice string          `json:"tool_choice"`
	ToolInput  json.RawMessage `json:"tool_input"`
}

// parseDecision extracts a decision from the model reply, tolerating a
// markdown code fence around the JSON. An object without a tool_choice key
// is not a decision.
func parseDecision(reply string) (decision, bool) {
	cleaned := stripFences(reply)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return decision{}, false
	}
	if _, ok := probe["tool_choice"]; !ok {
		return decision{}, false
	}

	var d decision
	if err := json.Unmarshal([]byte(cleaned), &d); err != nil {
		return decision{}, false
	}

	return d, true
}

// decodeArgs shapes a tool_input value into the argument map tools expect.
// Objects pass through. Strings are tried as double-encoded JSON first and
// otherwise become the "input" argument, which is how single-argument tools
// receive bare values.
func decodeArgs(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err == nil {
		return args
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var nested map[string]any
		if err := json.Unmarshal([]byte(s), &nested); err == nil {
			return nested
		}
		return map[string]any{"input": s}
	}

	return map[string]any{"input": strings.TrimSpace(string(raw))}
}

// inputText renders a tool_input value as plain text for the direct-answer
// and unknown-tool paths.
func inputText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return strings.TrimSpace(string(raw))
}

// stripFences removes the markdown code fence some models wrap around JSON
// replies.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
