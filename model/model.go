package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentica-go/agentica/core"
)

// Request is the normalized model input: an instruction plus the
// conversation so far. The instruction carries everything the chatbot
// wants the model to know, including its tool protocol.
type Request struct {
	Instructions string
	Contents     []core.Content
}

// TokenUsage captures token accounting for one completion, when the
// provider reports it.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is one completed assistant turn.
type Response struct {
	Content      core.Content
	FinishReason string // "stop", "length", etc.
	Usage        *TokenUsage
}

// Text returns the concatenated text parts of the response.
func (r *Response) Text() string {
	return r.Content.Text()
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string
	Provider string // "openai", "anthropic", "scripted", etc.
}

// Model is the minimal interface the chat agent drives.
type Model interface {
	// Generate produces one completed assistant turn for the request.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// ScriptedModel replays queued responses in order, recording every request
// it sees. It serves tests and the offline chatbot demo.
type ScriptedModel struct {
	mu        sync.Mutex
	info      Info
	responses []string
	requests  []Request
}

var _ Model = (*ScriptedModel)(nil)

// NewScriptedModel constructs a ScriptedModel that will answer with the
// given responses, one per Generate call.
func NewScriptedModel(responses ...string) *ScriptedModel {
	return &ScriptedModel{
		info:      Info{Name: "scripted", Provider: "scripted"},
		responses: responses,
	}
}

// AddResponse queues another canned completion.
func (m *ScriptedModel) AddResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, response)
}

// Requests returns a copy of every request seen so far.
func (m *ScriptedModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Generate implements Model. It pops the next queued response, or fails
// when the script is exhausted.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("scripted model has no response for request %d", len(m.requests))
	}
	next := m.responses[0]
	m.responses = m.responses[1:]

	return &Response{
		Content:      core.Content{Role: "assistant", Parts: []core.Part{core.TextPart{Text: next}}},
		FinishReason: "stop",
	}, nil
}

// Info implements Model.
func (m *ScriptedModel) Info() Info { return m.info }
