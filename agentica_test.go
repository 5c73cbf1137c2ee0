package agentica

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentica-go/agentica/agent"
	"github.com/agentica-go/agentica/core"
)

func TestAgentica_RunsVacuumDemo(t *testing.T) {
	m := New(func(o *Options) {
		o.Scenario = "vacuum-world"
	})
	m.RegisterAgent(agent.NewVacuumReflexAgent("vacuum"))

	_, events, err := m.InvokeSync(context.Background(), "demo", "vacuum", core.Content{})
	require.NoError(t, err)
	require.Len(t, events, 5, "four decision steps plus the summary")

	sess, err := m.Session("demo")
	require.NoError(t, err)
	assert.Len(t, sess.ActionHistory(), 4)

	recs, err := m.Runs(0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "vacuum", recs[0].Agent)
	assert.Equal(t, "vacuum-world", recs[0].Scenario)
	assert.Equal(t, 4, recs[0].Steps)
}

func TestAgentica_UnknownAgent(t *testing.T) {
	m := New()

	_, _, err := m.InvokeSync(context.Background(), "demo", "ghost", core.Content{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAgentica_DisabledRunHistory(t *testing.T) {
	m := New(func(o *Options) {
		o.RunStore = nil
	})
	m.RegisterAgent(agent.NewVacuumReflexAgent("vacuum"))

	_, _, err := m.InvokeSync(context.Background(), "demo", "vacuum", core.Content{})
	require.NoError(t, err)

	recs, err := m.Runs(0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
