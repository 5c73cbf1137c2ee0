package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmooth(t *testing.T) {
	rewards := []float64{0, 3, 6, 9}

	got := Smooth(rewards, 3)
	assert.Equal(t, []float64{0, 1.5, 3, 6}, got)

	// window one is a plain copy, and never aliases the input
	copied := Smooth(rewards, 1)
	assert.Equal(t, rewards, copied)
	copied[0] = 99
	assert.Equal(t, 0.0, rewards[0])

	// window wider than the data averages everything seen so far
	assert.Equal(t, []float64{0, 1.5, 3, 4.5}, Smooth(rewards, 10))

	assert.Empty(t, Smooth(nil, 3))
}

func TestWriteLearningCurve(t *testing.T) {
	var buf bytes.Buffer
	series := []Series{
		{Name: "q", Rewards: []float64{-40, -22, -15}},
		{Name: "sarsa", Rewards: []float64{-38, -25, -17}},
	}

	err := WriteLearningCurve(&buf, "windy grid training", series...)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "windy grid training")
	assert.Contains(t, out, "q")
	assert.Contains(t, out, "sarsa")
	assert.Contains(t, out, "echarts")
}

func TestWriteLearningCurveRequiresSeries(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLearningCurve(&buf, "")
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestSaveLearningCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "curve.html")

	err := SaveLearningCurve(path, "training", Series{Name: "q", Rewards: []float64{1, 2, 3}})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
