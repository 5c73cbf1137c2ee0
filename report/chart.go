package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
)

// Series is one named reward-per-episode line on a learning curve.
type Series struct {
	Name    string
	Rewards []float64
}

// Smooth returns the trailing moving average of rewards over the given
// window, which flattens the exploration noise enough to see the trend.
// A window of one or less returns a plain copy.
func Smooth(rewards []float64, window int) []float64 {
	out := make([]float64, len(rewards))
	if window <= 1 {
		copy(out, rewards)
		return out
	}
	for i := range rewards {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		out[i] = floats.Sum(rewards[lo:i+1]) / float64(i-lo+1)
	}
	return out
}

// WriteLearningCurve renders the series as a single HTML line chart with
// episodes on the x axis.
func WriteLearningCurve(w io.Writer, title string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("learning curve needs at least one series")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "reward per episode"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)

	episodes := 0
	for _, s := range series {
		if len(s.Rewards) > episodes {
			episodes = len(s.Rewards)
		}
	}
	xs := make([]string, episodes)
	for i := range xs {
		xs[i] = strconv.Itoa(i + 1)
	}
	line.SetXAxis(xs)

	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Rewards))
		for _, r := range s.Rewards {
			items = append(items, opts.LineData{Value: r})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render learning curve: %w", err)
	}
	return nil
}

// SaveLearningCurve writes the chart to path, creating parent directories
// as needed.
func SaveLearningCurve(path, title string, series ...Series) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart %s: %w", path, err)
	}
	if err := WriteLearningCurve(f, title, series...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
