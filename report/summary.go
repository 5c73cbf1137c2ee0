package report

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"

	"github.com/agentica-go/agentica/core"
)

// TrainingSummary formats an episode-training outcome in one line, e.g.
//
//	q trained 1,000 episodes in 1.5s: average reward -21.25, best -10 at episode 873, final -15
func TrainingSummary(algorithm string, rewards []float64, elapsed time.Duration) string {
	if len(rewards) == 0 {
		return "no episodes trained"
	}
	avg := floats.Sum(rewards) / float64(len(rewards))
	bestAt := floats.MaxIdx(rewards)
	return fmt.Sprintf("%s trained %s episodes in %s: average reward %s, best %s at episode %s, final %s",
		algorithm,
		humanize.Comma(int64(len(rewards))),
		elapsed.Round(time.Millisecond),
		humanize.CommafWithDigits(avg, 2),
		humanize.CommafWithDigits(rewards[bestAt], 2),
		humanize.Comma(int64(bestAt+1)),
		humanize.CommafWithDigits(rewards[len(rewards)-1], 2),
	)
}

// RunLine formats one run record for terminal display, newest-friendly
// with a relative finish time.
func RunLine(rec core.RunRecord) string {
	return runLine(rec, time.Now())
}

func runLine(rec core.RunRecord, now time.Time) string {
	return fmt.Sprintf("%s  %s/%s  %s steps  reward %s  %s  %s",
		shortID(rec.ID),
		rec.Agent, scenarioOrDash(rec.Scenario),
		humanize.Comma(int64(rec.Steps)),
		humanize.CommafWithDigits(rec.TotalReward, 2),
		humanize.RelTime(rec.FinishedAt, now, "ago", "from now"),
		outcome(rec),
	)
}

// RunTable renders run records as an aligned table with a header row.
func RunTable(recs []core.RunRecord) string {
	return runTable(recs, time.Now())
}

func runTable(recs []core.RunRecord, now time.Time) string {
	if len(recs) == 0 {
		return "no runs recorded\n"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tAGENT\tSCENARIO\tSTEPS\tREWARD\tFINISHED\tOUTCOME")
	for _, rec := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(rec.ID),
			rec.Agent,
			scenarioOrDash(rec.Scenario),
			humanize.Comma(int64(rec.Steps)),
			humanize.CommafWithDigits(rec.TotalReward, 2),
			humanize.RelTime(rec.FinishedAt, now, "ago", "from now"),
			outcome(rec),
		)
	}
	tw.Flush()
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func scenarioOrDash(scenario string) string {
	if scenario == "" {
		return "-"
	}
	return scenario
}

func outcome(rec core.RunRecord) string {
	if rec.Err != "" {
		return "error: " + rec.Err
	}
	if rec.Summary != "" {
		return rec.Summary
	}
	return "ok"
}
