package telemetry

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Distribution describes one measured quantity across a batch of runs.
type Distribution struct {
	Mean   float64
	StdDev float64
	Median float64
	P90    float64
	Min    float64
	Max    float64
}

// String formats the distribution on one line.
func (d Distribution) String() string {
	return fmt.Sprintf("mean=%.1f sd=%.1f median=%.1f p90=%.1f min=%.0f max=%.0f",
		d.Mean, d.StdDev, d.Median, d.P90, d.Min, d.Max)
}

// Summary aggregates a batch of runs.
type Summary struct {
	Runs  int
	Ticks Distribution
	Score Distribution // best score per run
	Wins  [2]int
	Draws int
}

// Summarize computes batch statistics. An empty batch yields a zero Summary.
func Summarize(runs []RunSummary) Summary {
	s := Summary{Runs: len(runs)}
	if len(runs) == 0 {
		return s
	}

	ticks := make([]float64, len(runs))
	scores := make([]float64, len(runs))
	for i, r := range runs {
		ticks[i] = float64(r.Ticks)
		scores[i] = float64(r.BestScore())
		switch {
		case r.Score1 > r.Score2:
			s.Wins[0]++
		case r.Score2 > r.Score1:
			s.Wins[1]++
		default:
			s.Draws++
		}
	}

	s.Ticks = distribution(ticks)
	s.Score = distribution(scores)
	return s
}

func distribution(xs []float64) Distribution {
	sort.Float64s(xs)

	var d Distribution
	d.Mean, d.StdDev = stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		d.StdDev = 0
	}
	d.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
	d.P90 = stat.Quantile(0.9, stat.Empirical, xs, nil)
	d.Min = xs[0]
	d.Max = xs[len(xs)-1]
	return d
}
