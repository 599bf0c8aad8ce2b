// Package scoring turns raw survey answers into construct scores, a persona
// and a short list of insights. Every function here is pure.
package scoring

import (
	"math"

	"listenerlab/internal/model"
)

const (
	scaleMin  = 1.0
	scaleMax  = 7.0
	scaleSpan = scaleMax - scaleMin
)

// NormalizeValue maps a raw answer onto the common 1-7 scale.
// Questions without a custom range are already on that scale.
func NormalizeValue(q model.Question, value int) float64 {
	if q.ScaleRange == nil {
		return float64(value)
	}
	min, max := float64(q.ScaleRange[0]), float64(q.ScaleRange[1])
	return ((float64(value)-min)/(max-min))*scaleSpan + scaleMin
}

// Display rescales 1-7 averages to integers in 0-100 for the radar chart
func Display(scores model.ConstructScores) model.NormalizedScores {
	var out model.NormalizedScores
	for _, c := range model.AllConstructs() {
		out.Set(c, displayValue(scores.Get(c)))
	}
	return out
}

func displayValue(v float64) int {
	return int(math.Round(((v - scaleMin) / scaleSpan) * 100))
}

// CompareBaseline returns respondent minus baseline for each construct
func CompareBaseline(normalized, baseline model.NormalizedScores) model.ConstructDeltas {
	var out model.ConstructDeltas
	for _, c := range model.AllConstructs() {
		out.Set(c, normalized.Get(c)-baseline.Get(c))
	}
	return out
}
