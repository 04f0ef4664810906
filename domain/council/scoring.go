package council

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ScoreSummary aggregates the per-principle 1-5 scores of a completed council
// run
type ScoreSummary struct {
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	StdDev    float64 `json:"stdDev"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Consensus float64 `json:"consensus"`
}

// Vote weights used for the consensus score. A Reject drags the consensus
// down even when the numeric score is generous.
var voteWeights = map[Vote]float64{
	VoteApprove:        1.0,
	VoteRequestChanges: 0.6,
	VoteReject:         0.2,
}

// SummarizeScores computes descriptive statistics over persona scores plus a
// vote-weighted consensus in [0,1]. Returns the zero summary when no results
// exist.
func SummarizeScores(results []PersonaResult) ScoreSummary {
	if len(results) == 0 {
		return ScoreSummary{}
	}

	scores := make([]float64, 0, len(results))
	weights := make([]float64, 0, len(results))
	for _, r := range results {
		scores = append(scores, r.Score)
		w, ok := voteWeights[r.Vote]
		if !ok {
			w = voteWeights[VoteRequestChanges]
		}
		weights = append(weights, w)
	}

	summary := ScoreSummary{}
	if mean, err := stats.Mean(scores); err == nil {
		summary.Mean = mean
	}
	if median, err := stats.Median(scores); err == nil {
		summary.Median = median
	}
	if sd, err := stats.StandardDeviation(scores); err == nil {
		summary.StdDev = sd
	}
	if min, err := stats.Min(scores); err == nil {
		summary.Min = min
	}
	if max, err := stats.Max(scores); err == nil {
		summary.Max = max
	}

	// Weighted mean of normalized scores: 1.0 means unanimous approval at
	// score 5, values near 0 mean rejection across the board.
	normalized := make([]float64, len(scores))
	for i, s := range scores {
		normalized[i] = clampScore(s) / 5.0
	}
	summary.Consensus = stat.Mean(normalized, weights) * meanWeight(weights)

	return summary
}

func clampScore(s float64) float64 {
	if s < 1 {
		return 1
	}
	if s > 5 {
		return 5
	}
	return s
}

func meanWeight(weights []float64) float64 {
	return stat.Mean(weights, nil)
}
