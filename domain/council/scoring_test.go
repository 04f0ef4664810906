package council

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeScoresEmpty(t *testing.T) {
	assert.Equal(t, ScoreSummary{}, SummarizeScores(nil))
}

func TestSummarizeScoresDescriptives(t *testing.T) {
	results := []PersonaResult{
		{Principle: "Customer Obsession", Vote: VoteApprove, Score: 5},
		{Principle: "Ownership", Vote: VoteApprove, Score: 4},
		{Principle: "Bias for Action", Vote: VoteRequestChanges, Score: 3},
	}

	summary := SummarizeScores(results)

	assert.InDelta(t, 4.0, summary.Mean, 1e-9)
	assert.InDelta(t, 4.0, summary.Median, 1e-9)
	assert.InDelta(t, 3.0, summary.Min, 1e-9)
	assert.InDelta(t, 5.0, summary.Max, 1e-9)
	assert.Greater(t, summary.StdDev, 0.0)
}

func TestConsensusBounds(t *testing.T) {
	unanimous := []PersonaResult{
		{Vote: VoteApprove, Score: 5},
		{Vote: VoteApprove, Score: 5},
		{Vote: VoteApprove, Score: 5},
	}
	rejected := []PersonaResult{
		{Vote: VoteReject, Score: 1},
		{Vote: VoteReject, Score: 1},
	}

	high := SummarizeScores(unanimous).Consensus
	low := SummarizeScores(rejected).Consensus

	assert.InDelta(t, 1.0, high, 1e-9)
	assert.Greater(t, high, low)
	assert.GreaterOrEqual(t, low, 0.0)
	assert.LessOrEqual(t, high, 1.0)
}

func TestConsensusUnknownVoteTreatedAsRequestChanges(t *testing.T) {
	known := SummarizeScores([]PersonaResult{{Vote: VoteRequestChanges, Score: 3}})
	unknown := SummarizeScores([]PersonaResult{{Vote: Vote("Maybe"), Score: 3}})

	assert.InDelta(t, known.Consensus, unknown.Consensus, 1e-9)
}

func TestSummarizeScoresClampsOutOfRange(t *testing.T) {
	summary := SummarizeScores([]PersonaResult{{Vote: VoteApprove, Score: 12}})
	assert.LessOrEqual(t, summary.Consensus, 1.0)
}

func TestPersonaIconCyclic(t *testing.T) {
	first := PersonaIcon(0)
	assert.Equal(t, first, PersonaIcon(len(personaIcons)))
	assert.NotEqual(t, first, PersonaIcon(1))
	assert.Equal(t, PersonaIcon(2), PersonaIcon(-2))
}
