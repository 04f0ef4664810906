package council

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()

	assert.Equal(t, DefaultTitle, s.Title)
	assert.Empty(t, s.Topic)
	assert.Empty(t, s.Messages)
	assert.Empty(t, s.Perspectives)
	assert.Nil(t, s.Documents)
	assert.Equal(t, StatusDraft, s.Status)
	assert.Equal(t, FacetRecord{}, s.Facets)
	assert.False(t, s.ID.String() == "")
	assert.False(t, s.CreatedAt.IsZero())
}

func TestApplyFirstInputTopicImmutable(t *testing.T) {
	s := NewSession()
	first := "Customers struggling with slow checkout need a one-click solution"

	s.ApplyFirstInput(first)
	assert.Equal(t, first, s.Topic)
	assert.Equal(t, string([]rune(first)[:TitleLimit]), s.Title)

	s.ApplyFirstInput("a different second input")
	assert.Equal(t, first, s.Topic, "topic must never be overwritten")
}

func TestApplyFirstInputTitleOnlyWhilePlaceholder(t *testing.T) {
	s := NewSession()
	s.Title = "Hand-edited title"
	s.ApplyFirstInput("some topic text")

	assert.Equal(t, "some topic text", s.Topic)
	assert.Equal(t, "Hand-edited title", s.Title, "non-placeholder title must survive")
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", TruncateTitle("short"))

	long := strings.Repeat("x", 80)
	assert.Len(t, TruncateTitle(long), TitleLimit)

	// Rune-safe truncation for multibyte input.
	multi := strings.Repeat("ü", 40)
	assert.Equal(t, strings.Repeat("ü", TitleLimit), TruncateTitle(multi))
}

func TestCloneIsDeep(t *testing.T) {
	s := NewSession()
	s.Messages = append(s.Messages, NewUserMessage("hello"))
	s.Perspectives = append(s.Perspectives, ErrorPerspective("Ownership"))
	bundle := FallbackBundle()
	bundle.RejectedPaths = []RejectedPath{{Path: "a", Reason: "b"}}
	s.Documents = &bundle

	cp := s.Clone()
	cp.Messages[0].Content = "mutated"
	cp.Perspectives[0].Score = 5
	cp.Documents.RejectedPaths[0].Path = "mutated"
	cp.Documents.PRFAQ = "mutated"

	assert.Equal(t, "hello", s.Messages[0].Content)
	assert.Equal(t, float64(1), s.Perspectives[0].Score)
	assert.Equal(t, "a", s.Documents.RejectedPaths[0].Path)
	assert.Equal(t, "Error", s.Documents.PRFAQ)
}

func TestCompleteAppliesAtomically(t *testing.T) {
	s := NewSession()
	perspectives := []PersonaResult{
		{Principle: "Ownership", Content: "solid", Vote: VoteApprove, Reasoning: "ok", Score: 4},
	}
	bundle := DocumentBundle{
		PRFAQ:          "# PRFAQ",
		Report:         "report",
		DecisionType:   DecisionHighImpact,
		ReadinessScore: 7,
	}

	s.Complete(perspectives, bundle)

	require.NotNil(t, s.Documents)
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, perspectives, s.Perspectives)
	assert.Equal(t, bundle, *s.Documents)
	assert.False(t, s.CanConvene())
}

func TestErrorPerspectiveSentinel(t *testing.T) {
	p := ErrorPerspective("Customer Obsession")

	assert.Equal(t, PersonaResult{
		Principle: "Customer Obsession",
		Content:   "Error",
		Vote:      VoteRequestChanges,
		Reasoning: "Error",
		Score:     1,
	}, p)
}

func TestFallbackBundleFixedValues(t *testing.T) {
	b := FallbackBundle()

	assert.Equal(t, "Error", b.PRFAQ)
	assert.Equal(t, "Error", b.Report)
	assert.Equal(t, DecisionLowImpact, b.DecisionType)
	assert.Equal(t, float64(5), b.ReadinessScore)
	assert.Empty(t, b.RejectedPaths)
	assert.True(t, b.IsFallback())
}
