package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gocouncil/domain/core"
	"gocouncil/domain/council"
	"gocouncil/ports"
)

func newTestAdapter(t *testing.T, mock *MockLLMClient, cfg JudgmentConfig) *JudgmentAdapter {
	t.Helper()
	if cfg.Model == "" {
		cfg.Model = "gpt-4.1-mini"
	}
	return NewJudgmentAdapter(cfg, mock, zaptest.NewLogger(t).Sugar())
}

func TestEvaluatePrincipleValidResponse(t *testing.T) {
	mock := &MockLLMClient{Response: `{"content":"Strong framing","vote":"Approve","reasoning":"Customer-first","score":5}`}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	result, err := adapter.EvaluatePrinciple(context.Background(), "Customer Obsession", "topic", "User: hi", council.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, core.PrincipleName("Customer Obsession"), result.Principle)
	assert.Equal(t, council.VoteApprove, result.Vote)
	assert.Equal(t, float64(5), result.Score)
}

func TestEvaluatePrincipleMalformedYieldsSentinel(t *testing.T) {
	mock := &MockLLMClient{Response: "this is not json at all"}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	result, err := adapter.EvaluatePrinciple(context.Background(), "Ownership", "topic", "ctx", council.DefaultSettings())

	require.NoError(t, err, "malformed output must not surface as an error")
	assert.Equal(t, council.ErrorPerspective("Ownership"), result)
}

func TestEvaluatePrincipleOutOfRangeScoreYieldsSentinel(t *testing.T) {
	mock := &MockLLMClient{Response: `{"content":"x","vote":"Approve","reasoning":"y","score":9}`}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	result, err := adapter.EvaluatePrinciple(context.Background(), "Frugality", "t", "c", council.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, council.ErrorPerspective("Frugality"), result)
}

func TestEvaluatePrincipleInvalidVoteYieldsSentinel(t *testing.T) {
	mock := &MockLLMClient{Response: `{"content":"x","vote":"Maybe","reasoning":"y","score":3}`}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	result, err := adapter.EvaluatePrinciple(context.Background(), "Think Big", "t", "c", council.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, council.ErrorPerspective("Think Big"), result)
}

func TestEvaluatePrincipleTransportErrorPropagates(t *testing.T) {
	mock := &MockLLMClient{Error: errors.New("connection refused")}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	_, err := adapter.EvaluatePrinciple(context.Background(), "Ownership", "t", "c", council.DefaultSettings())

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrServiceUnreachable)
}

func TestEvaluatePrincipleTimeoutBehavesLikeValidationFailure(t *testing.T) {
	mock := &MockLLMClient{Fn: func(req ports.ChatRequest) (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "", context.DeadlineExceeded
	}}
	adapter := newTestAdapter(t, mock, JudgmentConfig{RequestTimeout: 10 * time.Millisecond})

	result, err := adapter.EvaluatePrinciple(context.Background(), "Dive Deep", "t", "c", council.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, council.ErrorPerspective("Dive Deep"), result)
}

func TestEvaluatePrincipleCacheHitSkipsSecondCall(t *testing.T) {
	mock := &MockLLMClient{Response: `{"content":"ok","vote":"Approve","reasoning":"r","score":4}`}
	adapter := newTestAdapter(t, mock, JudgmentConfig{CacheTTL: time.Minute})

	settings := council.DefaultSettings()
	first, err := adapter.EvaluatePrinciple(context.Background(), "Ownership", "t", "c", settings)
	require.NoError(t, err)
	second, err := adapter.EvaluatePrinciple(context.Background(), "Ownership", "t", "c", settings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, mock.CallCount(), "identical evaluation must be served from cache")

	// A different transcript misses the cache.
	_, err = adapter.EvaluatePrinciple(context.Background(), "Ownership", "t", "c2", settings)
	require.NoError(t, err)
	assert.Equal(t, 2, mock.CallCount())
}

func TestSentinelResultsAreNotCached(t *testing.T) {
	mock := &MockLLMClient{Response: "garbage"}
	adapter := newTestAdapter(t, mock, JudgmentConfig{CacheTTL: time.Minute})

	_, err := adapter.EvaluatePrinciple(context.Background(), "Ownership", "t", "c", council.DefaultSettings())
	require.NoError(t, err)
	_, err = adapter.EvaluatePrinciple(context.Background(), "Ownership", "t", "c", council.DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, 2, mock.CallCount(), "sentinel must not poison the cache")
}

func TestSynthesizeValidResponse(t *testing.T) {
	mock := &MockLLMClient{Response: `{
		"prfaq": "# Press Release",
		"report": "Current State: promising.",
		"decisionType": "High Impact & Difficult to Reverse",
		"readinessScore": 7,
		"rejectedPaths": [{"path":"build in-house","reason":"too slow"},{"path":"do nothing","reason":"churn risk"}]
	}`}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	bundle, err := adapter.Synthesize(context.Background(), "topic", "Ownership: fine", council.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, council.DecisionHighImpact, bundle.DecisionType)
	assert.Equal(t, float64(7), bundle.ReadinessScore)
	assert.Len(t, bundle.RejectedPaths, 2)
}

func TestSynthesizeMalformedYieldsFallback(t *testing.T) {
	mock := &MockLLMClient{Response: "not json"}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	bundle, err := adapter.Synthesize(context.Background(), "topic", "debate", council.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, council.FallbackBundle(), bundle)
}

func TestSynthesizeNonCanonicalDecisionYieldsFallback(t *testing.T) {
	mock := &MockLLMClient{Response: `{"prfaq":"p","report":"r","decisionType":"Type 1 (One-Way)","readinessScore":5,"rejectedPaths":[]}`}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	bundle, err := adapter.Synthesize(context.Background(), "topic", "debate", council.DefaultSettings())

	require.NoError(t, err)
	assert.True(t, bundle.IsFallback())
}

func TestSynthesizeTransportErrorPropagates(t *testing.T) {
	mock := &MockLLMClient{Error: errors.New("dns failure")}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	_, err := adapter.Synthesize(context.Background(), "topic", "debate", council.DefaultSettings())

	assert.ErrorIs(t, err, core.ErrServiceUnreachable)
}

func TestChatReplyMapsRolesAndSystemInstruction(t *testing.T) {
	mock := &MockLLMClient{Response: "Tell me more about the customer."}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	messages := []council.Message{
		council.NewUserMessage("my idea"),
		council.NewAssistantMessage("which customer?"),
		council.NewUserMessage("small sellers"),
	}
	reply, err := adapter.ChatReply(context.Background(), messages, council.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, "Tell me more about the customer.", reply)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Messages, 3)
	assert.Equal(t, "user", calls[0].Messages[0].Role)
	assert.Equal(t, "assistant", calls[0].Messages[1].Role)
	assert.Equal(t, "user", calls[0].Messages[2].Role)
	assert.True(t, strings.Contains(calls[0].System, "Master PM"))
}

func TestChatReplyEmptyContentFallsBackToApology(t *testing.T) {
	mock := &MockLLMClient{Fn: func(ports.ChatRequest) (string, error) { return "  ", nil }}
	adapter := newTestAdapter(t, mock, JudgmentConfig{})

	reply, err := adapter.ChatReply(context.Background(), []council.Message{council.NewUserMessage("hi")}, council.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, chatFallbackReply, reply)
}
