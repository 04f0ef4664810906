package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"gocouncil/ai"
	"gocouncil/domain/core"
	"gocouncil/domain/council"
	"gocouncil/ports"
)

// The chat capability degrades to a canned apology rather than an empty
// bubble when the provider returns nothing.
const chatFallbackReply = "I apologize, I'm having trouble processing that right now."

// JudgmentConfig holds judgment adapter settings
type JudgmentConfig struct {
	Model          string
	MaxTokens      int
	RequestTimeout time.Duration // 0 disables the per-call timeout
	CacheTTL       time.Duration // persona evaluation cache; 0 disables
}

// JudgmentAdapter implements ports.JudgmentPort over an LLM client. Every
// structured response is schema-validated before use; malformed persona
// output degrades to the error sentinel and malformed synthesis output to
// the fallback bundle, so only transport failures surface as errors.
type JudgmentAdapter struct {
	config   JudgmentConfig
	client   ports.LLMClient
	validate *validator.Validate
	cache    *gocache.Cache
	logger   *zap.SugaredLogger
}

// NewJudgmentAdapter creates a judgment adapter
func NewJudgmentAdapter(config JudgmentConfig, client ports.LLMClient, logger *zap.SugaredLogger) *JudgmentAdapter {
	var evalCache *gocache.Cache
	if config.CacheTTL > 0 {
		evalCache = gocache.New(config.CacheTTL, 2*config.CacheTTL)
	}
	return &JudgmentAdapter{
		config:   config,
		client:   client,
		validate: validator.New(),
		cache:    evalCache,
		logger:   logger,
	}
}

// ChatReply answers the discovery chat with the Master PM persona
func (a *JudgmentAdapter) ChatReply(ctx context.Context, messages []council.Message, settings council.UserSettings) (string, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	chat := make([]ports.ChatMessage, 0, len(messages))
	for _, m := range messages {
		role := "assistant"
		if m.Sender == council.SenderUser {
			role = "user"
		}
		chat = append(chat, ports.ChatMessage{Role: role, Content: m.Content})
	}

	content, err := a.client.ChatCompletion(ctx, ports.ChatRequest{
		Model:     a.config.Model,
		System:    ai.ChatSystemInstruction(settings),
		Messages:  chat,
		MaxTokens: a.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return chatFallbackReply, nil
	}
	return content, nil
}

// EvaluatePrinciple audits the proposal through one principle's lens. A
// response that fails to parse, fails schema validation, carries an
// out-of-range score, or times out yields the error sentinel for this
// principle and a nil error.
func (a *JudgmentAdapter) EvaluatePrinciple(ctx context.Context, principle core.PrincipleName, topic, transcript string, settings council.UserSettings) (council.PersonaResult, error) {
	cacheKey := evaluationCacheKey(principle, topic, transcript)
	if a.cache != nil {
		if cached, ok := a.cache.Get(cacheKey); ok {
			a.logger.Debugw("persona evaluation served from cache", "principle", principle)
			return cached.(council.PersonaResult), nil
		}
	}

	callCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	content, err := a.client.ChatCompletion(callCtx, ports.ChatRequest{
		Model:     a.config.Model,
		System:    ai.AuditorPrompt(principle, settings),
		Messages:  []ports.ChatMessage{{Role: "user", Content: ai.PersonaTaskPrompt(principle, topic, transcript)}},
		JSONMode:  true,
		MaxTokens: a.config.MaxTokens,
	})
	if err != nil {
		if timedOut(ctx, callCtx) {
			// Expired per-call budget behaves exactly like a
			// validation failure.
			a.logger.Warnw("persona evaluation timed out, substituting sentinel", "principle", principle)
			return council.ErrorPerspective(principle), nil
		}
		return council.PersonaResult{}, fmt.Errorf("%w: persona evaluation for %q: %v", core.ErrServiceUnreachable, principle, err)
	}

	result, err := DecodeStructured[council.PersonaResult](content)
	if err != nil {
		a.logger.Warnw("persona response failed to parse, substituting sentinel", "principle", principle, "error", err)
		return council.ErrorPerspective(principle), nil
	}
	result.Principle = principle
	if err := a.validate.Struct(result); err != nil {
		a.logger.Warnw("persona response failed validation, substituting sentinel", "principle", principle, "error", err)
		return council.ErrorPerspective(principle), nil
	}

	if a.cache != nil {
		a.cache.Set(cacheKey, *result, gocache.DefaultExpiration)
	}
	return *result, nil
}

// Synthesize produces the document bundle from the debate summary. Parse or
// validation failure yields the fixed fallback bundle and a nil error.
func (a *JudgmentAdapter) Synthesize(ctx context.Context, topic, debate string, settings council.UserSettings) (council.DocumentBundle, error) {
	callCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	content, err := a.client.ChatCompletion(callCtx, ports.ChatRequest{
		Model:     a.config.Model,
		System:    ai.MasterPMPrompt(settings),
		Messages:  []ports.ChatMessage{{Role: "user", Content: ai.SynthesisTaskPrompt(topic, debate)}},
		JSONMode:  true,
		MaxTokens: a.config.MaxTokens,
	})
	if err != nil {
		if timedOut(ctx, callCtx) {
			a.logger.Warnw("synthesis timed out, substituting fallback bundle")
			return council.FallbackBundle(), nil
		}
		return council.DocumentBundle{}, fmt.Errorf("%w: synthesis: %v", core.ErrServiceUnreachable, err)
	}

	bundle, err := DecodeStructured[council.DocumentBundle](content)
	if err != nil {
		a.logger.Warnw("synthesis response failed to parse, substituting fallback bundle", "error", err)
		return council.FallbackBundle(), nil
	}
	if err := a.validate.Struct(bundle); err != nil {
		a.logger.Warnw("synthesis response failed validation, substituting fallback bundle", "error", err)
		return council.FallbackBundle(), nil
	}
	if bundle.RejectedPaths == nil {
		bundle.RejectedPaths = []council.RejectedPath{}
	}
	return *bundle, nil
}

func (a *JudgmentAdapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// timedOut reports whether the per-call deadline expired while the parent
// context is still live. Parent cancellation must keep propagating so a
// failing sibling can abort the batch.
func timedOut(parent, call context.Context) bool {
	return parent.Err() == nil && errors.Is(call.Err(), context.DeadlineExceeded)
}

func evaluationCacheKey(principle core.PrincipleName, topic, transcript string) string {
	sum := sha256.Sum256([]byte(topic + "\x00" + transcript))
	return principle.String() + "|" + hex.EncodeToString(sum[:])
}
