package ports

import (
	"context"

	"gocouncil/domain/core"
	"gocouncil/domain/council"
)

// JudgmentPort is the contract with the external judgment service. The
// service is untrusted with respect to output shape: implementations must
// schema-validate every structured response before returning it.
//
// Error policy: malformed or out-of-range output from EvaluatePrinciple is
// recovered into the error sentinel for that principle; from Synthesize into
// the fallback bundle. Only a transport-level failure (the invocation itself
// failing before text is returned) surfaces as a non-nil error.
type JudgmentPort interface {
	// ChatReply answers the discovery chat given the full transcript so
	// far. Returns free text.
	ChatReply(ctx context.Context, messages []council.Message, settings council.UserSettings) (string, error)

	// EvaluatePrinciple audits the proposal through one principle's lens
	EvaluatePrinciple(ctx context.Context, principle core.PrincipleName, topic, transcript string, settings council.UserSettings) (council.PersonaResult, error)

	// Synthesize produces the final document bundle from the debate
	Synthesize(ctx context.Context, topic, debate string, settings council.UserSettings) (council.DocumentBundle, error)
}
