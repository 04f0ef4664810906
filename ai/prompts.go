// Package ai builds the system instructions and task prompts sent to the
// judgment service. Prompts are plain-text templates with {PLACEHOLDER}
// tokens rendered at call time; settings are always threaded in as an
// explicit snapshot, never read from shared state.
package ai

import (
	"fmt"
	"strings"

	"gocouncil/domain/core"
	"gocouncil/domain/council"
)

const coreContext = "You are a high-level Amazon Product Professional. Your feedback must be rigorous, data-driven, and focused on maintaining the highest bars for product quality."

// The seniority constraint keeps persona output focused on product logic
// rather than leveling language.
const negativeConstraints = "CRITICAL: NEVER mention seniority levels (e.g., L5, L6, L7, L8) or phrases like 'L5 Thinking' or 'L7 level analysis' in your output. Do not associate the quality of the PM's work with a specific seniority level. Focus purely on the product logic, customer impact, and leadership principles."

var toneContexts = map[string]string{
	council.ToneMentorship:    "Be encouraging and constructive. Coach the PM toward a stronger proposal.",
	council.ToneDocBarRaiser:  "Be professional and highly critical, focusing on maintaining Amazon's high standards.",
	council.ToneCruelCritique: "Be blunt and unsparing. Surface every weakness without softening.",
}

const masterPMTemplate = `You are the "Master PM". Role: Synthesis and conclusive path finding. {CORE_CONTEXT} You operate within {ORG_CONTEXT}. You weigh the council's feedback and ensure the product path strictly adheres to the council mandate: {FOCUS}. {TONE_CONTEXT} {NEGATIVE_CONSTRAINTS}`

const auditorTemplate = `You are the AI Auditor for: "{PRINCIPLE}".
Your SUPERPOWER is to evaluate proposals strictly through the lens of {PRINCIPLE}.
{CORE_CONTEXT} You operate within {ORG_CONTEXT}.
{TONE_CONTEXT}
{NEGATIVE_CONSTRAINTS}
MANDATE: You must provide a numerical score (1-5) on how well the proposal embodies "{PRINCIPLE}".
Score 1: No evidence of principle.
Score 3: Principle is visible but flawed.
Score 5: Principle is the core engine of the proposal.
Respond with a JSON object: {"content": "detailed audit feedback", "vote": "Approve" | "Request Changes" | "Reject", "reasoning": "logic behind the vote", "score": number}.`

const facetGuidance = ` Help the user refine their idea. You must evaluate if they have covered: 1. Who is the Customer? 2. What is the Problem? 3. What is the Benefit? 4. What is the Solution? If any are missing, guide them specifically.`

const synthesisTaskTemplate = `Topic: {TOPIC}

Debate Summary:
{DEBATE}

Tasks:
1. Generate standard Amazon PRFAQ.
2. Generate Council Report. Use SIMPLE ENGLISH.
   Avoid jargons like "Type 1" or "Type 2".
   Structure:
   - Current State: Summarize where the product idea stands.
   - Logic for Rejection/Decision/Approval: Explain the Council's consensus or disagreements.
   - Suggested Next Steps: Clear, actionable path forward.
3. Classify the decision category in plain English: exactly "` + council.DecisionHighImpact + `" or "` + council.DecisionLowImpact + `".
4. Rate engineering-handoff readiness on a 1-10 scale.
5. Extract exactly 2-3 "Rejected Paths" with reasons.

Respond with a JSON object: {"prfaq": string, "report": string, "decisionType": string, "readinessScore": number, "rejectedPaths": [{"path": string, "reason": string}]}.`

// renderPrompt replaces {PLACEHOLDER} tokens with their values
func renderPrompt(template string, replacements map[string]string) string {
	result := template
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, "{"+placeholder+"}", value)
	}
	return result
}

func toneContext(tone string) string {
	if ctx, ok := toneContexts[tone]; ok {
		return ctx
	}
	return toneContexts[council.ToneDocBarRaiser]
}

// MasterPMPrompt builds the synthesis persona's base system instruction
func MasterPMPrompt(settings council.UserSettings) string {
	focus := make([]string, 0, len(settings.FocusPrinciples))
	for _, p := range settings.FocusPrinciples {
		focus = append(focus, p.String())
	}
	return renderPrompt(masterPMTemplate, map[string]string{
		"CORE_CONTEXT":         coreContext,
		"ORG_CONTEXT":          settings.OrgContext,
		"FOCUS":                strings.Join(focus, ", "),
		"TONE_CONTEXT":         toneContext(settings.Tone),
		"NEGATIVE_CONSTRAINTS": negativeConstraints,
	})
}

// AuditorPrompt builds the per-principle persona system instruction
func AuditorPrompt(principle core.PrincipleName, settings council.UserSettings) string {
	return renderPrompt(auditorTemplate, map[string]string{
		"PRINCIPLE":            principle.String(),
		"CORE_CONTEXT":         coreContext,
		"ORG_CONTEXT":          settings.OrgContext,
		"TONE_CONTEXT":         toneContext(settings.Tone),
		"NEGATIVE_CONSTRAINTS": negativeConstraints,
	})
}

// ChatSystemInstruction builds the discovery-chat system instruction: the
// Master PM persona plus explicit four-facet guidance.
func ChatSystemInstruction(settings council.UserSettings) string {
	return MasterPMPrompt(settings) + facetGuidance
}

// PersonaTaskPrompt builds the user-role prompt for one persona evaluation
func PersonaTaskPrompt(principle core.PrincipleName, topic, transcript string) string {
	return fmt.Sprintf("Topic: %s\n\nContext:\n%s\n\nTask: Audit this proposal for %q.", topic, transcript, principle.String())
}

// SynthesisTaskPrompt builds the user-role prompt for the synthesis call
func SynthesisTaskPrompt(topic, debate string) string {
	return renderPrompt(synthesisTaskTemplate, map[string]string{
		"TOPIC":  topic,
		"DEBATE": debate,
	})
}
