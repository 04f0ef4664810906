package council

import (
	"fmt"

	"gocouncil/domain/core"
)

// Tone labels for council feedback
const (
	ToneMentorship    = "Mentorship"
	ToneDocBarRaiser  = "Doc Bar-Raiser"
	ToneCruelCritique = "Cruel Critique"
)

// MaxFocusPrinciples caps the focus set size
const MaxFocusPrinciples = 3

// LeadershipPrinciples is the catalog of evaluation lenses a council can
// audit against
var LeadershipPrinciples = []core.PrincipleName{
	"Customer Obsession", "Ownership", "Invent and Simplify", "Are Right, A Lot",
	"Learn and Be Curious", "Hire and Develop the Best", "Insist on the Highest Standards",
	"Think Big", "Bias for Action", "Frugality", "Earn Trust", "Dive Deep",
	"Have Backbone; Disagree and Commit", "Deliver Results",
	"Strive to be Earth's Best Employer", "Success and Scale Bring Broad Responsibility",
}

// UserSettings is the process-wide configuration read by every persona and
// synthesis request. Mutation takes effect on the next invocation only:
// in-flight runs use the snapshot captured at invocation time.
type UserSettings struct {
	FocusPrinciples []core.PrincipleName `json:"focusPrinciples"`
	Tone            string               `json:"tone"`
	OrgContext      string               `json:"orgContext"`
}

// DefaultSettings returns the initial settings snapshot
func DefaultSettings() UserSettings {
	return UserSettings{
		FocusPrinciples: []core.PrincipleName{"Customer Obsession", "Ownership", "Bias for Action"},
		Tone:            ToneDocBarRaiser,
		OrgContext:      "Amazon Retail",
	}
}

// Validate checks the focus-set cap and catalog membership
func (s UserSettings) Validate() error {
	if len(s.FocusPrinciples) == 0 {
		return fmt.Errorf("at least one focus principle is required")
	}
	if len(s.FocusPrinciples) > MaxFocusPrinciples {
		return fmt.Errorf("%w: got %d", core.ErrTooManyPrinciples, len(s.FocusPrinciples))
	}
	for _, p := range s.FocusPrinciples {
		if !IsKnownPrinciple(p) {
			return fmt.Errorf("%w: %q", core.ErrUnknownPrinciple, p)
		}
	}
	return nil
}

// IsKnownPrinciple reports whether p is in the catalog
func IsKnownPrinciple(p core.PrincipleName) bool {
	for _, known := range LeadershipPrinciples {
		if known == p {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the settings snapshot
func (s UserSettings) Clone() UserSettings {
	cp := s
	cp.FocusPrinciples = make([]core.PrincipleName, len(s.FocusPrinciples))
	copy(cp.FocusPrinciples, s.FocusPrinciples)
	return cp
}
