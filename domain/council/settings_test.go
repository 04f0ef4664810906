package council

import (
	"errors"
	"testing"

	"gocouncil/domain/core"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if len(s.FocusPrinciples) != 3 {
		t.Errorf("expected 3 default principles, got %d", len(s.FocusPrinciples))
	}
	if s.Tone != ToneDocBarRaiser {
		t.Errorf("unexpected default tone: %s", s.Tone)
	}
}

func TestValidateCapsFocusSet(t *testing.T) {
	s := UserSettings{
		FocusPrinciples: []core.PrincipleName{"Customer Obsession", "Ownership", "Bias for Action", "Frugality"},
		Tone:            ToneMentorship,
	}

	err := s.Validate()
	if !errors.Is(err, core.ErrTooManyPrinciples) {
		t.Errorf("expected ErrTooManyPrinciples, got %v", err)
	}
}

func TestValidateRejectsUnknownPrinciple(t *testing.T) {
	s := UserSettings{FocusPrinciples: []core.PrincipleName{"Move Fast"}}

	err := s.Validate()
	if !errors.Is(err, core.ErrUnknownPrinciple) {
		t.Errorf("expected ErrUnknownPrinciple, got %v", err)
	}
}

func TestValidateRequiresAtLeastOne(t *testing.T) {
	if err := (UserSettings{}).Validate(); err == nil {
		t.Error("expected error for empty focus set")
	}
}

func TestSettingsCloneIndependent(t *testing.T) {
	s := DefaultSettings()
	cp := s.Clone()
	cp.FocusPrinciples[0] = "Frugality"

	if s.FocusPrinciples[0] != "Customer Obsession" {
		t.Errorf("clone mutated original: %v", s.FocusPrinciples)
	}
}

func TestRenderTranscript(t *testing.T) {
	messages := []Message{
		NewUserMessage("my idea"),
		NewAssistantMessage("tell me about the customer"),
	}

	got := RenderTranscript(messages)
	want := "User: my idea\nMaster PM: tell me about the customer"
	if got != want {
		t.Errorf("RenderTranscript = %q, want %q", got, want)
	}
}

func TestRenderPerspectives(t *testing.T) {
	results := []PersonaResult{
		{Principle: "Ownership", Content: "owns it"},
		{Principle: "Frugality", Content: "lean"},
	}

	got := RenderPerspectives(results)
	want := "Ownership: owns it\n\nFrugality: lean"
	if got != want {
		t.Errorf("RenderPerspectives = %q, want %q", got, want)
	}
}
