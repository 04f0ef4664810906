package council

import (
	"strings"

	"gocouncil/domain/core"
)

// Status is the lifecycle state of a council session
type Status string

const (
	StatusDraft      Status = "draft"
	StatusDiscussing Status = "discussing"
	StatusVoting     Status = "voting"
	StatusCompleted  Status = "completed"
)

// Vote is a persona's categorical verdict on a proposal
type Vote string

const (
	VoteApprove        Vote = "Approve"
	VoteRequestChanges Vote = "Request Changes"
	VoteReject         Vote = "Reject"
)

// Canonical decision classification values. These are a closed taxonomy and
// must match exactly; free-form narrative belongs in the report text.
const (
	DecisionHighImpact = "High Impact & Difficult to Reverse"
	DecisionLowImpact  = "Low Impact & Easy to Change"
)

// DefaultTitle is the placeholder title of a freshly created session. The
// title is recomputed from the first message only while it still holds this
// value.
const DefaultTitle = "New Product Journey"

// TitleLimit caps the auto-derived session title length in runes
const TitleLimit = 30

// Message senders. Assistant replies are always attributed to the Master PM
// synthesis persona.
const (
	SenderUser     = "User"
	SenderMasterPM = "Master PM"
)

// Message is one immutable chat turn
type Message struct {
	ID        core.MessageID `json:"id"`
	Sender    string         `json:"sender"`
	Content   string         `json:"content"`
	Timestamp core.Timestamp `json:"timestamp"`
}

// NewUserMessage builds a user chat turn
func NewUserMessage(content string) Message {
	return Message{
		ID:        core.NewMessageID(),
		Sender:    SenderUser,
		Content:   content,
		Timestamp: core.Now(),
	}
}

// NewAssistantMessage builds a Master PM chat turn
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        core.NewMessageID(),
		Sender:    SenderMasterPM,
		Content:   content,
		Timestamp: core.Now(),
	}
}

// PersonaResult is one principle-auditor's verdict. It is produced atomically
// per principle: malformed upstream output is replaced wholesale by the error
// sentinel, never left partially populated or absent.
type PersonaResult struct {
	Principle core.PrincipleName `json:"principle" validate:"required"`
	Content   string             `json:"content" validate:"required"`
	Vote      Vote               `json:"vote" validate:"required,oneof=Approve 'Request Changes' Reject"`
	Reasoning string             `json:"reasoning" validate:"required"`
	Score     float64            `json:"score" validate:"gte=1,lte=5"`
}

// ErrorPerspective is the fixed sentinel substituted for a persona whose
// evaluation failed validation or timed out
func ErrorPerspective(principle core.PrincipleName) PersonaResult {
	return PersonaResult{
		Principle: principle,
		Content:   "Error",
		Vote:      VoteRequestChanges,
		Reasoning: "Error",
		Score:     1,
	}
}

// RejectedPath records an alternative the council considered and declined
type RejectedPath struct {
	Path   string `json:"path" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// DocumentBundle is the synthesis output. It is applied to a session as one
// unit: either the whole bundle lands or the session keeps its prior nil
// bundle.
type DocumentBundle struct {
	PRFAQ          string         `json:"prfaq" validate:"required"`
	Report         string         `json:"report" validate:"required"`
	DecisionType   string         `json:"decisionType" validate:"required,oneof='High Impact & Difficult to Reverse' 'Low Impact & Easy to Change'"`
	ReadinessScore float64        `json:"readinessScore" validate:"gte=1,lte=10"`
	RejectedPaths  []RejectedPath `json:"rejectedPaths" validate:"omitempty,dive"`
}

// FallbackBundle is the fixed bundle returned when synthesis output fails
// parsing or validation. A session holding this bundle never advances to
// completed.
func FallbackBundle() DocumentBundle {
	return DocumentBundle{
		PRFAQ:          "Error",
		Report:         "Error",
		DecisionType:   DecisionLowImpact,
		ReadinessScore: 5,
		RejectedPaths:  []RejectedPath{},
	}
}

// IsFallback reports whether b equals the fixed fallback bundle
func (b DocumentBundle) IsFallback() bool {
	return b.PRFAQ == "Error" && b.Report == "Error"
}

// Session is the unit of work for one product idea
type Session struct {
	ID           core.SessionID  `json:"id"`
	Title        string          `json:"title"`
	Topic        string          `json:"topic"`
	Messages     []Message       `json:"messages"`
	Perspectives []PersonaResult `json:"perspectives"`
	Documents    *DocumentBundle `json:"documents"`
	Status       Status          `json:"status"`
	Facets       FacetRecord     `json:"facets"`
	CreatedAt    core.Timestamp  `json:"createdAt"`
}

// NewSession allocates a draft session with no messages, perspectives or
// documents
func NewSession() *Session {
	return &Session{
		ID:           core.NewSessionID(),
		Title:        DefaultTitle,
		Topic:        "",
		Messages:     []Message{},
		Perspectives: []PersonaResult{},
		Documents:    nil,
		Status:       StatusDraft,
		Facets:       FacetRecord{},
		CreatedAt:    core.Now(),
	}
}

// ApplyFirstInput sets topic and title from the first substantive user input.
// The topic is set exactly once and never overwritten; the title is derived
// only while it still holds the placeholder.
func (s *Session) ApplyFirstInput(text string) {
	if s.Topic == "" {
		s.Topic = text
	}
	if s.Title == DefaultTitle {
		s.Title = TruncateTitle(text)
	}
}

// TruncateTitle derives a display title from free text
func TruncateTitle(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > TitleLimit {
		return string(runes[:TitleLimit])
	}
	return string(runes)
}

// Clone returns a deep copy of the session. The store hands out and accepts
// whole records, so mutation of a clone is never visible to other readers.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Messages = make([]Message, len(s.Messages))
	copy(cp.Messages, s.Messages)
	cp.Perspectives = make([]PersonaResult, len(s.Perspectives))
	copy(cp.Perspectives, s.Perspectives)
	if s.Documents != nil {
		docs := *s.Documents
		docs.RejectedPaths = make([]RejectedPath, len(s.Documents.RejectedPaths))
		copy(docs.RejectedPaths, s.Documents.RejectedPaths)
		cp.Documents = &docs
	}
	return &cp
}

// Complete applies a successful council run: perspectives, document bundle
// and the terminal status land together.
func (s *Session) Complete(perspectives []PersonaResult, bundle DocumentBundle) {
	s.Perspectives = perspectives
	s.Documents = &bundle
	s.Status = StatusCompleted
}

// CanConvene reports whether the convene-council action is still available
func (s *Session) CanConvene() bool {
	return s.Status != StatusCompleted
}
