package app

import (
	"gocouncil/domain/core"
	"gocouncil/domain/council"
)

// SessionView is the read-only projection the presentation boundary renders.
// No mutation path exists through it.
type SessionView struct {
	ID              core.SessionID          `json:"id"`
	Title           string                  `json:"title"`
	Topic           string                  `json:"topic"`
	Status          council.Status          `json:"status"`
	Messages        []council.Message       `json:"messages"`
	Perspectives    []council.PersonaResult `json:"perspectives"`
	Documents       *council.DocumentBundle `json:"documents"`
	Facets          council.FacetRecord     `json:"facets"`
	CreatedAt       core.Timestamp          `json:"createdAt"`
	ChatInFlight    bool                    `json:"chatInFlight"`
	CouncilInFlight bool                    `json:"councilInFlight"`
	HasDecision     bool                    `json:"hasDecision"`
	HasReadiness    bool                    `json:"hasReadiness"`
	Scores          council.ScoreSummary    `json:"scores"`
	PersonaIcons    []string                `json:"personaIcons"`
}

// SessionSummary is the compact listing entry for the session collection
type SessionSummary struct {
	ID        core.SessionID `json:"id"`
	Title     string         `json:"title"`
	Status    council.Status `json:"status"`
	Active    bool           `json:"active"`
	CreatedAt core.Timestamp `json:"createdAt"`
}

// SessionView builds the full read-only view of one session, including the
// two in-flight booleans. A council run in flight surfaces as the
// discussing status without touching the stored record.
func (s *CouncilService) SessionView(id core.SessionID) (*SessionView, error) {
	sessionID, err := s.resolveSession(id)
	if err != nil {
		return nil, err
	}
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	chat, councilRun := s.store.InFlight(sessionID)

	status := session.Status
	if councilRun && status != council.StatusCompleted {
		status = council.StatusDiscussing
	}

	icons := make([]string, len(session.Perspectives))
	for i := range session.Perspectives {
		icons[i] = council.PersonaIcon(i)
	}

	return &SessionView{
		ID:              session.ID,
		Title:           session.Title,
		Topic:           session.Topic,
		Status:          status,
		Messages:        session.Messages,
		Perspectives:    session.Perspectives,
		Documents:       session.Documents,
		Facets:          session.Facets,
		CreatedAt:       session.CreatedAt,
		ChatInFlight:    chat,
		CouncilInFlight: councilRun,
		HasDecision:     session.Documents != nil && session.Documents.DecisionType != "",
		HasReadiness:    session.Documents != nil && session.Documents.ReadinessScore > 0,
		Scores:          council.SummarizeScores(session.Perspectives),
		PersonaIcons:    icons,
	}, nil
}

// SessionSummaries lists all sessions, newest first
func (s *CouncilService) SessionSummaries() []SessionSummary {
	activeID, _ := s.store.ActiveID()
	sessions := s.store.List()
	out := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, SessionSummary{
			ID:        session.ID,
			Title:     session.Title,
			Status:    session.Status,
			Active:    session.ID == activeID,
			CreatedAt: session.CreatedAt,
		})
	}
	return out
}
