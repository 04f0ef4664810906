// Package app orchestrates the council session lifecycle: discovery chat
// turns, the persona evaluation fan-out and the final synthesis, driving each
// session through draft -> discussing -> completed with single-flight,
// atomically applied updates.
package app

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gocouncil/domain/core"
	"gocouncil/domain/council"
	"gocouncil/internal/store"
	"gocouncil/ports"
)

// CouncilService sequences facet updates, chat turns, the persona fan-out
// and council synthesis against the session store. It is the sole writer of
// session status and document fields.
type CouncilService struct {
	store   *store.MemoryStore
	judge   ports.JudgmentPort
	archive ports.SessionArchive // optional; nil disables archival
	logger  *zap.SugaredLogger

	settingsMu sync.RWMutex
	settings   council.UserSettings
}

// NewCouncilService creates the lifecycle controller
func NewCouncilService(sessions *store.MemoryStore, judge ports.JudgmentPort, archive ports.SessionArchive, logger *zap.SugaredLogger) *CouncilService {
	return &CouncilService{
		store:    sessions,
		judge:    judge,
		archive:  archive,
		logger:   logger,
		settings: council.DefaultSettings(),
	}
}

// Settings returns the current settings snapshot
func (s *CouncilService) Settings() council.UserSettings {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()
	return s.settings.Clone()
}

// UpdateSettings replaces the settings after validation. The change takes
// effect on the next invocation only; in-flight runs keep the snapshot they
// captured.
func (s *CouncilService) UpdateSettings(settings council.UserSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()
	s.settings = settings.Clone()
	return nil
}

// NewSession allocates a draft session and makes it active. No service
// calls.
func (s *CouncilService) NewSession() *council.Session {
	session := s.store.Create()
	s.logger.Infow("session created", "session_id", session.ID)
	return session
}

// ListSessions returns all sessions, newest first
func (s *CouncilService) ListSessions() []*council.Session {
	return s.store.List()
}

// GetSession returns one session by ID
func (s *CouncilService) GetSession(id core.SessionID) (*council.Session, error) {
	return s.store.Get(id)
}

// SelectSession makes a session the active one
func (s *CouncilService) SelectSession(id core.SessionID) error {
	return s.store.SetActive(id)
}

// resolveSession maps an empty ID to the active session
func (s *CouncilService) resolveSession(id core.SessionID) (core.SessionID, error) {
	if id != "" {
		if _, err := s.store.Get(id); err != nil {
			return "", err
		}
		return id, nil
	}
	active, ok := s.store.ActiveID()
	if !ok {
		return "", core.ErrNoActiveSession
	}
	return active, nil
}

// SubmitChatTurn runs one discovery chat turn. The facet update, topic/title
// derivation and user-message append happen synchronously before the
// suspending chat call; the assistant reply is appended on success. On
// service failure the user's message stays appended (optimistic) and the
// error is reported to the caller; no retry.
func (s *CouncilService) SubmitChatTurn(ctx context.Context, id core.SessionID, text string) (*council.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, core.ErrEmptyInput
	}

	sessionID, err := s.resolveSession(id)
	if err != nil {
		return nil, err
	}

	// Single-flight: a second submission while one is pending is rejected
	// before any state changes.
	if err := s.store.TryBeginChat(sessionID); err != nil {
		return nil, err
	}
	defer s.store.EndChat(sessionID)

	settings := s.Settings()

	snapshot, err := s.store.Update(sessionID, func(sess *council.Session) error {
		sess.Facets = council.UpdateFacets(sess.Facets, text)
		sess.ApplyFirstInput(text)
		sess.Messages = append(sess.Messages, council.NewUserMessage(text))
		return nil
	})
	if err != nil {
		return nil, err
	}

	reply, err := s.judge.ChatReply(ctx, snapshot.Messages, settings)
	if err != nil {
		s.logger.Errorw("chat completion failed, user message kept", "session_id", sessionID, "error", err)
		return snapshot, err
	}

	return s.store.Update(sessionID, func(sess *council.Session) error {
		sess.Messages = append(sess.Messages, council.NewAssistantMessage(reply))
		return nil
	})
}

// RunCouncil convenes the council: persona fan-out over all configured focus
// principles against a transcript snapshot taken before the fan-out begins,
// then one synthesis call over the aggregated results. On success the
// perspectives, document bundle and completed status land in one atomic
// update. On any unrecovered failure the session is left unmodified and only
// the in-flight flag is cleared.
func (s *CouncilService) RunCouncil(ctx context.Context, id core.SessionID) (*council.Session, error) {
	sessionID, err := s.resolveSession(id)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !snapshot.CanConvene() {
		return nil, core.ErrSessionCompleted
	}

	if err := s.store.TryBeginCouncil(sessionID); err != nil {
		return nil, err
	}
	defer s.store.EndCouncil(sessionID)

	// Settings and transcript are snapshotted here: chat turns submitted
	// while the council deliberates do not retroactively alter this run's
	// inputs.
	settings := s.Settings()
	transcript := council.RenderTranscript(snapshot.Messages)

	s.logger.Infow("council run started",
		"session_id", sessionID,
		"principles", len(settings.FocusPrinciples))

	perspectives, err := s.evaluatePersonas(ctx, settings, snapshot.Topic, transcript)
	if err != nil {
		s.logger.Errorw("persona fan-out failed, session unchanged", "session_id", sessionID, "error", err)
		return nil, err
	}

	bundle, err := s.judge.Synthesize(ctx, snapshot.Topic, council.RenderPerspectives(perspectives), settings)
	if err != nil {
		s.logger.Errorw("synthesis failed, session unchanged", "session_id", sessionID, "error", err)
		return nil, err
	}
	if bundle.IsFallback() {
		// The fallback bundle never lands on the session; the run is
		// failed and the prior (nil) bundle is retained.
		s.logger.Errorw("synthesis returned fallback bundle, session unchanged", "session_id", sessionID)
		return nil, core.ErrSynthesisFailed
	}

	completed, err := s.store.Update(sessionID, func(sess *council.Session) error {
		sess.Complete(perspectives, bundle)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("council run completed",
		"session_id", sessionID,
		"decision", bundle.DecisionType,
		"readiness", bundle.ReadinessScore)

	s.archiveCompleted(ctx, completed)
	return completed, nil
}

// evaluatePersonas issues all N principle evaluations concurrently and joins
// on the full set. Each evaluation is a 1:1 principle-to-verdict
// transformation with no cross-request dependency: per-persona recovery
// happens inside the judgment port (the sentinel), so an error here means
// the service itself was unreachable and the batch is aborted.
func (s *CouncilService) evaluatePersonas(ctx context.Context, settings council.UserSettings, topic, transcript string) ([]council.PersonaResult, error) {
	principles := settings.FocusPrinciples
	results := make([]council.PersonaResult, len(principles))

	g, gctx := errgroup.WithContext(ctx)
	for i, principle := range principles {
		i, principle := i, principle
		g.Go(func() error {
			result, err := s.judge.EvaluatePrinciple(gctx, principle, topic, transcript, settings)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ArchivedSessions lists archived sessions, newest first. Not-found when
// archival is disabled.
func (s *CouncilService) ArchivedSessions(ctx context.Context, limit int) ([]*council.Session, error) {
	if s.archive == nil {
		return nil, core.NewNotFoundError("archive", "disabled")
	}
	return s.archive.ListArchived(ctx, limit)
}

// ArchivedSession retrieves one archived session by ID
func (s *CouncilService) ArchivedSession(ctx context.Context, id core.SessionID) (*council.Session, error) {
	if s.archive == nil {
		return nil, core.ErrSessionNotFound
	}
	return s.archive.GetArchived(ctx, id)
}

// archiveCompleted persists a completed session. Best-effort: failures are
// logged and never affect the run result.
func (s *CouncilService) archiveCompleted(ctx context.Context, session *council.Session) {
	if s.archive == nil {
		return
	}
	if err := s.archive.ArchiveSession(ctx, session); err != nil {
		s.logger.Warnw("session archive failed", "session_id", session.ID, "error", err)
	}
}
