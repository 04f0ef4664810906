package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gocouncil/domain/core"
	"gocouncil/domain/council"
	"gocouncil/ports"
)

// ArchiveRepository persists completed council sessions to PostgreSQL.
// The in-memory store stays the source of truth for live sessions; the
// archive only ever sees completed ones.
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository creates a new PostgreSQL session archive
func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// EnsureSchema creates the archive table when it does not exist yet
func (r *ArchiveRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS archived_sessions (
			id              TEXT PRIMARY KEY,
			title           TEXT NOT NULL,
			topic           TEXT NOT NULL,
			status          TEXT NOT NULL,
			messages        JSONB NOT NULL DEFAULT '[]',
			perspectives    JSONB NOT NULL DEFAULT '[]',
			documents       JSONB,
			facets          JSONB NOT NULL DEFAULT '{}',
			decision_type   TEXT NOT NULL DEFAULT '',
			readiness_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at      TIMESTAMPTZ NOT NULL,
			archived_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure archive schema: %w", err)
	}
	return nil
}

type archivedRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Topic          string         `db:"topic"`
	Status         string         `db:"status"`
	Messages       []byte         `db:"messages"`
	Perspectives   []byte         `db:"perspectives"`
	Documents      sql.NullString `db:"documents"`
	Facets         []byte         `db:"facets"`
	DecisionType   string         `db:"decision_type"`
	ReadinessScore float64        `db:"readiness_score"`
	CreatedAt      time.Time      `db:"created_at"`
	ArchivedAt     time.Time      `db:"archived_at"`
}

// ArchiveSession upserts a completed session. Decision type and readiness
// are mirrored into plain columns so the export query can avoid JSON
// extraction.
func (r *ArchiveRepository) ArchiveSession(ctx context.Context, session *council.Session) error {
	messages, err := json.Marshal(session.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}
	perspectives, err := json.Marshal(session.Perspectives)
	if err != nil {
		return fmt.Errorf("failed to encode perspectives: %w", err)
	}
	facets, err := json.Marshal(session.Facets)
	if err != nil {
		return fmt.Errorf("failed to encode facets: %w", err)
	}

	var documents interface{}
	decisionType := ""
	readiness := 0.0
	if session.Documents != nil {
		encoded, err := json.Marshal(session.Documents)
		if err != nil {
			return fmt.Errorf("failed to encode documents: %w", err)
		}
		documents = encoded
		decisionType = session.Documents.DecisionType
		readiness = session.Documents.ReadinessScore
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO archived_sessions (id, title, topic, status, messages, perspectives, documents, facets, decision_type, readiness_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			status = EXCLUDED.status,
			messages = EXCLUDED.messages,
			perspectives = EXCLUDED.perspectives,
			documents = EXCLUDED.documents,
			facets = EXCLUDED.facets,
			decision_type = EXCLUDED.decision_type,
			readiness_score = EXCLUDED.readiness_score,
			archived_at = NOW()
	`, string(session.ID), session.Title, session.Topic, string(session.Status),
		messages, perspectives, documents, facets, decisionType, readiness,
		session.CreatedAt.Time())
	if err != nil {
		return fmt.Errorf("failed to archive session %s: %w", session.ID, err)
	}
	return nil
}

// ListArchived returns archived sessions newest-first, optionally limited
func (r *ArchiveRepository) ListArchived(ctx context.Context, limit int) ([]*council.Session, error) {
	query := `
		SELECT id, title, topic, status, messages, perspectives, documents, facets, decision_type, readiness_score, created_at, archived_at
		FROM archived_sessions
		ORDER BY archived_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var rows []archivedRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list archived sessions: %w", err)
	}

	sessions := make([]*council.Session, 0, len(rows))
	for i := range rows {
		session, err := rows[i].toSession()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// GetArchived retrieves one archived session by id
func (r *ArchiveRepository) GetArchived(ctx context.Context, id core.SessionID) (*council.Session, error) {
	var row archivedRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, title, topic, status, messages, perspectives, documents, facets, decision_type, readiness_score, created_at, archived_at
		FROM archived_sessions
		WHERE id = $1
	`, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get archived session %s: %w", id, err)
	}
	return row.toSession()
}

func (row *archivedRow) toSession() (*council.Session, error) {
	session := &council.Session{
		ID:        core.SessionID(row.ID),
		Title:     row.Title,
		Topic:     row.Topic,
		Status:    council.Status(row.Status),
		CreatedAt: core.NewTimestamp(row.CreatedAt),
	}
	if err := json.Unmarshal(row.Messages, &session.Messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages for %s: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Perspectives, &session.Perspectives); err != nil {
		return nil, fmt.Errorf("failed to decode perspectives for %s: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Facets, &session.Facets); err != nil {
		return nil, fmt.Errorf("failed to decode facets for %s: %w", row.ID, err)
	}
	if row.Documents.Valid && row.Documents.String != "" {
		var bundle council.DocumentBundle
		if err := json.Unmarshal([]byte(row.Documents.String), &bundle); err != nil {
			return nil, fmt.Errorf("failed to decode documents for %s: %w", row.ID, err)
		}
		session.Documents = &bundle
	}
	return session, nil
}

var _ ports.SessionArchive = (*ArchiveRepository)(nil)
