package ports

import (
	"context"

	"gocouncil/domain/core"
	"gocouncil/domain/council"
)

// SessionArchive persists completed council sessions for later review.
// Archival is best-effort: callers log failures and never fail a council run
// on an archive error.
type SessionArchive interface {
	// ArchiveSession stores a completed session with its perspectives and
	// document bundle
	ArchiveSession(ctx context.Context, session *council.Session) error

	// ListArchived returns archived session summaries, newest first
	ListArchived(ctx context.Context, limit int) ([]*council.Session, error)

	// GetArchived retrieves one archived session
	GetArchived(ctx context.Context, id core.SessionID) (*council.Session, error)
}
