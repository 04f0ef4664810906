// Package store holds the in-memory collection of council sessions and the
// identity of the active one. The store is the only shared mutable resource
// in the engine: all reads hand out deep copies and all writes swap whole
// records under the lock, so no caller ever observes a half-applied update.
package store

import (
	"sync"

	"gocouncil/domain/core"
	"gocouncil/domain/council"
)

// flightFlags are the per-session single-flight markers. They are
// checked-and-set atomically with the store lock before any suspending call
// is issued.
type flightFlags struct {
	chat    bool
	council bool
}

// MemoryStore is the authoritative session store
type MemoryStore struct {
	mu       sync.Mutex
	order    []core.SessionID // newest first
	sessions map[core.SessionID]*council.Session
	flags    map[core.SessionID]*flightFlags
	activeID core.SessionID
}

// NewMemoryStore creates an empty session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[core.SessionID]*council.Session),
		flags:    make(map[core.SessionID]*flightFlags),
	}
}

// Create allocates a draft session, prepends it to the collection and makes
// it active. Returns a copy of the new session.
func (s *MemoryStore) Create() *council.Session {
	session := council.NewSession()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	s.flags[session.ID] = &flightFlags{}
	s.order = append([]core.SessionID{session.ID}, s.order...)
	s.activeID = session.ID
	return session.Clone()
}

// Get returns a copy of the session with the given ID
func (s *MemoryStore) Get(id core.SessionID) (*council.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Active returns a copy of the active session
func (s *MemoryStore) Active() (*council.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == "" {
		return nil, core.ErrNoActiveSession
	}
	session, ok := s.sessions[s.activeID]
	if !ok {
		return nil, core.ErrNoActiveSession
	}
	return session.Clone(), nil
}

// ActiveID returns the active session's ID, if any
func (s *MemoryStore) ActiveID() (core.SessionID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID, s.activeID != ""
}

// SetActive selects the session the three commands operate on
func (s *MemoryStore) SetActive(id core.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return core.ErrSessionNotFound
	}
	s.activeID = id
	return nil
}

// List returns copies of all sessions, newest first
func (s *MemoryStore) List() []*council.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*council.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].Clone())
	}
	return out
}

// Update applies fn to a copy of the current record and swaps it in as one
// atomic step. fn runs under the store lock and must not block.
func (s *MemoryStore) Update(id core.SessionID, fn func(*council.Session) error) (*council.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.sessions[id] = next
	return next.Clone(), nil
}

// TryBeginChat atomically claims the chat single-flight flag
func (s *MemoryStore) TryBeginChat(id core.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flags[id]
	if !ok {
		return core.ErrSessionNotFound
	}
	if f.chat {
		return core.ErrChatInFlight
	}
	f.chat = true
	return nil
}

// EndChat releases the chat single-flight flag
func (s *MemoryStore) EndChat(id core.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.flags[id]; ok {
		f.chat = false
	}
}

// TryBeginCouncil atomically claims the council single-flight flag
func (s *MemoryStore) TryBeginCouncil(id core.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flags[id]
	if !ok {
		return core.ErrSessionNotFound
	}
	if f.council {
		return core.ErrCouncilInFlight
	}
	f.council = true
	return nil
}

// EndCouncil releases the council single-flight flag
func (s *MemoryStore) EndCouncil(id core.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.flags[id]; ok {
		f.council = false
	}
}

// InFlight reports the chat and council single-flight flags for a session
func (s *MemoryStore) InFlight(id core.SessionID) (chat, councilRun bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.flags[id]; ok {
		return f.chat, f.council
	}
	return false, false
}
