package preview

import (
	"sync"

	"github.com/google/uuid"
)

// Artifact is a fetched PDF kept server-side until the visitor downloads it.
type Artifact struct {
	ID          string
	SessionID   string
	Filename    string
	ContentType string
	Data        []byte

	released bool
}

// Store holds downloaded artifacts in memory, keyed by session and
// filename. Replacing an artifact releases the superseded one, and
// releasing is guarded so each artifact's bytes are dropped exactly once.
type Store struct {
	mu    sync.Mutex
	byKey map[storeKey]*Artifact
	byID  map[string]*Artifact
}

type storeKey struct {
	sessionID string
	filename  string
}

func NewStore() *Store {
	return &Store{
		byKey: make(map[storeKey]*Artifact),
		byID:  make(map[string]*Artifact),
	}
}

// Put registers a new artifact, releasing any previous one under the same
// session and filename. The returned ID is what download URLs carry.
func (s *Store) Put(sessionID, filename, contentType string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := storeKey{sessionID: sessionID, filename: filename}
	if old, ok := s.byKey[key]; ok {
		s.releaseLocked(old)
	}

	art := &Artifact{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}
	s.byKey[key] = art
	s.byID[art.ID] = art
	return art.ID
}

// Get returns an artifact by ID, or false when it has been released.
func (s *Store) Get(id string) (*Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	art, ok := s.byID[id]
	return art, ok
}

// Lookup returns the current artifact for a session/filename pair.
func (s *Store) Lookup(sessionID, filename string) (*Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	art, ok := s.byKey[storeKey{sessionID: sessionID, filename: filename}]
	return art, ok
}

// Release drops an artifact's bytes. Calling it again for the same ID is
// a no-op.
func (s *Store) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if art, ok := s.byID[id]; ok {
		s.releaseLocked(art)
	}
}

// ReleaseSession drops every artifact a session still holds.
func (s *Store) ReleaseSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, art := range s.byKey {
		if key.sessionID == sessionID {
			s.releaseLocked(art)
		}
	}
}

func (s *Store) releaseLocked(art *Artifact) {
	if art.released {
		return
	}
	art.released = true
	art.Data = nil
	delete(s.byID, art.ID)
	key := storeKey{sessionID: art.SessionID, filename: art.Filename}
	if cur, ok := s.byKey[key]; ok && cur == art {
		delete(s.byKey, key)
	}
}
