package store

import (
	"context"
	"encoding/json"
	"sync"

	"qfs-ledger-gateway/internal/features/session/models"
)

type memoryEntry struct {
	token   string
	profile []byte
}

// MemoryStore keeps sessions in process memory. It backs the tab-scoped tier
// (sessions vanish when the gateway restarts) and every test.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(_ context.Context, sid, token string, profile *models.Profile) error {
	var raw []byte
	if profile != nil {
		b, err := json.Marshal(profile)
		if err != nil {
			return err
		}
		raw = b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memoryEntry{token: token, profile: raw}
	return nil
}

func (s *MemoryStore) Token(_ context.Context, sid string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[sid]
	if !ok || entry.token == "" {
		return "", false, nil
	}
	return entry.token, true, nil
}

func (s *MemoryStore) Profile(_ context.Context, sid string) (*models.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[sid]
	if !ok || len(entry.profile) == 0 {
		return nil, false, nil
	}

	var profile models.Profile
	if err := json.Unmarshal(entry.profile, &profile); err != nil {
		// Corrupted profile resolves to absent, not to a failed lookup.
		return nil, false, nil
	}
	return &profile, true, nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
