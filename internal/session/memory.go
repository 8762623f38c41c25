package session

import (
	"context"
	"sync"
	"time"

	"mockcenter/internal/domain/models"
)

// MemoryStore keeps sessions in process. Suitable for a single instance.
type MemoryStore struct {
	mu      sync.RWMutex
	byToken map[string]models.Identity
	byUser  map[int64]string
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byToken: map[string]models.Identity{},
		byUser:  map[int64]string{},
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (models.Identity, bool, error) {
	if token == "" {
		return models.Identity{}, false, nil
	}
	s.mu.RLock()
	ident, ok := s.byToken[token]
	s.mu.RUnlock()
	if !ok {
		return models.Identity{}, false, nil
	}
	if expired(ident, s.now()) {
		_ = s.Delete(context.Background(), token)
		return models.Identity{}, false, nil
	}
	return ident, true, nil
}

func (s *MemoryStore) Put(_ context.Context, ident models.Identity) error {
	if ident.Token == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byUser[ident.ID]; ok && old != ident.Token {
		delete(s.byToken, old)
	}
	s.byToken[ident.Token] = ident
	s.byUser[ident.ID] = ident.Token
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ident, ok := s.byToken[token]
	if !ok {
		return nil
	}
	delete(s.byToken, token)
	if s.byUser[ident.ID] == token {
		delete(s.byUser, ident.ID)
	}
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.byUser[userID]; ok {
		delete(s.byToken, token)
		delete(s.byUser, userID)
	}
	return nil
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byToken)
}
