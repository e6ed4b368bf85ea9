// Package memory содержит хранилище в памяти процесса.
// Используется в тестах и при STORAGE_BACKEND=memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

// Storage реализует ports.UserStorage и ports.FootprintStorage.
type Storage struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
	entries []domain.FootprintEntry
	nextID  int64
}

func NewStorage() *Storage {
	return &Storage{
		users:   make(map[uuid.UUID]domain.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *Storage) FindUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.UserNotFound(id)
	}
	return &u, nil
}

func (s *Storage) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "user", ID: email}
	}
	u := s.users[id]
	return &u, nil
}

func (s *Storage) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return fmt.Errorf("insert user %s: %w", user.Email, domain.ErrConflict)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("insert user %s: %w", user.ID, domain.ErrConflict)
	}
	s.users[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *Storage) UpdateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[user.ID]
	if !ok {
		return domain.UserNotFound(user.ID)
	}
	// email и версия токенов через UpdateUser не меняются
	next := *user
	next.Email = cur.Email
	next.TokenVersion = cur.TokenVersion
	next.CreatedAt = cur.CreatedAt
	s.users[user.ID] = next
	return nil
}

func (s *Storage) IncrementTokenVersion(_ context.Context, id uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return 0, domain.UserNotFound(id)
	}
	u.TokenVersion++
	s.users[id] = u
	return u.TokenVersion, nil
}

func (s *Storage) InsertEntry(_ context.Context, entry *domain.FootprintEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[entry.UserID]; !ok {
		return 0, domain.UserNotFound(entry.UserID)
	}
	s.nextID++
	row := *entry
	row.ID = s.nextID
	s.entries = append(s.entries, row)
	return row.ID, nil
}

func (s *Storage) QueryEntries(_ context.Context, userID uuid.UUID) ([]domain.FootprintEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.FootprintEntry{}
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Ping всегда успешен.
func (s *Storage) Ping(context.Context) error { return nil }
