// Package testutil provides fixtures shared by service and handler tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"testing"

	"bugwise/internal/model"
	"bugwise/internal/repository"
	"bugwise/internal/utils"
)

// MemoryStore is an in-memory repository.Store. WithinTx snapshots the table
// and restores it when the callback fails, mirroring a rollback.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, users: make(map[int64]model.User)}
}

func (s *MemoryStore) Users() repository.UserRepository {
	return &memoryUsers{s: s}
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(users repository.UserRepository) error) error {
	s.mu.Lock()
	snapshot := make(map[int64]model.User, len(s.users))
	for k, v := range s.users {
		snapshot[k] = v
	}
	nextID := s.nextID
	s.mu.Unlock()

	if err := fn(s.Users()); err != nil {
		s.mu.Lock()
		s.users = snapshot
		s.nextID = nextID
		s.mu.Unlock()
		return err
	}
	return nil
}

// Len returns the number of stored users.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// SeedUser hashes password and inserts a user directly, returning the stored record.
func SeedUser(t *testing.T, s *MemoryStore, username, password string, role model.Role) *model.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &model.User{Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role}
	if err := s.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

type memoryUsers struct {
	s *MemoryStore
}

func (r *memoryUsers) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUnique(user, 0); err != nil {
		return err
	}
	user.ID = r.s.nextID
	r.s.nextID++
	r.s.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memoryUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.findBy(func(u model.User) bool { return u.Username == username }), nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.findBy(func(u model.User) bool { return u.Email == email }), nil
}

func (r *memoryUsers) List(_ context.Context, skip, limit int) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]int64, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]model.User, 0, limit)
	for i := skip; i < len(ids) && len(users) < limit; i++ {
		users = append(users, r.s.users[ids[i]])
	}
	return users, nil
}

func (r *memoryUsers) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if err := r.s.checkUnique(user, user.ID); err != nil {
		return err
	}
	existing.Username = user.Username
	existing.Email = user.Email
	existing.Role = user.Role
	existing.UpdatedAt = user.UpdatedAt
	r.s.users[user.ID] = existing
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *memoryUsers) findBy(match func(model.User) bool) *model.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

// checkUnique mirrors the table's unique constraints, ignoring the row self.
func (s *MemoryStore) checkUnique(user *model.User, self int64) error {
	for id, u := range s.users {
		if id == self {
			continue
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	return nil
}
