package repositories

import (
	"context"
	"sync"

	"vidshare/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user. Username and email must be unique.
func (r *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return errors.Errorf("user %s or %s already exists", user.Username, user.Email)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id }, "user with ID %s", id)
}

// GetByUsername returns a user by their username.
func (r *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username }, "user with username %s", username)
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email }, "user with email %s", email)
}

// Update replaces the profile fields of an existing user and keeps its counter.
func (r *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return errors.Wrapf(ErrNotFound, "user with ID %s for update", user.ID)
	}
	updated := *user
	updated.SubscribersCount = existing.SubscribersCount
	r.users[user.ID] = updated
	return nil
}

// UpdateSubscribersCount overwrites the subscriber counter.
func (r *MockUserRepository) UpdateSubscribersCount(ctx context.Context, id string, count int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return errors.Wrapf(ErrNotFound, "user with ID %s", id)
	}
	u.SubscribersCount = count
	r.users[id] = u
	return nil
}

func (r *MockUserRepository) find(match func(models.User) bool, format string, args ...interface{}) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, format, args...)
}
