package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/types"
)

// User is a registered account, without its password hash.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

type userRecord struct {
	User
	passwordHash string
}

// UserService registers and authenticates accounts held in memory.
type UserService struct {
	mu             sync.RWMutex
	users          map[string]*userRecord // keyed by lower-cased email
	passwordConfig *config.PasswordConfig
	now            func() time.Time
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		users:          make(map[string]*userRecord),
		passwordConfig: passwordConfig,
		now:            time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account.
func (s *UserService) Register(_ context.Context, req *types.SignupRequest) (*User, error) {
	key := emailKey(req.Email)

	// Hash outside the lock; bcrypt is slow on purpose.
	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}
	rec := &userRecord{
		User: User{
			ID:        uuid.New(),
			Name:      strings.TrimSpace(req.Name),
			Email:     key,
			CreatedAt: s.now(),
		},
		passwordHash: hash,
	}
	s.users[key] = rec
	u := rec.User
	return &u, nil
}

// Login verifies credentials. Unknown emails and wrong passwords yield the
// same error.
func (s *UserService) Login(_ context.Context, req *types.LoginRequest) (*User, error) {
	s.mu.RLock()
	rec, ok := s.users[emailKey(req.Email)]
	s.mu.RUnlock()
	if !ok {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, rec.passwordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	u := rec.User
	return &u, nil
}

// Count returns the number of registered accounts.
func (s *UserService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
