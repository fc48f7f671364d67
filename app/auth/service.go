// Package auth implements account registration, login, and the request
// session boundary.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"techpulse/app/database"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Service glues the user store and the session registry together. The user
// store is pluggable: postgres in production, in-memory in tests and
// database-less deployments.
type Service struct {
	users    database.UserRepository
	sessions *SessionRegistry
}

func NewService(users database.UserRepository, sessionSecret string) *Service {
	return &Service{
		users:    users,
		sessions: NewSessionRegistry(sessionSecret),
	}
}

func (s *Service) Register(username, password string) (*database.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.CreateUser(username, string(hash))
}

// Login checks the credentials and opens a session, returning its token.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(username)
	if errors.Is(err, database.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.sessions.Create(username), nil
}

func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}

// UserForToken resolves a session token back to its account.
func (s *Service) UserForToken(token string) (*database.User, error) {
	username, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	user, err := s.users.GetUserByUsername(username)
	if errors.Is(err, database.ErrUserNotFound) {
		return nil, ErrNotAuthenticated
	}
	return user, err
}
