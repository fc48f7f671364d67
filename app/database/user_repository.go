package database

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserRepositoryPg handles database operations for user accounts
type UserRepositoryPg struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepositoryPg {
	return &UserRepositoryPg{db: db}
}

func (r *UserRepositoryPg) CreateUser(username, passwordHash string) (*User, error) {
	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	_, err := r.db.Exec(`
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
	`, user.ID, user.Username, user.PasswordHash)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *UserRepositoryPg) GetUserByUsername(username string) (*User, error) {
	var user User
	err := r.db.QueryRow(`
		SELECT id, username, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UserRepositoryMem keeps accounts in process memory. Used in tests and when
// the service runs without a database; accounts are lost on restart.
type UserRepositoryMem struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewUserRepositoryMem() *UserRepositoryMem {
	return &UserRepositoryMem{users: make(map[string]*User)}
}

func (r *UserRepositoryMem) CreateUser(username, passwordHash string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[username]; exists {
		return nil, ErrUsernameTaken
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	r.users[username] = user

	return user, nil
}

func (r *UserRepositoryMem) GetUserByUsername(username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}
