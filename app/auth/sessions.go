package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SessionRegistry is the in-process session store: token -> username.
// Tokens are random UUIDs signed with the configured session secret so a
// forged cookie fails before the map lookup. Sessions do not survive a
// restart.
type SessionRegistry struct {
	secret   []byte
	mu       sync.RWMutex
	sessions map[string]string
}

func NewSessionRegistry(secret string) *SessionRegistry {
	return &SessionRegistry{
		secret:   []byte(secret),
		sessions: make(map[string]string),
	}
}

func (r *SessionRegistry) Create(username string) string {
	id := uuid.NewString()
	token := id + "." + r.sign(id)

	r.mu.Lock()
	r.sessions[token] = username
	r.mu.Unlock()

	return token
}

func (r *SessionRegistry) Resolve(token string) (string, bool) {
	id, sig, found := strings.Cut(token, ".")
	if !found || !hmac.Equal([]byte(sig), []byte(r.sign(id))) {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	username, ok := r.sessions[token]
	return username, ok
}

func (r *SessionRegistry) Delete(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

func (r *SessionRegistry) sign(id string) string {
	mac := hmac.New(sha256.New, r.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
