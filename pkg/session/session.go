// Package session tracks the tokens returned by register/login and answers
// "does a session exist" without a network round trip, by reading the access
// token's exp claim. Verification is the backend's job; this is client-side
// liveness only.
package session

import (
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type Manager struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	now          func() time.Time
}

func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// SetTokens stores a fresh token pair.
func (m *Manager) SetTokens(accessToken, refreshToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessToken = accessToken
	m.refreshToken = refreshToken
}

// AccessToken returns the current access token, if any.
func (m *Manager) AccessToken() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.accessToken == "" {
		return "", false
	}
	return m.accessToken, true
}

// Exists reports whether a live session is present: a token is stored and its
// exp claim, when present, is still in the future.
func (m *Manager) Exists() bool {
	m.mu.RLock()
	token := m.accessToken
	m.mu.RUnlock()
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		return true
	}
	return exp.After(m.now())
}

// UserID returns the subject claim of the access token.
func (m *Manager) UserID() (string, bool) {
	m.mu.RLock()
	token := m.accessToken
	m.mu.RUnlock()
	if token == "" {
		return "", false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// SignOut discards the stored tokens.
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessToken = ""
	m.refreshToken = ""
}
