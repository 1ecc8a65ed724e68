// Package auth supplies API tokens to the transport.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/tfe-client/internal/constants"
)

var (
	ErrNoToken           = errors.New("no API token configured")
	ErrTokenExpired      = errors.New("API token has expired")
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// Token is an API token. Team and audit trail tokens may carry an expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Valid reports whether the token is usable, allowing a small buffer before
// the expiry.
func (t *Token) Valid() bool {
	if t == nil || t.Value == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenManager hands out the token for each request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager serves a token set once by the caller.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token Token
}

// NewStaticTokenManager returns a manager for a non-expiring token. An empty
// token yields unauthenticated requests.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: Token{Value: token}}
}

// GetToken returns the token, or ErrTokenExpired once its expiry is reached.
func (m *StaticTokenManager) GetToken(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token.Value == "" {
		return "", nil
	}

	if !m.token.Valid() {
		return "", ErrTokenExpired
	}

	return m.token.Value, nil
}

// SetToken replaces the token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = Token{Value: token, ExpiresAt: expiresAt}
}

// ConfigPersister stores tokens for later CLI invocations.
type ConfigPersister interface {
	UpdateToken(address, token string, expiresAt time.Time) error
}

// ConfigTokenManager is a StaticTokenManager that writes every new token
// through to a ConfigPersister.
type ConfigTokenManager struct {
	*StaticTokenManager

	persister ConfigPersister
	address   string
}

// NewConfigTokenManager creates a manager for address seeded with token.
func NewConfigTokenManager(persister ConfigPersister, address, token string) *ConfigTokenManager {
	return &ConfigTokenManager{
		StaticTokenManager: NewStaticTokenManager(token),
		persister:          persister,
		address:            address,
	}
}

// Save sets the token and persists it.
func (m *ConfigTokenManager) Save(token string, expiresAt time.Time) error {
	if token == "" {
		return ErrNoToken
	}

	if m.persister == nil {
		return ErrNoConfigPersister
	}

	err := m.persister.UpdateToken(m.address, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update API token: %w", err)
	}

	m.SetToken(token, expiresAt)

	return nil
}
