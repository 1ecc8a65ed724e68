package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/tfe-client/internal/auth"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{name: "nil token", token: nil, expected: false},
		{name: "empty value", token: &auth.Token{}, expected: false},
		{name: "no expiry", token: &auth.Token{Value: "t"}, expected: true},
		{name: "future expiry", token: &auth.Token{Value: "t", ExpiresAt: time.Now().Add(time.Hour)}, expected: true},
		{name: "expired", token: &auth.Token{Value: "t", ExpiresAt: time.Now().Add(-time.Hour)}, expected: false},
		{name: "within buffer", token: &auth.Token{Value: "t", ExpiresAt: time.Now().Add(5 * time.Second)}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("abc")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	manager.SetToken("expired", time.Now().Add(-time.Minute))
	_, err = manager.GetToken(context.Background())
	require.ErrorIs(t, err, auth.ErrTokenExpired)

	manager.SetToken("", time.Time{})
	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

type recordingPersister struct {
	address string
	token   string
	err     error
}

func (p *recordingPersister) UpdateToken(address, token string, _ time.Time) error {
	if p.err != nil {
		return p.err
	}

	p.address = address
	p.token = token

	return nil
}

func TestConfigTokenManager_Save(t *testing.T) {
	t.Parallel()

	t.Run("persists and serves the new token", func(t *testing.T) {
		t.Parallel()

		persister := &recordingPersister{}
		manager := auth.NewConfigTokenManager(persister, "https://tfe.example.com", "old")

		require.NoError(t, manager.Save("new", time.Time{}))
		assert.Equal(t, "https://tfe.example.com", persister.address)
		assert.Equal(t, "new", persister.token)

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new", token)
	})

	t.Run("keeps the old token when persisting fails", func(t *testing.T) {
		t.Parallel()

		persister := &recordingPersister{err: errors.New("disk full")}
		manager := auth.NewConfigTokenManager(persister, "https://tfe.example.com", "old")

		require.Error(t, manager.Save("new", time.Time{}))

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "old", token)
	})

	t.Run("rejects empty tokens", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewConfigTokenManager(&recordingPersister{}, "a", "")
		require.ErrorIs(t, manager.Save("", time.Time{}), auth.ErrNoToken)
	})

	t.Run("requires a persister", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewConfigTokenManager(nil, "a", "")
		require.ErrorIs(t, manager.Save("x", time.Time{}), auth.ErrNoConfigPersister)
	})
}
