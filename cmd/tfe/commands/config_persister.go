package commands

import (
	"sync"
	"time"

	"github.com/fivetwenty-io/tfe-client/internal/auth"
)

// ConfigPersister implements the auth.ConfigPersister interface on top of
// the CLI config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

var _ auth.ConfigPersister = (*ConfigPersister)(nil)

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateToken stores token as the credential for the host of address. A zero
// expiresAt clears any stored expiry.
func (p *ConfigPersister) UpdateToken(address, token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	if config.Credentials == nil {
		config.Credentials = make(map[string]*Credential)
	}

	credential := &Credential{Token: token}
	if !expiresAt.IsZero() {
		credential.ExpiresAt = &expiresAt
	}

	config.Credentials[credentialHost(address)] = credential

	return saveConfig(config)
}
