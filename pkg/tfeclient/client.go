package tfeclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/tfe-client/internal/client"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// Environment variables consulted by ResolveConfig.
const (
	EnvAddress  = "TFE_ADDRESS"
	EnvHost     = "TFE_HOST"
	EnvToken    = "TFE_TOKEN"
	EnvBasePath = "TFE_BASE_PATH"
)

// New resolves config and creates a client.
func New(ctx context.Context, config *tfe.Config) (tfe.Client, error) {
	resolved, err := ResolveConfig(config)
	if err != nil {
		return nil, err
	}

	c, err := client.New(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a client for address authenticated with token.
func NewWithToken(ctx context.Context, address, token string) (tfe.Client, error) {
	return New(ctx, &tfe.Config{Address: address, Token: token})
}

// ResolveConfig fills the address, token and base path of a copy of config
// from the environment and the defaults. The address must be an absolute
// http or https URL.
func ResolveConfig(config *tfe.Config) (*tfe.Config, error) {
	if config == nil {
		return nil, tfe.ErrConfigRequired
	}

	resolved := *config

	env := newEnv()

	if resolved.Address == "" {
		resolved.Address = env.GetString("address")
	}

	if resolved.Address == "" {
		if host := env.GetString("host"); host != "" {
			resolved.Address = "https://" + host
		}
	}

	if resolved.Address == "" {
		resolved.Address = env.GetString("default_address")
	}

	if resolved.Token == "" {
		resolved.Token = env.GetString("token")
	}

	if resolved.BasePath == "" {
		resolved.BasePath = env.GetString("base_path")
	}

	address, err := normalizeAddress(resolved.Address)
	if err != nil {
		return nil, err
	}

	resolved.Address = address

	return &resolved, nil
}

// newEnv returns a private viper instance bound to the TFE_ variables so the
// process-wide viper state used by the CLI is left alone.
func newEnv() *viper.Viper {
	v := viper.New()

	_ = v.BindEnv("address", EnvAddress)
	_ = v.BindEnv("host", EnvHost)
	_ = v.BindEnv("token", EnvToken)
	_ = v.BindEnv("base_path", EnvBasePath)

	v.SetDefault("default_address", tfe.DefaultAddress)
	v.SetDefault("base_path", tfe.DefaultBasePath)

	return v
}

func normalizeAddress(address string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(address))
	if err != nil {
		return "", fmt.Errorf("%w: %w", tfe.ErrInvalidAddress, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", tfe.ErrInvalidAddress, address)
	}

	return strings.TrimSuffix(u.String(), "/"), nil
}
