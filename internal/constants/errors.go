package constants

import "errors"

// Configuration errors.
var (
	ErrNoTokenConfigured = errors.New("no API token configured, use 'tfe config set-token' or set TFE_TOKEN")
	ErrEmptyToken        = errors.New("token must not be empty")
	ErrNoConfigDir       = errors.New("cannot determine config directory")
)

// Command errors.
var (
	ErrUnsupportedFormat    = errors.New("unsupported output format")
	ErrInvalidPolicyKind    = errors.New("--kind must be sentinel or opa")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrConfirmationAborted  = errors.New("operation aborted")
	ErrOrganizationRequired = errors.New("organization is required, use --organization or 'tfe config set organization'")
	ErrWorkspaceRequired    = errors.New("--workspace is required")
)
