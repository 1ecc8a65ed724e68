package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default per-attempt timeout.
	DefaultHTTPTimeout = 30 * time.Second

	// PingTimeout bounds the metadata probe made at construction.
	PingTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 5

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// TokenExpirationBuffer is how long before its expiry a token stops being used.
const TokenExpirationBuffer = 30 * time.Second

// Circuit breaker defaults.
const (
	CircuitBreakerThreshold        = 5
	CircuitBreakerSuccessThreshold = 2
	CircuitBreakerTimeout          = 30 * time.Second
)

// API paths and headers.
const (
	// PingPath is answered by every TFE and HCP Terraform installation.
	PingPath = "ping"

	HeaderAPIVersion = "TFP-API-Version"
	HeaderTFEVersion = "X-TFE-Version"
	HeaderAppName    = "TFP-AppName"

	// OctetStream is the content type of policy uploads.
	OctetStream = "application/octet-stream"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Display values.
const (
	NotAvailable   = "N/A"
	None           = "none"
	MaskedSecret   = "***"
	JSONIndentSize = 2

	// DescriptionDisplayLength truncates descriptions in tables.
	DescriptionDisplayLength = 50
)
