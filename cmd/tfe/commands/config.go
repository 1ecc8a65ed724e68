package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fivetwenty-io/tfe-client/internal/auth"
	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/fivetwenty-io/tfe-client/pkg/tfeclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration file.
type Config struct {
	Address      string                 `json:"address,omitempty"      yaml:"address,omitempty"`
	Organization string                 `json:"organization,omitempty" yaml:"organization,omitempty"`
	Output       string                 `json:"output,omitempty"       yaml:"output,omitempty"`
	Credentials  map[string]*Credential `json:"credentials,omitempty"  yaml:"credentials,omitempty"`
}

// Credential is a token stored for one host.
type Credential struct {
	Token     string     `json:"token"                yaml:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

var configKeys = []string{"address", "organization", "output"}

func configFilePath() (string, error) {
	if path := viper.GetString("config"); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", constants.ErrNoConfigDir, err)
	}

	return filepath.Join(home, ".tfe", "config.yml"), nil
}

// loadConfig reads the config file. A missing file is an empty config.
func loadConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return config, nil
}

func saveConfig(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// credentialHost is the key a token is stored under.
func credentialHost(address string) string {
	parsed, err := url.Parse(address)
	if err != nil || parsed.Host == "" {
		return address
	}

	return parsed.Host
}

// resolvedAddress applies flag, environment and config file precedence.
func resolvedAddress() (string, error) {
	resolved, err := tfeclient.ResolveConfig(&tfe.Config{Address: viper.GetString("address")})
	if err != nil {
		return "", err
	}

	return resolved.Address, nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the tfe CLI configuration and stored credentials",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigSetTokenCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			masked := *config
			masked.Credentials = make(map[string]*Credential, len(config.Credentials))

			for host, credential := range config.Credentials {
				masked.Credentials[host] = &Credential{Token: constants.MaskedSecret, ExpiresAt: credential.ExpiresAt}
			}

			return render(cmd, masked, func(w io.Writer) error {
				table := newTable(w, "Property", "Value")
				_ = table.Append("Address", valueOr(config.Address, tfe.DefaultAddress))
				_ = table.Append("Organization", valueOr(config.Organization, constants.NotAvailable))
				_ = table.Append("Output", valueOr(config.Output, constants.FormatTable))

				hosts := make([]string, 0, len(config.Credentials))
				for host := range config.Credentials {
					hosts = append(hosts, host)
				}

				sort.Strings(hosts)

				for _, host := range hosts {
					_ = table.Append("Token for "+host, constants.MaskedSecret)

					if expiresAt := config.Credentials[host].ExpiresAt; expiresAt != nil {
						_ = table.Append("Token expires", expiresAt.Format(time.RFC3339))
					}
				}

				return table.Render()
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config, err := loadConfig()
			if err != nil {
				return err
			}

			switch key {
			case "address":
				resolved, err := tfeclient.ResolveConfig(&tfe.Config{Address: value})
				if err != nil {
					return err
				}

				config.Address = resolved.Address
			case "organization":
				err = tfe.ValidateIdentifier(value, tfe.KindOrganization)
				if err != nil {
					return err
				}

				config.Organization = value
			case "output":
				_, err = parseFormat(value)
				if err != nil {
					return err
				}

				config.Output = value
			default:
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			switch args[0] {
			case "address":
				config.Address = ""
			case "organization":
				config.Organization = ""
			case "output":
				config.Output = ""
			default:
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, args[0])
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	var expiresAt string

	cmd := &cobra.Command{
		Use:   "set-token",
		Short: "Store an API token for the current address",
		Long: `Store an API token for the current address. The token is read from the
terminal without echo, or from standard input when it is not a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var expiry time.Time

			if expiresAt != "" {
				parsed, err := time.Parse(time.RFC3339, expiresAt)
				if err != nil {
					return fmt.Errorf("parsing --expires-at: %w", err)
				}

				expiry = parsed
			}

			address, err := resolvedAddress()
			if err != nil {
				return err
			}

			token, err := readToken(cmd, address)
			if err != nil {
				return err
			}

			manager := auth.NewConfigTokenManager(NewConfigPersister(), address, "")

			err = manager.Save(token, expiry)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token stored for %s\n", credentialHost(address))

			return nil
		},
	}

	cmd.Flags().StringVar(&expiresAt, "expires-at", "", "token expiry (RFC 3339)")

	return cmd
}

func readToken(cmd *cobra.Command, address string) (string, error) {
	in := cmd.InOrStdin()

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Token for %s: ", credentialHost(address))

		raw, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}

		return checkToken(string(raw))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading token: %w", err)
	}

	return checkToken(line)
}

func checkToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", constants.ErrEmptyToken
	}

	return token, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
