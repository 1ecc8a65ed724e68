package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/tfe-client/internal/auth"
	"github.com/fivetwenty-io/tfe-client/internal/client"
	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/fivetwenty-io/tfe-client/pkg/tfeclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// createClient builds an API client from flags, environment and the config
// file. A token given by flag or TFE_TOKEN wins over a stored credential.
func createClient(cmd *cobra.Command) (tfe.Client, error) {
	resolved, err := tfeclient.ResolveConfig(&tfe.Config{
		Address: viper.GetString("address"),
		Token:   viper.GetString("token"),
	})
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time

	if resolved.Token == "" {
		stored, err := loadConfig()
		if err != nil {
			return nil, err
		}

		if credential := stored.Credentials[credentialHost(resolved.Address)]; credential != nil {
			resolved.Token = credential.Token

			if credential.ExpiresAt != nil {
				expiresAt = *credential.ExpiresAt
			}
		}
	}

	if resolved.Token == "" {
		return nil, constants.ErrNoTokenConfigured
	}

	if viper.GetBool("verbose") {
		logger, err := newVerboseLogger()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}

		resolved.Logger = tfe.NewZapLogger(logger)
	}

	manager := auth.NewConfigTokenManager(NewConfigPersister(), resolved.Address, resolved.Token)
	if !expiresAt.IsZero() {
		manager.SetToken(resolved.Token, expiresAt)
	}

	c, err := client.NewWithTokenManager(cmd.Context(), resolved, manager)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return c, nil
}

func organization() (string, error) {
	name := viper.GetString("organization")
	if name == "" {
		return "", constants.ErrOrganizationRequired
	}

	return name, nil
}

func parseFormat(format string) (string, error) {
	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// render writes data as JSON or YAML, or calls table for the table format.
func render[T any](cmd *cobra.Command, data T, table func(w io.Writer) error) error {
	format, err := parseFormat(viper.GetString("output"))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	switch format {
	case constants.FormatJSON:
		return StandardJSONRenderer(w, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, data)
	default:
		err = table(w)
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

func newTable(w io.Writer, header ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(header...)

	return table
}

// listFlags are the paging and filtering flags shared by list commands.
type listFlags struct {
	pageSize int
	search   string
	include  []string
}

func addListFlags(cmd *cobra.Command, flags *listFlags, withSearch, withInclude bool) {
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "results per page (1-100)")

	if withSearch {
		cmd.Flags().StringVar(&flags.search, "search", "", "search by name")
	}

	if withInclude {
		cmd.Flags().StringSliceVar(&flags.include, "include", nil, "related resources to include")
	}
}

func (f *listFlags) options(searchKey string) *tfe.ListOptions {
	opts := tfe.NewListOptions()

	if f.pageSize != 0 {
		opts.WithPageSize(f.pageSize)
	}

	if f.search != "" && searchKey != "" {
		opts.WithSearch(searchKey, f.search)
	}

	if len(f.include) > 0 {
		opts.WithInclude(f.include...)
	}

	return opts
}

// collect drains an iterator returned alongside err.
func collect[T any](it *tfe.Iterator[T], err error) ([]*T, error) {
	if err != nil {
		return nil, err
	}

	return it.All()
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) error {
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", question)

	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return constants.ErrConfirmationAborted
	}
}

func str(v *string) string {
	if v == nil || *v == "" {
		return constants.NotAvailable
	}

	return *v
}

func boolStr(v *bool) string {
	if v == nil {
		return constants.NotAvailable
	}

	return strconv.FormatBool(*v)
}

func intStr(v *int) string {
	if v == nil {
		return constants.NotAvailable
	}

	return strconv.Itoa(*v)
}

func timeStr(v *time.Time) string {
	if v == nil {
		return constants.NotAvailable
	}

	return v.Format(time.RFC3339)
}

func enumStr[T ~string](v *T) string {
	if v == nil {
		return constants.NotAvailable
	}

	return string(*v)
}

func refID(ref *tfe.ResourceRef) string {
	if ref == nil {
		return constants.None
	}

	return ref.ID
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length-3] + "..."
}
