package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by the CLI.
const EnvPrefix = "TFE"

var globalFlags = []string{"config", "address", "token", "organization", "output", "verbose"}

// NewRootCommand creates the tfe command with every subcommand attached.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tfe",
		Short: "HCP Terraform and Terraform Enterprise CLI",
		Long: `A command-line interface for the HCP Terraform and Terraform Enterprise API.

Organizations, projects, workspaces, variables, runs, policies, reserved tag
keys and agent pools can be listed and managed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.tfe/config.yml)")
	flags.StringP("address", "a", "", "API address (default is https://app.terraform.io)")
	flags.StringP("token", "t", "", "API token")
	flags.StringP("organization", "o", "", "organization name")
	flags.String("output", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")

	for _, name := range globalFlags {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewInfoCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewOrgsCommand())
	rootCmd.AddCommand(NewProjectsCommand())
	rootCmd.AddCommand(NewWorkspacesCommand())
	rootCmd.AddCommand(NewVariablesCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewPoliciesCommand())
	rootCmd.AddCommand(NewReservedTagKeysCommand())
	rootCmd.AddCommand(NewAgentPoolsCommand())

	return rootCmd
}

func initConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	path, err := configFilePath()
	if err != nil {
		return err
	}

	viper.SetConfigFile(path)

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}
