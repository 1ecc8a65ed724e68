package commands

import (
	"fmt"
	"io"

	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/spf13/cobra"
)

// NewVariablesCommand creates the variable command group.
func NewVariablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "variables",
		Aliases: []string{"vars", "var"},
		Short:   "Manage workspace variables",
		Long:    "List, create and delete variables of a workspace. Sensitive values are never shown.",
	}

	cmd.PersistentFlags().StringP("workspace", "w", "", "workspace name or ID")

	cmd.AddCommand(newVariablesListCommand())
	cmd.AddCommand(newVariablesCreateCommand())
	cmd.AddCommand(newVariablesDeleteCommand())

	return cmd
}

func workspaceFlagID(cmd *cobra.Command, client tfe.Client) (string, error) {
	name, _ := cmd.Flags().GetString("workspace")
	if name == "" {
		return "", constants.ErrWorkspaceRequired
	}

	return workspaceID(cmd.Context(), client, name)
}

func newVariablesListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			wsID, err := workspaceFlagID(cmd, client)
			if err != nil {
				return err
			}

			vars, err := collect(client.Variables().List(cmd.Context(), wsID, flags.options("")))
			if err != nil {
				return err
			}

			return render(cmd, vars, func(w io.Writer) error {
				table := newTable(w, "ID", "Key", "Value", "Category", "HCL", "Sensitive")
				for _, v := range vars {
					_ = table.Append(v.ID, str(v.Key), truncate(v.Value.String(), constants.DescriptionDisplayLength),
						enumStr(v.Category), boolStr(v.HCL), boolStr(v.Sensitive))
				}

				return table.Render()
			})
		},
	}

	addListFlags(cmd, &flags, false, false)

	return cmd
}

func newVariablesCreateCommand() *cobra.Command {
	var (
		key, value, description, category string
		hcl, sensitive                     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a variable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			wsID, err := workspaceFlagID(cmd, client)
			if err != nil {
				return err
			}

			opts := &tfe.VariableCreateOptions{
				Key:       tfe.Ptr(key),
				Value:     tfe.Ptr(value),
				Category:  tfe.Ptr(tfe.CategoryType(category)),
				HCL:       tfe.Ptr(hcl),
				Sensitive: tfe.Ptr(sensitive),
			}
			if description != "" {
				opts.Description = tfe.Ptr(description)
			}

			created, err := client.Variables().Create(cmd.Context(), wsID, opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Variable %s created with ID %s\n", key, created.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "variable key")
	cmd.Flags().StringVar(&value, "value", "", "variable value")
	cmd.Flags().StringVar(&description, "description", "", "variable description")
	cmd.Flags().StringVar(&category, "category", string(tfe.CategoryTerraform), "terraform or env")
	cmd.Flags().BoolVar(&hcl, "hcl", false, "parse the value as HCL")
	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "mark the value write-only")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newVariablesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete VARIABLE_ID",
		Short: "Delete a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			wsID, err := workspaceFlagID(cmd, client)
			if err != nil {
				return err
			}

			err = client.Variables().Delete(cmd.Context(), wsID, args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Variable %s deleted\n", args[0])

			return nil
		},
	}
}
