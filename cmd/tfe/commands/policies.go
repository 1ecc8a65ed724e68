package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/spf13/cobra"
)

// NewPoliciesCommand creates the policy command group.
func NewPoliciesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policies",
		Aliases: []string{"policy", "pol"},
		Short:   "Manage Sentinel and OPA policies",
		Long:    "List, create, upload, download and delete policies of an organization",
	}

	cmd.AddCommand(newPoliciesListCommand())
	cmd.AddCommand(newPoliciesGetCommand())
	cmd.AddCommand(newPoliciesCreateCommand())
	cmd.AddCommand(newPoliciesUploadCommand())
	cmd.AddCommand(newPoliciesDownloadCommand())
	cmd.AddCommand(newPoliciesDeleteCommand())

	return cmd
}

func newPoliciesListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := organization()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			policies, err := collect(client.Policies().List(cmd.Context(), org, flags.options("name")))
			if err != nil {
				return err
			}

			return render(cmd, policies, func(w io.Writer) error {
				table := newTable(w, "ID", "Name", "Kind", "Enforcement", "Policy Sets")
				for _, policy := range policies {
					_ = table.Append(policy.ID, str(policy.Name), enumStr(policy.Kind),
						enumStr(policy.EnforcementLevel), intStr(policy.PolicySetCount))
				}

				return table.Render()
			})
		},
	}

	addListFlags(cmd, &flags, true, false)

	return cmd
}

func newPoliciesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get POLICY_ID",
		Short: "Get policy details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			policy, err := client.Policies().Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, policy, func(w io.Writer) error {
				table := newTable(w, "Property", "Value")
				_ = table.Append("ID", policy.ID)
				_ = table.Append("Name", str(policy.Name))
				_ = table.Append("Description", str(policy.Description))
				_ = table.Append("Kind", enumStr(policy.Kind))
				_ = table.Append("Query", str(policy.Query))
				_ = table.Append("Enforcement", enumStr(policy.EnforcementLevel))
				_ = table.Append("Policy Sets", intStr(policy.PolicySetCount))
				_ = table.Append("Updated", timeStr(policy.UpdatedAt))

				return table.Render()
			})
		},
	}
}

// parsePolicyKind maps the --kind flag onto a policy kind.
func parsePolicyKind(kind string) (tfe.PolicyKind, error) {
	switch tfe.PolicyKind(kind) {
	case tfe.PolicyKindSentinel, tfe.PolicyKindOPA:
		return tfe.PolicyKind(kind), nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidPolicyKind, kind)
	}
}

func newPoliciesCreateCommand() *cobra.Command {
	var (
		name, kind, query, level, description, file string
		policySets                                  []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a policy",
		Long: `Create a Sentinel or OPA policy. OPA policies require --query. When --file
is given the policy code is uploaded after creation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policyKind, err := parsePolicyKind(kind)
			if err != nil {
				return err
			}

			opts, err := tfe.NewPolicyCreateOptions(policyKind, name, query, tfe.EnforcementLevel(level))
			if err != nil {
				return err
			}

			switch o := opts.(type) {
			case *tfe.SentinelPolicyCreateOptions:
				o.PolicySetIDs = policySets
				if description != "" {
					o.Description = tfe.Ptr(description)
				}
			case *tfe.OPAPolicyCreateOptions:
				o.PolicySetIDs = policySets
				if description != "" {
					o.Description = tfe.Ptr(description)
				}
			}

			err = opts.Validate()
			if err != nil {
				return err
			}

			var content []byte

			if file != "" {
				content, err = os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading policy file: %w", err)
				}
			}

			org, err := organization()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			policy, err := client.Policies().Create(cmd.Context(), org, opts)
			if err != nil {
				return err
			}

			if content != nil {
				err = client.Policies().Upload(cmd.Context(), policy.ID, content)
				if err != nil {
					return fmt.Errorf("policy %s created but upload failed: %w", policy.ID, err)
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Policy %s created with ID %s\n", name, policy.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "policy name")
	cmd.Flags().StringVar(&kind, "kind", string(tfe.PolicyKindSentinel), "policy kind (sentinel or opa)")
	cmd.Flags().StringVar(&query, "query", "", "OPA query")
	cmd.Flags().StringVar(&level, "enforcement-level", string(tfe.EnforcementAdvisory), "enforcement level")
	cmd.Flags().StringVar(&description, "description", "", "policy description")
	cmd.Flags().StringVar(&file, "file", "", "policy code to upload")
	cmd.Flags().StringSliceVar(&policySets, "policy-set", nil, "policy set IDs to add the policy to")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPoliciesUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload POLICY_ID FILE",
		Short: "Upload policy code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading policy file: %w", err)
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			err = client.Policies().Upload(cmd.Context(), args[0], content)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d bytes to policy %s\n", len(content), args[0])

			return nil
		},
	}
}

func newPoliciesDownloadCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "download POLICY_ID",
		Short: "Download policy code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			content, err := client.Policies().Download(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if file == "" {
				_, err = cmd.OutOrStdout().Write(content)

				return err
			}

			err = os.WriteFile(file, content, constants.ConfigFilePerm)
			if err != nil {
				return fmt.Errorf("writing policy file: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "write to this file instead of standard output")

	return cmd
}

func newPoliciesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete POLICY_ID",
		Short: "Delete a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				err := confirm(cmd, fmt.Sprintf("Really delete policy %s?", args[0]))
				if err != nil {
					return err
				}
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			err = client.Policies().Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Policy %s deleted\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
