package commands

import (
	"io"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/spf13/cobra"
)

// NewOrgsCommand creates the organization command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations", "org"},
		Short:   "Manage organizations",
		Long:    "List and inspect HCP Terraform organizations",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			orgs, err := collect(client.Organizations().List(cmd.Context(), flags.options("")))
			if err != nil {
				return err
			}

			return render(cmd, orgs, func(w io.Writer) error {
				table := newTable(w, "Name", "Email", "Execution Mode", "Created")
				for _, org := range orgs {
					_ = table.Append(org.Name, str(org.Email), enumStr(org.DefaultExecutionMode), timeStr(org.CreatedAt))
				}

				return table.Render()
			})
		},
	}

	addListFlags(cmd, &flags, false, false)

	return cmd
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [NAME]",
		Short: "Get organization details",
		Long:  "Get an organization by name, defaulting to the configured organization",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := argOrOrganization(args)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			org, err := client.Organizations().Read(cmd.Context(), name)
			if err != nil {
				return err
			}

			return render(cmd, org, func(w io.Writer) error {
				return organizationTable(w, org)
			})
		},
	}
}

func organizationTable(w io.Writer, org *tfe.Organization) error {
	table := newTable(w, "Property", "Value")
	_ = table.Append("Name", org.Name)
	_ = table.Append("Email", str(org.Email))
	_ = table.Append("External ID", str(org.ExternalID))
	_ = table.Append("Default Execution Mode", enumStr(org.DefaultExecutionMode))
	_ = table.Append("Collaborator Auth Policy", str(org.CollaboratorAuthPolicy))
	_ = table.Append("Cost Estimation", boolStr(org.CostEstimationEnabled))
	_ = table.Append("Assessments Enforced", boolStr(org.AssessmentsEnforced))
	_ = table.Append("SAML", boolStr(org.SAMLEnabled))
	_ = table.Append("Default Project", refID(org.DefaultProject))
	_ = table.Append("Created", timeStr(org.CreatedAt))

	return table.Render()
}

func argOrOrganization(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	return organization()
}
