package commands

import (
	"io"

	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/spf13/cobra"
)

// NewProjectsCommand creates the project command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "prj"},
		Short:   "Manage projects",
		Long:    "List and inspect projects of an organization",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := organization()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			projects, err := collect(client.Projects().List(cmd.Context(), org, flags.options("name")))
			if err != nil {
				return err
			}

			return render(cmd, projects, func(w io.Writer) error {
				table := newTable(w, "ID", "Name", "Workspaces", "Description")
				for _, project := range projects {
					_ = table.Append(project.ID, str(project.Name), intStr(project.WorkspaceCount),
						truncate(str(project.Description), constants.DescriptionDisplayLength))
				}

				return table.Render()
			})
		},
	}

	addListFlags(cmd, &flags, true, false)

	return cmd
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Get project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			project, err := client.Projects().Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, project, func(w io.Writer) error {
				table := newTable(w, "Property", "Value")
				_ = table.Append("ID", project.ID)
				_ = table.Append("Name", str(project.Name))
				_ = table.Append("Description", str(project.Description))
				_ = table.Append("Execution Mode", enumStr(project.DefaultExecutionMode))
				_ = table.Append("Auto Destroy After", str(project.AutoDestroyActivityDuration))
				_ = table.Append("Workspaces", intStr(project.WorkspaceCount))
				_ = table.Append("Organization", refID(project.Organization))
				_ = table.Append("Created", timeStr(project.CreatedAt))

				return table.Render()
			})
		},
	}
}
