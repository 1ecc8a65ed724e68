package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/spf13/cobra"
)

// NewWorkspacesCommand creates the workspace command group.
func NewWorkspacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace", "ws"},
		Short:   "Manage workspaces",
		Long:    "List, inspect, lock, unlock and delete workspaces",
	}

	cmd.AddCommand(newWorkspacesListCommand())
	cmd.AddCommand(newWorkspacesGetCommand())
	cmd.AddCommand(newWorkspacesLockCommand())
	cmd.AddCommand(newWorkspacesUnlockCommand())
	cmd.AddCommand(newWorkspacesDeleteCommand())

	return cmd
}

func newWorkspacesListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := organization()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			workspaces, err := collect(client.Workspaces().List(cmd.Context(), org, flags.options("name")))
			if err != nil {
				return err
			}

			return render(cmd, workspaces, func(w io.Writer) error {
				table := newTable(w, "ID", "Name", "Execution Mode", "Locked", "Terraform", "Project")
				for _, ws := range workspaces {
					_ = table.Append(ws.ID, str(ws.Name), enumStr(ws.ExecutionMode), boolStr(ws.Locked),
						str(ws.TerraformVersion), refID(ws.Project))
				}

				return table.Render()
			})
		},
	}

	addListFlags(cmd, &flags, true, true)

	return cmd
}

// isWorkspaceID reports whether arg is a workspace ID rather than a name.
func isWorkspaceID(arg string) bool {
	return strings.HasPrefix(arg, tfe.KindWorkspace.Prefix) && tfe.ValidateIdentifier(arg, tfe.KindWorkspace) == nil
}

func readWorkspace(ctx context.Context, client tfe.Client, arg string) (*tfe.Workspace, error) {
	if isWorkspaceID(arg) {
		return client.Workspaces().ReadByID(ctx, arg)
	}

	org, err := organization()
	if err != nil {
		return nil, err
	}

	return client.Workspaces().Read(ctx, org, arg)
}

func newWorkspacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME_OR_ID",
		Short: "Get workspace details",
		Long:  "Get a workspace by ID, or by name within the configured organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			ws, err := readWorkspace(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			return render(cmd, ws, func(w io.Writer) error {
				return workspaceTable(w, ws)
			})
		},
	}
}

func workspaceTable(w io.Writer, ws *tfe.Workspace) error {
	table := newTable(w, "Property", "Value")
	_ = table.Append("ID", ws.ID)
	_ = table.Append("Name", str(ws.Name))
	_ = table.Append("Description", str(ws.Description))
	_ = table.Append("Execution Mode", enumStr(ws.ExecutionMode))
	_ = table.Append("Auto Apply", boolStr(ws.AutoApply))
	_ = table.Append("Locked", boolStr(ws.Locked))
	_ = table.Append("Terraform Version", str(ws.TerraformVersion))
	_ = table.Append("Working Directory", str(ws.WorkingDirectory))
	_ = table.Append("Resources", intStr(ws.ResourceCount))
	_ = table.Append("Runs", intStr(ws.RunsCount))
	_ = table.Append("Tags", strings.Join(ws.TagNames, ", "))
	_ = table.Append("Project", refID(ws.Project))
	_ = table.Append("Agent Pool", refID(ws.AgentPool))
	_ = table.Append("Current Run", refID(ws.CurrentRun))
	_ = table.Append("Created", timeStr(ws.CreatedAt))
	_ = table.Append("Updated", timeStr(ws.UpdatedAt))

	return table.Render()
}

func newWorkspacesLockCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "lock NAME_OR_ID",
		Short: "Lock a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			id, err := workspaceID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			opts := &tfe.WorkspaceLockOptions{}
			if reason != "" {
				opts.Reason = tfe.Ptr(reason)
			}

			_, err = client.Workspaces().Lock(cmd.Context(), id, opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Workspace %s locked\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason for locking")

	return cmd
}

func newWorkspacesUnlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock NAME_OR_ID",
		Short: "Unlock a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			id, err := workspaceID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			_, err = client.Workspaces().Unlock(cmd.Context(), id)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Workspace %s unlocked\n", args[0])

			return nil
		},
	}
}

func newWorkspacesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME_OR_ID",
		Short: "Delete a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				err := confirm(cmd, fmt.Sprintf("Really delete workspace %s?", args[0]))
				if err != nil {
					return err
				}
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			if isWorkspaceID(args[0]) {
				err = client.Workspaces().DeleteByID(cmd.Context(), args[0])
			} else {
				var org string

				org, err = organization()
				if err != nil {
					return err
				}

				err = client.Workspaces().Delete(cmd.Context(), org, args[0])
			}

			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Workspace %s deleted\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

// workspaceID resolves a workspace name to its ID.
func workspaceID(ctx context.Context, client tfe.Client, arg string) (string, error) {
	if isWorkspaceID(arg) {
		return arg, nil
	}

	ws, err := readWorkspace(ctx, client, arg)
	if err != nil {
		return "", err
	}

	return ws.ID, nil
}
