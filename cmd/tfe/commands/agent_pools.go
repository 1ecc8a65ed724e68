package commands

import (
	"io"
	"strings"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/spf13/cobra"
)

// NewAgentPoolsCommand creates the agent pool command group.
func NewAgentPoolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agent-pools",
		Aliases: []string{"apool"},
		Short:   "Manage agent pools",
	}

	cmd.AddCommand(newAgentPoolsListCommand())
	cmd.AddCommand(newAgentPoolsGetCommand())

	return cmd
}

func newAgentPoolsListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agent pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := organization()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			pools, err := collect(client.AgentPools().List(cmd.Context(), org, flags.options("name")))
			if err != nil {
				return err
			}

			return render(cmd, pools, func(w io.Writer) error {
				table := newTable(w, "ID", "Name", "Organization Scoped", "Agents")
				for _, pool := range pools {
					_ = table.Append(pool.ID, str(pool.Name), boolStr(pool.OrganizationScoped), intStr(pool.AgentCount))
				}

				return table.Render()
			})
		},
	}

	addListFlags(cmd, &flags, true, true)

	return cmd
}

func newAgentPoolsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get AGENT_POOL_ID",
		Short: "Get agent pool details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			pool, err := client.AgentPools().Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, pool, func(w io.Writer) error {
				table := newTable(w, "Property", "Value")
				_ = table.Append("ID", pool.ID)
				_ = table.Append("Name", str(pool.Name))
				_ = table.Append("Organization Scoped", boolStr(pool.OrganizationScoped))
				_ = table.Append("Agents", intStr(pool.AgentCount))
				_ = table.Append("Workspaces", refIDs(pool.Workspaces))
				_ = table.Append("Allowed Workspaces", refIDs(pool.AllowedWorkspaces))
				_ = table.Append("Created", timeStr(pool.CreatedAt))

				return table.Render()
			})
		},
	}
}

func refIDs(refs []tfe.ResourceRef) string {
	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}

	return strings.Join(ids, ", ")
}
