package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/spf13/cobra"
)

// NewRunsCommand creates the run command group.
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage runs",
		Long:  "List, start, apply, cancel and discard runs",
	}

	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsGetCommand())
	cmd.AddCommand(newRunsCreateCommand())
	cmd.AddCommand(newRunActionCommand("apply", "Apply a planned run", "applied",
		func(ctx context.Context, runs tfe.RunsClient, id string, opts *tfe.RunActionOptions) error {
			return runs.Apply(ctx, id, opts)
		}))
	cmd.AddCommand(newRunActionCommand("cancel", "Cancel a run", "canceled",
		func(ctx context.Context, runs tfe.RunsClient, id string, opts *tfe.RunActionOptions) error {
			return runs.Cancel(ctx, id, opts)
		}))
	cmd.AddCommand(newRunActionCommand("discard", "Discard a run", "discarded",
		func(ctx context.Context, runs tfe.RunsClient, id string, opts *tfe.RunActionOptions) error {
			return runs.Discard(ctx, id, opts)
		}))

	return cmd
}

func newRunsListCommand() *cobra.Command {
	var (
		flags     listFlags
		workspace string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs of a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workspace == "" {
				return constants.ErrWorkspaceRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			wsID, err := workspaceID(cmd.Context(), client, workspace)
			if err != nil {
				return err
			}

			runs, err := collect(client.Runs().List(cmd.Context(), wsID, flags.options("")))
			if err != nil {
				return err
			}

			return render(cmd, runs, func(w io.Writer) error {
				table := newTable(w, "ID", "Status", "Message", "Destroy", "Created")
				for _, run := range runs {
					_ = table.Append(run.ID, enumStr(run.Status),
						truncate(str(run.Message), constants.DescriptionDisplayLength),
						boolStr(run.IsDestroy), timeStr(run.CreatedAt))
				}

				return table.Render()
			})
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace name or ID")
	addListFlags(cmd, &flags, false, true)

	return cmd
}

func newRunsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RUN_ID",
		Short: "Get run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			run, err := client.Runs().Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, run, func(w io.Writer) error {
				final := constants.NotAvailable
				if run.Status != nil {
					final = fmt.Sprint(run.Status.Final())
				}

				table := newTable(w, "Property", "Value")
				_ = table.Append("ID", run.ID)
				_ = table.Append("Status", enumStr(run.Status))
				_ = table.Append("Final", final)
				_ = table.Append("Message", str(run.Message))
				_ = table.Append("Source", str(run.Source))
				_ = table.Append("Destroy", boolStr(run.IsDestroy))
				_ = table.Append("Plan Only", boolStr(run.PlanOnly))
				_ = table.Append("Has Changes", boolStr(run.HasChanges))
				_ = table.Append("Terraform Version", str(run.TerraformVersion))
				_ = table.Append("Workspace", refID(run.Workspace))
				_ = table.Append("Created", timeStr(run.CreatedAt))

				return table.Render()
			})
		},
	}
}

func newRunsCreateCommand() *cobra.Command {
	var (
		workspace, message string
		destroy, planOnly  bool
		targets, replacing []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workspace == "" {
				return constants.ErrWorkspaceRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			wsID, err := workspaceID(cmd.Context(), client, workspace)
			if err != nil {
				return err
			}

			opts := &tfe.RunCreateOptions{
				WorkspaceID:  wsID,
				IsDestroy:    tfe.Ptr(destroy),
				PlanOnly:     tfe.Ptr(planOnly),
				TargetAddrs:  targets,
				ReplaceAddrs: replacing,
			}
			if message != "" {
				opts.Message = tfe.Ptr(message)
			}

			run, err := client.Runs().Create(cmd.Context(), opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Run %s created (%s)\n", run.ID, enumStr(run.Status))

			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace name or ID")
	cmd.Flags().StringVarP(&message, "message", "m", "", "run message")
	cmd.Flags().BoolVar(&destroy, "destroy", false, "plan a destroy")
	cmd.Flags().BoolVar(&planOnly, "plan-only", false, "speculative plan that cannot be applied")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "resource addresses to target")
	cmd.Flags().StringSliceVar(&replacing, "replace", nil, "resource addresses to replace")

	return cmd
}

type runAction func(ctx context.Context, runs tfe.RunsClient, id string, opts *tfe.RunActionOptions) error

func newRunActionCommand(use, short, done string, action runAction) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   use + " RUN_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			var opts *tfe.RunActionOptions
			if comment != "" {
				opts = &tfe.RunActionOptions{Comment: tfe.Ptr(comment)}
			}

			err = action(cmd.Context(), client.Runs(), args[0], opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Run %s %s\n", args[0], done)

			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "comment recorded with the action")

	return cmd
}
