package commands

import (
	"fmt"
	"io"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
	"github.com/spf13/cobra"
)

// NewReservedTagKeysCommand creates the reserved tag key command group.
func NewReservedTagKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reserved-tag-keys",
		Aliases: []string{"rtk"},
		Short:   "Manage reserved tag keys",
	}

	cmd.AddCommand(newReservedTagKeysListCommand())
	cmd.AddCommand(newReservedTagKeysCreateCommand())
	cmd.AddCommand(newReservedTagKeysDeleteCommand())

	return cmd
}

func newReservedTagKeysListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reserved tag keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := organization()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			keys, err := collect(client.ReservedTagKeys().List(cmd.Context(), org, flags.options("")))
			if err != nil {
				return err
			}

			return render(cmd, keys, func(w io.Writer) error {
				table := newTable(w, "ID", "Key", "Disable Overrides", "Created")
				for _, key := range keys {
					_ = table.Append(key.ID, str(key.Key), boolStr(key.DisableOverrides), timeStr(key.CreatedAt))
				}

				return table.Render()
			})
		},
	}

	addListFlags(cmd, &flags, false, false)

	return cmd
}

func newReservedTagKeysCreateCommand() *cobra.Command {
	var disableOverrides bool

	cmd := &cobra.Command{
		Use:   "create KEY",
		Short: "Reserve a tag key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := organization()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			key, err := client.ReservedTagKeys().Create(cmd.Context(), org, &tfe.ReservedTagKeyCreateOptions{
				Key:              args[0],
				DisableOverrides: tfe.Ptr(disableOverrides),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reserved tag key %s created with ID %s\n", args[0], key.ID)

			return nil
		},
	}

	cmd.Flags().BoolVar(&disableOverrides, "disable-overrides", false, "prevent workspaces overriding the key")

	return cmd
}

func newReservedTagKeysDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RESERVED_TAG_KEY_ID",
		Short: "Delete a reserved tag key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			err = client.ReservedTagKeys().Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reserved tag key %s deleted\n", args[0])

			return nil
		},
	}
}
