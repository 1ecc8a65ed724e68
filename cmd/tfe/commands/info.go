package commands

import (
	"io"

	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/spf13/cobra"
)

// ServerInfo is what the info command reports.
type ServerInfo struct {
	Address    string `json:"address"     yaml:"address"`
	AppName    string `json:"app_name"    yaml:"app_name"`
	APIVersion string `json:"api_version" yaml:"api_version"`
	TFEVersion string `json:"tfe_version" yaml:"tfe_version"`
	Cloud      bool   `json:"cloud"       yaml:"cloud"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display API information",
		Long:  "Ping the API and display the installation type and versions it reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := resolvedAddress()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			metadata, err := client.Ping(cmd.Context())
			if err != nil {
				return err
			}

			info := ServerInfo{
				Address:    address,
				AppName:    metadata.AppName,
				APIVersion: metadata.APIVersion,
				TFEVersion: metadata.TFEVersion,
				Cloud:      metadata.IsCloud(),
			}

			return render(cmd, info, func(w io.Writer) error {
				kind := "Terraform Enterprise"
				if info.Cloud {
					kind = "HCP Terraform"
				}

				table := newTable(w, "Property", "Value")
				_ = table.Append("Address", info.Address)
				_ = table.Append("Type", kind)
				_ = table.Append("App Name", valueOr(info.AppName, constants.NotAvailable))
				_ = table.Append("API Version", valueOr(info.APIVersion, constants.NotAvailable))
				_ = table.Append("TFE Version", valueOr(info.TFEVersion, constants.NotAvailable))

				return table.Render()
			})
		},
	}
}
