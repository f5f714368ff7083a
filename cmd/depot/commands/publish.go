package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/app"
)

func (c *CLI) newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [workspaces...]",
		Short: "Package workspace libraries and add them to the registry",
		Long: "Publish builds every library package of the given workspaces and adds " +
			"the archives plus their index entries to the registry. Workspaces are " +
			"local directories or http(s) tarball URLs; without arguments the " +
			"current directory is published.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _ := cmd.Flags().GetString("registry")
			url, _ := cmd.Flags().GetString("url")

			return c.app.Publish(cmd.Context(), args, app.PublishOptions{
				Registry: registry,
				URL:      url,
			})
		},
	}
	cmd.Flags().StringP("registry", "r", "", "Registry root directory (falls back to depot.yaml)")
	cmd.Flags().String("url", "", "Base URL the registry is served under (required on first use)")
	return cmd
}
