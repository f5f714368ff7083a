package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, _ := cmd.Flags().GetString("registry")
			url, _ := cmd.Flags().GetString("url")

			return c.app.Init(cmd.Context(), app.InitOptions{
				Registry: registry,
				URL:      url,
			})
		},
	}
	cmd.Flags().StringP("registry", "r", "", "Registry root directory (falls back to depot.yaml)")
	cmd.Flags().String("url", "", "Base URL the registry is served under")
	return cmd
}
