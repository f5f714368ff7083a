package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/style"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <package>",
		Short: "List the published versions of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _ := cmd.Flags().GetString("registry")

			entries, err := c.app.Show(cmd.Context(), args[0], app.ShowOptions{
				Registry: registry,
			})
			if err != nil {
				return err
			}

			renderEntries(cmd.OutOrStdout(), args[0], entries)
			return nil
		},
	}
	cmd.Flags().StringP("registry", "r", "", "Registry root directory (falls back to depot.yaml)")
	return cmd
}

// checksumWidth is how much of the hex digest the listing shows.
const checksumWidth = 12

// renderEntries prints the package's published versions, oldest first.
func renderEntries(w io.Writer, name string, entries []domain.VersionEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(w, "no published versions of %s\n", name)
		return
	}

	out := output.New(w)
	_, _ = fmt.Fprintln(w, out.String(name).Bold().Foreground(out.Color(string(style.Copper))).String())

	for _, e := range entries {
		icon := style.Check
		color := style.Green
		if e.Yanked {
			icon = style.Dash
			color = style.Slate
		}

		_, _ = fmt.Fprintf(w, "  %s %s  %s  %s deps\n",
			out.String(icon).Foreground(out.Color(string(color))).String(),
			e.Version,
			shortChecksum(e.Checksum),
			strconv.Itoa(len(e.Deps)),
		)
	}
}

func shortChecksum(cksum string) string {
	if len(cksum) <= checksumWidth {
		return cksum
	}
	return cksum[:checksumWidth]
}
