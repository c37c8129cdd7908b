package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jimbro/internal/export"
	"jimbro/internal/ui"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the session history to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := a.requireStore(); err != nil {
				return err
			}

			sessions, err := a.sessions.ListDetailed(ctx, 0)
			if err != nil {
				return err
			}
			if err := export.Write(out, sessions); err != nil {
				return err
			}
			a.log.Info("history exported", "path", out, "sessions", len(sessions))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" Exported"),
				out,
				ui.Muted.Render(fmt.Sprintf("(%d sessions)", len(sessions))),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "jimbro-history.xlsx", "Output .xlsx path")

	return cmd
}
