package root

import (
	"context"

	"github.com/spf13/cobra"

	"jimbro/internal/tui"
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the workout wizard",
		RunE:  runStart,
	}

	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.RunWizard(ctx, a.svc, cmd.OutOrStdout())
}
