package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jimbro/internal/ui"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored blueprint so the next start onboards again",
		Long: `Delete the stored blueprint.

Workout history is kept. The next ` + "`jimbro`" + ` run starts at onboarding.`,
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

			removed, err := a.profiles.DeleteBlueprint(ctx)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No blueprint stored."))
				return nil
			}
			a.log.Info("blueprint reset")
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Blueprint deleted."))
			return nil
		},
	}

	return cmd
}
