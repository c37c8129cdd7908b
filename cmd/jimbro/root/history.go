package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jimbro/internal/engine"
	"jimbro/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished sessions, newest first",
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

			sessions, err := a.sessions.List(ctx, limit)
			if err != nil {
				return err
			}
			total, err := a.sessions.Count(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Session history"))
			if len(sessions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No sessions yet. Run `jimbro` to train."))
				return nil
			}
			for _, s := range sessions {
				equipment := make([]string, 0, len(s.Equipment))
				for _, e := range s.Equipment {
					equipment = append(equipment, engine.EquipmentName(e))
				}
				fmt.Fprintf(out, "%s  %s  %s  %s  %s\n",
					ui.Muted.Render(s.FinishedAt.Local().Format("2006-01-02 15:04")),
					ui.VibeText(engine.Vibe(s.Vibe)),
					ui.H2.Render(s.Focus),
					ui.StatusText(s.CompletedCount, s.ExerciseCount),
					ui.Dim.Render(strings.Join(equipment, ", ")),
				)
			}
			if total > len(sessions) {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("… %d more (use --limit)", total-len(sessions))))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of sessions to show (0 = all)")

	return cmd
}
