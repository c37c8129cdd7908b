package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jimbro/internal/ui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the stored blueprint",
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

			out := cmd.OutOrStdout()
			bp, err := a.profiles.LoadBlueprint(ctx)
			if err != nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Stored blueprint is unreadable: "+err.Error()))
				fmt.Fprintln(out, ui.Muted.Render("Run `jimbro reset` then `jimbro` to onboard again."))
				return nil
			}
			if bp == nil {
				fmt.Fprintln(out, ui.Muted.Render("No blueprint yet. Run `jimbro` to onboard."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconBro, "Blueprint"))
			fmt.Fprintln(out, ui.LabelValue("Age", bp.Age))
			fmt.Fprintln(out, ui.LabelValue("Gender", bp.Gender))
			fmt.Fprintln(out, ui.LabelValue("Goal", bp.Goal))
			fmt.Fprintln(out, ui.LabelValue("Availability", fmt.Sprintf("%d days/week, %d min/session", bp.Availability.DaysPerWeek, bp.Availability.MinsPerSession)))
			fmt.Fprintln(out, ui.LabelValue("Max exercises", bp.MaxExercises))
			fmt.Fprintln(out, ui.LabelValue("Injuries", bp.InjuryList()))
			if err := bp.Validate(); err != nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" "+err.Error()+" (the wizard will ask you to onboard again)"))
			}
			if at, err := a.profiles.BlueprintSavedAt(ctx); err == nil && at != nil {
				fmt.Fprintln(out, ui.Muted.Render("saved "+at.Local().Format("2006-01-02 15:04")))
			}
			return nil
		},
	}

	return cmd
}
