package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jimbro/internal/gateway"
	"jimbro/internal/ui"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "List the workout equipment visible in a room photo",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("image path is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data, mime, err := gateway.ReadImage(args[0])
			if err != nil {
				return err
			}
			names, err := a.svc.ScanImage(ctx, data, mime)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCamera, "Equipment found"))
			if len(names) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing usable spotted)"))
				return nil
			}
			for _, n := range names {
				fmt.Fprintf(out, "- %s\n", n)
			}
			return nil
		},
	}

	return cmd
}
