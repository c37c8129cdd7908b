package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jimbro/internal/config"
	"jimbro/internal/ui"
)

const Version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "jimbro",
	Short:         "JimBro: your terminal workout buddy",
	Long:          "JimBro builds a workout for today's energy, focus and gear, then walks you through it.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStart,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the YAML config file")

	rootCmd.AddCommand(
		newStartCmd(),
		newProfileCmd(),
		newResetCmd(),
		newScanCmd(),
		newHistoryCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
