package root

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "health",
	Short:         "Local-first personal health tracker",
	Long:          "Health is a local-first CLI/TUI tracker for diet, exercise and sleep, with rule-based advice, a gamification score and an AI weekly summary.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	// Optional .env for the AI gateway settings; missing file is fine.
	_ = godotenv.Load()

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newLogCmd(),
		newListCmd(),
		newDeleteCmd(),
		newAdviceCmd(),
		newScoreCmd(),
		newSeedCmd(),
		newScanCmd(),
		newReportCmd(),
		newDashboardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
