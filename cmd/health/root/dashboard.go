package root

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/ai"
	"github.com/hsuan0717/health/internal/dashboard"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			task := ai.NewReportTask(ai.NewClientFromEnv())
			return dashboard.Run(ctx, svc, task, os.Stdout)
		},
	}
	return cmd
}
