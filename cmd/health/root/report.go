package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/ai"
	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/ui"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the AI weekly summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
			defer cancel()

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			diet, err := svc.DietRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			exercise, err := svc.ExerciseRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			sleep, err := svc.SleepRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			advice, err := svc.Advice(ctx, engine.DefaultWindowDays)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Muted.Render("Generating weekly summary..."))

			task := ai.NewReportTask(ai.NewClientFromEnv())
			done := task.Start(ctx, diet, exercise, sleep, advice)
			snap := <-done

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Weekly summary"))
			if snap.State == ai.ReportFailed {
				fmt.Fprintln(out, ui.Warn.Render(snap.Message))
				return nil
			}
			fmt.Fprintln(out, snap.Summary)
			return nil
		},
	}
	return cmd
}
