package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/ui"
)

func newListCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()

			diet, err := svc.DietRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconPlate+" Diet"))
			if len(diet) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  (none)"))
			}
			for _, e := range tail(diet, days) {
				fmt.Fprintf(out, "  %s  %4d kcal  veg %.0f%%  protein %.0f%%  drinks %d  fried %d\n",
					e.Date.Format("2006-01-02"), e.CalorieIntake, e.VegRatio*100, e.ProteinRatio*100, e.SugaryDrinks, e.FriedFood)
			}

			exercise, err := svc.ExerciseRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconRun+" Exercise"))
			if len(exercise) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  (none)"))
			}
			for _, e := range tail(exercise, days) {
				fmt.Fprintf(out, "  %s  %6d steps  %3d min moderate  %3d min sitting\n",
					e.Date.Format("2006-01-02"), e.DailySteps, e.ModerateMinutes, e.SittingMinutes)
			}

			sleep, err := svc.SleepRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconMoon+" Sleep"))
			if len(sleep) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  (none)"))
			}
			for _, e := range tail(sleep, days) {
				phone := ""
				if e.PhoneBeforeBed {
					phone = "  (phone)"
				}
				fmt.Fprintf(out, "  %s  %s → %s  %.1fh%s\n",
					e.Date.Format("2006-01-02"), e.BedTime, e.WakeTime, e.Duration, phone)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 7, "Show at most this many recent entries per category (0 = all)")
	return cmd
}

func tail[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
