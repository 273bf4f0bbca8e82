package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/ui"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a diet, exercise or sleep entry",
	}
	cmd.AddCommand(newLogDietCmd(), newLogExerciseCmd(), newLogSleepCmd())
	return cmd
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

func newLogDietCmd() *cobra.Command {
	var date string
	var in engine.LogDietInput

	cmd := &cobra.Command{
		Use:   "diet",
		Short: "Log a day's diet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if in.Date, err = parseDateFlag(date); err != nil {
				return err
			}
			e, err := svc.LogDiet(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged diet for %s (%d kcal)\n",
				ui.IconPlate, e.Date.Format("2006-01-02"), e.CalorieIntake)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&in.CalorieIntake, "calories", 0, "Calorie intake (kcal)")
	cmd.Flags().Float64Var(&in.VegRatio, "veg", 0, "Vegetable ratio (0-1)")
	cmd.Flags().Float64Var(&in.ProteinRatio, "protein", 0, "Protein ratio (0-1)")
	cmd.Flags().Float64Var(&in.StarchRatio, "starch", 0, "Starch ratio (0-1)")
	cmd.Flags().IntVar(&in.SugaryDrinks, "drinks", 0, "Sugary drinks count")
	cmd.Flags().IntVar(&in.FriedFood, "fried", 0, "Fried food count")
	return cmd
}

func newLogExerciseCmd() *cobra.Command {
	var date string
	var in engine.LogExerciseInput

	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Log a day's exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if in.Date, err = parseDateFlag(date); err != nil {
				return err
			}
			e, err := svc.LogExercise(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged exercise for %s (%d steps)\n",
				ui.IconRun, e.Date.Format("2006-01-02"), e.DailySteps)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&in.DailySteps, "steps", 0, "Daily steps")
	cmd.Flags().IntVar(&in.ModerateMinutes, "moderate", 0, "Moderate exercise minutes")
	cmd.Flags().IntVar(&in.SittingMinutes, "sitting", 0, "Total sitting minutes")
	return cmd
}

func newLogSleepCmd() *cobra.Command {
	var date string
	var in engine.LogSleepInput

	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Log a night's sleep",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if in.Date, err = parseDateFlag(date); err != nil {
				return err
			}
			e, err := svc.LogSleep(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged sleep for %s (%s → %s, %.1fh)\n",
				ui.IconMoon, e.Date.Format("2006-01-02"), e.BedTime, e.WakeTime, e.Duration)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&in.BedTime, "bed", "", "Bedtime (HH:MM)")
	cmd.Flags().StringVar(&in.WakeTime, "wake", "", "Wake time (HH:MM)")
	cmd.Flags().Float64Var(&in.Duration, "hours", 0, "Sleep duration in hours (default: computed from bed/wake)")
	cmd.Flags().BoolVar(&in.PhoneBeforeBed, "phone", false, "Used phone before bed")
	return cmd
}
