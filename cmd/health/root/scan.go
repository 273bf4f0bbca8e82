package root

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/ai"
	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/ui"
)

func newScanCmd() *cobra.Command {
	var date string
	var save bool

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Estimate a meal's nutrition from a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			est, err := ai.NewClientFromEnv().AnalyzeMealImage(ctx, image, mimeTypeFor(args[0]))
			if err != nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Could not analyze the photo: "+err.Error()))
				fmt.Fprintln(out, ui.Muted.Render("Log the meal manually with: health log diet --calories ... --veg ... --protein ..."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconCamera, "Meal estimate"))
			fmt.Fprintln(out, ui.LabelValue("Calories", fmt.Sprintf("%d kcal", est.CalorieIntake)))
			fmt.Fprintln(out, ui.LabelValue("Vegetables", fmt.Sprintf("%.0f%%", est.VegRatio*100)))
			fmt.Fprintln(out, ui.LabelValue("Protein", fmt.Sprintf("%.0f%%", est.ProteinRatio*100)))
			fmt.Fprintln(out, ui.LabelValue("Starch", fmt.Sprintf("%.0f%%", est.StarchRatio*100)))
			fmt.Fprintln(out, ui.LabelValue("Sugary drinks", est.SugaryDrinks))
			fmt.Fprintln(out, ui.LabelValue("Fried items", est.FriedFood))

			if !save {
				return nil
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.LogDietInput{
				CalorieIntake: est.CalorieIntake,
				VegRatio:      est.VegRatio,
				ProteinRatio:  est.ProteinRatio,
				StarchRatio:   est.StarchRatio,
				SugaryDrinks:  est.SugaryDrinks,
				FriedFood:     est.FriedFood,
			}
			if in.Date, err = parseDateFlag(date); err != nil {
				return err
			}
			e, err := svc.LogDiet(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Logged diet for %s from the photo\n", ui.IconPlate, e.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Log the estimate as a diet entry")
	cmd.Flags().StringVar(&date, "date", "", "Entry date for --save (YYYY-MM-DD, default today)")
	return cmd
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
