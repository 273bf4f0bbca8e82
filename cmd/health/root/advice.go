package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/ui"
)

func newAdviceCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Show rule-based lifestyle advice",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.Advice(ctx, days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconHeart, "Advice"))
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Good.Render(ui.IconSparkle+" Nothing to flag. Keep it up!"))
				return nil
			}
			for _, it := range items {
				fmt.Fprintf(out, "%s %s [%s]\n", ui.CategoryIcon(it.Category), ui.Key.Render(it.Title), ui.PriorityText(it.Priority))
				fmt.Fprintln(out, "   "+ui.Muted.Render(it.Description))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", engine.DefaultWindowDays, "Rolling window in days")
	return cmd
}
