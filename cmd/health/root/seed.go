package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/ui"
)

func newSeedCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a sample week of entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			week := engine.GenerateSampleWeek(time.Now().UTC(), seed)
			if err := svc.SeedWeek(ctx, week); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Seeded %d diet, %d exercise and %d sleep entries\n",
				ui.IconSparkle, len(week.Diet), len(week.Exercise), len(week.Sleep))
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for the generated week")
	return cmd
}
