package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/ui"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "delete <diet|exercise|sleep> <id>",
		Short:     "Delete an entry by ID",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"diet", "exercise", "sleep"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			category, id := args[0], args[1]
			switch category {
			case "diet":
				err = svc.DietRepo().Delete(ctx, id)
			case "exercise":
				err = svc.ExerciseRepo().Delete(ctx, id)
			case "sleep":
				err = svc.SleepRepo().Delete(ctx, id)
			default:
				return fmt.Errorf("unknown category %q (expected diet, exercise or sleep)", category)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s entry %s\n", ui.IconSparkle, category, id)
			return nil
		},
	}
	return cmd
}
