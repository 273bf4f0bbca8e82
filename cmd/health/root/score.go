package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsuan0717/health/internal/ui"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show points, level, badges and challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state, err := svc.Gamification(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Score"))
			fmt.Fprintln(out, ui.LabelValue("Points", state.TotalPoints))
			fmt.Fprintf(out, "%s  %s %d%%\n", ui.LabelValue("Level", state.Level), ui.ProgressBar(state.ProgressToNextLevel, 20), state.ProgressToNextLevel)

			fmt.Fprintln(out, ui.H2.Render("Badges"))
			for _, b := range state.Badges {
				icon := ui.IconLock
				name := ui.Muted.Render(b.Name)
				if b.Unlocked {
					icon = b.Icon
					name = ui.Gold.Render(b.Name)
				}
				fmt.Fprintf(out, "  %s %s  %s\n", icon, name, ui.Muted.Render(b.Description))
			}

			fmt.Fprintln(out, ui.H2.Render("Challenges"))
			for _, c := range state.Challenges {
				mark := " "
				if c.Completed {
					mark = ui.Good.Render("✓")
				}
				fmt.Fprintf(out, "  %s %s  %d/%d\n", mark, c.Name, c.Current, c.Target)
			}
			return nil
		},
	}
	return cmd
}
