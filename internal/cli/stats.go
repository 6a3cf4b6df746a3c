package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vole/internal/database"
	"github.com/example/vole/internal/schedule"
	"github.com/example/vole/internal/spaced_repetition"
)

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Prints a summary of the collection and the schedule.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var total int
			err := a.cards(cmd.Context(), func(repo *database.CardRepository) error {
				var err error
				total, err = repo.Count(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			today := a.today()
			store, err := schedule.Load(a.cfg.SchedulePath(), today)
			if err != nil {
				return err
			}
			sum := store.Summarize(spaced_repetition.NewSM2(), today)

			unscheduled := total - sum.Scheduled
			if unscheduled < 0 {
				unscheduled = 0
			}
			fmt.Fprintf(a.out, "Cards:        %d\n", total)
			fmt.Fprintf(a.out, "Scheduled:    %d\n", sum.Scheduled)
			fmt.Fprintf(a.out, "Unscheduled:  %d\n", unscheduled)
			fmt.Fprintf(a.out, "Due today:    %d\n", sum.DueToday)
			fmt.Fprintf(a.out, "Mastered:     %d\n", sum.Mastered)
			fmt.Fprintf(a.out, "Average ease: %.2f\n", sum.AverageEase)
			return nil
		},
	}
}
