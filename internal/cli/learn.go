package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/vole/internal/database"
	"github.com/example/vole/internal/learn"
	"github.com/example/vole/internal/prompt"
	"github.com/example/vole/internal/session"
	"github.com/example/vole/internal/spaced_repetition"
	"github.com/example/vole/pkg/models"
)

func newLearnCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "learn",
		Short: "Starts question and answer learning loop.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cards []models.Card
			err := a.cards(cmd.Context(), func(repo *database.CardRepository) error {
				var err error
				cards, err = repo.All(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			s, err := session.Open(a.cfg.SchedulePath(), cards, spaced_repetition.NewSM2(), a.today())
			if err != nil {
				return err
			}
			return learn.NewLoop(s, prompt.New(a.in, a.out), a.cfg.BatchSize).Run()
		},
	}
}
