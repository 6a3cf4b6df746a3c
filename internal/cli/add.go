package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/vole/internal/database"
)

func newAddCommand(a *app) *cobra.Command {
	var bidirectional bool

	cmd := &cobra.Command{
		Use:   "add <question> <answer>",
		Short: "Stores a new flashcard.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := []database.QA{{Question: args[0], Answer: args[1]}}
			if bidirectional {
				pairs = append(pairs, pairs[0].Swapped())
			}
			return a.cards(cmd.Context(), func(repo *database.CardRepository) error {
				_, err := repo.Append(cmd.Context(), pairs)
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&bidirectional, "bidirectional", "b", false,
		"Stores a card bidirectionally, id est two versions with answer and question swapped.")
	return cmd
}
