package cli

import (
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/example/vole/internal/database"
)

func newFindCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <regex>",
		Short: "Searches all questions and answers with a regular expression and prints all matching cards.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regexp.Compile(args[0])
			if err != nil {
				return fmt.Errorf("invalid regex: %w", err)
			}
			return a.cards(cmd.Context(), func(repo *database.CardRepository) error {
				found, err := repo.Find(cmd.Context(), re)
				if err != nil {
					return err
				}
				for _, card := range found {
					if _, err := io.WriteString(a.out, card.Line()); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
