package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vole/internal/database"
	"github.com/example/vole/internal/excel"
)

func newImportCommand(a *app) *cobra.Command {
	cfg := excel.DefaultImportConfig()

	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Imports question and answer pairs from an Excel or CSV file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.FilePath = args[0]
			return a.cards(cmd.Context(), func(repo *database.CardRepository) error {
				result, err := excel.ImportCards(cmd.Context(), cfg, repo)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Processed %d rows: %d cards created, %d rows skipped.\n",
					result.TotalProcessed, result.Created, result.Skipped)
				for _, msg := range result.Errors {
					fmt.Fprintln(a.errW, msg)
				}
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.SheetName, "sheet", cfg.SheetName, "Name of the sheet to import (Excel only)")
	flags.IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "First row to import, 1-based")
	flags.StringVar(&cfg.QuestionColumn, "question-column", cfg.QuestionColumn, "Column holding the question")
	flags.StringVar(&cfg.AnswerColumn, "answer-column", cfg.AnswerColumn, "Column holding the answer")
	flags.BoolVarP(&cfg.Bidirectional, "bidirectional", "b", false, "Also store every pair with question and answer swapped")
	return cmd
}
