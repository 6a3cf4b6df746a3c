package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/vole/internal/database"
	"github.com/example/vole/internal/logging"
	"github.com/example/vole/pkg/models"
)

// CardAppender stores imported cards
type CardAppender interface {
	Append(ctx context.Context, pairs []database.QA) ([]models.Card, error)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	QuestionColumn string // Column with the question
	AnswerColumn   string // Column with the answer
	SheetName      string // Name of the sheet to import, Excel only
	StartRow       int    // The row to start importing from (1-based index)
	Bidirectional  bool   // Also store every pair with question and answer swapped
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		QuestionColumn: "A",
		AnswerColumn:   "B",
		SheetName:      "Sheet1",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportCards reads question/answer rows from an Excel or CSV file and
// appends them to the content store in file order.
func ImportCards(ctx context.Context, config ImportConfig, repo CardAppender) (*ImportResult, error) {
	questionIdx, err := columnIndex(config.QuestionColumn)
	if err != nil {
		return nil, err
	}
	answerIdx, err := columnIndex(config.AnswerColumn)
	if err != nil {
		return nil, err
	}
	if config.StartRow < 1 {
		config.StartRow = 1
	}

	var rows [][]string
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	var pairs []database.QA
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		qa, err := extractPair(row, questionIdx, answerIdx)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		pairs = append(pairs, qa)
		if config.Bidirectional {
			pairs = append(pairs, qa.Swapped())
		}
	}

	cards, err := repo.Append(ctx, pairs)
	if err != nil {
		return nil, err
	}
	result.Created = len(cards)

	logging.Info().
		Str("path", config.FilePath).
		Int("processed", result.TotalProcessed).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("cards imported")
	return result, nil
}

// readExcel returns every row of the sheet
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSV returns every record of the file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// extractPair picks question and answer out of a row
func extractPair(row []string, questionIdx, answerIdx int) (database.QA, error) {
	var qa database.QA
	if questionIdx < len(row) {
		qa.Question = strings.TrimSpace(row[questionIdx])
	}
	if answerIdx < len(row) {
		qa.Answer = strings.TrimSpace(row[answerIdx])
	}
	return qa, qa.Validate()
}

// columnIndex converts an Excel column name such as "B" to a 0-based index
func columnIndex(column string) (int, error) {
	n, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", column, err)
	}
	return n - 1, nil
}
