package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/vole/internal/database"
)

func newRepo(t *testing.T) *database.CardRepository {
	t.Helper()
	db, err := database.Connect(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewCardRepository(db)
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "cards.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportExcel(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	path := writeWorkbook(t, [][]any{
		{"Question", "Answer"},
		{"dog", "pes"},
		{"", "nothing"},
		{"cat", "kočka"},
		{"bird"},
	})

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	result, err := ImportCards(ctx, cfg, repo)
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Row 3")
	assert.Contains(t, result.Errors[1], "Row 5")

	cards, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "dog", cards[0].Question)
	assert.Equal(t, "kočka", cards[1].Answer)
}

func TestImportCSVBidirectional(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	path := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(path, []byte("note,front,back\nx,house,dům\ny,tree,strom\n"), 0644))

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	cfg.QuestionColumn = "B"
	cfg.AnswerColumn = "C"
	cfg.Bidirectional = true
	result, err := ImportCards(ctx, cfg, repo)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 4, result.Created)

	cards, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 4)
	assert.Equal(t, []string{"house", "dům", "tree", "strom"},
		[]string{cards[0].Question, cards[1].Question, cards[2].Question, cards[3].Question})
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	cfg := DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "missing.xlsx")
	_, err := ImportCards(ctx, cfg, repo)
	assert.Error(t, err)

	cfg.FilePath = writeWorkbook(t, [][]any{{"q", "a"}})
	cfg.SheetName = "Nope"
	_, err = ImportCards(ctx, cfg, repo)
	assert.Error(t, err)

	cfg = DefaultImportConfig()
	cfg.QuestionColumn = "1"
	_, err = ImportCards(ctx, cfg, repo)
	assert.Error(t, err)
}

func TestColumnIndex(t *testing.T) {
	idx, err := columnIndex("A")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	idx, err = columnIndex("AB")
	require.NoError(t, err)
	assert.Equal(t, 27, idx)
}
