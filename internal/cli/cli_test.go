package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vole/internal/config"
)

var today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

type harness struct {
	dataDir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{dataDir: filepath.Join(t.TempDir(), "vole")}
}

func (h *harness) run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(input), &out, &errOut)
	a.today = func() time.Time { return today }
	a.load = func() (*config.Config, error) {
		cfg := config.DefaultConfig()
		cfg.DataDir = h.dataDir
		cfg.BatchSize = 2
		cfg.LogLevel = "disabled"
		return &cfg, nil
	}

	root := newRootCommand(a)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestAddAndFind(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "", "add", "dog", "pes")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = h.run(t, "", "add", "-b", "cat", "kočka")
	require.NoError(t, err)

	out, _, err = h.run(t, "", "find", ".")
	require.NoError(t, err)
	assert.Equal(t,
		"0000000000000001\tdog\tpes\n"+
			"0000000000000002\tcat\tkočka\n"+
			"0000000000000003\tkočka\tcat\n", out)

	out, _, err = h.run(t, "", "find", "^ko")
	require.NoError(t, err)
	assert.Equal(t, "0000000000000002\tcat\tkočka\n0000000000000003\tkočka\tcat\n", out)

	_, _, err = h.run(t, "", "find", "(")
	assert.ErrorContains(t, err, "invalid regex")

	_, _, err = h.run(t, "", "add", "only question")
	assert.Error(t, err)
}

func TestLearnAndStats(t *testing.T) {
	h := newHarness(t)
	for _, qa := range [][2]string{{"one", "jedna"}, {"two", "dva"}, {"three", "tři"}} {
		_, _, err := h.run(t, "", "add", qa[0], qa[1])
		require.NoError(t, err)
	}

	input := "y\n\n5\ny\n\n3\ny\n\n4\nq\n"
	out, _, err := h.run(t, input, "learn")
	require.NoError(t, err)
	assert.Contains(t, out, "Q: one\n")
	assert.Contains(t, out, "A: dva\n")

	data, err := os.ReadFile(filepath.Join(h.dataDir, "schedule.txt"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))

	out, _, err = h.run(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Cards:        3\n")
	assert.Contains(t, out, "Scheduled:    2\n")
	assert.Contains(t, out, "Unscheduled:  1\n")
	assert.Contains(t, out, "Due today:    0\n")
}

func TestImport(t *testing.T) {
	h := newHarness(t)
	csvPath := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("q,a\nsun,slunce\n,empty\n"), 0644))

	out, errOut, err := h.run(t, "", "import", csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Processed 2 rows: 1 cards created, 1 rows skipped.\n", out)
	assert.Contains(t, errOut, "Row 3")

	out, _, err = h.run(t, "", "find", "sun")
	require.NoError(t, err)
	assert.Equal(t, "0000000000000001\tsun\tslunce\n", out)
}

func TestRemindNow(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.MkdirAll(h.dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(h.dataDir, "schedule.txt"),
		[]byte("0000000000000001\t2000-01-01\t1999-12-31\t1\t2.5\n"), 0644))

	out, _, err := h.run(t, "", "remind", "--now")
	require.NoError(t, err)
	assert.Equal(t, "1 card is due for review today. Run \"vole learn\".\n", out)
}
