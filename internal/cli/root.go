package cli

import (
	"context"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/example/vole/internal/config"
	"github.com/example/vole/internal/database"
	"github.com/example/vole/internal/logging"
	"github.com/example/vole/pkg/models"
)

// app carries what every command needs once the configuration is loaded
type app struct {
	cfg   *config.Config
	in    io.Reader
	out   io.Writer
	errW  io.Writer
	today func() time.Time
	load  func() (*config.Config, error)
}

// NewRootCommand builds the vole command tree reading from in and writing to out
func NewRootCommand(in io.Reader, out, errW io.Writer) *cobra.Command {
	return newRootCommand(newApp(in, out, errW))
}

func newApp(in io.Reader, out, errW io.Writer) *app {
	return &app{
		in:    in,
		out:   out,
		errW:  errW,
		today: models.Today,
		load:  config.Load,
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "vole",
		Short:         "CLI for flashcard learning",
		Version:       "0.2.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: a.errW})
			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errW)

	root.AddCommand(
		newAddCommand(a),
		newLearnCommand(a),
		newFindCommand(a),
		newImportCommand(a),
		newStatsCommand(a),
		newRemindCommand(a),
	)
	return root
}

// cards opens the content store, hands it to fn and closes it again
func (a *app) cards(ctx context.Context, fn func(repo *database.CardRepository) error) error {
	db, err := database.Connect(ctx, a.cfg.DBDriver, a.cfg.DSN())
	if err != nil {
		return err
	}
	defer func(db *sqlx.DB) {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close content database")
		}
	}(db)
	return fn(database.NewCardRepository(db))
}
