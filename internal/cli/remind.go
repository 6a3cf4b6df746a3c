package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/vole/internal/logging"
	"github.com/example/vole/internal/reminder"
)

func newRemindCommand(a *app) *cobra.Command {
	var (
		at  string
		now bool
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Reports every day how many cards are due.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reminder.New(a.cfg.SchedulePath(), reminder.WriterNotifier{W: a.out})
			if now {
				_, err := r.CheckNow()
				return err
			}

			if at == "" {
				at = a.cfg.RemindAt
			}
			if err := r.Start(at); err != nil {
				return err
			}
			defer r.Stop()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case sig := <-sigChan:
				logging.Info().Str("signal", sig.String()).Msg("stopping reminder")
			case <-cmd.Context().Done():
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Time of day of the reminder, HH:MM (default from configuration)")
	cmd.Flags().BoolVar(&now, "now", false, "Check once and exit")
	return cmd
}
