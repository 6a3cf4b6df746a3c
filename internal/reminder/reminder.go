package reminder

import (
	"fmt"
	"io"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vole/internal/logging"
	"github.com/example/vole/internal/schedule"
	"github.com/example/vole/pkg/models"
)

// DefaultTime is the time of day reminders go out
const DefaultTime = "09:00"

// Notifier interface for sending notifications
type Notifier interface {
	NotifyDue(count int) error
}

// Reminder periodically checks how many cards are due. It only ever reads
// the schedule file, so it can run next to a learning session.
type Reminder struct {
	scheduler *gocron.Scheduler
	path      string
	notifier  Notifier
	now       func() time.Time
}

// New creates a reminder for the schedule file at path
func New(path string, notifier Notifier) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		path:      path,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Start runs the daily check at the given time of day ("HH:MM") without
// blocking.
func (r *Reminder) Start(at string) error {
	if _, err := r.scheduler.Every(1).Day().At(at).Do(r.checkAndNotify); err != nil {
		return fmt.Errorf("failed to schedule reminder at %q: %w", at, err)
	}
	r.scheduler.StartAsync()
	logging.Info().Str("at", at).Str("path", r.path).Msg("reminder started")
	return nil
}

// Stop terminates all scheduled checks
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// CheckNow counts the cards due today and notifies when there are any.
// It returns the number of due cards.
func (r *Reminder) CheckNow() (int, error) {
	store, err := schedule.Load(r.path, models.Date(r.now()))
	if err != nil {
		return 0, err
	}

	due := len(store.DueToday())
	if due == 0 {
		logging.Debug().Msg("no cards due, skipping reminder")
		return 0, nil
	}
	if err := r.notifier.NotifyDue(due); err != nil {
		return due, fmt.Errorf("failed to send reminder: %w", err)
	}
	return due, nil
}

func (r *Reminder) checkAndNotify() {
	if _, err := r.CheckNow(); err != nil {
		logging.Error().Err(err).Msg("reminder check failed")
	}
}

// WriterNotifier prints reminders to a writer such as a terminal
type WriterNotifier struct {
	W io.Writer
}

// NotifyDue implements Notifier
func (n WriterNotifier) NotifyDue(count int) error {
	noun := "cards are"
	if count == 1 {
		noun = "card is"
	}
	_, err := fmt.Fprintf(n.W, "%d %s due for review today. Run \"vole learn\".\n", count, noun)
	return err
}
