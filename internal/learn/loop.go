package learn

import (
	"errors"

	"github.com/example/vole/internal/logging"
	"github.com/example/vole/internal/spaced_repetition"
	"github.com/example/vole/pkg/models"
)

// Session is the part of session.Session the loop drives
type Session interface {
	IsDone() bool
	HasMoreUnscheduled() bool
	PullMore(count int) (int, error)
	CurrentItem() (models.Card, error)
	RateCurrent(quality spaced_repetition.QualityResponse) error
	Close() error
}

// Prompter is the terminal the loop talks to
type Prompter interface {
	AskRating() (spaced_repetition.QualityResponse, error)
	AskYesNo(question string) (bool, error)
	WaitEnter() error
	Printf(format string, args ...any)
}

type action int

const (
	actionContinue action = iota
	actionAddMore
	actionQuit
)

// Loop is the question and answer loop of one sitting
type Loop struct {
	session   Session
	prompter  Prompter
	batchSize int
}

// NewLoop creates a loop that pulls batchSize new cards whenever the learner
// asks for more.
func NewLoop(s Session, p Prompter, batchSize int) *Loop {
	return &Loop{session: s, prompter: p, batchSize: batchSize}
}

// Run shows cards until the learner quits or nothing is left. The schedule is
// saved on the way out no matter how the loop ended.
func (l *Loop) Run() (err error) {
	defer func() {
		if closeErr := l.session.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	next := actionContinue
	for next != actionQuit {
		if next == actionAddMore {
			added, err := l.session.PullMore(l.batchSize)
			if err != nil {
				return err
			}
			logging.Debug().Int("added", added).Msg("scheduled more cards")
		}
		if next, err = l.iteration(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) iteration() (action, error) {
	if l.session.IsDone() {
		return l.askForMore()
	}
	return l.showCard()
}

func (l *Loop) showCard() (action, error) {
	card, err := l.session.CurrentItem()
	if err != nil {
		return actionQuit, err
	}

	l.prompter.Printf("Q: %s\n", card.Question)
	if err := l.prompter.WaitEnter(); err != nil {
		return actionQuit, err
	}
	l.prompter.Printf("A: %s\n", card.Answer)

	quality, err := l.prompter.AskRating()
	if err != nil {
		return actionQuit, err
	}
	if err := l.session.RateCurrent(quality); err != nil {
		return actionQuit, err
	}

	return l.askYesQuit("Continue with another card", actionContinue)
}

func (l *Loop) askForMore() (action, error) {
	if !l.session.HasMoreUnscheduled() {
		l.prompter.Printf("This is it for today! There are no unscheduled cards.\n")
		return actionQuit, nil
	}
	return l.askYesQuit("No more items planned for today, add more", actionAddMore)
}

func (l *Loop) askYesQuit(question string, yes action) (action, error) {
	ok, err := l.prompter.AskYesNo(question)
	if err != nil {
		return actionQuit, err
	}
	if !ok {
		return actionQuit, nil
	}
	return yes, nil
}
