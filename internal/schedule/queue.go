package schedule

import (
	"fmt"
	"time"

	"github.com/example/vole/internal/spaced_repetition"
	"github.com/example/vole/pkg/models"
)

// Stage selects which sequence supplies the current item
type Stage int

const (
	// StageHot serves new cards and cards that were just failed
	StageHot Stage = iota
	// StageRefresh serves cards rated 3, once nothing hot is left
	StageRefresh
)

func (s Stage) String() string {
	if s == StageRefresh {
		return "refresh"
	}
	return "hot"
}

// Queue orders the cards of one sitting. Cards failed in the hot stage come
// back to the end of the hot stage; cards recalled with serious difficulty
// move to the refresh stage, which is only drained when the hot stage is
// empty. Anything rated 4 or 5 is done for the day.
type Queue struct {
	store   *Store
	algo    *spaced_repetition.SM2
	today   time.Time
	hot     []uint64
	refresh []uint64
	stage   Stage
}

// NewQueue starts a sitting with every card the store found due at load time
func NewQueue(store *Store, algo *spaced_repetition.SM2, today time.Time) *Queue {
	return &Queue{
		store: store,
		algo:  algo,
		today: models.Date(today),
		hot:   store.DueToday(),
		stage: StageHot,
	}
}

// IsDone reports whether both stages are empty
func (q *Queue) IsDone() bool {
	return len(q.hot) == 0 && len(q.refresh) == 0
}

// Current returns the ID of the card to show next
func (q *Queue) Current() (uint64, error) {
	if q.IsDone() {
		return 0, ErrSessionDone
	}
	if q.stage == StageHot {
		return q.hot[0], nil
	}
	return q.refresh[0], nil
}

// Advance applies the rating of the current card and moves on. Only ratings
// given in the hot stage update the card's schedule; the refresh stage is a
// same-day confirmation. The queue and the store are left untouched when an
// error is returned.
func (q *Queue) Advance(quality spaced_repetition.QualityResponse) error {
	if q.IsDone() {
		return ErrSessionDone
	}
	if err := spaced_repetition.CheckQuality(quality); err != nil {
		return err
	}

	id, _ := q.Current()
	if q.stage == StageHot {
		state, ok := q.store.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotScheduled, models.FormatID(id))
		}
		next, err := q.algo.Process(state, quality, q.today)
		if err != nil {
			return fmt.Errorf("rate %s: %w", models.FormatID(id), err)
		}
		if err := q.store.Update(id, next); err != nil {
			return err
		}
		q.hot = q.hot[1:]
	} else {
		q.refresh = q.refresh[1:]
	}

	switch {
	case quality < spaced_repetition.QualityCorrectDifficult:
		q.hot = append(q.hot, id)
	case quality == spaced_repetition.QualityCorrectDifficult:
		q.refresh = append(q.refresh, id)
	}

	q.stage = StageHot
	if len(q.hot) == 0 && len(q.refresh) > 0 {
		q.stage = StageRefresh
	}
	return nil
}

// EnqueueNew schedules a card for the first time and puts it at the end of
// the hot stage.
func (q *Queue) EnqueueNew(id uint64) error {
	if err := q.store.Insert(id, q.algo.NewState(q.today)); err != nil {
		return err
	}
	q.hot = append(q.hot, id)
	q.stage = StageHot
	return nil
}

// Stage returns the stage that supplies the current card
func (q *Queue) Stage() Stage {
	return q.stage
}

// Hot returns a copy of the hot stage, front first
func (q *Queue) Hot() []uint64 {
	return append([]uint64(nil), q.hot...)
}

// Refresh returns a copy of the refresh stage, front first
func (q *Queue) Refresh() []uint64 {
	return append([]uint64(nil), q.refresh...)
}

// Len returns the number of cards left in the sitting
func (q *Queue) Len() int {
	return len(q.hot) + len(q.refresh)
}
