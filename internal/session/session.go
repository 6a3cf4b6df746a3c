package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/vole/internal/logging"
	"github.com/example/vole/internal/schedule"
	"github.com/example/vole/internal/spaced_repetition"
	"github.com/example/vole/pkg/models"
)

// ErrMissingContent means the schedule refers to a card the content store
// does not know.
var ErrMissingContent = errors.New("session: scheduled card not found in content store")

// Session drives one sitting: it owns the schedule, the queue of the day and
// the cards that have not been scheduled yet.
type Session struct {
	store       *schedule.Store
	queue       *schedule.Queue
	cards       map[uint64]models.Card
	unscheduled []models.Card
	log         zerolog.Logger
}

// Open loads the schedule file and splits cards, given in content store
// order, into already scheduled ones and ones waiting to be scheduled.
func Open(path string, cards []models.Card, algo *spaced_repetition.SM2, today time.Time) (*Session, error) {
	store, err := schedule.Load(path, today)
	if err != nil {
		return nil, err
	}

	s := &Session{
		store: store,
		queue: schedule.NewQueue(store, algo, today),
		cards: make(map[uint64]models.Card, len(cards)),
		log:   logging.With("session"),
	}
	for _, card := range cards {
		s.cards[card.ID] = card
		if !store.Has(card.ID) {
			s.unscheduled = append(s.unscheduled, card)
		}
	}

	s.log.Info().
		Str("path", path).
		Int("scheduled", store.Len()).
		Int("due", s.queue.Len()).
		Int("unscheduled", len(s.unscheduled)).
		Msg("session opened")
	return s, nil
}

// IsDone reports whether every card of the sitting has been reviewed
func (s *Session) IsDone() bool {
	return s.queue.IsDone()
}

// HasMoreUnscheduled reports whether there are cards left to pull in
func (s *Session) HasMoreUnscheduled() bool {
	return len(s.unscheduled) > 0
}

// Unscheduled returns the number of cards that were never scheduled
func (s *Session) Unscheduled() int {
	return len(s.unscheduled)
}

// Remaining returns the number of cards left in the sitting
func (s *Session) Remaining() int {
	return s.queue.Len()
}

// PullMore schedules up to count cards from the front of the unscheduled
// queue and returns how many were added.
func (s *Session) PullMore(count int) (int, error) {
	added := 0
	for added < count && len(s.unscheduled) > 0 {
		card := s.unscheduled[0]
		if err := s.queue.EnqueueNew(card.ID); err != nil {
			return added, err
		}
		s.unscheduled = s.unscheduled[1:]
		added++
	}
	s.log.Debug().Int("requested", count).Int("added", added).Msg("pulled new cards")
	return added, nil
}

// CurrentItem returns the card to show next
func (s *Session) CurrentItem() (models.Card, error) {
	id, err := s.queue.Current()
	if err != nil {
		return models.Card{}, err
	}
	card, ok := s.cards[id]
	if !ok {
		return models.Card{}, fmt.Errorf("%w: %s", ErrMissingContent, models.FormatID(id))
	}
	return card, nil
}

// RateCurrent records the rating of the current card and moves on
func (s *Session) RateCurrent(quality spaced_repetition.QualityResponse) error {
	id, err := s.queue.Current()
	if err != nil {
		return err
	}
	stage := s.queue.Stage()
	if err := s.queue.Advance(quality); err != nil {
		return err
	}
	s.log.Debug().
		Str("card_id", models.FormatID(id)).
		Int("quality", int(quality)).
		Stringer("stage", stage).
		Msg("card rated")
	return nil
}

// Close persists the schedule
func (s *Session) Close() error {
	if err := s.store.Save(); err != nil {
		return err
	}
	s.log.Info().Str("path", s.store.Path()).Int("records", s.store.Len()).Msg("schedule saved")
	return nil
}
