package spaced_repetition

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/example/vole/pkg/models"
)

var (
	// ErrInvalidQuality is returned for ratings outside 0..5
	ErrInvalidQuality = errors.New("spaced_repetition: invalid quality response")
	// ErrReviewedInFuture means the stored last review date lies after today,
	// which only happens with a corrupted schedule.
	ErrReviewedInFuture = errors.New("spaced_repetition: item was reviewed in the future")
	// ErrIterationOverflow is returned when the success counter cannot grow any further
	ErrIterationOverflow = errors.New("spaced_repetition: iteration counter overflow")
	// ErrDueDateOutOfRange is returned when the next due date would lie past models.MaxDate
	ErrDueDateOutOfRange = errors.New("spaced_repetition: next due date out of range")
)

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Ratings at or above this value count as a successful recall
	PassThreshold QualityResponse
	// Easiness factor of a freshly scheduled card
	InitialEasiness float64
	// Lower bound of the easiness factor
	MinEasiness float64
	// Intervals in days after the first and second successful review
	InitialIntervals []int
}

// NewSM2 creates a new SM2 instance with the classic settings
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:    QualityCorrectDifficult,
		InitialEasiness:  2.5,
		MinEasiness:      1.3,
		InitialIntervals: []int{1, 6},
	}
}

// QualityResponse represents the quality of response in SM-2
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt easy to recall
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

var qualityDescriptions = [...]string{
	"complete blackout",
	"incorrect response; the correct one remembered",
	"incorrect response; where the correct one seemed easy to recall",
	"correct response recalled with serious difficulty",
	"correct response after a hesitation",
	"perfect response",
}

// Qualities lists every valid response from worst to best
func Qualities() []QualityResponse {
	return []QualityResponse{
		QualityBlackout,
		QualityIncorrect,
		QualityIncorrectFamiliar,
		QualityCorrectDifficult,
		QualityCorrectHesitation,
		QualityPerfect,
	}
}

// Valid reports whether q is within 0..5
func (q QualityResponse) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// String returns the human readable description of the response
func (q QualityResponse) String() string {
	if !q.Valid() {
		return fmt.Sprintf("QualityResponse(%d)", int(q))
	}
	return qualityDescriptions[q]
}

// CheckQuality returns ErrInvalidQuality for ratings outside 0..5
func CheckQuality(q QualityResponse) error {
	if !q.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return nil
}

// NewState returns the state of a card that enters the schedule today.
// It is due immediately.
func (sm *SM2) NewState(today time.Time) models.ReviewState {
	day := models.Date(today)
	return models.ReviewState{
		Iteration:    0,
		Ease:         sm.InitialEasiness,
		LastReviewed: day,
		NextDue:      day,
	}
}

// Process applies a rating given today and returns the updated state.
// The input state is not modified. A failed recall resets the iteration
// counter but keeps the previous due date; only successful recalls move it.
func (sm *SM2) Process(state models.ReviewState, quality QualityResponse, today time.Time) (models.ReviewState, error) {
	if err := CheckQuality(quality); err != nil {
		return state, err
	}
	if quality >= sm.PassThreshold && state.Iteration == math.MaxUint32 {
		return state, fmt.Errorf("%w: %d", ErrIterationOverflow, state.Iteration)
	}
	today = models.Date(today)
	next := state
	next.Ease = sm.updateEasiness(state.Ease, quality)

	if quality < sm.PassThreshold {
		next.Iteration = 0
	} else {
		next.Iteration = state.Iteration + 1
		interval, err := sm.interval(next.Iteration, next.Ease, state.LastReviewed, today)
		if err != nil {
			return state, err
		}
		next.NextDue = models.AddDays(today, interval)
	}

	next.LastReviewed = today
	return next, nil
}

// updateEasiness recomputes the easiness factor for a rating,
// ef' = ef - 0.8 + 0.28q - 0.02q², clamped to MinEasiness.
func (sm *SM2) updateEasiness(ef float64, quality QualityResponse) float64 {
	q := float64(quality)
	ef = ef - 0.8 + 0.28*q - 0.02*q*q
	if ef < sm.MinEasiness {
		ef = sm.MinEasiness
	}
	return ef
}

// interval returns the number of days until the next review after the
// iteration-th consecutive success.
func (sm *SM2) interval(iteration uint32, ease float64, lastReviewed, today time.Time) (int, error) {
	if int(iteration) <= len(sm.InitialIntervals) {
		return sm.InitialIntervals[iteration-1], nil
	}

	elapsed := models.DaysBetween(lastReviewed, today)
	if elapsed < 0 {
		return 0, fmt.Errorf("%w: last reviewed %s, today %s", ErrReviewedInFuture,
			lastReviewed.Format(models.DateLayout), today.Format(models.DateLayout))
	}
	days := math.Floor(ease * float64(elapsed))
	if limit := models.DaysBetween(today, models.MaxDate); days > float64(limit) {
		return 0, fmt.Errorf("%w: %.0f days after %s", ErrDueDateOutOfRange, days, today.Format(models.DateLayout))
	}
	return int(days), nil
}

// IsMastered determines if a card is considered "mastered"
func (sm *SM2) IsMastered(state models.ReviewState) bool {
	// A card is considered mastered if:
	// 1. It has been recalled at least 5 times in a row
	// 2. The current interval is at least 30 days
	return state.Iteration >= 5 && state.Interval() >= 30
}
