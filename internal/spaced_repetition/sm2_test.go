package spaced_repetition

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vole/pkg/models"
)

var today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestNewState(t *testing.T) {
	sm := NewSM2()
	s := sm.NewState(today.Add(17 * time.Hour))
	assert.Equal(t, uint32(0), s.Iteration)
	assert.Equal(t, 2.5, s.Ease)
	assert.Equal(t, today, s.LastReviewed)
	assert.Equal(t, today, s.NextDue)
	assert.True(t, s.IsDue(today))
}

func TestProcessFailureKeepsDueDate(t *testing.T) {
	sm := NewSM2()
	for q := QualityBlackout; q < QualityCorrectDifficult; q++ {
		before := models.ReviewState{
			Iteration:    4,
			Ease:         2.2,
			LastReviewed: models.AddDays(today, -12),
			NextDue:      models.AddDays(today, -1),
		}
		after, err := sm.Process(before, q, today)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), after.Iteration, "quality %d", q)
		assert.Equal(t, before.NextDue, after.NextDue, "quality %d", q)
		assert.Equal(t, today, after.LastReviewed, "quality %d", q)
	}
}

func TestProcessSuccessIntervals(t *testing.T) {
	sm := NewSM2()
	last := models.AddDays(today, -7)

	tests := []struct {
		name      string
		iteration uint32
		quality   QualityResponse
		wantDays  func(ease float64) int
	}{
		{"first success", 0, QualityCorrectDifficult, func(float64) int { return 1 }},
		{"second success", 1, QualityPerfect, func(float64) int { return 6 }},
		{"third success", 2, QualityCorrectHesitation, func(e float64) int { return int(math.Floor(e * 7)) }},
		{"later success", 9, QualityCorrectDifficult, func(e float64) int { return int(math.Floor(e * 7)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := models.ReviewState{Iteration: tt.iteration, Ease: 2.5, LastReviewed: last, NextDue: today}
			after, err := sm.Process(before, tt.quality, today)
			require.NoError(t, err)
			assert.Equal(t, tt.iteration+1, after.Iteration)
			assert.Equal(t, models.AddDays(today, tt.wantDays(after.Ease)), after.NextDue)
			assert.Equal(t, today, after.LastReviewed)
		})
	}
}

func TestProcessEasinessCurve(t *testing.T) {
	sm := NewSM2()
	want := map[QualityResponse]float64{
		QualityBlackout:          1.7,
		QualityIncorrect:         1.96,
		QualityIncorrectFamiliar: 2.18,
		QualityCorrectDifficult:  2.36,
		QualityCorrectHesitation: 2.5,
		QualityPerfect:           2.6,
	}
	for q, ease := range want {
		after, err := sm.Process(sm.NewState(today), q, today)
		require.NoError(t, err)
		assert.InDelta(t, ease, after.Ease, 1e-9, "quality %d", q)
	}
}

func TestProcessEasinessFloor(t *testing.T) {
	sm := NewSM2()
	rng := rand.New(rand.NewSource(42))

	state := sm.NewState(today)
	day := today
	for i := 0; i < 500; i++ {
		q := QualityResponse(rng.Intn(6))
		next, err := sm.Process(state, q, day)
		require.NoError(t, err)
		require.GreaterOrEqual(t, next.Ease, 1.3, "step %d", i)
		state = next
		day = models.AddDays(day, rng.Intn(4))
	}

	state.Ease = 1.3
	next, err := sm.Process(state, QualityBlackout, day)
	require.NoError(t, err)
	assert.Equal(t, 1.3, next.Ease)
}

func TestProcessDateArithmetic(t *testing.T) {
	sm := NewSM2()
	days, err := sm.interval(3, 2.0, models.AddDays(today, -10), today)
	require.NoError(t, err)
	assert.Equal(t, 20, days)

	before := models.ReviewState{Iteration: 2, Ease: 2.0, LastReviewed: models.AddDays(today, -10), NextDue: today}
	after, err := sm.Process(before, QualityCorrectHesitation, today)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, after.Ease, 1e-9)
	assert.Equal(t, models.AddDays(today, int(math.Floor(after.Ease*10))), after.NextDue)
}

func TestProcessIterationOverflow(t *testing.T) {
	sm := NewSM2()
	before := models.ReviewState{
		Iteration:    math.MaxUint32,
		Ease:         2.5,
		LastReviewed: models.AddDays(today, -10),
		NextDue:      today,
	}

	after, err := sm.Process(before, QualityPerfect, today)
	assert.ErrorIs(t, err, ErrIterationOverflow)
	assert.Equal(t, before, after)

	// A failed recall resets the counter and is still allowed.
	after, err = sm.Process(before, QualityBlackout, today)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), after.Iteration)
}

func TestProcessDueDateOutOfRange(t *testing.T) {
	sm := NewSM2()
	before := models.ReviewState{
		Iteration:    3,
		Ease:         1e300,
		LastReviewed: models.AddDays(today, -10),
		NextDue:      today,
	}

	after, err := sm.Process(before, QualityPerfect, today)
	assert.ErrorIs(t, err, ErrDueDateOutOfRange)
	assert.Equal(t, before, after)

	// The last representable day is still accepted.
	limit := models.DaysBetween(today, models.MaxDate)
	days, err := sm.interval(3, float64(limit), models.AddDays(today, -1), today)
	require.NoError(t, err)
	assert.Equal(t, limit, days)
}

func TestProcessInvalidQuality(t *testing.T) {
	sm := NewSM2()
	before := sm.NewState(today)
	for _, q := range []QualityResponse{-1, 6, 42} {
		after, err := sm.Process(before, q, today)
		assert.ErrorIs(t, err, ErrInvalidQuality)
		assert.Equal(t, before, after)
	}
}

func TestProcessReviewedInFuture(t *testing.T) {
	sm := NewSM2()
	before := models.ReviewState{Iteration: 5, Ease: 2.5, LastReviewed: models.AddDays(today, 1), NextDue: today}
	_, err := sm.Process(before, QualityPerfect, today)
	assert.ErrorIs(t, err, ErrReviewedInFuture)

	// Early iterations do not look at the last review date.
	before.Iteration = 0
	_, err = sm.Process(before, QualityPerfect, today)
	assert.NoError(t, err)
}

func TestIsMastered(t *testing.T) {
	sm := NewSM2()
	s := models.ReviewState{Iteration: 5, Ease: 2.5, LastReviewed: today, NextDue: models.AddDays(today, 30)}
	assert.True(t, sm.IsMastered(s))
	s.NextDue = models.AddDays(today, 29)
	assert.False(t, sm.IsMastered(s))
	s.NextDue = models.AddDays(today, 60)
	s.Iteration = 4
	assert.False(t, sm.IsMastered(s))
}

func TestQualityString(t *testing.T) {
	assert.Equal(t, "perfect response", QualityPerfect.String())
	assert.Equal(t, "QualityResponse(9)", QualityResponse(9).String())
	assert.Len(t, Qualities(), 6)
}
