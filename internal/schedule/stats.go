package schedule

import (
	"time"

	"github.com/example/vole/internal/spaced_repetition"
)

// Summary aggregates the state of the whole schedule
type Summary struct {
	Scheduled   int
	DueToday    int
	Mastered    int
	AverageEase float64
}

// Summarize computes a Summary as of today
func (s *Store) Summarize(algo *spaced_repetition.SM2, today time.Time) Summary {
	var sum Summary
	var easeTotal float64
	for _, state := range s.items {
		sum.Scheduled++
		easeTotal += state.Ease
		if state.IsDue(today) {
			sum.DueToday++
		}
		if algo.IsMastered(state) {
			sum.Mastered++
		}
	}
	if sum.Scheduled > 0 {
		sum.AverageEase = easeTotal / float64(sum.Scheduled)
	}
	return sum
}
