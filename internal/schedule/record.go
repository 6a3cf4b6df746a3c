package schedule

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/example/vole/pkg/models"
)

const fieldCount = 5

// minEase mirrors the SM-2 floor; a stored ease below it means the file was
// not written by us.
const minEase = 1.3

// encodeRecord serializes one schedule entry as
// id, next due, last reviewed, iteration and ease joined by TABs.
func encodeRecord(id uint64, s models.ReviewState) string {
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%s\n",
		models.FormatID(id),
		s.NextDue.Format(models.DateLayout),
		s.LastReviewed.Format(models.DateLayout),
		s.Iteration,
		strconv.FormatFloat(s.Ease, 'f', -1, 64),
	)
}

// decodeRecord parses a single line without its line feed.
func decodeRecord(line string) (uint64, models.ReviewState, error) {
	var state models.ReviewState

	parts := strings.Split(line, "\t")
	if len(parts) != fieldCount {
		return 0, state, fmt.Errorf("expected %d TAB separated tokens, got %d: %q", fieldCount, len(parts), line)
	}

	id, err := models.ParseID(parts[0])
	if err != nil {
		return 0, state, err
	}
	if state.NextDue, err = parseDate(parts[1]); err != nil {
		return 0, state, err
	}
	if state.LastReviewed, err = parseDate(parts[2]); err != nil {
		return 0, state, err
	}

	iteration, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return 0, state, fmt.Errorf("failed to parse iteration: %w", err)
	}
	state.Iteration = uint32(iteration)

	state.Ease, err = strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return 0, state, fmt.Errorf("failed to parse ease: %w", err)
	}
	if math.IsNaN(state.Ease) || math.IsInf(state.Ease, 0) || state.Ease < minEase {
		return 0, state, fmt.Errorf("ease %s out of range", parts[4])
	}

	return id, state, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return d, nil
}
