package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyScheduled is returned when a card enters the schedule twice
	ErrAlreadyScheduled = errors.New("schedule: item is already scheduled")
	// ErrNotScheduled is returned for IDs the schedule does not track
	ErrNotScheduled = errors.New("schedule: item is not scheduled")
	// ErrSessionDone is returned when the queue is asked for an item after
	// every item of the sitting has been reviewed
	ErrSessionDone = errors.New("schedule: no items left in this session")

	// ErrCreateTemp, ErrWriteTemp and ErrReplace tell apart the three ways a
	// save can fail. The previous schedule file is intact after each of them.
	ErrCreateTemp = errors.New("schedule: couldn't create temporary file")
	ErrWriteTemp  = errors.New("schedule: couldn't write temporary file")
	ErrReplace    = errors.New("schedule: couldn't replace schedule file")
)

// ParseError reports a malformed line of the schedule file
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: error on line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
