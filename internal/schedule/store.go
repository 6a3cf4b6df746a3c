package schedule

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/example/vole/pkg/models"
)

// Store maps card IDs to their review state. It is read from disk in one go
// and written back in one go; nothing is flushed in between.
type Store struct {
	path  string
	items map[uint64]models.ReviewState
	due   []uint64
}

// NewStore returns an empty store persisted at path
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		items: make(map[uint64]models.ReviewState),
	}
}

// Load reads the schedule file at path. A missing file yields an empty store.
// Items due on or before today are remembered in file order, see DueToday.
func Load(path string, today time.Time) (*Store, error) {
	s := NewStore(path)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("couldn't open file %q: %w", path, err)
	}
	defer file.Close()

	today = models.Date(today)
	scanner := bufio.NewScanner(file)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		id, state, err := decodeRecord(scanner.Text())
		if err != nil {
			return nil, &ParseError{Path: path, Line: lineNr, Err: err}
		}
		if _, ok := s.items[id]; ok {
			return nil, &ParseError{Path: path, Line: lineNr, Err: fmt.Errorf("duplicate ID %s", models.FormatID(id))}
		}
		if state.IsDue(today) {
			s.due = append(s.due, id)
		}
		s.items[id] = state
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read file %q: %w", path, err)
	}

	return s, nil
}

// Save writes every record to a sibling ".tmp" file and renames it over the
// schedule file. The temporary file is removed when any step fails.
func (s *Store) Save() (err error) {
	tmpPath := s.path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrCreateTemp, tmpPath, err)
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(file)
	for id, state := range s.items {
		if _, err = w.WriteString(encodeRecord(id, state)); err != nil {
			return fmt.Errorf("%w %q: %w", ErrWriteTemp, tmpPath, err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteTemp, tmpPath, err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteTemp, tmpPath, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteTemp, tmpPath, err)
	}

	if err = os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w %q to %q: %w", ErrReplace, tmpPath, s.path, err)
	}
	return nil
}

// Path returns the location of the schedule file
func (s *Store) Path() string {
	return s.path
}

// Has reports whether the card is tracked by the schedule
func (s *Store) Has(id uint64) bool {
	_, ok := s.items[id]
	return ok
}

// Get returns the review state of a scheduled card
func (s *Store) Get(id uint64) (models.ReviewState, bool) {
	state, ok := s.items[id]
	return state, ok
}

// Insert adds a card that has never been scheduled before
func (s *Store) Insert(id uint64, state models.ReviewState) error {
	if s.Has(id) {
		return fmt.Errorf("%w: %s", ErrAlreadyScheduled, models.FormatID(id))
	}
	s.items[id] = state
	return nil
}

// Update replaces the state of an already scheduled card
func (s *Store) Update(id uint64, state models.ReviewState) error {
	if !s.Has(id) {
		return fmt.Errorf("%w: %s", ErrNotScheduled, models.FormatID(id))
	}
	s.items[id] = state
	return nil
}

// Len returns the number of scheduled cards
func (s *Store) Len() int {
	return len(s.items)
}

// DueToday returns the IDs that were due when the store was loaded
func (s *Store) DueToday() []uint64 {
	return append([]uint64(nil), s.due...)
}

// Each calls fn for every record in no particular order
func (s *Store) Each(fn func(id uint64, state models.ReviewState)) {
	for id, state := range s.items {
		fn(id, state)
	}
}
