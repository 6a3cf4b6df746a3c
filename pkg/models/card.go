package models

import (
	"fmt"
	"strconv"
	"time"
)

// Card represents a question/answer pair to be learned
type Card struct {
	ID        uint64    `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FormatID renders a card ID as 16 lowercase hex digits
func FormatID(id uint64) string {
	return fmt.Sprintf("%016x", id)
}

// ParseID parses a hex card ID
func ParseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ID %q: %w", s, err)
	}
	return id, nil
}

// Line returns the card in its exchange form: id, question and answer
// separated by TABs and terminated by a line feed.
func (c Card) Line() string {
	return fmt.Sprintf("%s\t%s\t%s\n", FormatID(c.ID), c.Question, c.Answer)
}
