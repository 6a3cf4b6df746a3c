package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vole/pkg/models"
)

// QA is the text of a card that is about to be stored
type QA struct {
	Question string
	Answer   string
}

// ErrInvalidCard is returned for empty texts or texts containing TABs or
// line breaks, which the exchange format reserves.
var ErrInvalidCard = errors.New("database: invalid card")

// Validate checks that the pair can be stored
func (qa QA) Validate() error {
	if strings.TrimSpace(qa.Question) == "" {
		return fmt.Errorf("%w: question cannot be empty", ErrInvalidCard)
	}
	if strings.TrimSpace(qa.Answer) == "" {
		return fmt.Errorf("%w: answer cannot be empty", ErrInvalidCard)
	}
	if strings.ContainsAny(qa.Question+qa.Answer, "\t\r\n") {
		return fmt.Errorf("%w: question and answer cannot contain TABs or line breaks", ErrInvalidCard)
	}
	return nil
}

// Swapped returns the pair with question and answer exchanged
func (qa QA) Swapped() QA {
	return QA{Question: qa.Answer, Answer: qa.Question}
}

// CardRepository is the append-only content store. IDs grow by one with every
// stored card and are never reused.
type CardRepository struct {
	db *sqlx.DB
}

// NewCardRepository creates a new repository instance
func NewCardRepository(db *sqlx.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Append stores the pairs in order within a single transaction and returns
// the stored cards.
func (r *CardRepository) Append(ctx context.Context, pairs []QA) ([]models.Card, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	for _, qa := range pairs {
		if err := qa.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lastID sql.NullInt64
	if err := tx.GetContext(ctx, &lastID, "SELECT MAX(id) FROM cards"); err != nil {
		return nil, fmt.Errorf("failed to get last card ID: %w", err)
	}

	query := tx.Rebind(`INSERT INTO cards (id, question, answer, created_at) VALUES (?, ?, ?, ?)`)
	now := time.Now().UTC().Truncate(time.Second)
	cards := make([]models.Card, 0, len(pairs))
	id := lastID.Int64
	for _, qa := range pairs {
		id++
		card := models.Card{ID: uint64(id), Question: qa.Question, Answer: qa.Answer, CreatedAt: now}
		if _, err := tx.ExecContext(ctx, query, id, card.Question, card.Answer, card.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to create card: %w", err)
		}
		cards = append(cards, card)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cards: %w", err)
	}
	return cards, nil
}

// All returns every card ordered by ID
func (r *CardRepository) All(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.SelectContext(ctx, &cards, "SELECT id, question, answer, created_at FROM cards ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	return cards, nil
}

// GetByID returns a card by ID
func (r *CardRepository) GetByID(ctx context.Context, id uint64) (*models.Card, error) {
	var card models.Card
	query := r.db.Rebind("SELECT id, question, answer, created_at FROM cards WHERE id = ?")
	if err := r.db.GetContext(ctx, &card, query, int64(id)); err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", models.FormatID(id), err)
	}
	return &card, nil
}

// Find returns the cards whose question or answer matches re
func (r *CardRepository) Find(ctx context.Context, re *regexp.Regexp) ([]models.Card, error) {
	cards, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var found []models.Card
	for _, card := range cards {
		if re.MatchString(card.Question) || re.MatchString(card.Answer) {
			found = append(found, card)
		}
	}
	return found, nil
}

// Count returns the number of stored cards
func (r *CardRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM cards"); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return n, nil
}
