package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
	"github.com/ABDe3N/quizbank/internal/infra/postgres/repository"
)

var (
	ErrEmptyQuestionText = errors.New("question text cannot be empty")
	ErrInvalidOptions    = errors.New("a question needs at least two non-empty options")
	ErrUnknownCategory   = errors.New("unknown category")
)

type QuestionRepo interface {
	GetByID(ctx context.Context, id string) (*entities.Question, error)
	List(ctx context.Context, f repository.ListFilter) ([]*entities.Question, error)
	Update(ctx context.Context, q *entities.Question) error
	SetDeletionMark(ctx context.Context, id string, marked bool) error
	PurgeMarked(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*entities.BankStats, error)
}

// BankService covers the curation operations on the question bank: reading,
// inline edits, deletion marks and purging.
type BankService struct {
	repo QuestionRepo
}

func NewBankService(repo QuestionRepo) *BankService {
	return &BankService{repo: repo}
}

// Get retrieves a single question.
func (s *BankService) Get(ctx context.Context, id string) (*entities.Question, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves questions matching the filter.
func (s *BankService) List(ctx context.Context, f repository.ListFilter) ([]*entities.Question, error) {
	return s.repo.List(ctx, f)
}

// UpdateText replaces a question's text. Blank text is rejected; whitespace
// around the text is trimmed before saving.
func (s *BankService) UpdateText(ctx context.Context, id, text string) (*entities.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuestionText
	}

	return s.update(ctx, id, func(q *entities.Question) error {
		q.Text = text
		return nil
	})
}

// UpdateOptions replaces a question's answer options. At least two non-empty
// options are required; the correct answer stays in the first position.
func (s *BankService) UpdateOptions(ctx context.Context, id string, options []string) (*entities.Question, error) {
	if len(options) < 2 {
		return nil, ErrInvalidOptions
	}

	trimmed := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return nil, ErrInvalidOptions
		}
		trimmed = append(trimmed, opt)
	}

	return s.update(ctx, id, func(q *entities.Question) error {
		q.Options = trimmed
		return nil
	})
}

// UpdateCategory moves a question to another category. A blank category
// falls back to the default, any other value must be a known label.
func (s *BankService) UpdateCategory(ctx context.Context, id, category string) (*entities.Question, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = entities.DefaultCategory
	}
	if !entities.KnownCategory(category) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	return s.update(ctx, id, func(q *entities.Question) error {
		q.Category = category
		return nil
	})
}

// UpdateDifficulty changes a question's difficulty, applying the same
// clamping rule as ingestion.
func (s *BankService) UpdateDifficulty(ctx context.Context, id string, difficulty int) (*entities.Question, error) {
	return s.update(ctx, id, func(q *entities.Question) error {
		q.Difficulty = difficulty
		q.ApplyDefaults()
		return nil
	})
}

// SetDeletionMark flags or unflags a question for deletion.
func (s *BankService) SetDeletionMark(ctx context.Context, id string, marked bool) error {
	return s.repo.SetDeletionMark(ctx, id, marked)
}

// PurgeMarked permanently removes every question flagged for deletion.
func (s *BankService) PurgeMarked(ctx context.Context) (int64, error) {
	return s.repo.PurgeMarked(ctx)
}

// Stats summarizes the bank state.
func (s *BankService) Stats(ctx context.Context) (*entities.BankStats, error) {
	return s.repo.Stats(ctx)
}

func (s *BankService) update(ctx context.Context, id string, mutate func(q *entities.Question) error) (*entities.Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(q); err != nil {
		return nil, err
	}
	q.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("save question %s: %w", id, err)
	}

	return q, nil
}
