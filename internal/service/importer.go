package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
	"github.com/ABDe3N/quizbank/internal/infra/postgres"
)

var (
	ErrNoQuestions    = errors.New("import file contains no questions")
	ErrDuplicateID    = errors.New("duplicate question id in import file")
	ErrMalformedInput = errors.New("malformed import file")
)

// questionIDLength matches the ids of the original export files: the first
// 20 hex characters of a dashless UUID.
const questionIDLength = 20

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

type ImportRepo interface {
	BulkUpsert(ctx context.Context, db postgres.DBTX, questions []*entities.Question) (inserted, replaced int, err error)
}

// ImportSummary reports the outcome of one import.
type ImportSummary struct {
	Imported int `json:"imported"` // new questions added to the bank
	Replaced int `json:"replaced"` // existing ids overwritten by the file
	Skipped  int `json:"skipped"`  // entries without question text
}

// Importer ingests question files in the questions_export.json interchange
// format. Defaults are applied here, once, so the rest of the system never
// sees a question with a blank category or an out-of-range difficulty.
type Importer struct {
	tx   Transactor
	repo ImportRepo
}

func NewImporter(tx Transactor, repo ImportRepo) *Importer {
	return &Importer{tx: tx, repo: repo}
}

// Import parses data and stores the contained questions in one transaction.
// Questions whose id already exists in the bank are replaced.
func (i *Importer) Import(ctx context.Context, data []byte) (*ImportSummary, error) {
	questions, skipped, err := ParseImport(data)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Skipped: skipped}
	err = i.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		inserted, replaced, err := i.repo.BulkUpsert(ctx, tx, questions)
		if err != nil {
			return err
		}

		summary.Imported = inserted
		summary.Replaced = replaced
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import questions: %w", err)
	}

	return summary, nil
}

// ParseImport decodes an import file into bank questions. It accepts both
// the export envelope and a bare JSON array of questions. Entries without
// text are skipped and counted; missing ids are generated; ingestion
// defaults are applied. A file reusing one id twice is rejected.
func ParseImport(data []byte) (questions []*entities.Question, skipped int, err error) {
	entries, err := decodeImport(data)
	if err != nil {
		return nil, 0, err
	}
	if len(entries) == 0 {
		return nil, 0, ErrNoQuestions
	}

	now := time.Now()
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			skipped++
			continue
		}

		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = NewQuestionID()
		}
		if seen[id] {
			return nil, 0, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = true

		q := &entities.Question{
			ID:        id,
			Text:      text,
			Options:   e.Options,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if e.Category != nil {
			q.Category = *e.Category
		}
		if e.Difficulty != nil {
			q.Difficulty = *e.Difficulty
		}
		q.ApplyDefaults()

		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, 0, ErrNoQuestions
	}

	return questions, skipped, nil
}

func decodeImport(data []byte) ([]entities.ExportQuestion, error) {
	var file entities.ExportFile
	if err := json.Unmarshal(data, &file); err == nil && file.Questions != nil {
		return file.Questions, nil
	}

	var bare []entities.ExportQuestion
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	return bare, nil
}

// NewQuestionID generates a bank question id in the original export format.
func NewQuestionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:questionIDLength]
}
