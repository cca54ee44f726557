package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
	"github.com/ABDe3N/quizbank/internal/infra/postgres/repository"
)

var ErrBadRemoveField = errors.New("field cannot be removed on export")

// exportSource labels export files written by this service.
const exportSource = "quizbank"

// removableFields are the optional question fields an operator may strip
// from an export.
var removableFields = map[string]bool{
	"category":   true,
	"difficulty": true,
}

type ExportRepo interface {
	List(ctx context.Context, f repository.ListFilter) ([]*entities.Question, error)
}

// Exporter writes the cleaned bank back out in the interchange format.
// Questions marked for deletion never appear in an export.
type Exporter struct {
	repo ExportRepo
	now  func() time.Time
}

func NewExporter(repo ExportRepo) *Exporter {
	return &Exporter{repo: repo, now: time.Now}
}

// Export builds an export document. removeFields names optional fields to
// strip from every exported question; the stripped names are recorded in the
// envelope's removed_fields list.
func (e *Exporter) Export(ctx context.Context, removeFields []string) (*entities.ExportFile, error) {
	for _, f := range removeFields {
		if !removableFields[f] {
			return nil, fmt.Errorf("%w: %s", ErrBadRemoveField, f)
		}
	}
	if removeFields == nil {
		removeFields = []string{}
	}

	questions, err := e.repo.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load bank for export: %w", err)
	}

	removed := make(map[string]bool, len(removeFields))
	for _, f := range removeFields {
		removed[f] = true
	}

	out := make([]entities.ExportQuestion, 0, len(questions))
	for _, q := range questions {
		eq := entities.ExportQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
		}
		if !removed["category"] {
			category := q.Category
			eq.Category = &category
		}
		if !removed["difficulty"] {
			difficulty := q.Difficulty
			eq.Difficulty = &difficulty
		}

		out = append(out, eq)
	}

	return &entities.ExportFile{
		ExportInfo: entities.ExportInfo{
			ExportedAt:     e.now(),
			TotalQuestions: len(out),
			Source:         exportSource,
			RemovedFields:  removeFields,
		},
		Questions: out,
	}, nil
}
