package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
	"github.com/ABDe3N/quizbank/internal/infra/postgres"
	"github.com/ABDe3N/quizbank/internal/infra/postgres/repository"
)

// fakeQuestionRepo is an in-memory stand-in for the Postgres repository.
type fakeQuestionRepo struct {
	questions []*entities.Question

	updated  []*entities.Question
	upserted []*entities.Question
	err      error
}

func (f *fakeQuestionRepo) find(id string) *entities.Question {
	for _, q := range f.questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, id string) (*entities.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	if q := f.find(id); q != nil {
		clone := *q
		return &clone, nil
	}
	return nil, repository.ErrQuestionNotFound
}

func (f *fakeQuestionRepo) List(_ context.Context, filter repository.ListFilter) ([]*entities.Question, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []*entities.Question
	for _, q := range f.questions {
		if !filter.IncludeMarked && q.MarkedForDeletion {
			continue
		}
		if filter.Category != "" && q.Category != filter.Category {
			continue
		}
		if filter.Difficulty != 0 && q.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(q.Text), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, q)
	}

	return out, nil
}

func (f *fakeQuestionRepo) Update(_ context.Context, q *entities.Question) error {
	if f.err != nil {
		return f.err
	}
	stored := f.find(q.ID)
	if stored == nil {
		return repository.ErrQuestionNotFound
	}

	*stored = *q
	f.updated = append(f.updated, q)
	return nil
}

func (f *fakeQuestionRepo) SetDeletionMark(_ context.Context, id string, marked bool) error {
	if f.err != nil {
		return f.err
	}
	q := f.find(id)
	if q == nil {
		return repository.ErrQuestionNotFound
	}

	q.MarkedForDeletion = marked
	return nil
}

func (f *fakeQuestionRepo) PurgeMarked(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}

	var kept []*entities.Question
	var purged int64
	for _, q := range f.questions {
		if q.MarkedForDeletion {
			purged++
			continue
		}
		kept = append(kept, q)
	}

	f.questions = kept
	return purged, nil
}

func (f *fakeQuestionRepo) Stats(_ context.Context) (*entities.BankStats, error) {
	if f.err != nil {
		return nil, f.err
	}

	stats := &entities.BankStats{ByCategory: make(map[string]int)}
	for _, q := range f.questions {
		stats.Total++
		stats.ByCategory[q.Category]++
		if q.MarkedForDeletion {
			stats.Marked++
		}
	}

	return stats, nil
}

func (f *fakeQuestionRepo) BulkUpsert(_ context.Context, _ postgres.DBTX, questions []*entities.Question) (int, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}

	var inserted, replaced int
	for _, q := range questions {
		if existing := f.find(q.ID); existing != nil {
			*existing = *q
			replaced++
		} else {
			f.questions = append(f.questions, q)
			inserted++
		}
	}

	f.upserted = append(f.upserted, questions...)
	return inserted, replaced, nil
}

// fakeTransactor runs the callback without a real transaction.
type fakeTransactor struct {
	calls int
	err   error
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx, nil)
}
