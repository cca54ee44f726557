package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
	"github.com/ABDe3N/quizbank/internal/infra/postgres/repository"
	"github.com/ABDe3N/quizbank/internal/similarity"
)

var ErrBadThreshold = errors.New("threshold must be in [0, 100]")

type DuplicateRepo interface {
	GetByID(ctx context.Context, id string) (*entities.Question, error)
	List(ctx context.Context, f repository.ListFilter) ([]*entities.Question, error)
}

// DuplicatePair is one suspected duplicate found by a full bank scan. Each
// unordered question pair appears at most once.
type DuplicatePair struct {
	First  *entities.Question
	Second *entities.Question
	Score  float64
}

// DuplicateService runs near-duplicate detection over the stored bank.
type DuplicateService struct {
	repo             DuplicateRepo
	defaultThreshold float64
}

// NewDuplicateService creates the service. defaultThreshold is used whenever
// a caller passes a negative threshold; a non-positive defaultThreshold
// falls back to similarity.DefaultThreshold.
func NewDuplicateService(repo DuplicateRepo, defaultThreshold float64) *DuplicateService {
	if defaultThreshold <= 0 {
		defaultThreshold = similarity.DefaultThreshold
	}

	return &DuplicateService{repo: repo, defaultThreshold: defaultThreshold}
}

// FindForQuestion returns every other question in the bank scoring at least
// threshold against the given question, best match first. A negative
// threshold means "use the configured default"; zero is honored literally
// and matches the whole bank. Marked questions participate: they are still
// in the bank until purged.
func (s *DuplicateService) FindForQuestion(ctx context.Context, id string, threshold float64) ([]similarity.Match, error) {
	threshold, err := s.resolveThreshold(threshold)
	if err != nil {
		return nil, err
	}

	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.List(ctx, repository.ListFilter{IncludeMarked: true})
	if err != nil {
		return nil, fmt.Errorf("load bank for duplicate search: %w", err)
	}

	return similarity.FindNearDuplicates(target, candidates, threshold), nil
}

// ScanBank compares every question against every other and returns pairs
// scoring at least threshold, ordered by descending score. A negative
// threshold means "use the configured default". Questions without text
// cannot score and are left out.
func (s *DuplicateService) ScanBank(ctx context.Context, threshold float64) ([]DuplicatePair, error) {
	threshold, err := s.resolveThreshold(threshold)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.List(ctx, repository.ListFilter{IncludeMarked: true})
	if err != nil {
		return nil, fmt.Errorf("load bank for duplicate scan: %w", err)
	}

	var pairs []DuplicatePair
	for i := 0; i < len(questions); i++ {
		if questions[i].Text == "" {
			continue
		}
		for j := i + 1; j < len(questions); j++ {
			score := similarity.Score(questions[i].Text, questions[j].Text)
			if score >= threshold {
				pairs = append(pairs, DuplicatePair{
					First:  questions[i],
					Second: questions[j],
					Score:  score,
				})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})

	return pairs, nil
}

func (s *DuplicateService) resolveThreshold(threshold float64) (float64, error) {
	if threshold < 0 {
		return s.defaultThreshold, nil
	}
	if threshold > 100 {
		return 0, ErrBadThreshold
	}

	return threshold, nil
}
