package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
	"github.com/ABDe3N/quizbank/internal/infra/postgres"
)

var ErrQuestionNotFound = errors.New("question not found")

// ListFilter narrows down a bank listing. Zero values mean "no restriction".
type ListFilter struct {
	Category      string // exact category match
	Difficulty    int    // exact difficulty match, 0 disables
	Query         string // case-insensitive substring of the question text
	IncludeMarked bool   // also return questions flagged for deletion
}

// QuestionRepository provides access to the question bank in the database.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository with the provided database pool.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, question_text, options, category, difficulty, marked_for_deletion, created_at, updated_at`

// GetByID retrieves a single question by its identifier.
func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE id = $1
	`

	q, err := scanQuestion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return q, nil
}

// List retrieves questions matching the filter, in stable bank order.
func (r *QuestionRepository) List(ctx context.Context, f ListFilter) ([]*entities.Question, error) {
	var (
		conds []string
		args  []any
	)

	if !f.IncludeMarked {
		conds = append(conds, "NOT marked_for_deletion")
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Difficulty != 0 {
		args = append(args, f.Difficulty)
		conds = append(conds, fmt.Sprintf("difficulty = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		conds = append(conds, fmt.Sprintf("question_text ILIKE $%d", len(args)))
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []*entities.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}

// Update persists the editable fields of a question.
func (r *QuestionRepository) Update(ctx context.Context, q *entities.Question) error {
	query := `
		UPDATE questions
		SET question_text = $1,
		    options = $2,
		    category = $3,
		    difficulty = $4,
		    updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(
		ctx,
		query,
		q.Text,
		q.Options,
		q.Category,
		q.Difficulty,
		q.UpdatedAt,
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// SetDeletionMark flags or unflags a question for deletion.
func (r *QuestionRepository) SetDeletionMark(ctx context.Context, id string, marked bool) error {
	query := `
		UPDATE questions
		SET marked_for_deletion = $1,
		    updated_at = now()
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, marked, id)
	if err != nil {
		return fmt.Errorf("set deletion mark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// PurgeMarked hard-deletes every question flagged for deletion and returns
// how many rows were removed.
func (r *QuestionRepository) PurgeMarked(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM questions WHERE marked_for_deletion`)
	if err != nil {
		return 0, fmt.Errorf("purge marked questions: %w", err)
	}

	return result.RowsAffected(), nil
}

// BulkUpsert inserts the given questions, replacing rows whose id already
// exists. It reports how many rows were inserted and how many replaced.
// Pass a pgx.Tx as db to run the whole batch atomically.
func (r *QuestionRepository) BulkUpsert(ctx context.Context, db postgres.DBTX, questions []*entities.Question) (inserted, replaced int, err error) {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}

	existing := make(map[string]bool, len(ids))
	rows, err := db.Query(ctx, `SELECT id FROM questions WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, 0, fmt.Errorf("check existing questions: %w", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, 0, fmt.Errorf("scan existing id: %w", err)
		}
		existing[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("check existing questions: %w", err)
	}

	query := `
		INSERT INTO questions (` + questionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET question_text = EXCLUDED.question_text,
		    options = EXCLUDED.options,
		    category = EXCLUDED.category,
		    difficulty = EXCLUDED.difficulty,
		    marked_for_deletion = EXCLUDED.marked_for_deletion,
		    updated_at = EXCLUDED.updated_at
	`

	for _, q := range questions {
		_, err := db.Exec(
			ctx,
			query,
			q.ID,
			q.Text,
			q.Options,
			q.Category,
			q.Difficulty,
			q.MarkedForDeletion,
			q.CreatedAt,
			q.UpdatedAt,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("upsert question %s: %w", q.ID, err)
		}

		if existing[q.ID] {
			replaced++
		} else {
			inserted++
		}
	}

	return inserted, replaced, nil
}

// Stats summarizes the bank: totals and per-category counts.
func (r *QuestionRepository) Stats(ctx context.Context) (*entities.BankStats, error) {
	stats := &entities.BankStats{ByCategory: make(map[string]int)}

	query := `
		SELECT category,
		       count(*),
		       count(*) FILTER (WHERE marked_for_deletion)
		FROM questions
		GROUP BY category
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bank stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category      string
			total, marked int
		)
		if err := rows.Scan(&category, &total, &marked); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}

		stats.ByCategory[category] = total
		stats.Total += total
		stats.Marked += marked
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bank stats: %w", err)
	}

	return stats, nil
}

func scanQuestion(row pgx.Row) (*entities.Question, error) {
	var q entities.Question
	err := row.Scan(
		&q.ID,
		&q.Text,
		&q.Options,
		&q.Category,
		&q.Difficulty,
		&q.MarkedForDeletion,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &q, nil
}
