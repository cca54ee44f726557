package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
)

const envelopeImport = `{
  "export_info": {
    "exported_at": "2026-08-01T10:00:00Z",
    "total_questions": 2,
    "source": "quizbank",
    "removed_fields": []
  },
  "questions": [
    {"id": "aaaaaaaaaaaaaaaaaaaa", "question_text": "ما هي عاصمة فرنسا؟", "options": ["باريس", "لندن", "روما", "برلين"], "category": "جغرافيا", "difficulty": 1},
    {"question_text": "كم عدد الكواكب؟", "options": ["8", "9", "7", "10"]}
  ]
}`

func TestParseImport(t *testing.T) {
	t.Run("envelope format", func(t *testing.T) {
		questions, skipped, err := ParseImport([]byte(envelopeImport))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, questions, 2)

		assert.Equal(t, "aaaaaaaaaaaaaaaaaaaa", questions[0].ID)
		assert.Equal(t, "جغرافيا", questions[0].Category)

		// The second entry had no id, category or difficulty.
		assert.Len(t, questions[1].ID, 20)
		assert.Equal(t, entities.DefaultCategory, questions[1].Category)
		assert.Equal(t, entities.MinDifficulty, questions[1].Difficulty)
	})

	t.Run("bare array format", func(t *testing.T) {
		data := `[{"question_text": "سؤال واحد", "options": ["أ", "ب"]}]`
		questions, skipped, err := ParseImport([]byte(data))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Len(t, questions, 1)
	})

	t.Run("skips entries without text", func(t *testing.T) {
		data := `[
			{"question_text": "سؤال", "options": ["أ", "ب"]},
			{"question_text": "   ", "options": ["أ", "ب"]},
			{"options": ["أ", "ب"]}
		]`
		questions, skipped, err := ParseImport([]byte(data))
		require.NoError(t, err)
		assert.Equal(t, 2, skipped)
		assert.Len(t, questions, 1)
	})

	t.Run("rejects duplicate ids within one file", func(t *testing.T) {
		data := `[
			{"id": "x", "question_text": "سؤال أول", "options": []},
			{"id": "x", "question_text": "سؤال ثانٍ", "options": []}
		]`
		_, _, err := ParseImport([]byte(data))
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("rejects empty and malformed input", func(t *testing.T) {
		_, _, err := ParseImport([]byte(`[]`))
		assert.ErrorIs(t, err, ErrNoQuestions)

		_, _, err = ParseImport([]byte(`{"questions": []}`))
		assert.ErrorIs(t, err, ErrNoQuestions)

		_, _, err = ParseImport([]byte(`{not json`))
		assert.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestImporter_Import(t *testing.T) {
	repo := &fakeQuestionRepo{questions: []*entities.Question{
		{ID: "aaaaaaaaaaaaaaaaaaaa", Text: "نسخة قديمة", Category: "عامة", Difficulty: 1},
	}}
	tx := &fakeTransactor{}
	imp := NewImporter(tx, repo)

	summary, err := imp.Import(context.Background(), []byte(envelopeImport))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Replaced)
	assert.Zero(t, summary.Skipped)
	assert.Equal(t, 1, tx.calls)

	// The existing row was overwritten by the imported one.
	assert.Equal(t, "ما هي عاصمة فرنسا؟", repo.find("aaaaaaaaaaaaaaaaaaaa").Text)
}

func TestNewQuestionID(t *testing.T) {
	a := NewQuestionID()
	b := NewQuestionID()

	assert.Len(t, a, 20)
	assert.Len(t, b, 20)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
}
