package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	repo := seedRepo()
	exporter := NewExporter(repo)
	exportedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	exporter.now = func() time.Time { return exportedAt }

	t.Run("excludes marked questions", func(t *testing.T) {
		file, err := exporter.Export(context.Background(), nil)
		require.NoError(t, err)

		assert.Len(t, file.Questions, 2)
		for _, q := range file.Questions {
			assert.NotEqual(t, "c", q.ID)
		}

		assert.Equal(t, exportedAt, file.ExportInfo.ExportedAt)
		assert.Equal(t, 2, file.ExportInfo.TotalQuestions)
		assert.Equal(t, "quizbank", file.ExportInfo.Source)
		// Always a list in the envelope, never null.
		assert.NotNil(t, file.ExportInfo.RemovedFields)
		assert.Empty(t, file.ExportInfo.RemovedFields)
	})

	t.Run("keeps optional fields by default", func(t *testing.T) {
		file, err := exporter.Export(context.Background(), nil)
		require.NoError(t, err)

		require.NotNil(t, file.Questions[0].Category)
		require.NotNil(t, file.Questions[0].Difficulty)
		assert.Equal(t, "جغرافيا", *file.Questions[0].Category)
		assert.Equal(t, 1, *file.Questions[0].Difficulty)
	})

	t.Run("strips removed fields", func(t *testing.T) {
		file, err := exporter.Export(context.Background(), []string{"category", "difficulty"})
		require.NoError(t, err)

		assert.Equal(t, []string{"category", "difficulty"}, file.ExportInfo.RemovedFields)
		for _, q := range file.Questions {
			assert.Nil(t, q.Category)
			assert.Nil(t, q.Difficulty)
		}
	})

	t.Run("rejects unknown removable fields", func(t *testing.T) {
		_, err := exporter.Export(context.Background(), []string{"question_text"})
		assert.ErrorIs(t, err, ErrBadRemoveField)
	})
}
