// Package httpapi exposes the curation operations as a JSON API for the
// question-bank admin page.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
	"github.com/ABDe3N/quizbank/internal/infra/postgres/repository"
	"github.com/ABDe3N/quizbank/internal/service"
	"github.com/ABDe3N/quizbank/internal/similarity"
)

type BankService interface {
	Get(ctx context.Context, id string) (*entities.Question, error)
	List(ctx context.Context, f repository.ListFilter) ([]*entities.Question, error)
	UpdateText(ctx context.Context, id, text string) (*entities.Question, error)
	UpdateOptions(ctx context.Context, id string, options []string) (*entities.Question, error)
	UpdateCategory(ctx context.Context, id, category string) (*entities.Question, error)
	UpdateDifficulty(ctx context.Context, id string, difficulty int) (*entities.Question, error)
	SetDeletionMark(ctx context.Context, id string, marked bool) error
	PurgeMarked(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*entities.BankStats, error)
}

type ImportService interface {
	Import(ctx context.Context, data []byte) (*service.ImportSummary, error)
}

type ExportService interface {
	Export(ctx context.Context, removeFields []string) (*entities.ExportFile, error)
}

type DuplicateFinder interface {
	FindForQuestion(ctx context.Context, id string, threshold float64) ([]similarity.Match, error)
	ScanBank(ctx context.Context, threshold float64) ([]service.DuplicatePair, error)
}

type Handler struct {
	logger     *zap.Logger
	bank       BankService
	importer   ImportService
	exporter   ExportService
	duplicates DuplicateFinder
}

func NewHandler(
	logger *zap.Logger,
	bank BankService,
	importer ImportService,
	exporter ExportService,
	duplicates DuplicateFinder,
) *Handler {
	return &Handler{
		logger:     logger,
		bank:       bank,
		importer:   importer,
		exporter:   exporter,
		duplicates: duplicates,
	}
}

func (h *Handler) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/questions", h.listQuestions)
		api.GET("/questions/:id", h.getQuestion)
		api.PATCH("/questions/:id", h.patchQuestion)
		api.POST("/questions/:id/mark", h.markQuestion)
		api.DELETE("/questions/:id/mark", h.unmarkQuestion)
		// Not under /questions: a static segment there would clash with the
		// :id route parameter.
		api.POST("/purge", h.purgeQuestions)
		api.GET("/questions/:id/duplicates", h.questionDuplicates)
		api.GET("/duplicates", h.scanDuplicates)
		api.POST("/import", h.importQuestions)
		api.GET("/export", h.exportQuestions)
		api.GET("/stats", h.bankStats)
	}

	return r
}

// respondError maps service errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyQuestionText),
		errors.Is(err, service.ErrInvalidOptions),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrBadThreshold),
		errors.Is(err, service.ErrBadRemoveField),
		errors.Is(err, service.ErrNoQuestions),
		errors.Is(err, service.ErrDuplicateID),
		errors.Is(err, service.ErrMalformedInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
