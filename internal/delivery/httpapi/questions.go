package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
	"github.com/ABDe3N/quizbank/internal/infra/postgres/repository"
)

// questionResponse is the wire form of a question inside the API (as
// opposed to the interchange format used by import/export).
type questionResponse struct {
	ID                string   `json:"id"`
	Text              string   `json:"question_text"`
	Options           []string `json:"options"`
	Category          string   `json:"category"`
	Difficulty        int      `json:"difficulty"`
	MarkedForDeletion bool     `json:"marked_for_deletion"`
}

func toQuestionResponse(q *entities.Question) questionResponse {
	return questionResponse{
		ID:                q.ID,
		Text:              q.Text,
		Options:           q.Options,
		Category:          q.Category,
		Difficulty:        q.Difficulty,
		MarkedForDeletion: q.MarkedForDeletion,
	}
}

func (h *Handler) listQuestions(c *gin.Context) {
	var f repository.ListFilter
	f.Category = c.Query("category")
	f.Query = c.Query("q")
	f.IncludeMarked = c.Query("include_marked") == "true"

	if raw := c.Query("difficulty"); raw != "" {
		difficulty, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid difficulty"})
			return
		}
		f.Difficulty = difficulty
	}

	questions, err := h.bank.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}

	c.JSON(http.StatusOK, gin.H{"questions": out, "total": len(out)})
}

func (h *Handler) getQuestion(c *gin.Context) {
	q, err := h.bank.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuestionResponse(q))
}

type patchQuestionRequest struct {
	Text       *string   `json:"question_text"`
	Options    *[]string `json:"options"`
	Category   *string   `json:"category"`
	Difficulty *int      `json:"difficulty"`
}

// patchQuestion applies partial field edits; only fields present in the
// body are touched.
func (h *Handler) patchQuestion(c *gin.Context) {
	var req patchQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Text == nil && req.Options == nil && req.Category == nil && req.Difficulty == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	var (
		q   *entities.Question
		err error
	)

	if req.Text != nil {
		if q, err = h.bank.UpdateText(ctx, id, *req.Text); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if req.Options != nil {
		if q, err = h.bank.UpdateOptions(ctx, id, *req.Options); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if req.Category != nil {
		if q, err = h.bank.UpdateCategory(ctx, id, *req.Category); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if req.Difficulty != nil {
		if q, err = h.bank.UpdateDifficulty(ctx, id, *req.Difficulty); err != nil {
			h.respondError(c, err)
			return
		}
	}

	h.logger.Debug("question updated", zap.String("id", id))
	c.JSON(http.StatusOK, toQuestionResponse(q))
}

func (h *Handler) markQuestion(c *gin.Context) {
	h.setMark(c, true)
}

func (h *Handler) unmarkQuestion(c *gin.Context) {
	h.setMark(c, false)
}

func (h *Handler) setMark(c *gin.Context, marked bool) {
	id := c.Param("id")
	if err := h.bank.SetDeletionMark(c.Request.Context(), id, marked); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "marked_for_deletion": marked})
}

func (h *Handler) purgeQuestions(c *gin.Context) {
	purged, err := h.bank.PurgeMarked(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("purged marked questions", zap.Int64("count", purged))
	c.JSON(http.StatusOK, gin.H{"purged": purged})
}

func (h *Handler) bankStats(c *gin.Context) {
	stats, err := h.bank.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       stats.Total,
		"marked":      stats.Marked,
		"by_category": stats.ByCategory,
	})
}
