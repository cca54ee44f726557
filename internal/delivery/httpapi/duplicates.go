package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type duplicateMatch struct {
	Question questionResponse `json:"question"`
	Score    float64          `json:"score"`
}

func (h *Handler) questionDuplicates(c *gin.Context) {
	threshold, ok := h.thresholdParam(c)
	if !ok {
		return
	}

	matches, err := h.duplicates.FindForQuestion(c.Request.Context(), c.Param("id"), threshold)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]duplicateMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, duplicateMatch{
			Question: toQuestionResponse(m.Question),
			Score:    m.Score,
		})
	}

	c.JSON(http.StatusOK, gin.H{"matches": out})
}

func (h *Handler) scanDuplicates(c *gin.Context) {
	threshold, ok := h.thresholdParam(c)
	if !ok {
		return
	}

	pairs, err := h.duplicates.ScanBank(c.Request.Context(), threshold)
	if err != nil {
		h.respondError(c, err)
		return
	}

	type pairResponse struct {
		First  questionResponse `json:"first"`
		Second questionResponse `json:"second"`
		Score  float64          `json:"score"`
	}

	out := make([]pairResponse, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, pairResponse{
			First:  toQuestionResponse(p.First),
			Second: toQuestionResponse(p.Second),
			Score:  p.Score,
		})
	}

	c.JSON(http.StatusOK, gin.H{"pairs": out})
}

// thresholdParam reads the optional threshold query parameter. An absent
// parameter becomes -1, which the duplicate service resolves to its
// configured default; an explicit 0 is passed through and matches the whole
// bank.
func (h *Handler) thresholdParam(c *gin.Context) (float64, bool) {
	raw := c.Query("threshold")
	if raw == "" {
		return -1, true
	}

	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil || threshold < 0 || threshold > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a number in [0, 100]"})
		return 0, false
	}

	return threshold, true
}
