package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) importQuestions(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	summary, err := h.importer.Import(c.Request.Context(), data)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("import finished",
		zap.Int("imported", summary.Imported),
		zap.Int("replaced", summary.Replaced),
		zap.Int("skipped", summary.Skipped),
	)
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) exportQuestions(c *gin.Context) {
	var removeFields []string
	if raw := c.Query("remove"); raw != "" {
		removeFields = strings.Split(raw, ",")
	}

	file, err := h.exporter.Export(c.Request.Context(), removeFields)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="questions_export.json"`)
	c.JSON(http.StatusOK, file)
}
