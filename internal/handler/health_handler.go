package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	ocrConfigured bool
	llmConfigured bool
}

// NewHealthHandler creates a new HealthHandler. The flags report
// whether each external collaborator has credentials configured.
func NewHealthHandler(ocrConfigured, llmConfigured bool) *HealthHandler {
	return &HealthHandler{ocrConfigured: ocrConfigured, llmConfigured: llmConfigured}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
//
// The process can serve text-only normalization without either backend,
// so missing credentials degrade the report instead of failing it.
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"backends": gin.H{
			"ocr": h.ocrConfigured,
			"llm": h.llmConfigured,
		},
	})
}
