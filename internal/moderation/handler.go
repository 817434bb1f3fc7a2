package moderation

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiesta-events/backend/pkg/response"
)

// Handler handles admin moderation HTTP endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a moderation handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// List handles GET /admin/registrations?q=&status=.
func (h *Handler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err))
		response.Internal(c, "failed to list registrations")
		return
	}
	entries = Filter(entries, c.Query("q"), c.Query("status"))
	response.OK(c, gin.H{"registrations": entries, "count": len(entries)})
}

// GetStats handles GET /admin/registrations/stats.
func (h *Handler) GetStats(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("stats listing failed", zap.Error(err))
		response.Internal(c, "failed to compute stats")
		return
	}
	response.OK(c, Stats(entries))
}

// ExportCSV handles GET /admin/registrations/export, streaming the verified
// subset as a CSV attachment.
func (h *Handler) ExportCSV(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("export listing failed", zap.Error(err))
		response.Internal(c, "failed to export registrations")
		return
	}
	filename := fmt.Sprintf("approved_registrations_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := WriteVerifiedCSV(c.Writer, entries); err != nil {
		h.logger.Error("csv write failed", zap.Error(err))
	}
}
