package gate

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiesta-events/backend/pkg/response"
)

// Handler handles registration gate HTTP endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a gate handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Status handles GET /registration-status (public, read by the intake form).
func (h *Handler) Status(c *gin.Context) {
	state, err := h.service.Status(c.Request.Context())
	if err != nil {
		h.logger.Error("gate status failed", zap.Error(err))
		response.Internal(c, "failed to read registration status")
		return
	}
	response.OK(c, state)
}

// Close handles POST /admin/registration-gate/close.
func (h *Handler) Close(c *gin.Context) {
	if err := h.service.Close(c.Request.Context()); err != nil {
		h.logger.Error("close gate failed", zap.Error(err))
		response.Internal(c, "failed to close registrations")
		return
	}
	response.NoContent(c)
}

// Open handles POST /admin/registration-gate/open.
func (h *Handler) Open(c *gin.Context) {
	if err := h.service.Open(c.Request.Context()); err != nil {
		h.logger.Error("open gate failed", zap.Error(err))
		response.Internal(c, "failed to open registrations")
		return
	}
	response.NoContent(c)
}
