package registrations

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiesta-events/backend/internal/models"
	"github.com/fiesta-events/backend/pkg/response"
)

// CreateRequest is the body for POST /registrations.
type CreateRequest struct {
	Name              string `json:"name" binding:"required"`
	HomeClub          string `json:"home_club" binding:"required"`
	Designation       string `json:"designation" binding:"required"`
	PhoneNumber       string `json:"phone_number" binding:"required"`
	PaymentMethod     string `json:"payment_method" binding:"required"`
	PaymentScreenshot string `json:"payment_screenshot,omitempty"`
}

// UpdateStatusRequest is the body for PATCH /admin/registrations/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentQRRequest is the body for POST /admin/registrations/:id/payment-qr.
type PaymentQRRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// Handler handles registration HTTP endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Create handles POST /registrations. Issues a pass and QR payload.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	reg, err := h.service.Create(c.Request.Context(), CreateInput{
		Name:              req.Name,
		HomeClub:          req.HomeClub,
		Designation:       req.Designation,
		PhoneNumber:       req.PhoneNumber,
		PaymentMethod:     req.PaymentMethod,
		PaymentScreenshot: req.PaymentScreenshot,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrRegistrationsClosed):
			response.Forbidden(c, "registrations are currently closed")
		default:
			h.logger.Error("create registration failed", zap.Error(err))
			response.Internal(c, "failed to register")
		}
		return
	}

	response.Created(c, gin.H{
		"registration_id": reg.ID,
		"pass_id":         reg.PassID,
		"qr_code":         reg.QRCode,
	})
}

// GetByPassID handles GET /passes/:passId for badge re-display.
func (h *Handler) GetByPassID(c *gin.Context) {
	passID := c.Param("passId")
	if passID == "" {
		response.BadRequest(c, "pass id required")
		return
	}
	reg, err := h.service.GetByPassID(c.Request.Context(), passID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "pass not found")
			return
		}
		h.logger.Error("get by pass id failed", zap.Error(err), zap.String("pass_id", passID))
		response.Internal(c, "lookup failed")
		return
	}
	response.OK(c, reg)
}

// UpdateStatus handles PATCH /admin/registrations/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "status must be pending, verified or rejected")
		return
	}
	if err := h.service.UpdateStatus(c.Request.Context(), id, status); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "registration not found")
		case errors.Is(err, models.ErrInvalidStatus):
			response.BadRequest(c, err.Error())
		default:
			h.logger.Error("update status failed", zap.Error(err), zap.String("registration_id", id.String()))
			response.Internal(c, "failed to update status")
		}
		return
	}
	response.OK(c, gin.H{"id": id, "status": status})
}

// Delete handles DELETE /admin/registrations/:id. Deleting an unknown id is a no-op.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete registration failed", zap.Error(err), zap.String("registration_id", id.String()))
		response.Internal(c, "failed to delete registration")
		return
	}
	response.NoContent(c)
}

// GeneratePaymentQR handles POST /admin/registrations/:id/payment-qr.
func (h *Handler) GeneratePaymentQR(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	var req PaymentQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	qr, err := h.service.GeneratePaymentQR(c.Request.Context(), id, req.Amount)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "registration not found")
			return
		}
		h.logger.Error("generate payment qr failed", zap.Error(err), zap.String("registration_id", id.String()))
		response.Internal(c, "failed to generate payment qr")
		return
	}
	response.Created(c, gin.H{"qr_id": qr.ID, "qr_data": qr.QRCodeData})
}
