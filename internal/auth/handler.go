package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiesta-events/backend/pkg/response"
	"github.com/fiesta-events/backend/pkg/utils"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Handler handles admin login. The shared admin password is stored as a
// bcrypt hash; a successful login issues a session token with expiry instead
// of a transient client-side flag.
type Handler struct {
	passwordHash string
	jwtService   *JWTService
	logger       *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(passwordHash string, jwtService *JWTService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{passwordHash: passwordHash, jwtService: jwtService, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if h.passwordHash == "" || !utils.CheckPassword(req.Password, h.passwordHash) {
		response.Unauthorized(c, "invalid password")
		return
	}
	token, expiresAt, err := h.jwtService.Generate()
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		response.Internal(c, "failed to create session")
		return
	}
	response.OK(c, gin.H{"token": token, "expires_at": expiresAt})
}
