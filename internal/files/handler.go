package files

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiesta-events/backend/pkg/response"
	"github.com/fiesta-events/backend/pkg/storage"
)

// UploadURLRequest is the body for POST /files/upload-url.
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// Handler handles attachment upload HTTP endpoints.
type Handler struct {
	service *Service
	s3      *storage.S3
	logger  *zap.Logger
}

// NewHandler creates a files handler. Both service and s3 may be nil when
// object storage is not configured; endpoints then report unavailability.
func NewHandler(service *Service, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, s3: s3, logger: logger}
}

// GenerateUploadURL handles POST /files/upload-url. The client PUTs the
// screenshot to the returned URL, then submits the key with the registration.
func (h *Handler) GenerateUploadURL(c *gin.Context) {
	if h.service == nil {
		response.Internal(c, "file storage not configured")
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !storage.ValidateScreenshotType(req.ContentType, req.FileName) {
		response.BadRequest(c, "unsupported file type")
		return
	}
	key := storage.ScreenshotKey(uuid.New().String(), req.FileName)
	url, expiresAt, err := h.service.GenerateUploadURL(c.Request.Context(), key, req.ContentType)
	if err != nil {
		h.logger.Error("presign upload url failed", zap.Error(err))
		response.BadGateway(c, "failed to generate upload url")
		return
	}
	response.OK(c, gin.H{"upload_url": url, "key": key, "expires_at": expiresAt})
}

// Upload handles POST /files/upload, a server-side multipart fallback for
// clients that cannot PUT to a pre-signed URL directly.
func (h *Handler) Upload(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "file storage not configured")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > storage.MaxScreenshotSize {
		response.BadRequest(c, "file too large")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !storage.ValidateScreenshotType(contentType, fileHeader.Filename) {
		response.BadRequest(c, "unsupported file type")
		return
	}
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(fileHeader.Filename)
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read file")
		return
	}
	defer f.Close()

	key := storage.ScreenshotKey(uuid.New().String(), fileHeader.Filename)
	url, err := h.s3.Upload(c.Request.Context(), key, contentType, f, fileHeader.Size)
	if err != nil {
		h.logger.Error("screenshot upload failed", zap.Error(err), zap.String("key", key))
		response.BadGateway(c, "upload failed")
		return
	}
	response.Created(c, gin.H{"key": key, "url": url})
}
