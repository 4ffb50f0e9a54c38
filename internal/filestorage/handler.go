// File: internal/filestorage/handler.go
package filestorage

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for upload handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
	cfg     *config.Config
}

// NewHandler creates a new file storage handler.
func NewHandler(service *Service, logger *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{service: service, logger: logger, cfg: cfg}
}

// RegisterRoutes sets up the upload routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/uploads", authMW, h.uploadImages)
}

// uploadImages stores the multipart files concurrently and returns their
// public URLs in the order the files were sent, so index 0 stays the cover.
func (h *Handler) uploadImages(c *gin.Context) {
	maxBytes := h.cfg.MaxUploadSizeMB << 20
	if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid multipart form or files too large: "+err.Error()))
		return
	}

	files := c.Request.MultipartForm.File["images"]
	if len(files) == 0 {
		common.RespondWithError(c, common.NewValidationAPIError(map[string]string{
			"images": "At least one file is required.",
		}))
		return
	}
	if len(files) > h.cfg.MaxImagesPerPost {
		common.RespondWithError(c, common.NewValidationAPIError(map[string]string{
			"images": fmt.Sprintf("At most %d files are allowed.", h.cfg.MaxImagesPerPost),
		}))
		return
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int, fh *multipart.FileHeader) {
			defer wg.Done()
			urls[i], errs[i] = h.service.SaveUploadedFile(c.Request.Context(), fh)
		}(i, files[i])
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			h.logger.Error("Image upload failed",
				zap.String("filename", files[i].Filename),
				zap.Error(err))
			common.RespondWithError(c, common.ErrInternalServer.WithDetails(
				fmt.Sprintf("Failed to store file %q.", files[i].Filename)))
			return
		}
	}

	common.RespondCreated(c, "Files uploaded successfully.", gin.H{"image_urls": urls})
}
