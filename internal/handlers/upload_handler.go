package handlers

import (
	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/uploads"
	"smartrent_backend/pkg/apperrors"
)

type UploadHandler struct {
	BaseHandler
	processor *uploads.Processor
	jwtAuth   gin.HandlerFunc
}

func NewUploadHandler(processor *uploads.Processor, jwtAuth gin.HandlerFunc) *UploadHandler {
	return &UploadHandler{processor: processor, jwtAuth: jwtAuth}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	up := rg.Group("/uploads", h.jwtAuth)
	{
		up.POST("/image", h.Image)
		up.POST("/video", h.Video)
	}
}

func (h *UploadHandler) Image(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperrors.NewBadRequestError("Archivo requerido"))
		return
	}

	url, err := h.processor.SaveImage(file)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, gin.H{"type": "image", "url": url})
}

func (h *UploadHandler) Video(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperrors.NewBadRequestError("Archivo requerido"))
		return
	}

	url, err := h.processor.SaveVideo(file)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, gin.H{"type": "video", "url": url})
}
