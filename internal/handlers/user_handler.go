package handlers

import (
	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/middleware"
	"smartrent_backend/internal/services"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/internal/uploads"
	"smartrent_backend/pkg/apperrors"
)

type UserHandler struct {
	BaseHandler
	users     services.UserService
	processor *uploads.Processor
	jwtAuth   gin.HandlerFunc
}

func NewUserHandler(users services.UserService, processor *uploads.Processor, jwtAuth gin.HandlerFunc) *UserHandler {
	return &UserHandler{users: users, processor: processor, jwtAuth: jwtAuth}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", h.jwtAuth)
	{
		users.GET("/me", h.Me)
		users.GET("/:id", h.GetByID)
		users.PUT("/:id", h.Update)
		users.POST("/:id/image", h.UpdateImage)
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		h.Error(c, apperrors.NewUnauthorizedError("No autenticado"))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}

// UpdateImage accepts a multipart "file" field, normalizes it to JPEG
// and stores the public path on the profile.
func (h *UserHandler) UpdateImage(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperrors.NewBadRequestError("Debe adjuntar un archivo 'file'"))
		return
	}

	path, err := h.processor.SaveImage(file)
	if err != nil {
		h.Error(c, err)
		return
	}

	user, err := h.users.UpdateImage(c.Request.Context(), id, path)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}
