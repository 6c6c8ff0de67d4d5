package handlers

import (
	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/services"
	"smartrent_backend/internal/services/dto"
)

type AuthHandler struct {
	BaseHandler
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.auth.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.auth.ResetPassword(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resp)
}
