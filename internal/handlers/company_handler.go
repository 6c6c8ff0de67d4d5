package handlers

import (
	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/services"
	"smartrent_backend/internal/services/dto"
)

type CompanyHandler struct {
	BaseHandler
	companies services.CompanyService
	jwtAuth   gin.HandlerFunc
}

func NewCompanyHandler(companies services.CompanyService, jwtAuth gin.HandlerFunc) *CompanyHandler {
	return &CompanyHandler{companies: companies, jwtAuth: jwtAuth}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.GET("", h.List)
		companies.GET("/:id", h.GetByID)
		companies.POST("", h.jwtAuth, h.Create)
		companies.PUT("/:id", h.jwtAuth, h.Update)
		companies.DELETE("/:id", h.jwtAuth, h.Delete)
	}
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companies.GetAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, companies)
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	company, err := h.companies.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, company)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company, err := h.companies.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company, err := h.companies.Update(c.Request.Context(), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	if err := h.companies.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"ok": true})
}
