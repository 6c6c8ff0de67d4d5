package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/services"
)

type EstadisticasHandler struct {
	BaseHandler
	stats   services.EstadisticasService
	jwtAuth gin.HandlerFunc
}

func NewEstadisticasHandler(stats services.EstadisticasService, jwtAuth gin.HandlerFunc) *EstadisticasHandler {
	return &EstadisticasHandler{stats: stats, jwtAuth: jwtAuth}
}

func (h *EstadisticasHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stats := rg.Group("/estadisticas", h.jwtAuth)
	{
		stats.GET("/resumen", h.Resumen)
		stats.GET("/export/pdf", h.ExportPDF)
		stats.GET("/export/excel", h.ExportExcel)
	}
}

func (h *EstadisticasHandler) Resumen(c *gin.Context) {
	resumen, err := h.stats.Resumen(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resumen)
}

func (h *EstadisticasHandler) ExportPDF(c *gin.Context) {
	data, err := h.stats.ExportPDF(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	name := fmt.Sprintf("estadisticas_%s.pdf", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *EstadisticasHandler) ExportExcel(c *gin.Context) {
	data, err := h.stats.ExportExcel(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	name := fmt.Sprintf("estadisticas_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
