package handlers

import (
	"os"

	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/services"
	"smartrent_backend/pkg/apperrors"
)

type InvoiceHandler struct {
	BaseHandler
	invoices services.InvoiceService
	jwtAuth  gin.HandlerFunc
}

func NewInvoiceHandler(invoices services.InvoiceService, jwtAuth gin.HandlerFunc) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, jwtAuth: jwtAuth}
}

func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoice", h.jwtAuth)
	{
		invoices.POST("/generate/:paymentId", h.Generate)
		invoices.GET("/user/:id", h.ByUser)
		invoices.GET("/download/:id", h.Download)
		invoices.POST("/send/:id", h.Send)
	}
}

func (h *InvoiceHandler) Generate(c *gin.Context) {
	paymentID, ok := h.IDParam(c, "paymentId")
	if !ok {
		return
	}

	invoice, err := h.invoices.Generate(c.Request.Context(), paymentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, invoice)
}

func (h *InvoiceHandler) ByUser(c *gin.Context) {
	userID, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	invoices, err := h.invoices.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, invoices)
}

func (h *InvoiceHandler) Download(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	filePath := h.invoices.FilePath(invoice)
	if _, err := os.Stat(filePath); err != nil {
		h.Error(c, apperrors.NewNotFoundError("invoice", "Archivo PDF no existe en el servidor"))
		return
	}

	c.FileAttachment(filePath, "boleta.pdf")
}

func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoices.SendByEmail(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"success": true, "message": "Boleta enviada correctamente"})
}
