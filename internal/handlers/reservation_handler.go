package handlers

import (
	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/middleware"
	"smartrent_backend/internal/services"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

type ReservationHandler struct {
	BaseHandler
	reservations services.ReservationService
	jwtAuth      gin.HandlerFunc
}

func NewReservationHandler(reservations services.ReservationService, jwtAuth gin.HandlerFunc) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, jwtAuth: jwtAuth}
}

func (h *ReservationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reservas := rg.Group("/reservas", h.jwtAuth)
	{
		reservas.POST("", h.Create)
		reservas.GET("/mias", h.Mine)
		reservas.GET("/recibidas", h.Received)
		reservas.PATCH("/:id/estado", h.UpdateStatus)
		reservas.POST("/:id/cancelar", h.Cancel)
	}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		h.Error(c, apperrors.NewUnauthorizedError("No autenticado"))
		return
	}

	var req dto.CreateReservationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	reservation, err := h.reservations.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, reservation)
}

func (h *ReservationHandler) Mine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		h.Error(c, apperrors.NewUnauthorizedError("No autenticado"))
		return
	}

	reservations, err := h.reservations.Mine(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, reservations)
}

func (h *ReservationHandler) Received(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		h.Error(c, apperrors.NewUnauthorizedError("No autenticado"))
		return
	}

	reservations, err := h.reservations.Received(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, reservations)
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var body dto.UpdateReservationStatusRequest
	if !h.BindJSON(c, &body) {
		return
	}

	estado := body.Estado
	if estado == "" {
		estado = body.Status
	}

	reservation, err := h.reservations.UpdateStatus(c.Request.Context(), id, estado)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, reservation)
}

// Cancel only touches the caller's own reservation.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		h.Error(c, apperrors.NewUnauthorizedError("No autenticado"))
		return
	}

	if err := h.reservations.Cancel(c.Request.Context(), id, userID); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"ok": true})
}
