package handlers

import (
	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/services"
	"smartrent_backend/internal/services/dto"
)

type SupportHandler struct {
	BaseHandler
	support services.SupportService
	jwtAuth gin.HandlerFunc
}

func NewSupportHandler(support services.SupportService, jwtAuth gin.HandlerFunc) *SupportHandler {
	return &SupportHandler{support: support, jwtAuth: jwtAuth}
}

func (h *SupportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	support := rg.Group("/support")
	{
		support.GET("/faqs", h.Faqs)

		support.POST("/tickets", h.CreateTicket)
		support.GET("/tickets", h.jwtAuth, h.AllTickets)
		support.GET("/tickets/:userId", h.jwtAuth, h.TicketsByUser)
		support.PUT("/tickets/:id", h.jwtAuth, h.UpdateTicket)
		support.POST("/tickets/:id/reply", h.jwtAuth, h.ReplyTicket)
		support.PATCH("/tickets/:id/resolve", h.jwtAuth, h.ResolveTicket)
		support.DELETE("/tickets/:id", h.jwtAuth, h.DeleteTicket)

		support.POST("/feedback", h.CreateFeedback)
		support.GET("/feedback", h.jwtAuth, h.AllFeedback)
		support.GET("/feedback/stats", h.FeedbackStats)
		support.PUT("/feedback/:id", h.jwtAuth, h.RespondFeedback)

		support.GET("/community", h.CommunityPosts)
		support.POST("/community", h.jwtAuth, h.CreateCommunityPost)
	}
}

func (h *SupportHandler) Faqs(c *gin.Context) {
	faqs, err := h.support.Faqs(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, faqs)
}

func (h *SupportHandler) CreateTicket(c *gin.Context) {
	var req dto.CreateTicketRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticket, err := h.support.CreateTicket(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, ticket)
}

func (h *SupportHandler) AllTickets(c *gin.Context) {
	tickets, err := h.support.AllTickets(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, tickets)
}

func (h *SupportHandler) TicketsByUser(c *gin.Context) {
	userID, ok := h.IDParam(c, "userId")
	if !ok {
		return
	}

	tickets, err := h.support.TicketsByUser(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, tickets)
}

func (h *SupportHandler) UpdateTicket(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTicketRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticket, err := h.support.UpdateTicket(c.Request.Context(), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, ticket)
}

func (h *SupportHandler) ReplyTicket(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReplyTicketRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticket, err := h.support.ReplyTicket(c.Request.Context(), id, req.Respuesta)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, ticket)
}

func (h *SupportHandler) ResolveTicket(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	ticket, err := h.support.ResolveTicket(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, ticket)
}

func (h *SupportHandler) DeleteTicket(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	if err := h.support.DeleteTicket(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"ok": true})
}

func (h *SupportHandler) CreateFeedback(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if !h.BindJSON(c, &req) {
		return
	}

	feedback, err := h.support.CreateFeedback(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, feedback)
}

func (h *SupportHandler) AllFeedback(c *gin.Context) {
	feedback, err := h.support.AllFeedback(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, feedback)
}

func (h *SupportHandler) RespondFeedback(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RespondFeedbackRequest
	if !h.BindJSON(c, &req) {
		return
	}

	feedback, err := h.support.RespondFeedback(c.Request.Context(), id, req.Respuesta)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, feedback)
}

func (h *SupportHandler) FeedbackStats(c *gin.Context) {
	stats, err := h.support.FeedbackStats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}

func (h *SupportHandler) CommunityPosts(c *gin.Context) {
	posts, err := h.support.CommunityPosts(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, posts)
}

func (h *SupportHandler) CreateCommunityPost(c *gin.Context) {
	var req dto.CreateCommunityPostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	post, err := h.support.CreateCommunityPost(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, post)
}
