package handlers

import (
	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/middleware"
	"smartrent_backend/internal/services"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

type JobHandler struct {
	BaseHandler
	jobs    services.JobService
	jwtAuth gin.HandlerFunc
}

func NewJobHandler(jobs services.JobService, jwtAuth gin.HandlerFunc) *JobHandler {
	return &JobHandler{jobs: jobs, jwtAuth: jwtAuth}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.GET("/:id", h.GetOne)
		jobs.GET("/:id/applicants", h.jwtAuth, h.Applicants)

		jobs.POST("", h.jwtAuth, h.Create)
		jobs.PUT("/:id", h.jwtAuth, h.Update)
		jobs.DELETE("/:id", h.jwtAuth, h.Delete)
		jobs.POST("/:id/apply", h.jwtAuth, h.Apply)
	}

	rg.GET("/applications/mine", h.jwtAuth, h.MyApplications)
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.GetAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, jobs)
}

func (h *JobHandler) GetOne(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req dto.JobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var req dto.JobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"ok": true})
}

func (h *JobHandler) Apply(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		h.Error(c, apperrors.NewUnauthorizedError("No autenticado"))
		return
	}

	application, err := h.jobs.Apply(c.Request.Context(), id, userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, application)
}

func (h *JobHandler) MyApplications(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		h.Error(c, apperrors.NewUnauthorizedError("No autenticado"))
		return
	}

	applications, err := h.jobs.ApplicationsByUser(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, applications)
}

func (h *JobHandler) Applicants(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	applications, err := h.jobs.ApplicantsByJob(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, applications)
}
