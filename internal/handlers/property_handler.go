package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/middleware"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services"
)

type PropertyHandler struct {
	BaseHandler
	properties services.PropertyService
	jwtAuth    gin.HandlerFunc
}

func NewPropertyHandler(properties services.PropertyService, jwtAuth gin.HandlerFunc) *PropertyHandler {
	return &PropertyHandler{properties: properties, jwtAuth: jwtAuth}
}

func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	props := rg.Group("/properties")
	{
		props.GET("", h.List)
		props.GET("/utils/comunas", h.Comunas)
		props.GET("/utils/tipos", h.Tipos)
		props.GET("/:id", h.GetOne)

		props.GET("/me", h.jwtAuth, h.MyList)
		props.GET("/me/metrics", h.jwtAuth, h.MyMetrics)
		props.POST("", h.jwtAuth, h.Create)
		props.PUT("/:id", h.jwtAuth, h.Update)
		props.DELETE("/:id", h.jwtAuth, h.Delete)
		props.PATCH("/:id/state", h.jwtAuth, h.UpdateState)
		props.POST("/:id/clone", h.jwtAuth, h.Clone)
		props.PATCH("/:id/owner", h.jwtAuth, h.SetOwner)
	}
}

func queryInt(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}

func queryFloat(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func ownerFromContext(c *gin.Context) services.Owner {
	owner := services.Owner{CompanyID: middleware.CompanyID(c)}
	if userID, ok := middleware.UserID(c); ok {
		owner.UserID = &userID
	}
	return owner
}

func (h *PropertyHandler) List(c *gin.Context) {
	filter := repositories.PropertyFilter{
		Tipo:      c.Query("tipo"),
		Categoria: c.Query("categoria"),
		Comuna:    c.Query("comuna"),
		Ubicacion: c.Query("ubicacion"),
		PrecioMin: queryFloat(c, "min"),
		PrecioMax: queryFloat(c, "max"),
		Sort:      c.Query("sort"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}

	properties, err := h.properties.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, properties)
}

func (h *PropertyHandler) GetOne(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	property, err := h.properties.GetOne(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, property)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var payload map[string]interface{}
	if !h.BindJSON(c, &payload) {
		return
	}

	property, err := h.properties.Create(c.Request.Context(), payload, ownerFromContext(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, property)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var payload map[string]interface{}
	if !h.BindJSON(c, &payload) {
		return
	}

	property, err := h.properties.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, property)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	if err := h.properties.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"ok": true})
}

func (h *PropertyHandler) MyList(c *gin.Context) {
	page, err := h.properties.MyList(
		c.Request.Context(),
		ownerFromContext(c),
		queryInt(c, "page"),
		queryInt(c, "limit"),
	)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, page)
}

func (h *PropertyHandler) MyMetrics(c *gin.Context) {
	metrics, err := h.properties.MyMetrics(c.Request.Context(), ownerFromContext(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, metrics)
}

func (h *PropertyHandler) UpdateState(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		State string `json:"state"`
	}
	if !h.BindJSON(c, &body) {
		return
	}

	property, err := h.properties.UpdateState(c.Request.Context(), id, body.State)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, property)
}

func (h *PropertyHandler) Clone(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	property, err := h.properties.Clone(c.Request.Context(), id, ownerFromContext(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, property)
}

// SetOwner hands the listing to the company in the body, or to the
// caller when no company is given.
func (h *PropertyHandler) SetOwner(c *gin.Context) {
	id, ok := h.IDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		CompanyID *uint `json:"companyId"`
		EmpresaID *uint `json:"empresaId"`
	}
	if !h.BindJSON(c, &body) {
		return
	}

	companyID := body.CompanyID
	if companyID == nil {
		companyID = body.EmpresaID
	}

	var userID *uint
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	property, err := h.properties.SetOwner(c.Request.Context(), id, userID, companyID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, property)
}

func (h *PropertyHandler) Comunas(c *gin.Context) {
	comunas, err := h.properties.Comunas(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, comunas)
}

func (h *PropertyHandler) Tipos(c *gin.Context) {
	tipos, err := h.properties.Tipos(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, tipos)
}
