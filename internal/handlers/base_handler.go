package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartrent_backend/pkg/apperrors"
)

// BaseHandler carries the response helpers every handler shares.
type BaseHandler struct{}

func (h *BaseHandler) OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func (h *BaseHandler) Error(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// IDParam parses a positive integer path parameter.
func (h *BaseHandler) IDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Identificador inválido: "+raw))
		return 0, false
	}
	return uint(id), true
}

// BindJSON binds the body and reports a uniform validation error.
func (h *BaseHandler) BindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Cuerpo de la petición inválido"))
		return false
	}
	return true
}
