package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/auth"
	"smartrent_backend/internal/logger"
	"smartrent_backend/pkg/apperrors"
)

const (
	ContextUserIDKey    = "user_id"
	ContextCorreoKey    = "correo"
	ContextRolKey       = "rol"
	ContextCompanyIDKey = "company_id"
)

// Auth validates the Bearer token and stores the claims in the gin
// context.
func Auth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Token requerido"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Formato de token inválido"))
			c.Abort()
			return
		}

		claims, err := jwtManager.Verify(parts[1])
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextCorreoKey, claims.Correo)
		c.Set(ContextRolKey, claims.Rol)
		if claims.CompanyID != nil {
			c.Set(ContextCompanyIDKey, *claims.CompanyID)
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UserID returns the authenticated user's id from the gin context.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CompanyID returns the authenticated user's company id, when any.
func CompanyID(c *gin.Context) *uint {
	v, ok := c.Get(ContextCompanyIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
