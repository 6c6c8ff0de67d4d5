package services

import (
	"context"
	"strings"

	"smartrent_backend/internal/logger"
	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

type UserService interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*models.User, error)
	UpdateImage(ctx context.Context, id uint, path string) (*models.User, error)
}

type UserServiceImpl struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &UserServiceImpl{users: users}
}

// nivelToRol derives the account role from the subscription level.
func nivelToRol(nivel string) string {
	p := strings.ToLower(nivel)
	switch {
	case strings.Contains(p, "premium"):
		return "premium"
	case strings.Contains(p, "advance"), strings.Contains(p, "avanzado"):
		return "advance"
	case strings.Contains(p, "pro"):
		return "pro"
	default:
		return "Usuario"
	}
}

// GetByID also repairs tipoCuenta when it drifted from the
// subscription level.
func (s *UserServiceImpl) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "Usuario no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}

	rolCorrecto := nivelToRol(user.SuscripcionNivel)
	if user.TipoCuenta != rolCorrecto {
		err := s.users.UpdateFields(id, map[string]interface{}{"tipo_cuenta": rolCorrecto})
		if err != nil {
			logger.CtxWarn(ctx, "failed to sync account role", "user_id", id, "error", err)
		} else {
			user.TipoCuenta = rolCorrecto
		}
	}

	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "Usuario no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}

	fields := map[string]interface{}{}
	setIf := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	setIf("nombre", req.Nombre)
	setIf("telefono", req.Telefono)
	setIf("ciudad", req.Ciudad)
	setIf("bio", req.Bio)
	setIf("facebook", req.Facebook)
	setIf("instagram", req.Instagram)
	setIf("linkedin", req.Linkedin)
	setIf("web", req.Web)
	setIf("imagen", req.Imagen)

	nivel := user.SuscripcionNivel
	if req.SuscripcionNivel != nil {
		nivel = *req.SuscripcionNivel
		fields["suscripcion_nivel"] = nivel
	}
	fields["tipo_cuenta"] = nivelToRol(nivel)

	if err := s.users.UpdateFields(id, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.users.FindByID(id)
}

func (s *UserServiceImpl) UpdateImage(ctx context.Context, id uint, path string) (*models.User, error) {
	if err := s.users.UpdateFields(id, map[string]interface{}{"imagen": path}); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "Usuario no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}
	return s.users.FindByID(id)
}
