package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"smartrent_backend/internal/auth"
	"smartrent_backend/internal/logger"
	"smartrent_backend/internal/mailer"
	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

const resetCodeTTL = 15 * time.Minute

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error)
}

type AuthServiceImpl struct {
	users  repositories.UserRepository
	jwt    *auth.JWTManager
	mailer *mailer.Mailer
}

func NewAuthService(users repositories.UserRepository, jwt *auth.JWTManager, m *mailer.Mailer) AuthService {
	return &AuthServiceImpl{users: users, jwt: jwt, mailer: m}
}

func normCorreo(correo, email string) string {
	v := correo
	if v == "" {
		v = email
	}
	return strings.ToLower(strings.TrimSpace(v))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// genCode6 returns a random 6-digit reset code.
func genCode6() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 900000)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

func (s *AuthServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	correo := normCorreo(req.Correo, req.Email)
	contrasena := firstNonEmpty(req.Contrasena, req.Password)
	if correo == "" || contrasena == "" {
		return nil, apperrors.NewBadRequestError("Debe ingresar correo y contraseña.")
	}

	nombre := firstNonEmpty(req.Nombre, "Usuario")
	tipoCuenta := firstNonEmpty(req.TipoCuenta, "Usuario")

	hash, err := auth.HashPassword(contrasena)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Nombre:     nombre,
		Correo:     correo,
		Contrasena: hash,
		TipoCuenta: tipoCuenta,
		Telefono:   strings.TrimSpace(req.Telefono),
		Ciudad:     strings.TrimSpace(req.Ciudad),
	}

	if err := s.users.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := s.jwt.Generate(user.ID, user.Correo, user.TipoCuenta, user.CompanyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)
	return &dto.AuthResponse{
		Message:     "Usuario registrado correctamente",
		AccessToken: token,
		User:        user,
	}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	correo := normCorreo(req.Correo, req.Email)
	contrasena := firstNonEmpty(req.Contrasena, req.Password)
	if correo == "" || contrasena == "" {
		return nil, apperrors.NewBadRequestError("Debe ingresar correo y contraseña.")
	}

	user, err := s.users.FindByCorreo(correo)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPassword(user.Contrasena, contrasena) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(user.ID); err != nil {
		logger.CtxWarn(ctx, "failed to stamp last login", "user_id", user.ID, "error", err)
	}

	token, err := s.jwt.Generate(user.ID, user.Correo, user.TipoCuenta, user.CompanyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return &dto.AuthResponse{
		Message:     "Inicio de sesión exitoso",
		AccessToken: token,
		User:        user,
	}, nil
}

// ForgotPassword always answers 200 so account existence is not
// leaked. When SMTP is unavailable or the send fails, the code is
// returned in dev_token so development builds keep working.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	correo := normCorreo(req.Correo, req.Email)
	if correo == "" {
		return nil, apperrors.NewBadRequestError("Debe enviar email/correo.")
	}

	user, err := s.users.FindByCorreo(correo)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return &dto.ForgotPasswordResponse{
				Message: "Si el correo existe, hemos enviado un código de recuperación.",
			}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	code := genCode6()
	if err := s.users.SetResetCode(user.ID, code, time.Now().Add(resetCodeTTL)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if !s.mailer.Enabled() {
		logger.CtxInfo(ctx, "reset code generated in dev mode", "user_id", user.ID)
		return &dto.ForgotPasswordResponse{
			Message:  "Token generado (modo desarrollo). Úsalo para restablecer tu contraseña.",
			DevToken: code,
		}, nil
	}

	if err := s.mailer.SendResetCode(user.Correo, user.Nombre, code); err != nil {
		logger.CtxWarn(ctx, "reset email failed, returning dev token", "user_id", user.ID, "error", err)
		return &dto.ForgotPasswordResponse{
			Message:  "No se pudo enviar el correo, pero el código fue generado (modo desarrollo).",
			DevToken: code,
		}, nil
	}

	return &dto.ForgotPasswordResponse{
		Message: "Hemos enviado un código de recuperación a tu correo (válido por 15 minutos).",
	}, nil
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	correo := normCorreo(req.Correo, req.Email)
	code := firstNonEmpty(req.Code, req.Codigo, req.Token)
	newPass := firstNonEmpty(req.NewPassword, req.NuevaContrasena, req.Password, req.Contrasena)

	if correo == "" || code == "" || newPass == "" {
		return nil, apperrors.NewBadRequestError("Debe enviar correo, código y nueva contraseña.")
	}

	user, err := s.users.FindByCorreo(correo)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidResetCode
		}
		return nil, apperrors.InternalError(err)
	}

	if user.ResetCode == nil || user.ResetCodeExpires == nil {
		return nil, apperrors.ErrInvalidResetCode
	}
	if *user.ResetCode != code || user.ResetCodeExpires.Before(time.Now()) {
		return nil, apperrors.ErrInvalidResetCode
	}

	hash, err := auth.HashPassword(newPass)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	err = s.users.UpdateFields(user.ID, map[string]interface{}{
		"contrasena":         hash,
		"reset_code":         nil,
		"reset_code_expires": nil,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password reset", "user_id", user.ID)
	return &dto.MessageResponse{Message: "Contraseña actualizada correctamente."}, nil
}
