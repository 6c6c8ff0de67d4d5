package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

func newAuthService(t *testing.T) (AuthService, repositories.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	users := repositories.NewUserRepository(db)
	return NewAuthService(users, newTestJWT(), newTestMailer()), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterRequest{
		Nombre:   "Camila",
		Email:    "Camila@Test.com",
		Password: "super_password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.Equal(t, "camila@test.com", reg.User.Correo)
	assert.Equal(t, "Usuario", reg.User.TipoCuenta)

	login, err := svc.Login(ctx, dto.LoginRequest{
		Correo:     "camila@test.com",
		Contrasena: "super_password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, dto.RegisterRequest{
		Correo:     "dup@test.com",
		Contrasena: "password1",
	})
	require.NoError(t, err)
	require.NotZero(t, first.User.ID)

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Correo:     "dup@test.com",
		Contrasena: "password2",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists))

	// First account still logs in with its original password.
	_, err = svc.Login(ctx, dto.LoginRequest{Correo: "dup@test.com", Contrasena: "password1"})
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Correo:     "user@test.com",
		Contrasena: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Correo: "user@test.com", Contrasena: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, dto.LoginRequest{Correo: "nobody@test.com", Contrasena: "whatever"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestForgotPasswordDoesNotLeakAccounts(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Correo: "ghost@test.com"})
	require.NoError(t, err)
	assert.Empty(t, resp.DevToken)
	assert.Contains(t, resp.Message, "Si el correo existe")
}

func TestResetPasswordFlow(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Correo:     "reset@test.com",
		Contrasena: "old-password",
	})
	require.NoError(t, err)

	// Mailer is disabled, so the code comes back as dev_token.
	forgot, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Correo: "reset@test.com"})
	require.NoError(t, err)
	require.NotEmpty(t, forgot.DevToken)

	_, err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Correo:      "reset@test.com",
		Code:        forgot.DevToken,
		NewPassword: "new-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Correo: "reset@test.com", Contrasena: "old-password"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, dto.LoginRequest{Correo: "reset@test.com", Contrasena: "new-password"})
	require.NoError(t, err)

	// The code is single use.
	_, err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Correo:      "reset@test.com",
		Code:        forgot.DevToken,
		NewPassword: "another-password",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidResetCode))
}

func TestResetPasswordWrongCode(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Correo:     "wrongcode@test.com",
		Contrasena: "old-password",
	})
	require.NoError(t, err)

	_, err = svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Correo: "wrongcode@test.com"})
	require.NoError(t, err)

	_, err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Correo:      "wrongcode@test.com",
		Code:        "000000",
		NewPassword: "new-password",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidResetCode))
}

func TestResetPasswordExpiredCode(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterRequest{
		Correo:     "expired@test.com",
		Contrasena: "old-password",
	})
	require.NoError(t, err)

	require.NoError(t, users.SetResetCode(reg.User.ID, "123456", time.Now().Add(-time.Minute)))

	_, err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Correo:      "expired@test.com",
		Code:        "123456",
		NewPassword: "new-password",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidResetCode))
}
