package dto

import "smartrent_backend/internal/models"

// Requests accept both the English and the Spanish key the mobile
// clients have used over time; the service picks whichever is set.

type RegisterRequest struct {
	Nombre     string `json:"nombre"`
	Correo     string `json:"correo"`
	Email      string `json:"email"`
	Contrasena string `json:"contrasena"`
	Password   string `json:"password"`
	TipoCuenta string `json:"tipoCuenta"`
	Telefono   string `json:"telefono"`
	Ciudad     string `json:"ciudad"`
}

type LoginRequest struct {
	Correo     string `json:"correo"`
	Email      string `json:"email"`
	Contrasena string `json:"contrasena"`
	Password   string `json:"password"`
}

type ForgotPasswordRequest struct {
	Correo string `json:"correo"`
	Email  string `json:"email"`
}

type ResetPasswordRequest struct {
	Correo          string `json:"correo"`
	Email           string `json:"email"`
	Code            string `json:"code"`
	Codigo          string `json:"codigo"`
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	NuevaContrasena string `json:"nuevaContrasena"`
	Contrasena      string `json:"contrasena"`
	Password        string `json:"password"`
}

type AuthResponse struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

type ForgotPasswordResponse struct {
	Message  string `json:"message"`
	DevToken string `json:"dev_token,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
