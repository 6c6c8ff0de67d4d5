package dto

// UpdateUserRequest uses pointers so absent fields are left untouched.
type UpdateUserRequest struct {
	Nombre           *string `json:"nombre"`
	Telefono         *string `json:"telefono"`
	Ciudad           *string `json:"ciudad"`
	Bio              *string `json:"bio"`
	Facebook         *string `json:"facebook"`
	Instagram        *string `json:"instagram"`
	Linkedin         *string `json:"linkedin"`
	Web              *string `json:"web"`
	Imagen           *string `json:"imagen"`
	SuscripcionNivel *string `json:"suscripcionNivel"`
}
