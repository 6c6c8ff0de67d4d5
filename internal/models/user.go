package models

import "time"

// User keeps the historical Spanish column names; API responses use the
// canonical JSON names below.
type User struct {
	BaseModel
	Nombre           string     `gorm:"column:nombre;not null" json:"nombre"`
	Correo           string     `gorm:"column:correo;uniqueIndex;not null" json:"correo"`
	Contrasena       string     `gorm:"column:contrasena;not null" json:"-"`
	TipoCuenta       string     `gorm:"column:tipo_cuenta;default:Usuario" json:"tipoCuenta"`
	Telefono         string     `gorm:"column:telefono" json:"telefono"`
	Ciudad           string     `gorm:"column:ciudad" json:"ciudad"`
	SuscripcionNivel string     `gorm:"column:suscripcion_nivel" json:"suscripcionNivel"`
	Imagen           string     `gorm:"column:imagen" json:"imagen"`
	Bio              string     `gorm:"column:bio" json:"bio"`
	Facebook         string     `gorm:"column:facebook" json:"facebook"`
	Instagram        string     `gorm:"column:instagram" json:"instagram"`
	Linkedin         string     `gorm:"column:linkedin" json:"linkedin"`
	Web              string     `gorm:"column:web" json:"web"`
	ResetCode        *string    `gorm:"column:reset_code" json:"-"`
	ResetCodeExpires *time.Time `gorm:"column:reset_code_expires" json:"-"`
	LastLogin        *time.Time `gorm:"column:last_login" json:"lastLogin,omitempty"`
	CompanyID        *uint      `gorm:"column:company_id" json:"companyId,omitempty"`
}

func (User) TableName() string {
	return "users"
}
