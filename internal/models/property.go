package models

import "gorm.io/datatypes"

// Property mixes Spanish primary columns with a few English-named ones
// that later mobile versions introduced (contact info, state, metrics).
type Property struct {
	BaseModel
	Titulo      string  `gorm:"column:titulo;not null" json:"titulo"`
	Descripcion string  `gorm:"column:descripcion" json:"descripcion"`
	Precio      float64 `gorm:"column:precio;not null" json:"precio"`
	Categoria   string  `gorm:"column:categoria" json:"categoria"`
	Ubicacion   string  `gorm:"column:ubicacion" json:"ubicacion"`
	Comuna      string  `gorm:"column:comuna" json:"comuna"`
	Tipo        string  `gorm:"column:tipo" json:"tipo"`

	Imagen   string         `gorm:"column:imagen" json:"imagen"`
	Images   datatypes.JSON `gorm:"column:images" json:"images"`
	VideoURL string         `gorm:"column:video_url" json:"videoUrl"`
	Videos   datatypes.JSON `gorm:"column:videos" json:"videos"`

	Latitude  *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude *float64 `gorm:"column:longitude" json:"longitude"`
	Destacado bool     `gorm:"column:destacado;default:false" json:"destacado"`

	Area        *float64 `gorm:"column:area" json:"area"`
	Dormitorios *int     `gorm:"column:dormitorios" json:"dormitorios"`
	Banos       *int     `gorm:"column:banos" json:"banos"`
	Anio        *int     `gorm:"column:anio" json:"anio"`

	CompanyName  string `gorm:"column:company_name" json:"companyName"`
	ContactName  string `gorm:"column:contact_name" json:"contactName"`
	ContactPhone string `gorm:"column:contact_phone" json:"contactPhone"`
	ContactEmail string `gorm:"column:contact_email" json:"contactEmail"`
	Whatsapp     string `gorm:"column:whatsapp" json:"whatsapp"`
	Website      string `gorm:"column:website" json:"website"`

	// Unmapped extras from flexible client payloads.
	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata"`

	State   string `gorm:"column:state;default:draft" json:"state"`
	Visitas int    `gorm:"column:visitas;default:0" json:"visitas"`
	Reservas int   `gorm:"column:reservas;default:0" json:"reservas"`

	UserID    *uint `gorm:"column:user_id" json:"userId,omitempty"`
	CompanyID *uint `gorm:"column:company_id" json:"companyId,omitempty"`
}

func (Property) TableName() string {
	return "properties"
}
