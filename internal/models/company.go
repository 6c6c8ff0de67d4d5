package models

type Company struct {
	BaseModel
	NombreEmpresa string `gorm:"column:nombre_empresa;not null" json:"nombreEmpresa"`
	Correo        string `gorm:"column:correo;not null" json:"correo"`
	Telefono      string `gorm:"column:telefono" json:"telefono"`
	Direccion     string `gorm:"column:direccion" json:"direccion"`
	Descripcion   string `gorm:"column:descripcion" json:"descripcion"`
	RutEmpresa    string `gorm:"column:rut_empresa" json:"rutEmpresa"`
	Encargado     string `gorm:"column:encargado" json:"encargado"`
	Dueno         string `gorm:"column:dueno" json:"dueno"`
	HoraApertura  string `gorm:"column:hora_apertura" json:"horaApertura"`
	HoraCierre    string `gorm:"column:hora_cierre" json:"horaCierre"`
	// JSON string as sent by the mobile client, stored verbatim.
	DiasOperacion string `gorm:"column:dias_operacion" json:"diasOperacion"`
	Logo          string `gorm:"column:logo" json:"logo"`
	SitioWeb      string `gorm:"column:sitio_web" json:"sitioWeb"`
	UserID        *uint  `gorm:"column:user_id" json:"userId,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}
