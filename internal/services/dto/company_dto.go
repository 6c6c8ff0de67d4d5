package dto

type CompanyRequest struct {
	NombreEmpresa string `json:"nombreEmpresa" validate:"required"`
	Correo        string `json:"correo" validate:"required,email"`
	Telefono      string `json:"telefono"`
	Direccion     string `json:"direccion"`
	Descripcion   string `json:"descripcion"`
	RutEmpresa    string `json:"rutEmpresa"`
	Encargado     string `json:"encargado"`
	Dueno         string `json:"dueno"`
	HoraApertura  string `json:"horaApertura"`
	HoraCierre    string `json:"horaCierre"`
	DiasOperacion string `json:"diasOperacion"`
	Logo          string `json:"logo"`
	SitioWeb      string `json:"sitioWeb" validate:"omitempty,url"`
	UserID        *uint  `json:"userId"`
}
