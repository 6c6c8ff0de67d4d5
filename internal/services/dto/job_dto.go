package dto

type JobRequest struct {
	Titulo      string   `json:"titulo" validate:"required"`
	Descripcion string   `json:"descripcion"`
	Ubicacion   string   `json:"ubicacion"`
	Salario     *float64 `json:"salario" validate:"omitempty,gte=0"`
	Requisitos  string   `json:"requisitos"`
	CompanyID   *uint    `json:"companyId"`
}
