package models

type Job struct {
	BaseModel
	Titulo      string   `gorm:"column:titulo;not null" json:"titulo"`
	Descripcion string   `gorm:"column:descripcion" json:"descripcion"`
	Ubicacion   string   `gorm:"column:ubicacion" json:"ubicacion"`
	Salario     *float64 `gorm:"column:salario" json:"salario"`
	Requisitos  string   `gorm:"column:requisitos" json:"requisitos"`
	CompanyID   *uint    `gorm:"column:company_id" json:"companyId,omitempty"`
	Company     *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}

// Application is unique per (user, job); a user applies once.
type Application struct {
	BaseModel
	JobID  uint   `gorm:"column:job_id;not null;uniqueIndex:idx_applications_job_user" json:"jobId"`
	UserID uint   `gorm:"column:user_id;not null;uniqueIndex:idx_applications_job_user" json:"userId"`
	Estado string `gorm:"column:estado;default:En revisión" json:"estado"`

	Job  *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}
