package models

import "time"

type Reservation struct {
	BaseModel
	PropertyID uint      `gorm:"column:property_id;not null" json:"propertyId"`
	UserID     uint      `gorm:"column:user_id;not null" json:"userId"`
	StartDate  time.Time `gorm:"column:start_date;not null" json:"startDate"`
	EndDate    time.Time `gorm:"column:end_date;not null" json:"endDate"`
	// Contact details and free text collapsed into one field.
	Message string `gorm:"column:message" json:"message"`
	People  int    `gorm:"column:people;default:1" json:"people"`
	Status  string `gorm:"column:status;default:Pendiente" json:"status"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}
