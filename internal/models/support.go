package models

type SupportTicket struct {
	BaseModel
	Subject     string `gorm:"column:subject;not null" json:"subject"`
	Description string `gorm:"column:description" json:"description"`
	Category    string `gorm:"column:category;default:General" json:"category"`
	// Screenshot attached by the client, stored inline.
	ImageBase64 *string `gorm:"column:image_base64;type:text" json:"imageBase64"`
	Status      string  `gorm:"column:status;default:Pendiente" json:"status"`
	Respuesta   string  `gorm:"column:respuesta" json:"respuesta"`
	UserID      *uint   `gorm:"column:user_id" json:"userId,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

type Feedback struct {
	BaseModel
	Rating    int     `gorm:"column:rating;not null" json:"rating"`
	Comment   string  `gorm:"column:comment" json:"comment"`
	Respuesta *string `gorm:"column:respuesta" json:"respuesta"`
	UserID    *uint   `gorm:"column:user_id" json:"userId,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

type CommunityPost struct {
	BaseModel
	Title  string `gorm:"column:title;not null" json:"title"`
	Body   string `gorm:"column:body;not null" json:"body"`
	UserID *uint  `gorm:"column:user_id" json:"userId,omitempty"`
}

func (CommunityPost) TableName() string {
	return "community_posts"
}

type Faq struct {
	BaseModel
	Question string `gorm:"column:question;not null" json:"question"`
	Answer   string `gorm:"column:answer;not null" json:"answer"`
}

func (Faq) TableName() string {
	return "faqs"
}
