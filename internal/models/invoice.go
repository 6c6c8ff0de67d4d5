package models

type Invoice struct {
	BaseModel
	UserID            uint    `gorm:"column:user_id;not null" json:"userId"`
	PaymentID         uint    `gorm:"column:payment_id;not null" json:"paymentId"`
	PdfURL            string  `gorm:"column:pdf_url;not null" json:"pdfUrl"`
	Amount            float64 `gorm:"column:amount;not null" json:"amount"`
	Plan              string  `gorm:"column:plan" json:"plan"`
	AuthorizationCode *string `gorm:"column:authorization_code" json:"authorizationCode"`
	Last4             *string `gorm:"column:last4" json:"last4"`
}

func (Invoice) TableName() string {
	return "invoices"
}
