package models

import "time"

// SubscriptionPayment records one payment attempt. Rows are created as
// PENDING when a transaction is initiated and mutated exactly once more
// when the gateway result comes back. Never deleted.
type SubscriptionPayment struct {
	BaseModel
	UserID            uint       `gorm:"column:user_id;not null" json:"userId"`
	Plan              string     `gorm:"column:plan;not null" json:"plan"`
	BuyOrder          string     `gorm:"column:buy_order;uniqueIndex;not null" json:"buyOrder"`
	Amount            float64    `gorm:"column:amount;not null" json:"amount"`
	Token             string     `gorm:"column:token;uniqueIndex;not null" json:"token"`
	Status            string     `gorm:"column:status;default:PENDING" json:"status"`
	AuthorizationCode *string    `gorm:"column:authorization_code" json:"authorizationCode"`
	CardLast4         *string    `gorm:"column:card_last4" json:"cardLast4"`
	PaymentType       *string    `gorm:"column:payment_type" json:"paymentType"`
	TransactionDate   *time.Time `gorm:"column:transaction_date" json:"transactionDate"`
	ConfirmedAt       *time.Time `gorm:"column:confirmed_at" json:"confirmedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (SubscriptionPayment) TableName() string {
	return "subscription_payments"
}

// ActiveSubscription is the user's current subscription window. At most
// one ACTIVE row per user, enforced by a partial unique index created in
// database.Migrate.
type ActiveSubscription struct {
	BaseModel
	UserID    uint      `gorm:"column:user_id;not null" json:"userId"`
	Plan      string    `gorm:"column:plan;not null" json:"plan"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"startDate"`
	EndDate   time.Time `gorm:"column:end_date;not null" json:"endDate"`
	Status    string    `gorm:"column:status;default:ACTIVE" json:"status"`
}

func (ActiveSubscription) TableName() string {
	return "active_subscriptions"
}
