package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	CreatePayment(payment *models.SubscriptionPayment) error
	FindPaymentByToken(token string) (*models.SubscriptionPayment, error)
	FindPaymentByID(id uint) (*models.SubscriptionPayment, error)
	FindPaymentsByUser(userID uint) ([]models.SubscriptionPayment, error)
	UpdatePayment(payment *models.SubscriptionPayment) error

	FindActiveByUser(userID uint) (*models.ActiveSubscription, error)
	Activate(sub *models.ActiveSubscription) (bool, error)
	ExpireOverdue(now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) CreatePayment(payment *models.SubscriptionPayment) error {
	return r.db.Create(payment).Error
}

func (r *SubscriptionRepositoryImpl) FindPaymentByToken(token string) (*models.SubscriptionPayment, error) {
	var payment models.SubscriptionPayment
	err := r.db.Preload("User").First(&payment, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *SubscriptionRepositoryImpl) FindPaymentByID(id uint) (*models.SubscriptionPayment, error) {
	var payment models.SubscriptionPayment
	err := r.db.Preload("User").First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *SubscriptionRepositoryImpl) FindPaymentsByUser(userID uint) ([]models.SubscriptionPayment, error) {
	var payments []models.SubscriptionPayment
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *SubscriptionRepositoryImpl) UpdatePayment(payment *models.SubscriptionPayment) error {
	result := r.db.Save(payment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) FindActiveByUser(userID uint) (*models.ActiveSubscription, error) {
	var sub models.ActiveSubscription
	err := r.db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Activate inserts the ACTIVE row. The partial unique index on
// (user_id) WHERE status='ACTIVE' turns a concurrent double activation
// into a constraint violation, which is reported as created=false
// rather than an error.
func (r *SubscriptionRepositoryImpl) Activate(sub *models.ActiveSubscription) (bool, error) {
	err := r.db.Create(sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ExpireOverdue marks ACTIVE subscriptions past their end date as
// EXPIRED and returns how many rows changed.
func (r *SubscriptionRepositoryImpl) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.ActiveSubscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionActive, now).
		Update("status", models.SubscriptionExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
