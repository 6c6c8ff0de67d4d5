package repositories

import (
	"errors"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	FindByID(id uint) (*models.Invoice, error)
	FindByUser(userID uint) ([]models.Invoice, error)
	FindByPayment(paymentID uint) (*models.Invoice, error)
}

type InvoiceRepositoryImpl struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &InvoiceRepositoryImpl{db: db}
}

func (r *InvoiceRepositoryImpl) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *InvoiceRepositoryImpl) FindByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepositoryImpl) FindByUser(userID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceRepositoryImpl) FindByPayment(paymentID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.First(&invoice, "payment_id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}
