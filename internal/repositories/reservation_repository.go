package repositories

import (
	"errors"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

var ErrReservationNotFound = errors.New("reservation not found")

type ReservationRepository interface {
	Create(reservation *models.Reservation) error
	FindByID(id uint) (*models.Reservation, error)
	FindByUser(userID uint) ([]models.Reservation, error)
	FindReceived(ownerID uint) ([]models.Reservation, error)
	UpdateStatus(id uint, status string) (*models.Reservation, error)
	CancelOwn(id, userID uint) error
	CountAll() (int64, error)
}

type ReservationRepositoryImpl struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &ReservationRepositoryImpl{db: db}
}

func (r *ReservationRepositoryImpl) Create(reservation *models.Reservation) error {
	return r.db.Create(reservation).Error
}

func (r *ReservationRepositoryImpl) FindByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Preload("Property").First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepositoryImpl) FindByUser(userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.Preload("Property").Where("user_id = ?", userID).
		Order("created_at desc").Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindReceived returns reservations on properties owned by the given
// user, directly or through their company.
func (r *ReservationRepositoryImpl) FindReceived(ownerID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.Preload("Property").Preload("User").
		Joins("JOIN properties ON properties.id = reservations.property_id").
		Where("properties.user_id = ? OR properties.company_id = ?", ownerID, ownerID).
		Order("reservations.created_at desc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepositoryImpl) UpdateStatus(id uint, status string) (*models.Reservation, error) {
	result := r.db.Model(&models.Reservation{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrReservationNotFound
	}
	return r.FindByID(id)
}

func (r *ReservationRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Reservation{}).Count(&count).Error
	return count, err
}

// CancelOwn only cancels a reservation belonging to the caller.
func (r *ReservationRepositoryImpl) CancelOwn(id, userID uint) error {
	result := r.db.Model(&models.Reservation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", models.ReservationCancelada)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}
