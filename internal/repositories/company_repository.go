package repositories

import (
	"errors"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	FindByID(id uint) (*models.Company, error)
	FindAll() ([]models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id uint) error
}

type CompanyRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

func (r *CompanyRepositoryImpl) FindByID(id uint) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindAll() ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.Order("id desc").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepositoryImpl) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *CompanyRepositoryImpl) Update(company *models.Company) error {
	result := r.db.Save(company)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
