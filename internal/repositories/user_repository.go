package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id uint) (*models.User, error)
	FindByCorreo(correo string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateFields(id uint, fields map[string]interface{}) error
	SetResetCode(id uint, code string, expires time.Time) error
	ClearResetCode(id uint) error
	TouchLastLogin(id uint) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByCorreo(correo string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "correo = ?", correo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("correo = ?", user.Correo).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateFields(id uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetResetCode(id uint, code string, expires time.Time) error {
	return r.UpdateFields(id, map[string]interface{}{
		"reset_code":         code,
		"reset_code_expires": expires,
	})
}

func (r *UserRepositoryImpl) ClearResetCode(id uint) error {
	return r.UpdateFields(id, map[string]interface{}{
		"reset_code":         nil,
		"reset_code_expires": nil,
	})
}

func (r *UserRepositoryImpl) TouchLastLogin(id uint) error {
	return r.UpdateFields(id, map[string]interface{}{
		"last_login": time.Now(),
	})
}
