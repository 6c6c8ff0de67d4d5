package repositories

import (
	"errors"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrAlreadyApplied  = errors.New("already applied to this job")
	ErrApplicationNotFound = errors.New("application not found")
)

type JobRepository interface {
	FindAll() ([]models.Job, error)
	FindByID(id uint) (*models.Job, error)
	Create(job *models.Job) error
	Update(job *models.Job) error
	Delete(id uint) error

	CreateApplication(app *models.Application) error
	FindApplicationsByUser(userID uint) ([]models.Application, error)
	FindApplicantsByJob(jobID uint) ([]models.Application, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindAll() ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.Preload("Company").Order("id desc").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepositoryImpl) FindByID(id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Company").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Save(job)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) CreateApplication(app *models.Application) error {
	var existing models.Application
	err := r.db.Where("job_id = ? AND user_id = ?", app.JobID, app.UserID).First(&existing).Error
	if err == nil {
		return ErrAlreadyApplied
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(app).Error
}

func (r *JobRepositoryImpl) FindApplicationsByUser(userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").Where("user_id = ?", userID).
		Order("created_at desc").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *JobRepositoryImpl) FindApplicantsByJob(jobID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("User").Where("job_id = ?", jobID).
		Order("created_at desc").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}
