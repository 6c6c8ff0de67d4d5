package services

import (
	"context"

	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/internal/validator"
	"smartrent_backend/pkg/apperrors"
)

type JobService interface {
	GetAll(ctx context.Context) ([]models.Job, error)
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	Create(ctx context.Context, req dto.JobRequest) (*models.Job, error)
	Update(ctx context.Context, id uint, req dto.JobRequest) (*models.Job, error)
	Delete(ctx context.Context, id uint) error

	Apply(ctx context.Context, jobID, userID uint) (*models.Application, error)
	ApplicationsByUser(ctx context.Context, userID uint) ([]models.Application, error)
	ApplicantsByJob(ctx context.Context, jobID uint) ([]models.Application, error)
}

type JobServiceImpl struct {
	jobs     repositories.JobRepository
	validate *validator.Validator
}

func NewJobService(jobs repositories.JobRepository, v *validator.Validator) JobService {
	return &JobServiceImpl{jobs: jobs, validate: v}
}

func (s *JobServiceImpl) GetAll(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *JobServiceImpl) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.jobs.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("jobs", "Empleo no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Create(ctx context.Context, req dto.JobRequest) (*models.Job, error) {
	if err := s.validate.ValidateStruct(req); err != nil {
		return nil, err
	}

	job := &models.Job{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Ubicacion:   req.Ubicacion,
		Salario:     req.Salario,
		Requisitos:  req.Requisitos,
		CompanyID:   req.CompanyID,
	}
	if err := s.jobs.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Update(ctx context.Context, id uint, req dto.JobRequest) (*models.Job, error) {
	if err := s.validate.ValidateStruct(req); err != nil {
		return nil, err
	}

	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	job.Titulo = req.Titulo
	job.Descripcion = req.Descripcion
	job.Ubicacion = req.Ubicacion
	job.Salario = req.Salario
	job.Requisitos = req.Requisitos
	job.CompanyID = req.CompanyID
	job.Company = nil

	if err := s.jobs.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Delete(ctx context.Context, id uint) error {
	err := s.jobs.Delete(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.NewNotFoundError("jobs", "Empleo no encontrado")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Apply registers a user's application; a user can only apply once per
// job.
func (s *JobServiceImpl) Apply(ctx context.Context, jobID, userID uint) (*models.Application, error) {
	if _, err := s.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	app := &models.Application{
		JobID:  jobID,
		UserID: userID,
		Estado: models.ApplicationEnRevision,
	}
	if err := s.jobs.CreateApplication(app); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyApplied) {
			return nil, apperrors.NewConflictError("jobs", "Ya postulaste a este empleo")
		}
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

func (s *JobServiceImpl) ApplicationsByUser(ctx context.Context, userID uint) ([]models.Application, error) {
	apps, err := s.jobs.FindApplicationsByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *JobServiceImpl) ApplicantsByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	apps, err := s.jobs.FindApplicantsByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}
