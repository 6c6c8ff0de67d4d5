package services

import (
	"context"

	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/internal/validator"
	"smartrent_backend/pkg/apperrors"
)

type CompanyService interface {
	Create(ctx context.Context, req dto.CompanyRequest) (*models.Company, error)
	GetAll(ctx context.Context) ([]models.Company, error)
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	Update(ctx context.Context, id uint, req dto.CompanyRequest) (*models.Company, error)
	Delete(ctx context.Context, id uint) error
}

type CompanyServiceImpl struct {
	companies repositories.CompanyRepository
	validate  *validator.Validator
}

func NewCompanyService(companies repositories.CompanyRepository, v *validator.Validator) CompanyService {
	return &CompanyServiceImpl{companies: companies, validate: v}
}

func (s *CompanyServiceImpl) Create(ctx context.Context, req dto.CompanyRequest) (*models.Company, error) {
	if err := s.validate.ValidateStruct(req); err != nil {
		return nil, err
	}

	company := companyFromRequest(req)
	if err := s.companies.Create(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) GetAll(ctx context.Context) ([]models.Company, error) {
	companies, err := s.companies.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return companies, nil
}

func (s *CompanyServiceImpl) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	company, err := s.companies.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("companies", "Empresa no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) Update(ctx context.Context, id uint, req dto.CompanyRequest) (*models.Company, error) {
	if err := s.validate.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := companyFromRequest(req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.companies.Update(updated); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return updated, nil
}

func (s *CompanyServiceImpl) Delete(ctx context.Context, id uint) error {
	err := s.companies.Delete(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return apperrors.NewNotFoundError("companies", "Empresa no encontrada")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func companyFromRequest(req dto.CompanyRequest) *models.Company {
	return &models.Company{
		NombreEmpresa: req.NombreEmpresa,
		Correo:        req.Correo,
		Telefono:      req.Telefono,
		Direccion:     req.Direccion,
		Descripcion:   req.Descripcion,
		RutEmpresa:    req.RutEmpresa,
		Encargado:     req.Encargado,
		Dueno:         req.Dueno,
		HoraApertura:  req.HoraApertura,
		HoraCierre:    req.HoraCierre,
		DiasOperacion: req.DiasOperacion,
		Logo:          req.Logo,
		SitioWeb:      req.SitioWeb,
		UserID:        req.UserID,
	}
}
