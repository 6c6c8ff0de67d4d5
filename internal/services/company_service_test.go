package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/internal/validator"
	"smartrent_backend/pkg/apperrors"
)

func newCompanyService(t *testing.T) CompanyService {
	t.Helper()
	db := newTestDB(t)
	return NewCompanyService(repositories.NewCompanyRepository(db), validator.New())
}

func TestCompanyCRUD(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CompanyRequest{
		NombreEmpresa: "Arriendos del Sur",
		Correo:        "contacto@arriendosdelsur.cl",
		Telefono:      "+56911112222",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arriendos del Sur", fetched.NombreEmpresa)

	updated, err := svc.Update(ctx, created.ID, dto.CompanyRequest{
		NombreEmpresa: "Arriendos del Sur SpA",
		Correo:        "contacto@arriendosdelsur.cl",
	})
	require.NoError(t, err)
	assert.Equal(t, "Arriendos del Sur SpA", updated.NombreEmpresa)
	assert.Equal(t, created.ID, updated.ID)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestCompanyCreateValidation(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CompanyRequest{Correo: "contacto@x.cl"})
	require.Error(t, err)

	_, err = svc.Create(ctx, dto.CompanyRequest{
		NombreEmpresa: "Sin Correo Valido",
		Correo:        "no-es-correo",
	})
	require.Error(t, err)
}
