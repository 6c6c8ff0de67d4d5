package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/internal/validator"
	"smartrent_backend/pkg/apperrors"
)

func newJobService(t *testing.T) (JobService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewJobService(repositories.NewJobRepository(db), validator.New()), db
}

func TestJobCreateRequiresTitle(t *testing.T) {
	svc, _ := newJobService(t)

	_, err := svc.Create(context.Background(), dto.JobRequest{Descripcion: "sin título"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestJobCRUD(t *testing.T) {
	svc, _ := newJobService(t)
	ctx := context.Background()

	job, err := svc.Create(ctx, dto.JobRequest{
		Titulo:    "Corredor de propiedades",
		Ubicacion: "Santiago",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, job.ID, dto.JobRequest{
		Titulo:    "Corredor senior",
		Ubicacion: "Providencia",
	})
	require.NoError(t, err)
	assert.Equal(t, "Corredor senior", updated.Titulo)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, job.ID))
	_, err = svc.GetByID(ctx, job.ID)
	require.Error(t, err)
}

func TestApplyOncePerJob(t *testing.T) {
	svc, db := newJobService(t)
	ctx := context.Background()
	user := createTestUser(t, db, "applicant@test.com")

	job, err := svc.Create(ctx, dto.JobRequest{Titulo: "Fotógrafo"})
	require.NoError(t, err)

	app, err := svc.Apply(ctx, job.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, app.JobID)

	_, err = svc.Apply(ctx, job.ID, user.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)

	mine, err := svc.ApplicationsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	applicants, err := svc.ApplicantsByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, applicants, 1)
}

func TestApplyToMissingJob(t *testing.T) {
	svc, db := newJobService(t)
	user := createTestUser(t, db, "applicant@test.com")

	_, err := svc.Apply(context.Background(), 999, user.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}
