package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
)

func newReservationService(t *testing.T) (ReservationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewReservationService(
		repositories.NewReservationRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewPropertyRepository(db),
	)
	return svc, db
}

func createOwnedProperty(t *testing.T, db *gorm.DB, ownerID uint) *models.Property {
	t.Helper()
	p := &models.Property{
		Titulo: "Depto reservable",
		Precio: 350000,
		State:  models.PropertyStatePublished,
		UserID: &ownerID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestCreateReservationDefaultsAndMessage(t *testing.T) {
	svc, db := newReservationService(t)
	guest := createTestUser(t, db, "guest@test.com")
	owner := createTestUser(t, db, "owner@test.com")
	property := createOwnedProperty(t, db, owner.ID)

	pid := property.ID
	reservation, err := svc.Create(context.Background(), guest.ID, dto.CreateReservationRequest{
		PropertyIDv2: &pid,
		Nombre:       "Pedro",
		Telefono:     "+56911112222",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReservationPendiente, reservation.Status)
	assert.Equal(t, 1, reservation.People)
	assert.Contains(t, reservation.Message, "Nombre: Pedro")
	assert.Contains(t, reservation.Message, "Teléfono: +56911112222")
	assert.True(t, reservation.EndDate.After(reservation.StartDate))

	// The reservation counter on the property moves with the insert.
	var refreshed models.Property
	require.NoError(t, db.First(&refreshed, property.ID).Error)
	assert.Equal(t, 1, refreshed.Reservas)
}

func TestCreateReservationEmptyContactGetsFallbackMessage(t *testing.T) {
	svc, db := newReservationService(t)
	guest := createTestUser(t, db, "guest@test.com")
	owner := createTestUser(t, db, "owner@test.com")
	property := createOwnedProperty(t, db, owner.ID)

	pid := property.ID
	reservation, err := svc.Create(context.Background(), guest.ID, dto.CreateReservationRequest{
		PropiedadID: &pid,
	})
	require.NoError(t, err)
	assert.Equal(t, "Solicitud de reserva desde la app.", reservation.Message)
}

func TestCreateReservationMissingProperty(t *testing.T) {
	svc, db := newReservationService(t)
	guest := createTestUser(t, db, "guest@test.com")

	_, err := svc.Create(context.Background(), guest.ID, dto.CreateReservationRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "propiedad_id")

	missing := uint(999)
	_, err = svc.Create(context.Background(), guest.ID, dto.CreateReservationRequest{
		PropiedadID: &missing,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Propiedad 999 no existe")
}

func TestReceivedReturnsOwnerReservations(t *testing.T) {
	svc, db := newReservationService(t)
	guest := createTestUser(t, db, "guest@test.com")
	owner := createTestUser(t, db, "owner@test.com")
	other := createTestUser(t, db, "other@test.com")
	ownProperty := createOwnedProperty(t, db, owner.ID)
	otherProperty := createOwnedProperty(t, db, other.ID)

	ctx := context.Background()
	for _, pid := range []uint{ownProperty.ID, otherProperty.ID} {
		id := pid
		_, err := svc.Create(ctx, guest.ID, dto.CreateReservationRequest{PropiedadID: &id})
		require.NoError(t, err)
	}

	received, err := svc.Received(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, ownProperty.ID, received[0].PropertyID)

	mine, err := svc.Mine(ctx, guest.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestCancelOnlyOwnReservation(t *testing.T) {
	svc, db := newReservationService(t)
	guest := createTestUser(t, db, "guest@test.com")
	owner := createTestUser(t, db, "owner@test.com")
	property := createOwnedProperty(t, db, owner.ID)

	ctx := context.Background()
	pid := property.ID
	reservation, err := svc.Create(ctx, guest.ID, dto.CreateReservationRequest{PropiedadID: &pid})
	require.NoError(t, err)

	// Someone else cannot cancel it.
	err = svc.Cancel(ctx, reservation.ID, owner.ID)
	require.Error(t, err)

	require.NoError(t, svc.Cancel(ctx, reservation.ID, guest.ID))

	var refreshed models.Reservation
	require.NoError(t, db.First(&refreshed, reservation.ID).Error)
	assert.Equal(t, models.ReservationCancelada, refreshed.Status)
}
