package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
)

func strP(s string) *string { return &s }

func TestNivelToRol(t *testing.T) {
	cases := map[string]string{
		"premium":       "premium",
		"Plan Premium":  "premium",
		"advance":       "advance",
		"plan avanzado": "advance",
		"pro":           "pro",
		"":              "Usuario",
		"gratis":        "Usuario",
	}
	for nivel, want := range cases {
		assert.Equal(t, want, nivelToRol(nivel), "nivel %q", nivel)
	}
}

func TestGetByIDSyncsAccountRole(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewUserRepository(db)
	svc := NewUserService(users)

	user := createTestUser(t, db, "sync@test.com")
	require.NoError(t, users.UpdateFields(user.ID, map[string]interface{}{
		"suscripcion_nivel": "premium",
	}))

	got, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "premium", got.TipoCuenta)

	// The fix is persisted, not just reflected in the response.
	stored, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "premium", stored.TipoCuenta)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewUserRepository(db)
	svc := NewUserService(users)

	user := createTestUser(t, db, "update@test.com")

	updated, err := svc.Update(context.Background(), user.ID, dto.UpdateUserRequest{
		Telefono: strP("+56987654321"),
		Ciudad:   strP("Valparaíso"),
	})
	require.NoError(t, err)
	assert.Equal(t, "+56987654321", updated.Telefono)
	assert.Equal(t, "Valparaíso", updated.Ciudad)
	assert.Equal(t, "Test", updated.Nombre)

	promoted, err := svc.Update(context.Background(), user.ID, dto.UpdateUserRequest{
		SuscripcionNivel: strP("pro"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pro", promoted.TipoCuenta)
}
