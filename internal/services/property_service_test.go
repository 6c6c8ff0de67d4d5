package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/pkg/apperrors"
)

func newPropertyService(t *testing.T) (PropertyService, repositories.PropertyRepository) {
	t.Helper()
	db := newTestDB(t)
	repo := repositories.NewPropertyRepository(db)
	return NewPropertyService(repo, "http://localhost:3000"), repo
}

func uintPtr(v uint) *uint { return &v }

func TestCreateNormalizesSpanishAliases(t *testing.T) {
	svc, _ := newPropertyService(t)

	created, err := svc.Create(context.Background(), map[string]interface{}{
		"titulo":      "Depto centro",
		"descripcion": "2D 1B",
		"precio":      "450000",
		"comuna":      "Santiago",
		"tipo":        "departamento",
	}, Owner{UserID: uintPtr(7)})
	require.NoError(t, err)

	require.NotNil(t, created.Title)
	assert.Equal(t, "Depto centro", *created.Title)
	require.NotNil(t, created.Price)
	assert.Equal(t, 450000.0, *created.Price)
	require.NotNil(t, created.Comuna)
	assert.Equal(t, "Santiago", *created.Comuna)
	assert.Equal(t, models.PropertyStateDraft, created.State)
	require.NotNil(t, created.UserID)
	assert.Equal(t, uint(7), *created.UserID)
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _ := newPropertyService(t)

	created, err := svc.Create(context.Background(), map[string]interface{}{},
		Owner{UserID: uintPtr(1)})
	require.NoError(t, err)

	require.NotNil(t, created.Title)
	assert.Equal(t, "(sin título)", *created.Title)
	require.NotNil(t, created.Price)
	assert.Zero(t, *created.Price)
}

func TestCreateWithoutOwnerRejected(t *testing.T) {
	svc, _ := newPropertyService(t)

	_, err := svc.Create(context.Background(), map[string]interface{}{
		"titulo": "Sin dueño",
	}, Owner{})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestCreatePayloadCompanyWins(t *testing.T) {
	svc, _ := newPropertyService(t)

	created, err := svc.Create(context.Background(), map[string]interface{}{
		"titulo":    "Oficina",
		"empresaId": float64(42),
	}, Owner{UserID: uintPtr(7)})
	require.NoError(t, err)

	require.NotNil(t, created.CompanyID)
	assert.Equal(t, uint(42), *created.CompanyID)
	assert.Nil(t, created.UserID)
}

func TestUpdateDoesNotReapplyDefaults(t *testing.T) {
	svc, _ := newPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, map[string]interface{}{
		"titulo": "Casa playa",
		"precio": 120000000,
		"comuna": "Viña del Mar",
	}, Owner{UserID: uintPtr(1)})
	require.NoError(t, err)

	// A partial update must leave untouched fields alone.
	updated, err := svc.Update(ctx, created.ID, map[string]interface{}{
		"precio": 110000000,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Title)
	assert.Equal(t, "Casa playa", *updated.Title)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 110000000.0, *updated.Price)
	require.NotNil(t, updated.Comuna)
	assert.Equal(t, "Viña del Mar", *updated.Comuna)
}

func seedProperties(t *testing.T, svc PropertyService) {
	t.Helper()
	ctx := context.Background()
	rows := []map[string]interface{}{
		{"titulo": "Depto Santiago", "precio": 300000, "comuna": "Santiago", "tipo": "departamento"},
		{"titulo": "Casa Providencia", "precio": 800000, "comuna": "Providencia", "tipo": "casa"},
		{"titulo": "Depto Providencia", "precio": 500000, "comuna": "Providencia", "tipo": "departamento"},
	}
	for _, row := range rows {
		_, err := svc.Create(ctx, row, Owner{UserID: uintPtr(1)})
		require.NoError(t, err)
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	svc, _ := newPropertyService(t)
	seedProperties(t, svc)
	ctx := context.Background()

	comuna := "Providencia"
	list, err := svc.List(ctx, repositories.PropertyFilter{Comuna: comuna})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, p := range list {
		assert.Equal(t, comuna, *p.Comuna)
	}

	min := 400000.0
	max := 600000.0
	list, err = svc.List(ctx, repositories.PropertyFilter{PrecioMin: &min, PrecioMax: &max})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Depto Providencia", *list[0].Title)

	list, err = svc.List(ctx, repositories.PropertyFilter{Sort: "price_asc"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, *list[i-1].Price, *list[i].Price)
	}

	list, err = svc.List(ctx, repositories.PropertyFilter{Sort: "price_desc"})
	require.NoError(t, err)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, *list[i-1].Price, *list[i].Price)
	}
}

func TestGetOneCountsVisit(t *testing.T) {
	svc, _ := newPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, map[string]interface{}{"titulo": "Vista"},
		Owner{UserID: uintPtr(1)})
	require.NoError(t, err)

	first, err := svc.GetOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Visitas)

	second, err := svc.GetOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Visitas)
}

func TestUpdateStateValidatesEnum(t *testing.T) {
	svc, _ := newPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, map[string]interface{}{"titulo": "Estado"},
		Owner{UserID: uintPtr(1)})
	require.NoError(t, err)

	published, err := svc.UpdateState(ctx, created.ID, models.PropertyStatePublished)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatePublished, published.State)

	_, err = svc.UpdateState(ctx, created.ID, "flying")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestCloneResetsStateAndCounters(t *testing.T) {
	svc, _ := newPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, map[string]interface{}{
		"titulo": "Original",
		"precio": 250000,
	}, Owner{UserID: uintPtr(1)})
	require.NoError(t, err)

	_, err = svc.UpdateState(ctx, created.ID, models.PropertyStatePublished)
	require.NoError(t, err)
	// Accumulate a visit on the original.
	_, err = svc.GetOne(ctx, created.ID)
	require.NoError(t, err)

	clone, err := svc.Clone(ctx, created.ID, Owner{UserID: uintPtr(1)})
	require.NoError(t, err)

	assert.NotEqual(t, created.ID, clone.ID)
	require.NotNil(t, clone.Title)
	assert.Equal(t, "Original (copia)", *clone.Title)
	assert.Equal(t, models.PropertyStateDraft, clone.State)
	assert.Zero(t, clone.Visitas)
	assert.Zero(t, clone.Reservas)
}

func TestMyListPaginatesOwnerRows(t *testing.T) {
	svc, _ := newPropertyService(t)
	ctx := context.Background()

	owner := Owner{UserID: uintPtr(9)}
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, map[string]interface{}{"titulo": "Mía"}, owner)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, map[string]interface{}{"titulo": "Ajena"},
		Owner{UserID: uintPtr(10)})
	require.NoError(t, err)

	page, err := svc.MyList(ctx, owner, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)
}

func TestMyListScopesUserAndCompanySeparately(t *testing.T) {
	svc, _ := newPropertyService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, map[string]interface{}{"titulo": "Propia"},
		Owner{UserID: uintPtr(7)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, map[string]interface{}{"titulo": "De la empresa"},
		Owner{CompanyID: uintPtr(3)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, map[string]interface{}{"titulo": "De otro usuario"},
		Owner{UserID: uintPtr(3)})
	require.NoError(t, err)

	// A caller who owns listings directly and through company 3 sees
	// both, and never the listings of user 3.
	page, err := svc.MyList(ctx, Owner{UserID: uintPtr(7), CompanyID: uintPtr(3)}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	titles := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		titles = append(titles, *item.Title)
	}
	assert.ElementsMatch(t, []string{"Propia", "De la empresa"}, titles)

	// User 3 does not inherit company 3's listings just because the
	// ids coincide.
	page, err = svc.MyList(ctx, Owner{UserID: uintPtr(3)}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "De otro usuario", *page.Items[0].Title)

	// No identity at all matches nothing.
	page, err = svc.MyList(ctx, Owner{}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)
}

func TestMyMetricsScopesUserAndCompanySeparately(t *testing.T) {
	svc, _ := newPropertyService(t)
	ctx := context.Background()

	own, err := svc.Create(ctx, map[string]interface{}{"titulo": "Propia"},
		Owner{UserID: uintPtr(7)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, map[string]interface{}{"titulo": "De la empresa"},
		Owner{CompanyID: uintPtr(3)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, map[string]interface{}{"titulo": "De otro usuario"},
		Owner{UserID: uintPtr(3)})
	require.NoError(t, err)

	_, err = svc.UpdateState(ctx, own.ID, models.PropertyStatePublished)
	require.NoError(t, err)
	// One visit on the directly owned listing.
	_, err = svc.GetOne(ctx, own.ID)
	require.NoError(t, err)

	metrics, err := svc.MyMetrics(ctx, Owner{UserID: uintPtr(7), CompanyID: uintPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.Published)
	assert.Equal(t, int64(1), metrics.Drafts)
	assert.Equal(t, int64(1), metrics.Views)

	stranger, err := svc.MyMetrics(ctx, Owner{UserID: uintPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stranger.Drafts)
	assert.Zero(t, stranger.Published)
	assert.Zero(t, stranger.Views)
}

func TestComunasAndTipos(t *testing.T) {
	svc, _ := newPropertyService(t)
	seedProperties(t, svc)
	ctx := context.Background()

	comunas, err := svc.Comunas(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Santiago", "Providencia"}, comunas)

	tipos, err := svc.Tipos(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"departamento", "casa"}, tipos)
}
