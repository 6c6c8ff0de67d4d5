package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

var ErrPropertyNotFound = errors.New("property not found")

// PropertyFilter drives the public listing query. Zero values mean
// "no filter".
type PropertyFilter struct {
	Comuna    string
	Tipo      string
	Categoria string
	Ubicacion string
	PrecioMin *float64
	PrecioMax *float64
	Sort      string // "price_asc", "price_desc", default recency
	Page      int
	Limit     int
}

// OwnerScope selects the rows a caller owns: directly through their
// user id, through their company, or both. The two ids are matched
// against their own columns and are never interchangeable.
type OwnerScope struct {
	UserID    *uint
	CompanyID *uint
}

func (o OwnerScope) apply(query *gorm.DB) *gorm.DB {
	switch {
	case o.UserID != nil && o.CompanyID != nil:
		return query.Where("user_id = ? OR company_id = ?", *o.UserID, *o.CompanyID)
	case o.UserID != nil:
		return query.Where("user_id = ?", *o.UserID)
	case o.CompanyID != nil:
		return query.Where("company_id = ?", *o.CompanyID)
	default:
		return query.Where("1 = 0")
	}
}

// StateMetrics aggregates an owner's portfolio per lifecycle state.
type StateMetrics struct {
	Draft     int64 `json:"draft"`
	Published int64 `json:"published"`
	Paused    int64 `json:"paused"`
	Archived  int64 `json:"archived"`
	Visitas   int64 `json:"visitas"`
	Reservas  int64 `json:"reservas"`
}

type PropertyRepository interface {
	FindByID(id uint) (*models.Property, error)
	FindFiltered(filter PropertyFilter) ([]models.Property, error)
	FindByOwner(owner OwnerScope, page, limit int) ([]models.Property, int64, error)
	Create(property *models.Property) error
	Update(property *models.Property) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	IncrementVisitas(id uint) error
	IncrementReservas(id uint) error
	OwnerMetrics(owner OwnerScope) (*StateMetrics, error)
	GlobalMetrics() (*StateMetrics, error)
	DistinctComunas() ([]string, error)
	DistinctTipos() ([]string, error)
}

type PropertyRepositoryImpl struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &PropertyRepositoryImpl{db: db}
}

func (r *PropertyRepositoryImpl) FindByID(id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepositoryImpl) FindFiltered(filter PropertyFilter) ([]models.Property, error) {
	query := r.db.Model(&models.Property{})

	if filter.Comuna != "" {
		query = query.Where("comuna = ?", filter.Comuna)
	}
	if filter.Tipo != "" {
		query = query.Where("tipo = ?", filter.Tipo)
	}
	if filter.Categoria != "" {
		// LOWER + LIKE so the same query runs on postgres and sqlite.
		query = query.Where("LOWER(categoria) LIKE ?", "%"+strings.ToLower(filter.Categoria)+"%")
	}
	if filter.Ubicacion != "" {
		pattern := "%" + strings.ToLower(filter.Ubicacion) + "%"
		query = query.Where("LOWER(ubicacion) LIKE ? OR LOWER(comuna) LIKE ?", pattern, pattern)
	}
	if filter.PrecioMin != nil {
		query = query.Where("precio >= ?", *filter.PrecioMin)
	}
	if filter.PrecioMax != nil {
		query = query.Where("precio <= ?", *filter.PrecioMax)
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("precio asc")
	case "price_desc":
		query = query.Order("precio desc")
	default:
		query = query.Order("id desc")
	}

	if filter.Limit <= 0 {
		filter.Limit = 12
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	query = query.Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit)

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepositoryImpl) FindByOwner(owner OwnerScope, page, limit int) ([]models.Property, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}

	var total int64
	err := owner.apply(r.db.Model(&models.Property{})).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	err = owner.apply(r.db).
		Order("updated_at desc").Limit(limit).Offset((page - 1) * limit).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *PropertyRepositoryImpl) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

func (r *PropertyRepositoryImpl) Update(property *models.Property) error {
	result := r.db.Save(property)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepositoryImpl) UpdateFields(id uint, fields map[string]interface{}) error {
	result := r.db.Model(&models.Property{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepositoryImpl) IncrementVisitas(id uint) error {
	return r.db.Model(&models.Property{}).Where("id = ?", id).
		UpdateColumn("visitas", gorm.Expr("visitas + 1")).Error
}

func (r *PropertyRepositoryImpl) IncrementReservas(id uint) error {
	return r.db.Model(&models.Property{}).Where("id = ?", id).
		UpdateColumn("reservas", gorm.Expr("reservas + 1")).Error
}

func (r *PropertyRepositoryImpl) OwnerMetrics(owner OwnerScope) (*StateMetrics, error) {
	return r.metrics(func() *gorm.DB {
		return owner.apply(r.db.Model(&models.Property{}))
	})
}

func (r *PropertyRepositoryImpl) GlobalMetrics() (*StateMetrics, error) {
	return r.metrics(func() *gorm.DB {
		return r.db.Model(&models.Property{})
	})
}

func (r *PropertyRepositoryImpl) metrics(scope func() *gorm.DB) (*StateMetrics, error) {
	metrics := &StateMetrics{}

	type stateCount struct {
		State string
		Count int64
	}
	var counts []stateCount
	err := scope().Select("state, COUNT(*) as count").Group("state").Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		switch c.State {
		case models.PropertyStateDraft:
			metrics.Draft = c.Count
		case models.PropertyStatePublished:
			metrics.Published = c.Count
		case models.PropertyStatePaused:
			metrics.Paused = c.Count
		case models.PropertyStateArchived:
			metrics.Archived = c.Count
		}
	}

	type sums struct {
		Visitas  int64
		Reservas int64
	}
	var s sums
	err = scope().
		Select("COALESCE(SUM(visitas),0) as visitas, COALESCE(SUM(reservas),0) as reservas").
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	metrics.Visitas = s.Visitas
	metrics.Reservas = s.Reservas
	return metrics, nil
}

func (r *PropertyRepositoryImpl) DistinctComunas() ([]string, error) {
	var comunas []string
	err := r.db.Model(&models.Property{}).
		Where("comuna IS NOT NULL AND comuna <> ''").
		Distinct("comuna").Order("comuna asc").Pluck("comuna", &comunas).Error
	if err != nil {
		return nil, err
	}
	return comunas, nil
}

func (r *PropertyRepositoryImpl) DistinctTipos() ([]string, error) {
	var tipos []string
	err := r.db.Model(&models.Property{}).
		Where("tipo IS NOT NULL AND tipo <> ''").
		Distinct("tipo").Order("tipo asc").Pluck("tipo", &tipos).Error
	if err != nil {
		return nil, err
	}
	return tipos, nil
}
