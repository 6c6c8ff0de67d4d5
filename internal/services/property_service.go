package services

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"smartrent_backend/internal/logger"
	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

// Owner identifies who a property belongs to: a user directly or a
// company.
type Owner struct {
	UserID    *uint
	CompanyID *uint
}

type PropertyService interface {
	List(ctx context.Context, filter repositories.PropertyFilter) ([]dto.PropertyResponse, error)
	GetOne(ctx context.Context, id uint) (*dto.PropertyResponse, error)
	Create(ctx context.Context, payload map[string]interface{}, owner Owner) (*dto.PropertyResponse, error)
	Update(ctx context.Context, id uint, payload map[string]interface{}) (*dto.PropertyResponse, error)
	Delete(ctx context.Context, id uint) error
	MyList(ctx context.Context, owner Owner, page, limit int) (*dto.PropertyPage, error)
	MyMetrics(ctx context.Context, owner Owner) (*dto.PropertyMetrics, error)
	UpdateState(ctx context.Context, id uint, state string) (*dto.PropertyResponse, error)
	Clone(ctx context.Context, id uint, owner Owner) (*dto.PropertyResponse, error)
	SetOwner(ctx context.Context, id uint, userID *uint, companyID *uint) (*dto.PropertyResponse, error)
	Comunas(ctx context.Context) ([]string, error)
	Tipos(ctx context.Context) ([]string, error)
}

type PropertyServiceImpl struct {
	properties repositories.PropertyRepository
	baseURL    string
}

func NewPropertyService(properties repositories.PropertyRepository, baseURL string) PropertyService {
	return &PropertyServiceImpl{
		properties: properties,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (s *PropertyServiceImpl) List(ctx context.Context, filter repositories.PropertyFilter) ([]dto.PropertyResponse, error) {
	rows, err := s.properties.FindFiltered(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.PropertyResponse, 0, len(rows))
	for i := range rows {
		out = append(out, s.mapToResponse(&rows[i]))
	}
	return out, nil
}

func (s *PropertyServiceImpl) GetOne(ctx context.Context, id uint) (*dto.PropertyResponse, error) {
	p, err := s.properties.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.NewNotFoundError("properties", "Propiedad no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.properties.IncrementVisitas(id); err != nil {
		logger.CtxWarn(ctx, "failed to count visit", "property_id", id, "error", err)
	} else {
		p.Visitas++
	}

	resp := s.mapToResponse(p)
	return &resp, nil
}

func (s *PropertyServiceImpl) Create(ctx context.Context, payload map[string]interface{}, owner Owner) (*dto.PropertyResponse, error) {
	in := normalizeProperty(payload, false)

	// An explicit companyId in the payload wins over the caller's own
	// identity.
	companyID := in.CompanyID
	if companyID == nil {
		companyID = owner.CompanyID
	}
	var userID *uint
	if companyID == nil {
		userID = owner.UserID
		if userID == nil {
			userID = in.UserID
		}
	}
	if userID == nil && companyID == nil {
		return nil, apperrors.NewBadRequestError("La propiedad debe tener userId o companyId (dueño).")
	}

	p := &models.Property{
		State:     models.PropertyStateDraft,
		UserID:    userID,
		CompanyID: companyID,
	}
	applyInput(p, in)

	if err := s.properties.Create(p); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "property created", "property_id", p.ID)
	resp := s.mapToResponse(p)
	return &resp, nil
}

func (s *PropertyServiceImpl) Update(ctx context.Context, id uint, payload map[string]interface{}) (*dto.PropertyResponse, error) {
	p, err := s.properties.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.NewNotFoundError("properties", "Propiedad no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}

	in := normalizeProperty(payload, true)
	applyInput(p, in)
	if in.UserID != nil {
		p.UserID = in.UserID
	}
	if in.CompanyID != nil {
		p.CompanyID = in.CompanyID
	}

	if err := s.properties.Update(p); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := s.mapToResponse(p)
	return &resp, nil
}

func (s *PropertyServiceImpl) Delete(ctx context.Context, id uint) error {
	err := s.properties.Delete(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return apperrors.NewNotFoundError("properties", "Propiedad no encontrada")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func ownerScope(owner Owner) repositories.OwnerScope {
	return repositories.OwnerScope{UserID: owner.UserID, CompanyID: owner.CompanyID}
}

func (s *PropertyServiceImpl) MyList(ctx context.Context, owner Owner, page, limit int) (*dto.PropertyPage, error) {
	rows, total, err := s.properties.FindByOwner(ownerScope(owner), page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	items := make([]dto.PropertyResponse, 0, len(rows))
	for i := range rows {
		items = append(items, s.mapToResponse(&rows[i]))
	}
	return &dto.PropertyPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *PropertyServiceImpl) MyMetrics(ctx context.Context, owner Owner) (*dto.PropertyMetrics, error) {
	m, err := s.properties.OwnerMetrics(ownerScope(owner))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PropertyMetrics{
		Published:    m.Published,
		Drafts:       m.Draft,
		Paused:       m.Paused,
		Archived:     m.Archived,
		Views:        m.Visitas,
		Reservations: m.Reservas,
	}, nil
}

// UpdateState moves a listing to any lifecycle state; transitions are
// unrestricted.
func (s *PropertyServiceImpl) UpdateState(ctx context.Context, id uint, state string) (*dto.PropertyResponse, error) {
	switch state {
	case models.PropertyStateDraft, models.PropertyStatePublished,
		models.PropertyStatePaused, models.PropertyStateArchived:
	default:
		return nil, apperrors.NewBadRequestError("Estado de propiedad inválido")
	}

	if err := s.properties.UpdateFields(id, map[string]interface{}{"state": state}); err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.NewNotFoundError("properties", "Propiedad no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}

	p, err := s.properties.FindByID(id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := s.mapToResponse(p)
	return &resp, nil
}

// Clone copies a listing as a fresh draft with zeroed counters.
func (s *PropertyServiceImpl) Clone(ctx context.Context, id uint, owner Owner) (*dto.PropertyResponse, error) {
	orig, err := s.properties.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.NewNotFoundError("properties", "Propiedad no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}

	dup := *orig
	dup.BaseModel = models.BaseModel{}
	dup.Titulo = orig.Titulo + " (copia)"
	dup.State = models.PropertyStateDraft
	dup.Visitas = 0
	dup.Reservas = 0
	if owner.UserID != nil {
		dup.UserID = owner.UserID
	}
	if owner.CompanyID != nil {
		dup.CompanyID = owner.CompanyID
	}

	if err := s.properties.Create(&dup); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := s.mapToResponse(&dup)
	return &resp, nil
}

// SetOwner reassigns a listing: a companyId hands it to that company,
// otherwise it goes to the given user.
func (s *PropertyServiceImpl) SetOwner(ctx context.Context, id uint, userID *uint, companyID *uint) (*dto.PropertyResponse, error) {
	fields := map[string]interface{}{}
	if companyID != nil {
		fields["user_id"] = nil
		fields["company_id"] = *companyID
	} else {
		fields["user_id"] = userID
		fields["company_id"] = nil
	}

	if err := s.properties.UpdateFields(id, fields); err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.NewNotFoundError("properties", "Propiedad no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}

	p, err := s.properties.FindByID(id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := s.mapToResponse(p)
	return &resp, nil
}

func (s *PropertyServiceImpl) Comunas(ctx context.Context) ([]string, error) {
	comunas, err := s.properties.DistinctComunas()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comunas, nil
}

func (s *PropertyServiceImpl) Tipos(ctx context.Context) ([]string, error) {
	tipos, err := s.properties.DistinctTipos()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tipos, nil
}

// applyInput copies the set fields of a normalized payload onto the
// model. Nil input fields leave the model untouched.
func applyInput(p *models.Property, in propertyInput) {
	if in.Title != nil {
		p.Titulo = *in.Title
	}
	if in.Description != nil {
		p.Descripcion = *in.Description
	}
	if in.Price != nil {
		p.Precio = *in.Price
	}
	if in.Category != nil {
		p.Categoria = *in.Category
	}
	if in.Location != nil {
		p.Ubicacion = *in.Location
	}
	if in.Comuna != nil {
		p.Comuna = *in.Comuna
	}
	if in.Type != nil {
		p.Tipo = *in.Type
	}
	if in.ImageURL != nil {
		p.Imagen = *in.ImageURL
	}
	if in.Images != nil {
		p.Images = mustJSON(in.Images)
	}
	if in.VideoURL != nil {
		p.VideoURL = *in.VideoURL
	}
	if in.Videos != nil {
		p.Videos = mustJSON(in.Videos)
	}
	if in.Latitude != nil {
		p.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		p.Longitude = in.Longitude
	}
	if in.Featured != nil {
		p.Destacado = *in.Featured
	}
	if in.Area != nil {
		p.Area = in.Area
	}
	if in.Bedrooms != nil {
		p.Dormitorios = in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Banos = in.Bathrooms
	}
	if in.Year != nil {
		p.Anio = in.Year
	}
	if in.CompanyName != nil {
		p.CompanyName = *in.CompanyName
	}
	if in.ContactName != nil {
		p.ContactName = *in.ContactName
	}
	if in.Phone != nil {
		p.ContactPhone = *in.Phone
	}
	if in.Email != nil {
		p.ContactEmail = *in.Email
	}
	if in.Whatsapp != nil {
		p.Whatsapp = *in.Whatsapp
	}
	if in.Website != nil {
		p.Website = *in.Website
	}
	if in.Metadata != nil {
		p.Metadata = mustJSON(in.Metadata)
	}
}

func mustJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

// abs resolves a stored relative media path against the public base
// URL.
func (s *PropertyServiceImpl) abs(u string) *string {
	if u == "" {
		return nil
	}
	if strings.HasPrefix(u, "http") {
		return &u
	}
	full := s.baseURL
	if !strings.HasPrefix(u, "/") {
		full += "/"
	}
	full += u
	return &full
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtrToFloat(n *int) *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

// mapToResponse builds the canonical, always fully populated response.
func (s *PropertyServiceImpl) mapToResponse(p *models.Property) dto.PropertyResponse {
	images := decodeStringList(p.Images)
	absImages := make([]string, 0, len(images))
	for _, img := range images {
		if u := s.abs(img); u != nil {
			absImages = append(absImages, *u)
		}
	}

	videos := decodeStringList(p.Videos)
	if len(videos) == 0 && p.VideoURL != "" {
		videos = []string{p.VideoURL}
	}
	absVideos := make([]string, 0, len(videos))
	for _, v := range videos {
		if u := s.abs(v); u != nil {
			absVideos = append(absVideos, *u)
		}
	}

	var metadata interface{}
	if len(p.Metadata) > 0 {
		_ = json.Unmarshal(p.Metadata, &metadata)
	}

	price := p.Precio
	createdAt := p.CreatedAt
	updatedAt := p.UpdatedAt

	return dto.PropertyResponse{
		ID:          p.ID,
		Title:       nilIfEmpty(p.Titulo),
		Description: nilIfEmpty(p.Descripcion),
		Price:       &price,
		Category:    nilIfEmpty(p.Categoria),
		Location:    nilIfEmpty(p.Ubicacion),
		Comuna:      nilIfEmpty(p.Comuna),
		Type:        nilIfEmpty(p.Tipo),
		ImageURL:    s.abs(p.Imagen),
		Images:      absImages,
		VideoURL:    s.abs(p.VideoURL),
		Videos:      absVideos,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Featured:    p.Destacado,
		Area:        p.Area,
		Bedrooms:    intPtrToFloat(p.Dormitorios),
		Bathrooms:   intPtrToFloat(p.Banos),
		Year:        intPtrToFloat(p.Anio),
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
		State:       p.State,
		Visitas:     p.Visitas,
		Reservas:    p.Reservas,
		CompanyName: nilIfEmpty(p.CompanyName),
		ContactName: nilIfEmpty(p.ContactName),
		Phone:       nilIfEmpty(p.ContactPhone),
		Email:       nilIfEmpty(p.ContactEmail),
		Whatsapp:    nilIfEmpty(p.Whatsapp),
		Website:     nilIfEmpty(p.Website),
		Metadata:    metadata,
		UserID:      p.UserID,
		CompanyID:   p.CompanyID,
	}
}
