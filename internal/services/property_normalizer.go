package services

import (
	"encoding/json"
	"strconv"
	"strings"
)

// propertyAliases is the single mapping table from canonical field
// names to every input key the mobile clients have historically sent,
// in priority order. All flexible-key resolution goes through it.
var propertyAliases = map[string][]string{
	"title":       {"title", "titulo"},
	"description": {"description", "descripcion"},
	"price":       {"price", "precio"},
	"category":    {"category", "categoria"},
	"location":    {"location", "ubicacion"},
	"comuna":      {"comuna"},
	"type":        {"type", "tipo"},
	"image_url":   {"image_url", "imagen", "imageUrl"},
	"images":      {"images", "imagenes", "gallery"},
	"video_url":   {"video_url", "videoUrl"},
	"videos":      {"videos", "videosUrl", "mediaVideos"},
	"latitude":    {"latitude"},
	"longitude":   {"longitude"},
	"featured":    {"featured", "destacado"},
	"area":        {"area"},
	"bedrooms":    {"bedrooms", "dormitorios"},
	"bathrooms":   {"bathrooms", "banos"},
	"year":        {"year", "anio"},
	"companyName": {"companyName", "company_name"},
	"contactName": {"contactName", "contact_name"},
	"phone":       {"phone", "contact_phone"},
	"email":       {"email", "contact_email"},
	"whatsapp":    {"whatsapp"},
	"website":     {"website"},
	"metadata":    {"metadata", "meta"},
	"userId":      {"userId", "user_id"},
	"companyId":   {"companyId", "company_id", "empresaId"},
}

// propertyInput is the canonical internal shape after normalization.
// Nil pointers and nil slices mean "field absent", which matters for
// partial updates.
type propertyInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Location    *string
	Comuna      *string
	Type        *string
	ImageURL    *string
	Images      []string
	VideoURL    *string
	Videos      []string
	Latitude    *float64
	Longitude   *float64
	Featured    *bool
	Area        *float64
	Bedrooms    *int
	Bathrooms   *int
	Year        *int
	CompanyName *string
	ContactName *string
	Phone       *string
	Email       *string
	Whatsapp    *string
	Website     *string
	Metadata    interface{}
	UserID      *uint
	CompanyID   *uint
}

func aliasValue(payload map[string]interface{}, canonical string) (interface{}, bool) {
	for _, key := range propertyAliases[canonical] {
		if v, ok := payload[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func aliasString(payload map[string]interface{}, canonical string) *string {
	v, ok := aliasValue(payload, canonical)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func aliasNumber(payload map[string]interface{}, canonical string) *float64 {
	v, ok := aliasValue(payload, canonical)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &f
		}
	}
	return nil
}

func aliasInt(payload map[string]interface{}, canonical string) *int {
	f := aliasNumber(payload, canonical)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func aliasBool(payload map[string]interface{}, canonical string) *bool {
	v, ok := aliasValue(payload, canonical)
	if !ok {
		return nil
	}
	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case string:
		b = t == "true" || t == "1"
	case float64:
		b = t == 1
	default:
		return nil
	}
	return &b
}

// aliasStringSlice accepts either an array of strings or a single
// string, which some client versions send for media fields.
func aliasStringSlice(payload map[string]interface{}, canonical string) []string {
	v, ok := aliasValue(payload, canonical)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{strings.TrimSpace(t)}
	}
	return nil
}

func aliasUint(payload map[string]interface{}, canonical string) *uint {
	f := aliasNumber(payload, canonical)
	if f == nil || *f <= 0 {
		return nil
	}
	n := uint(*f)
	return &n
}

// normalizeProperty reconciles a raw client payload into the canonical
// shape. Defaults are applied only on create; on update absent fields
// stay nil so they are not touched.
func normalizeProperty(payload map[string]interface{}, forUpdate bool) propertyInput {
	if payload == nil {
		payload = map[string]interface{}{}
	}

	in := propertyInput{
		Title:       aliasString(payload, "title"),
		Description: aliasString(payload, "description"),
		Price:       aliasNumber(payload, "price"),
		Category:    aliasString(payload, "category"),
		Location:    aliasString(payload, "location"),
		Comuna:      aliasString(payload, "comuna"),
		Type:        aliasString(payload, "type"),
		ImageURL:    aliasString(payload, "image_url"),
		Images:      aliasStringSlice(payload, "images"),
		VideoURL:    aliasString(payload, "video_url"),
		Videos:      aliasStringSlice(payload, "videos"),
		Latitude:    aliasNumber(payload, "latitude"),
		Longitude:   aliasNumber(payload, "longitude"),
		Featured:    aliasBool(payload, "featured"),
		Area:        aliasNumber(payload, "area"),
		Bedrooms:    aliasInt(payload, "bedrooms"),
		Bathrooms:   aliasInt(payload, "bathrooms"),
		Year:        aliasInt(payload, "year"),
		CompanyName: aliasString(payload, "companyName"),
		ContactName: aliasString(payload, "contactName"),
		Phone:       aliasString(payload, "phone"),
		Email:       aliasString(payload, "email"),
		Whatsapp:    aliasString(payload, "whatsapp"),
		Website:     aliasString(payload, "website"),
		UserID:      aliasUint(payload, "userId"),
		CompanyID:   aliasUint(payload, "companyId"),
	}

	if meta, ok := aliasValue(payload, "metadata"); ok {
		if s, isString := meta.(string); isString {
			var parsed interface{}
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				in.Metadata = parsed
			}
		} else {
			in.Metadata = meta
		}
	}

	// A lone video_url still yields a populated videos list, and vice
	// versa for the cover image.
	if in.ImageURL == nil && len(in.Images) > 0 {
		in.ImageURL = &in.Images[0]
	}
	if in.VideoURL == nil && len(in.Videos) > 0 {
		in.VideoURL = &in.Videos[0]
	}
	if len(in.Videos) == 0 && in.VideoURL != nil {
		in.Videos = []string{*in.VideoURL}
	}

	if !forUpdate {
		in.applyCreateDefaults()
	}
	return in
}

func strPtr(s string) *string { return &s }

func (in *propertyInput) applyCreateDefaults() {
	if in.Title == nil {
		in.Title = strPtr("(sin título)")
	}
	if in.Description == nil {
		in.Description = strPtr("")
	}
	if in.Price == nil {
		zero := 0.0
		in.Price = &zero
	}
	if in.Category == nil {
		in.Category = strPtr("general")
	}
	if in.Location == nil {
		in.Location = strPtr("")
	}
	if in.Type == nil {
		in.Type = strPtr("propiedad")
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	if in.Videos == nil {
		in.Videos = []string{}
	}
}
