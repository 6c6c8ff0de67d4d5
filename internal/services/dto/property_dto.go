package dto

import "time"

// PropertyResponse is the canonical API shape. Every field is always
// present; media paths are absolute URLs.
type PropertyResponse struct {
	ID          uint        `json:"id"`
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Price       *float64    `json:"price"`
	Category    *string     `json:"category"`
	Location    *string     `json:"location"`
	Comuna      *string     `json:"comuna"`
	Type        *string     `json:"type"`
	ImageURL    *string     `json:"image_url"`
	Images      []string    `json:"images"`
	VideoURL    *string     `json:"video_url"`
	Videos      []string    `json:"videos"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
	Featured    bool        `json:"featured"`
	Area        *float64    `json:"area"`
	Bedrooms    *float64    `json:"bedrooms"`
	Bathrooms   *float64    `json:"bathrooms"`
	Year        *float64    `json:"year"`
	CreatedAt   *time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time  `json:"updatedAt"`
	State       string      `json:"state"`
	Visitas     int         `json:"visitas"`
	Reservas    int         `json:"reservas"`
	CompanyName *string     `json:"companyName"`
	ContactName *string     `json:"contactName"`
	Phone       *string     `json:"phone"`
	Email       *string     `json:"email"`
	Whatsapp    *string     `json:"whatsapp"`
	Website     *string     `json:"website"`
	Metadata    interface{} `json:"metadata"`
	UserID      *uint       `json:"userId"`
	CompanyID   *uint       `json:"companyId"`
}

// PropertyPage is the owner-scoped paginated listing.
type PropertyPage struct {
	Items []PropertyResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// PropertyMetrics summarizes an owner's portfolio.
type PropertyMetrics struct {
	Published    int64 `json:"published"`
	Drafts       int64 `json:"drafts"`
	Paused       int64 `json:"paused"`
	Archived     int64 `json:"archived"`
	Views        int64 `json:"views"`
	Reservations int64 `json:"reservations"`
}
