package dto

type FaqResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type CreateTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageBase64 string `json:"imageBase64"`
	ImageURL    string `json:"imageUrl"`
	Status      string `json:"status"`
	Respuesta   string `json:"respuesta"`
	UserID      *uint  `json:"userId"`
}

type UpdateTicketRequest struct {
	Status    string  `json:"status"`
	Respuesta *string `json:"respuesta"`
}

type ReplyTicketRequest struct {
	Respuesta string `json:"respuesta" validate:"required"`
}

type CreateFeedbackRequest struct {
	Rating    interface{} `json:"rating"`
	Comment   string      `json:"comment"`
	Respuesta *string     `json:"respuesta"`
	UserID    *uint       `json:"userId"`
}

type RespondFeedbackRequest struct {
	Respuesta *string `json:"respuesta"`
}

type FeedbackStatsResponse struct {
	AverageRating   float64       `json:"averageRating"`
	TotalFeedbacks  int64         `json:"totalFeedbacks"`
	RatingBreakdown []RatingEntry `json:"ratingBreakdown"`
}

type RatingEntry struct {
	Stars int   `json:"stars"`
	Count int64 `json:"count"`
}

type CreateCommunityPostRequest struct {
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
	UserID *uint  `json:"userId"`
}
