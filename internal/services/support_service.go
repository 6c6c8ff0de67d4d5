package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

const communityPostLimit = 50

// fallbackFaqs is served when the table is empty so the help screen
// never comes up blank.
var fallbackFaqs = []dto.FaqResponse{
	{Question: "No puedo iniciar sesión", Answer: "Verifica tu correo y contraseña."},
	{Question: "Problemas con el pago", Answer: "Asegúrate de que tu tarjeta esté activa."},
	{Question: "Error al subir fotos", Answer: "Las imágenes deben ser menores a 2 MB."},
	{Question: "No me llega el código SMS", Answer: "Verifica tu número y vuelve a intentar."},
}

type SupportService interface {
	Faqs(ctx context.Context) ([]dto.FaqResponse, error)

	CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*models.SupportTicket, error)
	AllTickets(ctx context.Context) ([]models.SupportTicket, error)
	TicketsByUser(ctx context.Context, userID uint) ([]models.SupportTicket, error)
	UpdateTicket(ctx context.Context, id uint, req dto.UpdateTicketRequest) (*models.SupportTicket, error)
	ReplyTicket(ctx context.Context, id uint, respuesta string) (*models.SupportTicket, error)
	ResolveTicket(ctx context.Context, id uint) (*models.SupportTicket, error)
	DeleteTicket(ctx context.Context, id uint) error

	CreateFeedback(ctx context.Context, req dto.CreateFeedbackRequest) (*models.Feedback, error)
	AllFeedback(ctx context.Context) ([]models.Feedback, error)
	RespondFeedback(ctx context.Context, id uint, respuesta *string) (*models.Feedback, error)
	FeedbackStats(ctx context.Context) (*dto.FeedbackStatsResponse, error)

	CommunityPosts(ctx context.Context) ([]models.CommunityPost, error)
	CreateCommunityPost(ctx context.Context, req dto.CreateCommunityPostRequest) (*models.CommunityPost, error)
}

type SupportServiceImpl struct {
	support repositories.SupportRepository
}

func NewSupportService(support repositories.SupportRepository) SupportService {
	return &SupportServiceImpl{support: support}
}

func (s *SupportServiceImpl) Faqs(ctx context.Context) ([]dto.FaqResponse, error) {
	faqs, err := s.support.FindFaqs()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(faqs) == 0 {
		return fallbackFaqs, nil
	}

	out := make([]dto.FaqResponse, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, dto.FaqResponse{Question: f.Question, Answer: f.Answer})
	}
	return out, nil
}

func (s *SupportServiceImpl) CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*models.SupportTicket, error) {
	var image *string
	if req.ImageBase64 != "" {
		image = &req.ImageBase64
	} else if req.ImageURL != "" {
		image = &req.ImageURL
	}

	ticket := &models.SupportTicket{
		Subject:     firstNonEmpty(req.Subject, "Sin asunto"),
		Description: firstNonEmpty(req.Description, "Sin descripción"),
		Category:    firstNonEmpty(req.Category, "General"),
		ImageBase64: image,
		Status:      firstNonEmpty(req.Status, models.TicketPendiente),
		Respuesta:   req.Respuesta,
		UserID:      req.UserID,
	}
	if err := s.support.CreateTicket(ticket); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ticket, nil
}

func (s *SupportServiceImpl) AllTickets(ctx context.Context) ([]models.SupportTicket, error) {
	tickets, err := s.support.FindAllTickets()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Old clients stored bare base64; ensure a renderable data URI.
	for i := range tickets {
		if tickets[i].ImageBase64 != nil && !strings.HasPrefix(*tickets[i].ImageBase64, "data:image") {
			withPrefix := "data:image/png;base64," + *tickets[i].ImageBase64
			tickets[i].ImageBase64 = &withPrefix
		}
	}
	return tickets, nil
}

func (s *SupportServiceImpl) TicketsByUser(ctx context.Context, userID uint) ([]models.SupportTicket, error) {
	tickets, err := s.support.FindTicketsByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tickets, nil
}

func (s *SupportServiceImpl) getTicket(id uint) (*models.SupportTicket, error) {
	ticket, err := s.support.FindTicketByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTicketNotFound) {
			return nil, apperrors.NewNotFoundError("support", "Ticket no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}
	return ticket, nil
}

func (s *SupportServiceImpl) UpdateTicket(ctx context.Context, id uint, req dto.UpdateTicketRequest) (*models.SupportTicket, error) {
	ticket, err := s.getTicket(id)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		ticket.Status = req.Status
	}
	if req.Respuesta != nil {
		ticket.Respuesta = *req.Respuesta
	}

	if err := s.support.UpdateTicket(ticket); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ticket, nil
}

func (s *SupportServiceImpl) ReplyTicket(ctx context.Context, id uint, respuesta string) (*models.SupportTicket, error) {
	ticket, err := s.getTicket(id)
	if err != nil {
		return nil, err
	}

	ticket.Respuesta = respuesta
	ticket.Status = models.TicketEnProceso
	if err := s.support.UpdateTicket(ticket); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ticket, nil
}

func (s *SupportServiceImpl) ResolveTicket(ctx context.Context, id uint) (*models.SupportTicket, error) {
	ticket, err := s.getTicket(id)
	if err != nil {
		return nil, err
	}

	ticket.Status = models.TicketResuelto
	if err := s.support.UpdateTicket(ticket); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ticket, nil
}

func (s *SupportServiceImpl) DeleteTicket(ctx context.Context, id uint) error {
	err := s.support.DeleteTicket(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTicketNotFound) {
			return apperrors.NewNotFoundError("support", "Ticket no encontrado")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// parseRating accepts the number-or-string rating old clients send.
func parseRating(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func (s *SupportServiceImpl) CreateFeedback(ctx context.Context, req dto.CreateFeedbackRequest) (*models.Feedback, error) {
	rating, ok := parseRating(req.Rating)
	if !ok || rating < 1 || rating > 5 {
		return nil, apperrors.NewBadRequestError("La calificación debe estar entre 1 y 5")
	}

	feedback := &models.Feedback{
		Rating:    rating,
		Comment:   req.Comment,
		Respuesta: req.Respuesta,
		UserID:    req.UserID,
	}
	if err := s.support.CreateFeedback(feedback); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return feedback, nil
}

func (s *SupportServiceImpl) AllFeedback(ctx context.Context) ([]models.Feedback, error) {
	feedbacks, err := s.support.FindAllFeedback()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return feedbacks, nil
}

func (s *SupportServiceImpl) RespondFeedback(ctx context.Context, id uint, respuesta *string) (*models.Feedback, error) {
	feedback, err := s.support.FindFeedbackByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFeedbackNotFound) {
			return nil, apperrors.NewNotFoundError("support", "Reseña no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}

	feedback.Respuesta = respuesta
	if err := s.support.UpdateFeedback(feedback); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return feedback, nil
}

func (s *SupportServiceImpl) FeedbackStats(ctx context.Context) (*dto.FeedbackStatsResponse, error) {
	avg, total, breakdown, err := s.support.FeedbackStats()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	entries := make([]dto.RatingEntry, 0, len(breakdown))
	for _, b := range breakdown {
		entries = append(entries, dto.RatingEntry{Stars: b.Stars, Count: b.Count})
	}

	return &dto.FeedbackStatsResponse{
		AverageRating:   math.Round(avg*10) / 10,
		TotalFeedbacks:  total,
		RatingBreakdown: entries,
	}, nil
}

func (s *SupportServiceImpl) CommunityPosts(ctx context.Context) ([]models.CommunityPost, error) {
	posts, err := s.support.FindCommunityPosts(communityPostLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return posts, nil
}

func (s *SupportServiceImpl) CreateCommunityPost(ctx context.Context, req dto.CreateCommunityPostRequest) (*models.CommunityPost, error) {
	if req.Title == "" || req.Body == "" {
		return nil, apperrors.NewBadRequestError("Faltan campos requeridos")
	}

	post := &models.CommunityPost{
		Title:  req.Title,
		Body:   req.Body,
		UserID: req.UserID,
	}
	if err := s.support.CreateCommunityPost(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}
