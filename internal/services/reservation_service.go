package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartrent_backend/internal/logger"
	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

type ReservationService interface {
	Create(ctx context.Context, userID uint, req dto.CreateReservationRequest) (*models.Reservation, error)
	Mine(ctx context.Context, userID uint) ([]models.Reservation, error)
	Received(ctx context.Context, ownerID uint) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Reservation, error)
	Cancel(ctx context.Context, id, userID uint) error
}

type ReservationServiceImpl struct {
	reservations repositories.ReservationRepository
	users        repositories.UserRepository
	properties   repositories.PropertyRepository
}

func NewReservationService(
	reservations repositories.ReservationRepository,
	users repositories.UserRepository,
	properties repositories.PropertyRepository,
) ReservationService {
	return &ReservationServiceImpl{
		reservations: reservations,
		users:        users,
		properties:   properties,
	}
}

// buildMessage folds the contact fields into a single text blob, the
// format the owner-facing apps already display.
func buildMessage(req dto.CreateReservationRequest) string {
	var parts []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			if label == "" {
				parts = append(parts, v)
			} else {
				parts = append(parts, fmt.Sprintf("%s: %s", label, v))
			}
		}
	}

	add("", firstNonEmpty(req.Mensaje, req.Message, req.Detalles))
	add("Nombre", firstNonEmpty(req.Nombre, req.Name))
	add("Correo", firstNonEmpty(req.Correo, req.Email))
	add("Teléfono", firstNonEmpty(req.Telefono, req.Whatsapp, req.Phone))
	add("Tipo de uso", firstNonEmpty(req.TipoUso, req.Uso, req.UseType))
	add("Contacto preferido", firstNonEmpty(req.ContactoPreferido, req.PreferredContact))

	if len(parts) == 0 {
		return "Solicitud de reserva desde la app."
	}
	return strings.Join(parts, " | ")
}

func parseDateOr(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return fallback
}

func (s *ReservationServiceImpl) Create(ctx context.Context, userID uint, req dto.CreateReservationRequest) (*models.Reservation, error) {
	propertyID := req.PropertyID()
	if propertyID == nil {
		return nil, apperrors.NewBadRequestError("property_id / propiedad_id es requerido")
	}

	// Both foreign keys are verified up front so a bad reference fails
	// with a clear message instead of a constraint error.
	if _, err := s.users.FindByID(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("Usuario %d no existe", userID))
		}
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.properties.FindByID(*propertyID); err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("Propiedad %d no existe", *propertyID))
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	people := 1
	if req.Personas != nil && *req.Personas > 0 {
		people = *req.Personas
	}

	reservation := &models.Reservation{
		UserID:     userID,
		PropertyID: *propertyID,
		StartDate:  parseDateOr(firstNonEmpty(req.FechaInicio, req.StartDate), now),
		EndDate:    parseDateOr(firstNonEmpty(req.FechaFin, req.EndDate), now.Add(24*time.Hour)),
		Message:    buildMessage(req),
		People:     people,
		Status:     models.ReservationPendiente,
	}

	if err := s.reservations.Create(reservation); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.properties.IncrementReservas(*propertyID); err != nil {
		logger.CtxWarn(ctx, "failed to count reservation", "property_id", *propertyID, "error", err)
	}

	logger.CtxInfo(ctx, "reservation created", "reservation_id", reservation.ID)
	return reservation, nil
}

func (s *ReservationServiceImpl) Mine(ctx context.Context, userID uint) ([]models.Reservation, error) {
	reservations, err := s.reservations.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reservations, nil
}

func (s *ReservationServiceImpl) Received(ctx context.Context, ownerID uint) ([]models.Reservation, error) {
	reservations, err := s.reservations.FindReceived(ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reservations, nil
}

func (s *ReservationServiceImpl) UpdateStatus(ctx context.Context, id uint, status string) (*models.Reservation, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperrors.NewBadRequestError("Debe indicar el nuevo estado")
	}

	reservation, err := s.reservations.UpdateStatus(id, status)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReservationNotFound) {
			return nil, apperrors.NewNotFoundError("reservations", "Reserva no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}
	return reservation, nil
}

func (s *ReservationServiceImpl) Cancel(ctx context.Context, id, userID uint) error {
	err := s.reservations.CancelOwn(id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReservationNotFound) {
			return apperrors.NewNotFoundError("reservations", "Reserva no encontrada")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
