package models

// Property lifecycle states.
const (
	PropertyStateDraft     = "draft"
	PropertyStatePublished = "published"
	PropertyStatePaused    = "paused"
	PropertyStateArchived  = "archived"
)

// Reservation statuses. Values are user-facing, hence Spanish.
const (
	ReservationPendiente  = "Pendiente"
	ReservationConfirmada = "Confirmada"
	ReservationCancelada  = "Cancelada"
)

// Payment statuses.
const (
	PaymentStatusPending    = "PENDING"
	PaymentStatusAuthorized = "AUTHORIZED"
	PaymentStatusFailed     = "FAILED"
)

// Subscription statuses.
const (
	SubscriptionActive  = "ACTIVE"
	SubscriptionExpired = "EXPIRED"
)

// Subscription plans with their CLP prices.
const (
	PlanBasic   = "BASIC"
	PlanPremium = "PREMIUM"
	PlanPro     = "PRO"
)

var PlanPrices = map[string]float64{
	PlanBasic:   4990,
	PlanPremium: 9990,
	PlanPro:     14990,
}

// Support ticket statuses.
const (
	TicketPendiente = "Pendiente"
	TicketEnProceso = "En proceso"
	TicketResuelto  = "Resuelto"
)

// Application status set on creation.
const ApplicationEnRevision = "En revisión"
