package handlers

// AppHandlers groups every HTTP handler so wiring and route
// registration stay in one place.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	CompanyHandler      *CompanyHandler
	PropertyHandler     *PropertyHandler
	JobHandler          *JobHandler
	ReservationHandler  *ReservationHandler
	SubscriptionHandler *SubscriptionHandler
	InvoiceHandler      *InvoiceHandler
	SupportHandler      *SupportHandler
	EstadisticasHandler *EstadisticasHandler
	UploadHandler       *UploadHandler
}
