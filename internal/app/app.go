package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartrent_backend/database"
	"smartrent_backend/internal/auth"
	"smartrent_backend/internal/config"
	"smartrent_backend/internal/gateway/webpay"
	"smartrent_backend/internal/handlers"
	"smartrent_backend/internal/logger"
	"smartrent_backend/internal/mailer"
	"smartrent_backend/internal/middleware"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/routes"
	"smartrent_backend/internal/services"
	"smartrent_backend/internal/uploads"
	"smartrent_backend/internal/validator"
	"smartrent_backend/internal/workers"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	router, err := SetupRouter(cfg, db)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	worker := workers.NewSubscriptionWorker(repositories.NewSubscriptionRepository(db))
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin
// engine. Split from Run so tests can build the full HTTP surface
// against their own database.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	processor, err := uploads.NewProcessor(cfg.Public.UploadsDir)
	if err != nil {
		return nil, err
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTLHours)
	jwtAuth := middleware.Auth(jwtManager)
	mail := mailer.New(cfg)
	gateway := webpay.NewClient(cfg)
	validate := validator.New()

	userRepo := repositories.NewUserRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	supportRepo := repositories.NewSupportRepository(db)

	authService := services.NewAuthService(userRepo, jwtManager, mail)
	userService := services.NewUserService(userRepo)
	companyService := services.NewCompanyService(companyRepo, validate)
	propertyService := services.NewPropertyService(propertyRepo, cfg.Public.BaseURL)
	jobService := services.NewJobService(jobRepo, validate)
	reservationService := services.NewReservationService(reservationRepo, userRepo, propertyRepo)
	paymentService := services.NewPaymentService(subscriptionRepo, userRepo, gateway, cfg.Webpay.ConfirmURL)
	invoiceService := services.NewInvoiceService(invoiceRepo, subscriptionRepo, userRepo, mail, cfg.Public.PublicDir)
	supportService := services.NewSupportService(supportRepo)
	estadisticasService := services.NewEstadisticasService(propertyRepo, reservationRepo)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(authService),
		UserHandler:         handlers.NewUserHandler(userService, processor, jwtAuth),
		CompanyHandler:      handlers.NewCompanyHandler(companyService, jwtAuth),
		PropertyHandler:     handlers.NewPropertyHandler(propertyService, jwtAuth),
		JobHandler:          handlers.NewJobHandler(jobService, jwtAuth),
		ReservationHandler:  handlers.NewReservationHandler(reservationService, jwtAuth),
		SubscriptionHandler: handlers.NewSubscriptionHandler(paymentService, cfg, jwtAuth),
		InvoiceHandler:      handlers.NewInvoiceHandler(invoiceService, jwtAuth),
		SupportHandler:      handlers.NewSupportHandler(supportService, jwtAuth),
		EstadisticasHandler: handlers.NewEstadisticasHandler(estadisticasService, jwtAuth),
		UploadHandler:       handlers.NewUploadHandler(processor, jwtAuth),
	}

	router := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(router, appHandlers, cfg.Public.UploadsDir, cfg.Public.PublicDir)
	return router, nil
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS())
	router.Use(middleware.Database(db))
	return router
}
