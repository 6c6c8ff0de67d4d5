package database

import (
	"fmt"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

// Migrate runs the schema migration and creates the indexes AutoMigrate
// cannot express.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Property{},
		&models.Job{},
		&models.Application{},
		&models.Reservation{},
		&models.SubscriptionPayment{},
		&models.ActiveSubscription{},
		&models.Invoice{},
		&models.SupportTicket{},
		&models.Feedback{},
		&models.CommunityPost{},
		&models.Faq{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// At most one ACTIVE subscription per user. The partial index makes
	// concurrent activations collide instead of racing; works on both
	// postgres and sqlite.
	err = db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_active_subscriptions_one_active
		 ON active_subscriptions (user_id) WHERE status = 'ACTIVE'`,
	).Error
	if err != nil {
		return fmt.Errorf("create active subscription index: %w", err)
	}

	return nil
}
