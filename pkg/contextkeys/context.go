package contextkeys

// Custom type so the key cannot collide with other context values.
type contextKey string

// DBContextKey is the key under which the *gorm.DB (pool or transaction)
// is stored in the request context.
const DBContextKey = contextKey("db")
