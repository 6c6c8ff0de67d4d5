package main

import (
	"github.com/joho/godotenv"

	"smartrent_backend/internal/app"
)

func main() {
	// Missing .env is fine, configuration falls back to config.yaml.
	_ = godotenv.Load()

	app.Run()
}
