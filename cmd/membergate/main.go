package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/vidsht/Membership-Model-sub002/internal/app"
	"github.com/vidsht/Membership-Model-sub002/internal/config"
)

func main() {
	// .env is optional; deployment environments set real variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
