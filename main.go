package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/SeniduRavihara/usj-event-calendar/auth"
	"github.com/SeniduRavihara/usj-event-calendar/config"
	"github.com/SeniduRavihara/usj-event-calendar/database"
	"github.com/SeniduRavihara/usj-event-calendar/middleware"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: .env file not found, using system environment variables")
	}
}

func main() {
	// Load .env variables
	LoadEnv()
	cfg := config.Load()

	// Connect DB, migrate, seed admin if configured
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Token service holds the signing secret; nothing reads env after this.
	tokens := auth.NewService(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	SetupRoutes(r, cfg, tokens)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
