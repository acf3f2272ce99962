package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"solohunter/backend/config"
	"solohunter/backend/events"
	"solohunter/backend/middleware"
	"solohunter/backend/ratelimit"
	"solohunter/backend/routes"
	"solohunter/backend/store"
	"solohunter/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Firebase-Uid",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Wire the core services
	adapter := store.NewAdapter(db)
	bus := events.NewBus()
	bus.Subscribe(func(e events.Event) {
		logger.Printf("event %s user=%d", e.Kind, e.UserID)
	})

	routes.SetupRoutes(app, routes.Deps{
		Store:   adapter,
		Hub:     store.NewHub(),
		Bus:     bus,
		Limiter: ratelimit.New(),
		Cfg:     cfg,
	})

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
