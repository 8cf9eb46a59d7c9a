package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"project/backend/config"
	"project/backend/logger"
	"project/backend/middleware"
	"project/backend/realtime"
	"project/backend/routes"
	"project/backend/session"
	"project/backend/utils"
	"project/backend/workflow"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer appLog.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		appLog.Fatal("initialize database", "error", err)
	}

	// Session store (redis)
	sessions, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		appLog.Fatal("connect redis", "error", err)
	}
	defer sessions.Close()

	// Realtime: local hub fed through the redis bus so every instance
	// sees every event.
	hub := realtime.NewHub(appLog)
	bus := realtime.NewBus(sessions.Client(), "chapter-events", appLog)
	if err := bus.StartForwarder(context.Background(), hub); err != nil {
		appLog.Fatal("start event forwarder", "error", err)
	}

	// Outbound workflow engine client
	wf := workflow.NewN8NClient(cfg.N8NWebhookURL)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(appLog))

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Sessions: sessions,
		Hub:      hub,
		Events:   bus,
		Workflow: wf,
		Log:      appLog,
	})

	// Start server
	appLog.Fatal("server stopped", "error", app.Listen(":"+cfg.ServerPort))
}
