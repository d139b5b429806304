package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/kartike996/chatterbox-post-service/bootstrap"
	"github.com/kartike996/chatterbox-post-service/configs"
	_ "github.com/kartike996/chatterbox-post-service/docs"
	"github.com/kartike996/chatterbox-post-service/internal/events"
	"github.com/kartike996/chatterbox-post-service/internal/repository"
	"github.com/kartike996/chatterbox-post-service/internal/routes"
	"github.com/kartike996/chatterbox-post-service/services"
)

// @title        ChatterBox Post Service API
// @version      1.0
// @description  CRUD for posts plus post-created event emission.
// @BasePath     /
func main() {
	cfg := configs.Load()

	// --- MongoDB Connection ---
	client := configs.ConnectMongo(cfg)
	defer configs.DisconnectMongo(client)

	if err := bootstrap.EnsurePostIndexes(client.Database(cfg.DBName)); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	// --- NATS Connection ---
	natsConn, err := events.Connect(cfg.NATSUrl)
	if err != nil {
		log.Fatalf("Failed to connect to NATS after retries: %v", err)
	}
	defer natsConn.Close()

	// --- Wiring ---
	repo := repository.NewMongoPostRepository(client, cfg.DBName)
	svc := services.NewPostService(repo, cfg.ContentMinLength, cfg.ContentMaxLength)
	pub := events.NewNATSPublisher(natsConn, cfg.PostCreatedSubject)

	// --- Fiber App Setup ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger docs
	app.Get("/docs/*", swagger.HandlerDefault)

	routes.Register(app, routes.Deps{
		Service:   svc,
		Publisher: pub,
	})

	log.Printf("listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
