package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gerai/internal/config"
	"gerai/internal/handlers"
	"gerai/internal/middleware"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"
	"gerai/pkg/mailer"
	"gerai/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	if cfg.AppSecret == "" {
		log.Fatal("APP_SECRET must be set: it signs every session token")
	}

	// --- Database ---
	db, err := openDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Item{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{})
	if err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- RabbitMQ ---
	// The broker carries reset mails and cart/order events; none of them are
	// required for request correctness, so a missing broker degrades to
	// warnings instead of refusing to start.
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, notifications disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	app := setupApp(cfg, db, mqClient)

	// --- Consumers ---
	if mqClient != nil {
		// Mail delivery worker: drains queued mail jobs. The delivery
		// backend is the log mailer until an SMTP transport is plugged in.
		deliver := mailer.LogMailer{}
		err := mqClient.Consume(rabbitmq.NotificationQueue, func(msg amqp.Delivery) error {
			var job mailer.Job
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("Dropping malformed mail job: %v", err)
				return nil
			}
			return deliver.SendMail(job.To, job.Subject, job.HTMLBody)
		})
		if err != nil {
			log.Printf("Failed to start mail consumer: %v", err)
		}

		err = mqClient.Consume(rabbitmq.CartQueue, func(msg amqp.Delivery) error {
			log.Printf("Received store event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		})
		if err != nil {
			log.Printf("Failed to start event consumer: %v", err)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase picks the GORM driver from the URL: anything that looks like
// a postgres DSN goes to the postgres driver, everything else is treated as
// a SQLite path.
func openDatabase(url string) (*gorm.DB, error) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return gorm.Open(postgres.Open(url), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(url), &gorm.Config{})
}

// setupApp wires repositories, services and handlers into a Fiber app.
// mqClient may be nil; event publishing and reset mails then degrade to
// log warnings.
func setupApp(cfg config.Config, db *gorm.DB, mqClient *rabbitmq.Client) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	tokenService := services.NewTokenService(cfg.AppSecret)
	var mail mailer.Mailer
	if mqClient != nil {
		mail = mailer.NewQueueMailer(mqClient)
	}
	accountService := services.NewAccountService(userRepo, tokenService, mail, cfg.FrontendURL, cfg.BcryptCost)
	userService := services.NewUserService(userRepo)
	itemService := services.NewItemService(itemRepo)
	cartService := services.NewCartService(cartRepo, itemRepo, mqClient)
	orderService := services.NewOrderService(orderRepo, itemRepo, mqClient)

	// --- Handlers ---
	accountHandler := handlers.NewAccountHandler(accountService, cfg.CookieMaxAge)
	userHandler := handlers.NewUserHandler(userService)
	itemHandler := handlers.NewItemHandler(itemService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	// Session resolution runs once per request, before every handler.
	app.Use(middleware.Session(tokenService, userRepo))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	accountHandler.RegisterRoutes(apiV1)
	userHandler.RegisterRoutes(apiV1)
	itemHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
