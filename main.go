package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"jaba/internal/handlers"
	"jaba/internal/middleware"
	"jaba/internal/models"
	"jaba/internal/repositories"
	"jaba/internal/services"
	"jaba/pkg/rabbitmq"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite") // memory | sqlite | postgres
	viper.SetDefault("DATABASE_DSN", "jaba.db")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("SEED_CATEGORIES", "Governance,Treasury,Community")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client (optional) ---
	var events services.Publisher
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, governance events will not be published")
	}

	// --- Initialize Repositories ---
	repos := buildRepositories()

	// --- Initialize Services ---
	governanceService := services.NewGovernanceService(
		repos.users, repos.categories, repos.proposals, repos.comments, repos.votes, events,
	)
	authService := services.NewAuthService(repos.credentials, jwtSecret)

	// Seed the configured categories (duplicates are skipped on restart)
	seedCategories(governanceService, viper.GetString("SEED_CATEGORIES"))

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(governanceService)
	categoryHandler := handlers.NewCategoryHandler(governanceService)
	proposalHandler := handlers.NewProposalHandler(governanceService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Registry routes (require a caller principal)
	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protectedRoutes)
	categoryHandler.RegisterRoutes(protectedRoutes)
	proposalHandler.RegisterRoutes(protectedRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Downstream projections (notifications, analytics) hang off this queue;
	// the in-process consumer just logs what was published.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for governance events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received governance event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeGovernanceEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
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

// repositorySet bundles one implementation of every repository.
type repositorySet struct {
	users       repositories.UserRepository
	categories  repositories.CategoryRepository
	proposals   repositories.ProposalRepository
	comments    repositories.CommentRepository
	votes       repositories.VoteRepository
	credentials repositories.CredentialRepository
}

// buildRepositories selects the storage substrate from configuration:
// Collection-backed in-memory stores, or GORM over sqlite/postgres.
func buildRepositories() repositorySet {
	driver := viper.GetString("DATABASE_DRIVER")
	if driver == "memory" {
		log.Println("Using in-memory repositories (no durability)")
		return repositorySet{
			users:       repositories.NewMemoryUserRepository(),
			categories:  repositories.NewMemoryCategoryRepository(),
			proposals:   repositories.NewMemoryProposalRepository(),
			comments:    repositories.NewMemoryCommentRepository(),
			votes:       repositories.NewMemoryVoteRepository(),
			credentials: repositories.NewMemoryCredentialRepository(),
		}
	}

	dsn := viper.GetString("DATABASE_DSN")
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		log.Fatalf("Unknown DATABASE_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Proposal{},
		&models.Comment{},
		&models.Vote{},
		&models.Credential{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Using %s database at %s", driver, dsn)
	return repositorySet{
		users:       repositories.NewGORMUserRepository(db),
		categories:  repositories.NewGORMCategoryRepository(db),
		proposals:   repositories.NewGORMProposalRepository(db),
		comments:    repositories.NewGORMCommentRepository(db),
		votes:       repositories.NewGORMVoteRepository(db),
		credentials: repositories.NewGORMCredentialRepository(db),
	}
}

// seedCategories creates the configured comma-separated categories.
func seedCategories(service *services.GovernanceService, names string) {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category, err := service.CreateCategory(name)
		if err != nil {
			if services.HasCode(err, services.CodeDuplicateCategory) {
				continue // already seeded on a previous run
			}
			log.Printf("Error seeding category %s: %v", name, err)
			continue
		}
		log.Printf("Seeded category: %s (ID: %s)", category.Name, category.ID)
	}
}
