package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/postloom/publisher-api/configs"
	"github.com/postloom/publisher-api/internal/api/handlers"
	"github.com/postloom/publisher-api/internal/api/middleware"
	"github.com/postloom/publisher-api/internal/graph"
	job "github.com/postloom/publisher-api/internal/jobs"
	"github.com/postloom/publisher-api/internal/queue"
	"github.com/postloom/publisher-api/internal/repository"
	"github.com/postloom/publisher-api/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    25 * 1024 * 1024, // 25 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	socialAccountRepo := repository.NewSocialAccountRepository(db)
	contentRepo := repository.NewContentRepository(db)
	publishedPostRepo := repository.NewPublishedPostRepository(db)
	publishFailureRepo := repository.NewPublishFailureRepository(db)

	graphClient := graph.NewClient(cfg.GraphBaseURL)

	mediaService := service.NewMediaService(*cfg)
	accountService := service.NewAccountService(*cfg, graphClient, socialAccountRepo)
	tokenService := service.NewTokenService(*cfg, graphClient, socialAccountRepo)
	contentService := service.NewContentService(contentRepo, mediaService)

	resolver := service.NewAccountResolver(socialAccountRepo)
	verifier := service.NewPermissionVerifier(graphClient)
	feedPublisher := service.NewFeedPublisher(graphClient)
	mediaPublisher := service.NewMediaPublisher(graphClient)
	publishService := service.NewPublishService(*cfg, contentRepo, publishedPostRepo, publishFailureRepo,
		resolver, verifier, feedPublisher, mediaPublisher)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	platform := handlers.NewPlatformHandler(accountService, tokenService, *cfg)
	app.Get("/auth/:platform", platform.AddSocialAccount)
	app.Get("/auth/:platform/callback", platform.CallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	// social accounts api routes
	api.Get("/accounts", platform.ListSocialAccounts)
	api.Post("/accounts/remove", platform.DeleteSocialAccount)
	api.Post("/accounts/refresh", platform.RefreshToken)

	content := handlers.NewContentHandler(contentService)
	api.Post("/content/create", content.CreateContent)
	api.Get("/content", content.ListContent)
	api.Post("/content/remove", content.RemoveContent)

	publish := handlers.NewPublishHandler(publishService, client)
	api.Post("/publish", publish.Publish)
	api.Get("/publish/history", publish.History)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(socialAccountRepo, tokenService)

	//queue
	queueW := queue.NewQueue(publishService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishContent, queueW.HandlePublishTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
