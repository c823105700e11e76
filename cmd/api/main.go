package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/llmath/problems-api/internal/config"
	"github.com/llmath/problems-api/internal/database"
	"github.com/llmath/problems-api/internal/handler"
	"github.com/llmath/problems-api/internal/middleware"
	"github.com/llmath/problems-api/internal/repository"
	"github.com/llmath/problems-api/internal/router"
	"github.com/llmath/problems-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	client, err := database.ConnectMongo(context.Background(), cfg.MongoConnectionURI())
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}

	db := client.Database(cfg.MongoDB)

	validate := validator.New(validator.WithRequiredStructEnabled())

	problemRepo := repository.NewProblemRepository(db.Collection(database.ProblemsCollection))
	typeTagRepo := repository.NewTagRepository(
		db.Collection(database.TypesCollection),
		db.Collection(database.TypeBindingCollection),
		"type_name", "type_id",
	)
	nameTagRepo := repository.NewTagRepository(
		db.Collection(database.NamesCollection),
		db.Collection(database.NameBindingCollection),
		"name", "name_id",
	)

	problemService := service.NewProblemService(problemRepo, typeTagRepo, validate, logger)
	typeTagging := service.NewTaggingService(service.TypeScheme, typeTagRepo, problemRepo, logger)
	nameTagging := service.NewTaggingService(service.NameScheme, nameTagRepo, problemRepo, logger)

	problemHandler := handler.NewProblemHandler(problemService, logger)
	taggingHandler := handler.NewTaggingHandler(typeTagging, nameTagging, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins(),
	})
	router.Register(app, cfg, router.Dependencies{
		ProblemHandler: problemHandler,
		TaggingHandler: taggingHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
