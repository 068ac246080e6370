package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"github.com/fadilmartias/ai-assessment/internal/domain/fiber/handler"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/service"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Run the job management API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := ConnectDB(log)
		if err != nil {
			return err
		}
		if err := Migrate(db); err != nil {
			return err
		}

		var embedder service.Embedder
		if geminiConfig := config.LoadGeminiConfig(); geminiConfig.APIKey != "" {
			e, err := service.NewGeminiEmbedder(ctx, geminiConfig, config.LoadLLMConfig(), log)
			if err != nil {
				return err
			}
			embedder = e
		} else {
			log.Warn("GEMINI_API_KEY not set, job search is disabled")
		}

		cache, err := newJobCache(ctx, log)
		if err != nil {
			return err
		}

		jobRepo := repository.NewJobRepository(db)
		entityRepo := repository.NewEntityRepository(db)
		criteriaRepo := repository.NewCriteriaRepository(db)

		appConfig := config.LoadAppConfig()
		app := newApp(appConfig.Name + "-jobs")
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "healthy", "embeddings": embedder != nil})
		})
		handler.NewEntityHandler(usecase.NewEntityUsecase(entityRepo)).RegisterRoutes(app)
		handler.NewJobHandler(usecase.NewJobUsecase(jobRepo, entityRepo, criteriaRepo, embedder, cache, log)).RegisterRoutes(app)
		handler.NewCriteriaHandler(usecase.NewCriteriaUsecase(criteriaRepo, jobRepo, cache, log)).RegisterRoutes(app)

		log.Info("job management API starting", zap.String("port", appConfig.JobsPort))
		return listen(ctx, app, appConfig.JobsPort, log)
	},
}
