package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"github.com/fadilmartias/ai-assessment/internal/domain/fiber/handler"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/service"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assessment API",
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

		gateway, err := newGateway(ctx, log)
		if err != nil {
			return err
		}
		store, err := newJobStore(ctx, db, log)
		if err != nil {
			return err
		}

		llmConfig := config.LoadLLMConfig()
		ledger := usecase.NewUsageLedger(repository.NewUsageRepository(db), config.LoadUsageConfig().TrackUsage, log)
		uc := usecase.NewAssessmentUsecase(store, repository.NewResultRepository(db), ledger, gateway, llmConfig.Concurrency, log)

		appConfig := config.LoadAppConfig()
		app := newApp(appConfig.Name)
		app.Get("/", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"service": appConfig.Name,
				"endpoints": []string{
					"POST /api/min-qualification/assess",
					"POST /api/min-qualification/batch-assess",
					"POST /api/min-qualification/preview",
					"POST /api/formal-assessment/assess",
					"POST /api/formal-assessment/batch-assess",
					"POST /api/formal-assessment/preview",
					"GET /api/usage/stats",
				},
			})
		})
		app.Get("/health", healthHandler(gateway))
		handler.NewAssessmentHandler(uc).RegisterRoutes(app)
		handler.NewUsageHandler(ledger).RegisterRoutes(app)

		go monitorGoroutines(ctx, log)

		log.Info("assessment API starting",
			zap.String("port", appConfig.Port),
			zap.String("llm_provider", llmConfig.Provider),
			zap.String("ai_model", gateway.Model()),
			zap.String("job_store", config.LoadJobServiceConfig().Store),
		)
		return listen(ctx, app, appConfig.Port, log)
	},
}

func newGateway(ctx context.Context, log *zap.Logger) (service.LanguageModelGateway, error) {
	llmConfig := config.LoadLLMConfig()
	switch llmConfig.Provider {
	case config.ProviderGemini:
		return service.NewGeminiGateway(ctx, config.LoadGeminiConfig(), llmConfig, log)
	case config.ProviderOpenAI, "":
		return service.NewOpenAIGateway(llmConfig, log)
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", llmConfig.Provider)
	}
}

func newJobStore(ctx context.Context, db *gorm.DB, log *zap.Logger) (repository.JobStore, error) {
	jobServiceConfig := config.LoadJobServiceConfig()

	var store repository.JobStore
	switch jobServiceConfig.Store {
	case config.JobStoreLocal:
		store = repository.NewLocalJobStore(repository.NewJobRepository(db), repository.NewCriteriaRepository(db))
	case config.JobStoreHTTP, "":
		store = repository.NewHTTPJobStore(jobServiceConfig)
	default:
		return nil, fmt.Errorf("unsupported JOB_STORE %q", jobServiceConfig.Store)
	}

	cache, err := newJobCache(ctx, log)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		store = repository.NewCachedJobStore(store, cache, log)
	}
	return store, nil
}

// newJobCache returns nil when REDIS_URL is unset.
func newJobCache(ctx context.Context, log *zap.Logger) (*repository.JobCache, error) {
	redisConfig := config.LoadRedisConfig()
	if redisConfig.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisConfig.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, cache reads will fall through", zap.Error(err))
	}
	return repository.NewJobCache(rdb, redisConfig.CriteriaTTL), nil
}

type circuitBreaker interface {
	CircuitBreakerStatus() (consecutiveErrors int, isOpen bool)
}

func healthHandler(gateway service.LanguageModelGateway) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":   "healthy",
			"ai_model": gateway.Model(),
		}
		if cb, ok := gateway.(circuitBreaker); ok {
			consecutiveErrors, open := cb.CircuitBreakerStatus()
			body["circuit_breaker"] = fiber.Map{"consecutive_errors": consecutiveErrors, "open": open}
			if open {
				body["status"] = "degraded"
			}
		}
		return c.JSON(body)
	}
}

func listen(ctx context.Context, app *fiber.App, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}

func monitorGoroutines(ctx context.Context, log *zap.Logger) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
		}
	}
}
