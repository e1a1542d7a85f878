package main

import (
	"context"
	"time"

	"github.com/facturo/facturo/internal/api"
	v1 "github.com/facturo/facturo/internal/api/v1"
	"github.com/facturo/facturo/internal/config"
	"github.com/facturo/facturo/internal/domain/invoice"
	"github.com/facturo/facturo/internal/logger"
	"github.com/facturo/facturo/internal/repository"
	"github.com/facturo/facturo/internal/service"
	"github.com/facturo/facturo/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Load .env if present; real config comes from config.yaml + env
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Invoice builder with production clock and id sources
			provideBuilder,

			// Repositories
			repository.NewInvoiceRepository,

			// Services
			service.NewInvoiceService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideBuilder() *invoice.Builder {
	return invoice.NewBuilder()
}

func provideHandlers(
	invoiceService service.InvoiceService,
	logger *logger.Logger,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(),
		Invoice: v1.NewInvoiceHandler(invoiceService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
