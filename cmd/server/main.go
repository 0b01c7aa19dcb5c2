package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/invoicing/internal/api"
	v1 "github.com/flexprice/invoicing/internal/api/v1"
	"github.com/flexprice/invoicing/internal/cache"
	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/notification"
	"github.com/flexprice/invoicing/internal/postgres"
	"github.com/flexprice/invoicing/internal/pubsub"
	"github.com/flexprice/invoicing/internal/pubsub/kafka"
	"github.com/flexprice/invoicing/internal/pubsub/memory"
	"github.com/flexprice/invoicing/internal/pyroscope"
	"github.com/flexprice/invoicing/internal/repository"
	"github.com/flexprice/invoicing/internal/sentry"
	"github.com/flexprice/invoicing/internal/service"
	"github.com/flexprice/invoicing/internal/tax"
	"github.com/flexprice/invoicing/internal/tracing"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/flexprice/invoicing/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Invoicing API
// @version 1.0
// @description Invoice lifecycle service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Postgres
			postgres.ProvideDB,
			postgres.ProvideClient,

			// PubSub
			providePubSub,

			// Tracing
			tracing.ProvideTracer,

			// Repositories
			repository.NewInvoiceRepository,

			// Collaborators
			tax.NewFlatRateCalculator,
			notification.NewNotifier,
			invoice.NewRandomNumberGenerator,
		),
	)

	// Monitoring
	opts = append(opts,
		sentry.Module(),
		pyroscope.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewInvoiceService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// providePubSub selects the notification transport and closes it on shutdown.
// The notifier only needs the publishing half.
func providePubSub(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (pubsub.PubSub, pubsub.Publisher, error) {
	var (
		ps  pubsub.PubSub
		err error
	)

	switch cfg.Notification.PubSub {
	case types.KafkaPubSub:
		ps, err = kafka.NewPubSub(cfg, log)
		if err != nil {
			return nil, nil, err
		}
	default:
		ps = memory.NewPubSub(log)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing pubsub")
			return ps.Close()
		},
	})

	return ps, ps, nil
}

func provideHandlers(
	logger *logger.Logger,
	invoiceService service.InvoiceService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(logger),
		Invoice: v1.NewInvoiceHandler(invoiceService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, sentrySvc)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	ps pubsub.PubSub,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startNotificationLogger(lc, ps, cfg, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

// startNotificationLogger drains the notification topic in local mode so that
// issued invoices are visible without an external consumer.
func startNotificationLogger(
	lc fx.Lifecycle,
	ps pubsub.PubSub,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			messages, err := ps.Subscribe(ctx, cfg.Notification.Topic)
			if err != nil {
				return err
			}

			go func() {
				for msg := range messages {
					payload, err := notification.DecodeInvoiceIssued(msg)
					if err != nil {
						log.Errorw("failed to decode notification", "message_uuid", msg.UUID, "error", err)
						msg.Nack()
						continue
					}

					log.Infow("invoice notification delivered",
						"invoice_number", payload.InvoiceNumber,
						"tenant_id", payload.TenantID,
						"customer_email", payload.CustomerEmail,
						"total", payload.Total.String(),
					)
					msg.Ack()
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			log.Info("Shutting down notification logger...")
			cancel()
			return nil
		},
	})
}
