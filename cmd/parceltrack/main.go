package main

import (
	"context"
	"log/slog"
	"os"

	"parceltrack/config"
	"parceltrack/internal/delivery"
	"parceltrack/internal/delivery/http"
	"parceltrack/internal/delivery/http/middleware"
	"parceltrack/internal/delivery/http/router/handler"
	"parceltrack/internal/domain/pricing"
	"parceltrack/internal/domain/service"
	"parceltrack/internal/domain/tracking"
	"parceltrack/internal/infra/auth"
	"parceltrack/internal/infra/broadcast"
	logs "parceltrack/internal/infra/log"
	"parceltrack/internal/infra/notification"
	"parceltrack/internal/infra/persistence/postgres"
	"parceltrack/internal/infra/pubsub"
	"parceltrack/internal/infra/qrcode"
	"parceltrack/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewParcelRepository,
			postgres.NewAddressRepository,
			postgres.NewStatusUpdateRepository,
			postgres.NewAgentRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			auth.NewMemoryRevocationRegistry,
			pubsub.NewEventPublisher,
			notification.NewWebhookService,
			newQRCodeService,
			newBroadcaster,
			newTrackingIssuer,
			newPricingEngine,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// newBroadcaster creates the in-process status event fan-out.
func newBroadcaster(logger *slog.Logger) service.Broadcaster {
	return broadcast.NewHub(logger)
}

// newTrackingIssuer creates the tracking code issuer from configuration.
func newTrackingIssuer(cfg *config.Config) (*tracking.Issuer, error) {
	return tracking.NewIssuer(cfg.Tracking.Prefix)
}

// newPricingEngine creates the shipping cost engine from configuration.
func newPricingEngine(cfg *config.Config) *pricing.Engine {
	return pricing.NewEngine(cfg.Shipping.MinimumCharge)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewParcelService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestContextMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewParcelHandler,
			handler.NewTrackingHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
