// Package cityclassifieds assembles the HTTP API: storage, cache, blob
// store, broker and every service behind the router.
package cityclassifieds

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/city-classifieds/internal/blob"
	"github.com/magabrotheeeer/city-classifieds/internal/cache"
	"github.com/magabrotheeeer/city-classifieds/internal/config"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/jwt"
	librabbit "github.com/magabrotheeeer/city-classifieds/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/city-classifieds/internal/migrations"
	"github.com/magabrotheeeer/city-classifieds/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/city-classifieds/internal/services/auth"
	listingservice "github.com/magabrotheeeer/city-classifieds/internal/services/listing"
	messageservice "github.com/magabrotheeeer/city-classifieds/internal/services/message"
	newsservice "github.com/magabrotheeeer/city-classifieds/internal/services/news"
	notificationservice "github.com/magabrotheeeer/city-classifieds/internal/services/notification"
	paymentservice "github.com/magabrotheeeer/city-classifieds/internal/services/payment"
	profileservice "github.com/magabrotheeeer/city-classifieds/internal/services/profile"
	"github.com/magabrotheeeer/city-classifieds/internal/storage/repository"
)

// App is the assembled HTTP API process.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

// New connects every backing service and builds the router. The broker
// is optional: without RABBIT_URL the API runs with in-app notifications
// only.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	blobStore, err := blob.New(ctx, cfg.BlobConnectionString, cfg.BlobDatabase)
	if err != nil {
		return nil, err
	}

	var amqpConn *amqp.Connection
	var publisher notificationservice.Publisher
	if cfg.RabbitURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitURL, 5, 3*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.DeliveryQueues)
		if err != nil {
			return nil, err
		}
		publisher = librabbit.NewPublisher(ch, rabbitmq.Exchange)
	} else {
		logger.Warn("RABBIT_URL is empty, e-mail delivery disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	hub := notificationservice.NewHub()

	authService := authservice.New(db, jwtMaker)
	notifService := notificationservice.New(db, db, hub, publisher, logger)
	listingService := listingservice.New(db, cacheRedis, notifService, logger)
	messageService := messageservice.New(db, db, notifService, logger)
	newsService := newsservice.New(db, logger)
	paymentService := paymentservice.New(db, db, notifService, cfg.Payments, logger)
	profileService := profileservice.New(db, blobStore, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:          authService,
		Listings:      listingService,
		Messages:      messageService,
		News:          newsService,
		Notifications: notifService,
		Payments:      paymentService,
		Profiles:      profileService,
	})

	router.Get("/docs/*", httpSwagger.WrapHandler)

	// WriteTimeout stays zero: the event stream endpoint holds its
	// response open indefinitely.
	srv := &http.Server{
		Addr:        cfg.AddressHTTP,
		Handler:     router,
		ReadTimeout: cfg.TimeoutHTTP,
		IdleTimeout: cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		if a.amqp != nil {
			_ = a.amqp.Close()
		}
		return err
	}
}
