package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/niastore/nia-storefront/api/routes"
	"github.com/niastore/nia-storefront/internal/auth"
	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/internal/checkout"
	"github.com/niastore/nia-storefront/internal/media"
	"github.com/niastore/nia-storefront/internal/messages"
	"github.com/niastore/nia-storefront/internal/notifications"
	"github.com/niastore/nia-storefront/internal/orders"
	"github.com/niastore/nia-storefront/internal/products"
	"github.com/niastore/nia-storefront/internal/users"
	"github.com/niastore/nia-storefront/pkg/auth/session"
	"github.com/niastore/nia-storefront/pkg/config"
	"github.com/niastore/nia-storefront/pkg/db"
	"github.com/niastore/nia-storefront/pkg/logger"
	"github.com/niastore/nia-storefront/pkg/mail"
	"github.com/niastore/nia-storefront/pkg/metrics"
	"github.com/niastore/nia-storefront/pkg/migrate"
	"github.com/niastore/nia-storefront/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	productRepo := products.NewRepository(dbClient.DB())
	if cfg.App.IsDev() && cfg.FeatureFlags.SeedSampleData {
		inserted, seedErr := products.SeedSamples(ctx, productRepo)
		if seedErr != nil {
			return seedErr
		}
		logg.Info(logg.WithField(ctx, "inserted", inserted), "sample catalogue seeded")
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	storeMetrics := metrics.NewStorefrontMetrics(registry)

	authService, err := auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return err
	}
	if admin, created, adminErr := authService.EnsureAdmin(ctx, cfg.Admin); adminErr != nil {
		return adminErr
	} else if created {
		logg.Info(logg.WithField(ctx, "email", admin.Email), "default admin created")
	}

	productService, err := products.NewService(productRepo)
	if err != nil {
		return err
	}

	cartStore, err := cart.NewSessionStore(redisClient, cfg.Session.VisitorTTL)
	if err != nil {
		return err
	}
	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    cartStore,
		Products: productService,
		Metrics:  storeMetrics,
	})
	if err != nil {
		return err
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		DB:      dbClient,
		Carts:   cartStore,
		Logger:  logg,
		Metrics: storeMetrics,
	})
	if err != nil {
		return err
	}

	dispatcher := notifications.NewDispatcher(notifications.DispatcherParams{
		Sender:    mail.NewClient(cfg.Mail),
		Recipient: cfg.Mail.NotifyEmail,
		Logger:    logg,
		Metrics:   storeMetrics,
	})
	messageService, err := messages.NewService(messages.NewRepository(dbClient.DB()), dispatcher)
	if err != nil {
		return err
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}

	images, err := media.NewDiskStore(cfg.App.StaticDir, cfg.Uploads.MaxBytes())
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			DB:       dbClient,
			Redis:    redisClient,
			Store:    redisClient,
			Sessions: sessionManager,
			Gatherer: registry,
			Observer: httpMetrics,
			Auth:     authService,
			Products: productService,
			Cart:     cartService,
			Checkout: checkoutService,
			Messages: messageService,
			Orders:   orderService,
			Images:   images,
		}),
	}

	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"dialect": dbClient.Dialect(),
		"mail":    cfg.Mail.Enabled(),
	})
	logg.Info(serverCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(serverCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
