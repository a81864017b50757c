package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardapio-go/cart"
	"cardapio-go/config"
	"cardapio-go/events"
	"cardapio-go/handlers"
	"cardapio-go/logging"
	"cardapio-go/repository"
	"cardapio-go/services"
	"cardapio-go/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.Log.Level)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	/* DATABASE SETUP STARTS */
	db, err := repository.InitDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repository.Migrate(db); err != nil {
		return err
	}
	if err := repository.Seed(ctx, db); err != nil {
		return err
	}
	/* DATABASE SETUP ENDS */

	secret := cfg.JWT.Secret
	if secret == "" {
		// Only reachable in development; config validation rejects it elsewhere.
		secret = "development-only-secret"
		logger.Warn("jwt.secret not set, using an insecure development secret")
	}
	tokens, err := utils.NewTokenIssuer(secret, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	auth := services.NewAuthService(profileRepo, tokens)
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, err := auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return err
		}
		logger.Info("admin account ready", slog.String("email", cfg.Admin.Email))
	}

	broker := events.NewBroker()
	defer broker.Close()
	publishers := events.Multi{broker}
	if cfg.Kafka.Enabled {
		kafka, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			return err
		}
		defer kafka.Close()
		publishers = append(publishers, kafka)
	}

	store := cart.NewStore(cfg.Cart.SessionTTL)
	go store.Run(ctx, time.Minute)

	catalog := services.NewCatalogService(catalogRepo)
	coupons := services.NewCouponService(repository.NewPromotionRepository(db), cfg.Location())
	h := &handlers.Handler{
		Catalog: catalog,
		Coupons: coupons,
		Carts:   services.NewCartService(store, catalog, coupons),
		Checkout: services.NewCheckoutService(store, catalogRepo, orderRepo, coupons, publishers,
			services.PixSettings{Key: cfg.Pix.Key, MerchantCity: cfg.Pix.MerchantCity}, logger),
		Orders:        services.NewOrderService(orderRepo, publishers, logger),
		Auth:          auth,
		Settings:      services.NewSettingsService(repository.NewSettingsRepository(db)),
		Reports:       services.NewReportService(orderRepo),
		Feed:          broker,
		Tokens:        tokens,
		Log:           logger,
		SecureCookies: !cfg.IsDevelopment(),
	}

	/* ROUTING STARTS */
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	h.Register(router)
	/* ROUTING ENDS */

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", server.Addr), slog.String("env", cfg.App.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("graceful shutdown", slog.String("action", "shutdown"))
	// End open order streams so Shutdown does not wait on them.
	broker.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", handlers.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", handlers.SessionHeader, logging.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.IsDevelopment() {
		// Development: allow any origin while still sending credentials
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	return corsConfig
}
