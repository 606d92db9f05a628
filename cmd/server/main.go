package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proply_app_go/config"
	"proply_app_go/handlers"
	"proply_app_go/logging"
	"proply_app_go/middleware"
	"proply_app_go/services"
	"proply_app_go/services/i18n"
	"proply_app_go/services/leadform"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	cfg.LogNotes(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	loaded, err := i18n.Load()
	if err != nil {
		return err
	}
	logger.Info("translations loaded", zap.Any("keys", loaded))

	content, err := config.LoadContent(cfg.ContentPath)
	if err != nil {
		return err
	}

	middleware.InitAssetVersions("static", logger)

	// Services
	brevo := services.NewBrevoClient(services.BrevoConfig{
		APIKey:        cfg.BrevoAPIKey,
		DefaultListID: cfg.BrevoListID,
		BaseURL:       cfg.BrevoBaseURL,
	})
	notifier := services.NewEmailLeadNotifier(services.NewResendSender(cfg, logger), cfg.LeadNotifyTo, "en")
	subscriber := services.NewSubscriber(brevo, notifier, logger)

	policy := leadform.RetainOnReopen
	if cfg.SurveyResetOnOpen {
		policy = leadform.ResetSurveyOnOpen
	}
	modals := handlers.NewLeadModalHandler(content, subscriber, cfg.BetaConfirmDelay, policy)
	landing := handlers.NewLandingHandler(content, modals, cfg.SurveyResetOnOpen)

	subscribeLimiter := middleware.NewSubscribeRateLimiter()
	defer subscribeLimiter.Stop()
	formLimiter := middleware.NewLeadFormRateLimiter()
	defer formLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	e.GET("/", landing.Show)
	e.GET("/health", handlers.HealthHandler)

	e.POST("/api/subscribe", handlers.SubscribeHandler(subscriber), subscribeLimiter.Middleware())

	leads := e.Group("/leads")
	leads.GET("/:variant", modals.Show)
	leads.Use(formLimiter.Middleware())
	{
		leads.POST("/waitlist", modals.SubmitWaitlist)
		leads.POST("/beta", modals.SubmitBeta)
		leads.POST("/beta/confirm", modals.ConfirmBeta)
		leads.POST("/beta/back", modals.BackBeta)
		leads.POST("/:variant/open", modals.Open)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", zap.String("port", cfg.ServerPort), zap.String("environment", cfg.Environment))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
