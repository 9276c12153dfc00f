package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/leadgate/api/cmd/mainconfig"
	"github.com/leadgate/api/internal/api/router"
	appconfig "github.com/leadgate/api/internal/config"
	"github.com/leadgate/api/internal/events"
	"github.com/leadgate/api/internal/leads"
	"github.com/leadgate/api/internal/notify"
	"github.com/leadgate/api/internal/observability/metrics"
	"github.com/leadgate/api/pkg/logging"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadgate API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// A deployment without a lead store must not come up.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	repo := leads.NewDynamoRepository(dynamodb.NewFromConfig(awsCfg), cfg.LeadsTable, logger)

	// Missing mail credentials degrade to a store-only deployment.
	var notifier leads.LeadNotifier
	if cfg.NotifierConfigured() {
		var sender notify.EmailSender
		switch cfg.EmailProvider {
		case "sendgrid":
			sender = notify.NewSendGridSender(notify.SendGridConfig{
				APIKey:    cfg.SendGridAPIKey,
				FromEmail: cfg.NotifyFromEmail,
				FromName:  cfg.NotifyFromName,
			}, logger)
		default:
			sender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
				FromEmail: cfg.NotifyFromEmail,
				FromName:  cfg.NotifyFromName,
			}, logger)
		}
		notifier = notify.NewLeadMailer(sender, cfg.NotifyToEmail, cfg.NotifyFromName, logger)
	} else {
		logger.Warn("email transport not configured, notifications disabled")
	}

	var publisher leads.EventPublisher
	if cfg.LeadEventsQueueURL != "" {
		queue := events.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.LeadEventsQueueURL)
		publisher = events.NewPublisher(queue, logger)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	leadMetrics := metrics.NewLeadMetrics(nil)

	service := leads.NewService(repo, notifier, publisher,
		leads.ServiceConfig{RequireConsent: cfg.RequireConsent}, leadMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(service, logger),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		MaxBodyBytes:       cfg.MaxBodyBytes,
		RedisClient:        redisClient,
		MetricsHandler:     promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
