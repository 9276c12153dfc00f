package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	httpmiddleware "github.com/leadgate/api/internal/http/middleware"
	"github.com/leadgate/api/internal/leads"
	"github.com/leadgate/api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger       *logging.Logger
	LeadsHandler *leads.Handler

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxBodyBytes       int64

	// RedisClient switches rate limiting to the shared fixed-window limiter.
	RedisClient *redis.Client

	MetricsHandler http.Handler
}

// New creates a new chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// The rate limiter and body cap cover the /api prefix only.
	r.Route("/api", func(api chi.Router) {
		if cfg.MaxBodyBytes > 0 {
			api.Use(middleware.RequestSize(cfg.MaxBodyBytes))
		}
		if cfg.RateLimitRPS > 0 {
			if cfg.RedisClient != nil {
				limit := int(cfg.RateLimitRPS * 60)
				api.Use(httpmiddleware.RedisRateLimit(cfg.RedisClient, limit, time.Minute, cfg.Logger))
			} else {
				api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
			}
		}

		api.Get("/health", cfg.LeadsHandler.Health)
		api.Post("/lead", cfg.LeadsHandler.CreateLead)
	})

	return r
}
