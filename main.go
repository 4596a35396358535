package main

import (
	"time"

	"services-portal/config"
	"services-portal/database"
	authapi "services-portal/internal/api/auth"
	checkoutapi "services-portal/internal/api/checkout"
	usersapi "services-portal/internal/api/users"
	routes "services-portal/internal/app/http"
	"services-portal/internal/domain/access"
	"services-portal/internal/domain/billing"
	"services-portal/internal/infra/authority"
	"services-portal/internal/infra/observability"
	"services-portal/internal/infra/sessions"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	logger := observability.NewLogger(config.LOG_LEVEL)
	defer logger.Sync()

	database.InitDB()

	metrics := observability.NewMetrics()
	resolver := access.NewResolver(authority.NewGormAuthority(database.DB), logger)

	var provider authapi.Provider
	if config.DEMO_MODE {
		provider = authapi.NewDemoProvider(database.DB)
		logger.Warn("demo mode active: demo credentials enabled, data is in-memory")
	} else {
		provider = authapi.NewDBProvider(database.DB)
	}

	var processor billing.Processor
	if config.PAYMENT_PROVIDER == "stripe" && config.STRIPE_SECRET_KEY != "" {
		processor = billing.NewStripeProcessor(config.STRIPE_SECRET_KEY)
		logger.Info("payment processor: stripe")
	} else {
		processor = billing.NewSimulatedProcessor()
		logger.Info("payment processor: simulated")
	}

	store := sessions.NewStore(30 * time.Minute)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Resolver: resolver,
		Auth:     authapi.NewHandler(provider, logger),
		Users:    usersapi.NewHandler(resolver),
		Checkout: checkoutapi.NewHandler(store, processor, metrics, logger),
		Metrics:  metrics,
	})

	logger.Info("listening", zap.String("port", config.PORT))
	r.Run(":" + config.PORT)
}
