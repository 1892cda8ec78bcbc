package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "solarverify/docs"
	"solarverify/internal/handlers"
	"solarverify/internal/metrics"
)

type Handlers struct {
	Quote     *handlers.QuoteHandler
	Auth      *handlers.AuthHandler
	Verify    *handlers.VerifyHandler
	Benchmark *handlers.BenchmarkHandler
	Usage     *handlers.UsageHandler
	Health    *handlers.HealthHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, m *metrics.Metrics) *gin.Engine {
	r.GET("/health", h.Health.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Health)

		api.POST("/analyze-quote", h.Quote.AnalyzeQuote)

		// magic link
		api.POST("/send-magic-link", h.Auth.SendMagicLink)
		api.POST("/verify-token", h.Verify.VerifyToken)

		// reference data
		components := api.Group("/components")
		{
			components.GET("/panels", h.Benchmark.ListPanels)
			components.GET("/batteries", h.Benchmark.ListBatteries)
			components.GET("/inverters", h.Benchmark.ListInverters)
		}
		api.GET("/battery-options", h.Benchmark.BatteryOptions)
		api.GET("/pricing-benchmarks", h.Benchmark.PricingBenchmarks)

		// usage
		api.POST("/register-email", h.Usage.RegisterEmail)
		api.POST("/track-usage", h.Usage.TrackUsage)
		api.POST("/check-email-status", h.Usage.CheckEmailStatus)
		api.GET("/user-analytics", h.Usage.UserAnalytics)
	}
	return r
}
