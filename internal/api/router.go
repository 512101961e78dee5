package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/smartinvest/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions configures the global middleware chain.
//
// Fields:
//   - AllowedOrigins: CORS origins of the dashboard.
//   - RateLimitPerMinute: per client IP budget; 0 disables limiting.
//   - RequestTimeout: deadline applied to every request context.
type RouterOptions struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
	RequestTimeout     time.Duration
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, Metrics, CORS, RateLimiter).
//   - Adds a request timeout to every request context.
//   - Mounts /metrics and Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - opts (RouterOptions): middleware settings.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.Metrics(),
	)
	if len(opts.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(opts.AllowedOrigins))
	}
	router.Use(middleware.RateLimiter(middleware.NewIPRateLimiter(opts.RateLimitPerMinute)))

	// ─── Timeout ──────────────────────────────────
	if opts.RequestTimeout > 0 {
		router.Use(func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), opts.RequestTimeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}

	// ─── Metrics & Swagger ────────────────────────
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", handler.GetInfo)
		v1.GET("/health", handler.GetHealth)
		v1.GET("/stock/:symbol", handler.GetStock)
		v1.GET("/stocks/multiple", handler.GetMultipleStocks)
		v1.GET("/news/market", handler.GetMarketNews)
		v1.GET("/news/:symbol", handler.GetStockNews)
		v1.GET("/sentiment/:symbol", handler.GetSentiment)
		v1.GET("/fundamentals/:symbol", handler.GetFundamentals)
		v1.GET("/analysis/technical/:symbol", handler.GetTechnical)
		v1.GET("/analysis/complete/:symbol", handler.GetCompleteAnalysis)
		v1.GET("/analysis/history/:symbol", handler.GetAnalysisHistory)
		v1.GET("/comparison/sector/:symbol", handler.GetSectorComparison)
	}

	return router
}
