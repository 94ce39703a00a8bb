package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/7vignesh/blind-coding/internal/config"
	"github.com/7vignesh/blind-coding/internal/handler"
	"github.com/7vignesh/blind-coding/internal/middleware"
	"github.com/7vignesh/blind-coding/internal/response"
	"github.com/7vignesh/blind-coding/internal/view"
)

const staticMaxAge = 24 * time.Hour

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Practice *handler.PracticeHandler
	WS       *handler.WSHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin routes. ctx bounds background middleware
// goroutines such as the rate limiter sweeper.
func SetupRouter(ctx context.Context, handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware(log))
	router.Use(middleware.Brotli())

	// Embedded client assets.
	static := router.Group("/static")
	static.Use(middleware.CacheControl(staticMaxAge))
	{
		static.StaticFS("/", http.FS(view.StaticFS()))
	}

	router.GET("/health", handlers.System.Health)

	submitLimiter := middleware.NewRateLimiter(ctx, cfg.SubmitRatePerMinute, time.Minute)

	// ─── 1. Views ──────────────────────────────────────────────────────
	router.GET("/", func(c *gin.Context) { response.RedirectToOverview(c) })
	router.GET("/overview", handlers.Practice.Overview)
	router.GET("/answer/:view_id", handlers.Practice.AnswerPage)
	router.GET("/questions/:index/start", handlers.Practice.StartQuestion)
	router.GET("/questions/random", submitLimiter.Middleware(), handlers.Practice.RandomQuestion)

	// ─── 2. WebSockets ─────────────────────────────────────────────────
	ws := router.Group("/ws")
	{
		ws.GET("/overview", handlers.WS.OverviewStream)
		ws.GET("/answer/:view_id", submitLimiter.Middleware(), handlers.WS.AnswerStream)
	}

	// ─── 3. JSON API ───────────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/question-set", handlers.Practice.GetQuestionSet)
		api.GET("/submissions", handlers.Practice.ListSubmissions)
		api.POST("/answers/:view_id", submitLimiter.Middleware(), handlers.Practice.SubmitAnswer)
	}

	return router
}
