package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/optimize"
	"resume-optimizer/internal/resumeapi"
	"resume-optimizer/internal/sections"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/shared/telemetry"
)

// App bundles the wired application: configuration, router, and handlers.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	ResumeClient    *resumeapi.Client
	OptimizeHandler *optimize.Handler
	SectionsHandler *sections.Handler
}

// Build assembles the application from configuration. A missing remote API
// key leaves the client nil; the optimize route then reports the service as
// not configured instead of failing at startup.
func Build(cfg config.Config) (*App, error) {
	var client *resumeapi.Client
	if strings.TrimSpace(cfg.ResumeAPIKey) == "" {
		telemetry.Error("bootstrap.resume_client_disabled", map[string]any{
			"detail": "RESUME_API_KEY is not set",
		})
	} else {
		var err error
		client, err = resumeapi.NewClient(cfg.ResumeAPIKey, cfg.ResumeAPIBaseURL)
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Config:          cfg,
		ResumeClient:    client,
		OptimizeHandler: optimize.NewHandler(client),
		SectionsHandler: sections.NewHandler(),
	}
	app.Router = buildRouter(app)
	return app, nil
}

func buildRouter(app *App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(app.Config.CORSAllowOrigin))

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "ok"})
	})

	api.Use(middleware.Auth())
	if app.Config.OptimizeRatePerSec > 0 {
		api.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"OPTIMIZE": {
					Rate:  app.Config.OptimizeRatePerSec,
					Burst: app.Config.OptimizeRateBurst,
				},
			},
			GroupFor: func(c *gin.Context) string {
				if strings.HasPrefix(c.FullPath(), "/api/v1/resume/") {
					return "OPTIMIZE"
				}
				return ""
			},
		}))
	}

	app.OptimizeHandler.RegisterRoutes(api)
	app.SectionsHandler.RegisterRoutes(api)

	return r
}

// Addr formats a listen address from a port value.
func Addr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
