package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/siscec-api/internal/config"
	"github.com/jwalitptl/siscec-api/internal/middleware"
	"github.com/jwalitptl/siscec-api/pkg/logger"
	"github.com/jwalitptl/siscec-api/pkg/metrics"
)

// Handler is implemented by every endpoint handler.
type Handler interface {
	RegisterRoutes(gin.IRouter)
}

type RouterConfig struct {
	CORSConfig  middleware.CORSConfig
	RateLimit   *middleware.RateLimiterConfig
	Metrics     *metrics.Metrics
	MetricsPath string
}

// ConfigFrom derives the router settings from the application config. m is
// nil unless Prometheus is enabled.
func ConfigFrom(cfg *config.Config, m *metrics.Metrics) RouterConfig {
	rc := RouterConfig{
		CORSConfig:  middleware.DefaultCORSConfig(),
		Metrics:     m,
		MetricsPath: cfg.Monitoring.MetricsPath,
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		rc.CORSConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	if cfg.RateLimit.Enabled {
		rc.RateLimit = &middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst: cfg.RateLimit.Burst,
		}
	}
	return rc
}

type Router struct {
	engine   *gin.Engine
	handlers []Handler
	config   RouterConfig
}

func NewRouter(log *logger.Logger, rc RouterConfig, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(log),
		middleware.Logger(log),
		rc.Metrics.Middleware(),
		middleware.CORS(rc.CORSConfig),
	)

	if rc.RateLimit != nil {
		engine.Use(middleware.NewRateLimiter(*rc.RateLimit, log).RateLimit())
	}

	return &Router{
		engine:   engine,
		handlers: handlers,
		config:   rc,
	}
}

// Setup registers every handler at the root, where the legacy clients expect them.
func (r *Router) Setup() {
	for _, h := range r.handlers {
		h.RegisterRoutes(r.engine)
	}

	if r.config.Metrics != nil {
		path := r.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, r.config.Metrics.Handler())
	}
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
