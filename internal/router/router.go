package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/medcare/admin-api/internal/middleware"
	"github.com/medcare/admin-api/pkg/metrics"
)

// Handler registers a set of routes on a router group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// SessionHandler exposes additional routes that require an authenticated session.
type SessionHandler interface {
	Handler
	RegisterSessionRoutes(*gin.RouterGroup)
}

type Router struct {
	engine     *gin.Engine
	sessions   *middleware.SessionMiddleware
	authH      SessionHandler
	healthH    Handler
	moduleH    Handler
	dashboardH Handler
	catalogH   Handler
	resources  []Handler
	metrics    *metrics.Metrics
}

type Config struct {
	Timeout   time.Duration
	RateLimit rate.Limit
	RateBurst int
	CORS      middleware.CORSConfig
}

func NewRouter(
	log *zerolog.Logger,
	sessions *middleware.SessionMiddleware,
	authH SessionHandler,
	healthH Handler,
	moduleH Handler,
	dashboardH Handler,
	catalogH Handler,
	resources []Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:     engine,
		sessions:   sessions,
		authH:      authH,
		healthH:    healthH,
		moduleH:    moduleH,
		dashboardH: dashboardH,
		catalogH:   catalogH,
		resources:  resources,
		metrics:    m,
	}

	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.ErrorHandler(log),
		middleware.SecurityHeaders(),
	)
	if m != nil {
		engine.Use(m.Middleware())
	}
	engine.Use(middleware.CORS(config.CORS))
	if config.Timeout > 0 {
		engine.Use(middleware.Timeout(config.Timeout))
	}
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	root := r.engine.Group("")
	r.healthH.RegisterRoutes(root)
	if r.metrics != nil {
		root.GET("/metrics", r.metrics.Handler())
	}

	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	// Login and logout stay outside the session gate; everything else
	// in the panel requires a valid session token.
	r.authH.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.sessions.Authenticate())

	r.moduleH.RegisterRoutes(protected)
	r.dashboardH.RegisterRoutes(protected)
	r.catalogH.RegisterRoutes(protected)
	r.authH.RegisterSessionRoutes(protected)
	for _, h := range r.resources {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
