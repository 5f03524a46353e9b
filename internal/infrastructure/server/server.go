package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/scivalidate/preview/internal/api/http"
	"github.com/scivalidate/preview/internal/api/middleware"
	"github.com/scivalidate/preview/internal/api/ws"
	"github.com/scivalidate/preview/internal/domain/intercept"
	"github.com/scivalidate/preview/internal/domain/mocks"
	"github.com/scivalidate/preview/internal/domain/preview"
	"github.com/scivalidate/preview/internal/domain/sandbox"
	"github.com/scivalidate/preview/internal/domain/source"
	"github.com/scivalidate/preview/internal/domain/transform"
	"github.com/scivalidate/preview/internal/infrastructure/config"
	"github.com/scivalidate/preview/internal/infrastructure/monitoring"
	"github.com/scivalidate/preview/internal/logging"
)

// Server wraps the HTTP server and the preview pipeline dependencies.
type Server struct {
	router      *gin.Engine
	controller  *preview.Controller
	interceptor *intercept.Interceptor
	logger      *logging.Logger
	config      *config.Config
	metrics     *monitoring.Metrics
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing component previewer",
		zap.String("port", cfg.Server.Port),
		zap.Int("sandbox_timeout_ms", cfg.Sandbox.TimeoutMS),
	)

	metrics := monitoring.NewMetrics()

	// Fixture store answering intercepted requests.
	store := intercept.DefaultStore()
	if cfg.Fixtures.Path != "" {
		loaded, err := intercept.LoadStore(cfg.Fixtures.Path)
		if err != nil {
			logger.Warn("failed to load fixture overlay, using defaults",
				zap.String("path", cfg.Fixtures.Path),
				zap.Error(err),
			)
		} else {
			store = loaded
			logger.Info("fixture overlay loaded", zap.String("path", cfg.Fixtures.Path))
		}
	}

	// The ambient fetch client is the single global mutable resource; the
	// interceptor is its only writer.
	client := intercept.NewAmbientClient()
	interceptor := intercept.New(client, intercept.Routes(store)).WithObserver(metrics)

	registry := mocks.NewRegistry()
	logger.Info("mock registry assembled", zap.Int("bindings", registry.Len()))

	transformer := transform.New(registry)
	runtime := sandbox.New(sandbox.Config{
		Timeout:       cfg.SandboxTimeout(),
		MaxPasses:     cfg.Sandbox.MaxPasses,
		EnableConsole: true,
	}, registry, fetchVia(interceptor))

	boundary := preview.NewBoundary(transformer, runtime, logger)
	catalog := source.NewCatalog()
	controller := preview.NewController(catalog, interceptor, boundary, logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(catalog, controller, interceptor)
	wsHandler := ws.NewHandler(controller, logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/components", handlers.ListComponents)

	router.POST("/preview/:id", handlers.Preview)
	router.GET("/preview", handlers.CurrentPreview)
	router.DELETE("/preview", handlers.TeardownPreview)

	router.GET("/stream", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Previewer initialized successfully")

	return &Server{
		router:      router,
		controller:  controller,
		interceptor: interceptor,
		logger:      logger,
		config:      cfg,
		metrics:     metrics,
	}, nil
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close tears down the active session so no interception leaks past
// shutdown.
func (s *Server) Close() error {
	s.logger.Info("Shutting down previewer...")
	s.controller.Teardown()
	return nil
}

// fetchVia adapts the interception layer to the sandbox's fetch capability.
func fetchVia(interceptor *intercept.Interceptor) sandbox.FetchFunc {
	return func(path string) (sandbox.FetchResponse, error) {
		status, body, err := interceptor.Do(path)
		if err != nil {
			return sandbox.FetchResponse{}, err
		}
		return sandbox.FetchResponse{Status: status, Body: body}, nil
	}
}
