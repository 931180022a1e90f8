package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-fuego/fuego"
	"github.com/go-fuego/fuego/option"

	"github.com/j2systems/landing/internal/content"
	"github.com/j2systems/landing/internal/logger"
)

// Server represents the landing API server. Fuego owns the routes and the
// OpenAPI document; a chi router in front of it carries the global middleware.
type Server struct {
	fuego      *fuego.Server
	router     *chi.Mux
	deps       *Dependencies
	port       int
	version    string
	httpServer *http.Server
	listener   net.Listener
}

// Dependencies contains all service dependencies.
type Dependencies struct {
	Submissions SubmissionService
	Content     *content.Site
	Log         *logger.Logger
	// Broker is set when mail is queued on NATS; nil otherwise.
	Broker BrokerStatus
}

// Config holds API server configuration.
type Config struct {
	Port           int
	Title          string
	Description    string
	Version        string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewServer creates a new API server.
func NewServer(cfg *Config, deps *Dependencies) (*Server, error) {
	if deps == nil || deps.Submissions == nil {
		return nil, errors.New("submission service is required")
	}
	if deps.Content == nil {
		return nil, errors.New("site content is required")
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}

	s := fuego.NewServer(
		fuego.WithAddr(fmt.Sprintf(":%d", cfg.Port)),
		// requests are logged by requestLogger through zerolog
		fuego.WithLoggingMiddleware(fuego.LoggingConfig{
			DisableRequest:  true,
			DisableResponse: true,
		}),
		fuego.WithEngineOptions(
			fuego.WithOpenAPIConfig(fuego.OpenAPIConfig{
				PrettyFormatJSON: true,
				SwaggerURL:       "/docs",
				SpecURL:          "/openapi.json",
				UIHandler: func(specURL string) http.Handler {
					return ScalarHandler(specURL, cfg.Title, cfg.Description)
				},
			}),
		),
	)

	s.OpenAPI.Description().Info.Title = cfg.Title
	s.OpenAPI.Description().Info.Description = cfg.Description
	s.OpenAPI.Description().Info.Version = cfg.Version

	srv := &Server{
		fuego:   s,
		router:  chi.NewRouter(),
		deps:    deps,
		port:    cfg.Port,
		version: cfg.Version,
	}

	srv.registerRoutes()
	srv.setupRouter(cfg)

	return srv, nil
}

func (s *Server) registerRoutes() {
	fuego.Get(s.fuego, "/health", s.healthCheck,
		option.Summary("Health Check"),
		option.Description("Returns the health status of the API"),
		option.Tags("System"),
	)

	v1 := fuego.Group(s.fuego, "/api/v1")

	fuego.Post(v1, "/contact", s.submitContact,
		option.Summary("Submit Contact Form"),
		option.Description("Validates the form and sends one notification e-mail to the operator"),
		option.Tags("Contact"),
	)

	fuego.Get(v1, "/content", s.getContent,
		option.Summary("Get Site Content"),
		option.Description("Returns services, process steps, technologies and case studies"),
		option.Tags("Content"),
	)

	fuego.Get(v1, "/schedule", s.getSchedule,
		option.Summary("Get Schedule Link"),
		option.Description("Returns a prefilled calendar link for booking a call"),
		option.Tags("Content"),
	)
}

func (s *Server) setupRouter(cfg *Config) {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.deps.Log.Component("http")))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))
	if cfg.RateLimitRPS > 0 {
		r.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	}

	s.MountDocsOn(r, cfg.Title, cfg.Description)
	r.Handle("/*", s.fuego.Mux)
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server and blocks until it stops.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.deps.Log.Info().Str("addr", listener.Addr().String()).Msg("api server listening")

	err = s.httpServer.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully stops the server. In-flight submissions finish first.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// BaseURL returns the server's base URL.
func (s *Server) BaseURL() string {
	if s.listener != nil {
		return fmt.Sprintf("http://%s", s.listener.Addr().String())
	}
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// MountDocsOn mounts the OpenAPI documentation routes (/docs, /openapi.json)
// on a Chi router.
func (s *Server) MountDocsOn(r interface {
	Get(pattern string, handlerFn http.HandlerFunc)
}, title, description string) {
	scalarHandler := ScalarHandler("/openapi.json", title, description)
	r.Get("/docs", func(w http.ResponseWriter, req *http.Request) {
		scalarHandler.ServeHTTP(w, req)
	})

	r.Get("/openapi.json", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		spec := s.fuego.OpenAPI.Description()
		if err := json.NewEncoder(w).Encode(spec); err != nil {
			http.Error(w, "Failed to encode OpenAPI spec", http.StatusInternalServerError)
		}
	})
}
