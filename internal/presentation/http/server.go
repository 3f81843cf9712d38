package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cartaseo/app/internal/domain/auth"
	"cartaseo/app/internal/domain/generation"
	"cartaseo/app/internal/domain/seo"
	"cartaseo/app/internal/domain/sitemap"
)

// PageGenerator runs an on-demand generation request.
type PageGenerator interface {
	GenerateSeoPages(ctx context.Context, templateType string, limit int) (generation.Result, error)
}

// SitemapSource produces the sitemap document and its entries.
type SitemapSource interface {
	Document(ctx context.Context) ([]byte, error)
	Entries(ctx context.Context) ([]sitemap.Entry, error)
}

// TokenVerifier resolves a bearer token into a principal.
type TokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// Options configures the HTTP server wiring.
type Options struct {
	SEOService  seo.Service
	Generator   PageGenerator
	Sitemap     SitemapSource
	Tokens      TokenVerifier
	Database    *gorm.DB
	Logger      *logrus.Logger
	SentryHub   *sentry.Hub
	RateLimiter RateLimiterSettings
}

// RateLimiterSettings configures the HTTP rate limiter behaviour.
type RateLimiterSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Server wires the HTTP transport layer via Huma.
type Server struct {
	api         huma.API
	mux         *stdhttp.ServeMux
	seo         seo.Service
	generator   PageGenerator
	sitemap     SitemapSource
	tokens      TokenVerifier
	db          *gorm.DB
	logger      *logrus.Logger
	sentry      *sentry.Hub
	rateLimiter *RateLimiter
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.SEOService == nil {
		return nil, eris.New("seo service is required")
	}
	if opts.Generator == nil {
		return nil, eris.New("page generator is required")
	}
	if opts.Sitemap == nil {
		return nil, eris.New("sitemap source is required")
	}

	mux := stdhttp.NewServeMux()
	config := huma.DefaultConfig("Carta de Apresentação SEO", "1.0.0")

	api := humago.New(mux, config)

	srv := &Server{
		api:       api,
		mux:       mux,
		seo:       opts.SEOService,
		generator: opts.Generator,
		sitemap:   opts.Sitemap,
		tokens:    opts.Tokens,
		db:        opts.Database,
		logger:    opts.Logger,
		sentry:    opts.SentryHub,
	}

	settings := opts.RateLimiter
	if settings.Burst <= 0 {
		return nil, eris.New("rate limiter burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("rate limiter requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("rate limiter client TTL must be greater than zero")
	}

	srv.rateLimiter = NewRateLimiter(settings.Burst, settings.RequestsPerSecond, settings.ClientTTL)

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestIDMiddleware(),
		s.rateLimitMiddleware(),
		s.authMiddleware(),
		s.loggingMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.registerSitemapRoutes()
	s.registerPageRoutes()
	s.registerEntityRoutes()
	s.registerGenerateRoute()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Close()
	}
}
