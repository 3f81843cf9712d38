package bootstrap

import (
	"context"

	"github.com/getsentry/sentry-go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cartaseo/app/internal/data/database"
	"cartaseo/app/internal/data/migrations"
	"cartaseo/app/internal/data/seed"
	dataseo "cartaseo/app/internal/data/seo"
	"cartaseo/app/internal/domain/content"
	"cartaseo/app/internal/domain/generation"
	domainseo "cartaseo/app/internal/domain/seo"
	"cartaseo/app/internal/domain/sitemap"
	"cartaseo/app/internal/domain/slugs"
	"cartaseo/app/internal/infrastructure/auth/jwt"
	rediscache "cartaseo/app/internal/infrastructure/cache/redis"
	"cartaseo/app/internal/platform/config"
	presentationhttp "cartaseo/app/internal/presentation/http"
)

type Dependencies struct {
	Config    config.Config
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
}

type Result struct {
	SEOService  domainseo.Service
	Sitemap     *sitemap.Builder
	Synthesizer *generation.Synthesizer
	HTTPServer  *presentationhttp.Server
	Database    *gorm.DB
	Cleanup     func() error
}

// ImportResult carries the components needed by the seed command.
type ImportResult struct {
	Importer *generation.Importer
	Catalog  domainseo.Catalog
	Database *gorm.DB
	Cleanup  func() error
}

// store is the shared persistence layer for every entry point.
type store struct {
	db    *gorm.DB
	redis *goredis.Client
	repo  *dataseo.Repository
	site  *sitemap.Builder
}

func (s *store) close(logger *logrus.Logger) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil && logger != nil {
			logger.WithField("error", err.Error()).Warn("closing redis client")
		}
	}
	return database.Close(s.db)
}

func openStore(ctx context.Context, deps Dependencies) (*store, error) {
	cfg := deps.Config

	dbOpts := database.Options{
		Driver: cfg.DBDriver,
		Path:   cfg.DBPath,
		DSN:    cfg.DBDSN,
	}
	if deps.Logger != nil {
		dbOpts.Logger = database.NewLogger(deps.Logger)
	}

	db, err := database.Open(dbOpts)
	if err != nil {
		return nil, eris.Wrap(err, "opening database")
	}

	s := &store{db: db}
	closeOnError := func(wrapper error) (*store, error) {
		if closeErr := s.close(deps.Logger); closeErr != nil && deps.Logger != nil {
			deps.Logger.WithError(closeErr).Error("closing database after bootstrap failure")
		}
		return nil, wrapper
	}

	if err := migrations.MigrateSEO(ctx, db, deps.Logger); err != nil {
		return closeOnError(eris.Wrap(err, "running seo migrations"))
	}

	s.repo, err = dataseo.NewRepository(db, deps.Logger)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating seo repository"))
	}

	decodeMode, err := slugs.ParseDecodeMode(cfg.SitemapDecodeMode)
	if err != nil {
		return closeOnError(eris.Wrap(err, "parsing sitemap decode mode"))
	}

	var cache sitemap.DocumentCache
	if cfg.RedisURL != "" {
		s.redis, err = rediscache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return closeOnError(eris.Wrap(err, "connecting to redis"))
		}
		sitemapCache, err := rediscache.NewSitemapCache(s.redis, "")
		if err != nil {
			return closeOnError(eris.Wrap(err, "creating sitemap cache"))
		}
		cache = sitemapCache
	}

	s.site, err = sitemap.NewBuilder(sitemap.Options{
		Repository: s.repo,
		BaseURL:    cfg.SiteBaseURL,
		DecodeMode: decodeMode,
		Cache:      cache,
		TTL:        cfg.SitemapCacheTTL,
		Logger:     deps.Logger,
		SentryHub:  deps.SentryHub,
	})
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating sitemap builder"))
	}

	return s, nil
}

func newSynthesizer(s *store, deps Dependencies, strategy generation.Strategy) (*generation.Synthesizer, error) {
	return generation.NewSynthesizer(generation.Options{
		Repository: s.repo,
		Strategy:   strategy,
		CombinedBound: generation.CombinedBound{
			Professions: deps.Config.CombinedProfessionLimit,
			Cities:      deps.Config.CombinedCityLimit,
		},
		Variation:   content.Variation{Seed: deps.Config.ContentSeed},
		Invalidator: s.site,
		Logger:      deps.Logger,
		SentryHub:   deps.SentryHub,
	})
}

// Build composes the page server layers and returns the constructed components.
func Build(ctx context.Context, deps Dependencies) (Result, error) {
	s, err := openStore(ctx, deps)
	if err != nil {
		return Result{}, err
	}

	closeOnError := func(wrapper error) (Result, error) {
		if closeErr := s.close(deps.Logger); closeErr != nil && deps.Logger != nil {
			deps.Logger.WithError(closeErr).Error("closing database after bootstrap failure")
		}
		return Result{}, wrapper
	}

	seoService, err := domainseo.NewService(s.repo, s.site, deps.Logger, deps.SentryHub)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating seo service"))
	}

	synthesizer, err := newSynthesizer(s, deps, generation.OnDemand)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating page synthesizer"))
	}

	var tokens presentationhttp.TokenVerifier
	if deps.Config.JWTSecret != "" {
		verifier, err := jwt.NewVerifier(deps.Config.JWTSecret)
		if err != nil {
			return closeOnError(eris.Wrap(err, "creating token verifier"))
		}
		tokens = verifier
	} else if deps.Logger != nil {
		deps.Logger.Warn("JWT_SECRET is not set; generation and page mutations will be rejected")
	}

	httpServer, err := presentationhttp.NewServer(presentationhttp.Options{
		SEOService: seoService,
		Generator:  synthesizer,
		Sitemap:    s.site,
		Tokens:     tokens,
		Database:   s.db,
		Logger:     deps.Logger,
		SentryHub:  deps.SentryHub,
		RateLimiter: presentationhttp.RateLimiterSettings{
			Burst:             deps.Config.RateLimit.Burst,
			RequestsPerSecond: deps.Config.RateLimit.RequestsPerSecond,
			ClientTTL:         deps.Config.RateLimit.ClientTTL,
		},
	})
	if err != nil {
		return closeOnError(eris.Wrap(err, "initialising http server"))
	}

	cleanup := func() error {
		httpServer.Close()
		return s.close(deps.Logger)
	}

	return Result{
		SEOService:  seoService,
		Sitemap:     s.site,
		Synthesizer: synthesizer,
		HTTPServer:  httpServer,
		Database:    s.db,
		Cleanup:     cleanup,
	}, nil
}

// BuildImporter composes the seed import pipeline and loads the catalog from SEED_DIR,
// falling back to the embedded catalog.
func BuildImporter(ctx context.Context, deps Dependencies) (ImportResult, error) {
	catalog, err := seed.LoadDir(deps.Config.SeedDir)
	if err != nil {
		return ImportResult{}, eris.Wrap(err, "loading seed catalog")
	}

	s, err := openStore(ctx, deps)
	if err != nil {
		return ImportResult{}, err
	}

	closeOnError := func(wrapper error) (ImportResult, error) {
		if closeErr := s.close(deps.Logger); closeErr != nil && deps.Logger != nil {
			deps.Logger.WithError(closeErr).Error("closing database after bootstrap failure")
		}
		return ImportResult{}, wrapper
	}

	synthesizer, err := newSynthesizer(s, deps, generation.SeedImport)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating page synthesizer"))
	}

	importer, err := generation.NewImporter(s.repo, synthesizer, deps.Logger, deps.SentryHub)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating seed importer"))
	}

	return ImportResult{
		Importer: importer,
		Catalog:  catalog,
		Database: s.db,
		Cleanup: func() error {
			return s.close(deps.Logger)
		},
	}, nil
}
