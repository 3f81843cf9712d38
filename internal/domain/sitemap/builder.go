package sitemap

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"cartaseo/app/internal/domain/seo"
	"cartaseo/app/internal/domain/slugs"
)

const dateLayout = "2006-01-02"

// DefaultTTL matches the max-age the sitemap is served with.
const DefaultTTL = time.Hour

// DocumentCache stores the rendered sitemap document.
type DocumentCache interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, document []byte, ttl time.Duration) error
	Delete(ctx context.Context) error
}

// Entry is one <url> element of the sitemap.
type Entry struct {
	Loc             string
	LastModified    time.Time
	ChangeFrequency ChangeFrequency
	Priority        string
	Category        seo.Category
}

// LastMod formats the last modification date as YYYY-MM-DD.
func (e Entry) LastMod() string {
	return e.LastModified.UTC().Format(dateLayout)
}

// Options configures a Builder.
type Options struct {
	Repository seo.Repository
	BaseURL    string
	DecodeMode slugs.DecodeMode
	// Cache is optional. When nil every request rebuilds the document.
	Cache     DocumentCache
	TTL       time.Duration
	Clock     func() time.Time
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
}

// Builder assembles sitemap entries and documents from the active pages.
type Builder struct {
	repo      seo.Repository
	baseURL   string
	mode      slugs.DecodeMode
	cache     DocumentCache
	ttl       time.Duration
	clock     func() time.Time
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ seo.Invalidator = (*Builder)(nil)

// NewBuilder validates the options and returns a builder.
func NewBuilder(opts Options) (*Builder, error) {
	if opts.Repository == nil {
		return nil, eris.New("seo repository is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, eris.New("sitemap base url is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, eris.Errorf("sitemap base url %q must be absolute", opts.BaseURL)
	}

	mode := opts.DecodeMode
	if mode == "" {
		mode = slugs.DecodeLegacy
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Builder{
		repo:      opts.Repository,
		baseURL:   baseURL,
		mode:      mode,
		cache:     opts.Cache,
		ttl:       ttl,
		clock:     clock,
		logger:    opts.Logger,
		sentryHub: opts.SentryHub,
	}, nil
}

// BaseURL returns the origin every <loc> is built on.
func (b *Builder) BaseURL() string {
	return b.baseURL
}

// Entries returns the static routes followed by every active page, most recently updated first.
func (b *Builder) Entries(ctx context.Context) ([]Entry, error) {
	pages, err := b.repo.ListPages(ctx, seo.PageFilter{ActiveOnly: true, LocationsOnly: true})
	if err != nil {
		return nil, eris.Wrap(err, "listing active pages")
	}

	today := b.clock()
	entries := make([]Entry, 0, len(staticRoutes)+len(pages))
	for _, route := range staticRoutes {
		entries = append(entries, Entry{
			Loc:             b.baseURL + route.path,
			LastModified:    today,
			ChangeFrequency: route.metadata.ChangeFrequency,
			Priority:        route.metadata.Priority.StringFixed(1),
		})
	}

	for _, page := range pages {
		metadata := MetadataFor(page.Category)
		lastModified := page.LastUpdated
		if lastModified.IsZero() {
			lastModified = today
		}
		entries = append(entries, Entry{
			Loc:             b.baseURL + slugs.DecodePage(page, b.mode).Path,
			LastModified:    lastModified,
			ChangeFrequency: metadata.ChangeFrequency,
			Priority:        metadata.Priority.StringFixed(1),
			Category:        seo.ParseCategory(string(page.Category)),
		})
	}

	return entries, nil
}

// Document returns the XML sitemap, serving it from the cache when possible.
func (b *Builder) Document(ctx context.Context) ([]byte, error) {
	if b.cache != nil {
		cached, ok, err := b.cache.Get(ctx)
		if err != nil {
			b.logWarning(err, "reading cached sitemap")
		} else if ok && len(cached) > 0 {
			return cached, nil
		}
	}

	entries, err := b.Entries(ctx)
	if err != nil {
		b.recordError(err, "building sitemap entries")
		return nil, err
	}

	var buf bytes.Buffer
	if err := Component(entries).Render(ctx, &buf); err != nil {
		wrapped := eris.Wrap(err, "rendering sitemap document")
		b.recordError(wrapped, "rendering sitemap document")
		return nil, wrapped
	}
	document := buf.Bytes()

	if b.cache != nil {
		if err := b.cache.Set(ctx, document, b.ttl); err != nil {
			b.logWarning(err, "caching sitemap")
		}
	}

	return document, nil
}

// Invalidate drops the cached document so the next request rebuilds it.
func (b *Builder) Invalidate(ctx context.Context) error {
	if b.cache == nil {
		return nil
	}
	if err := b.cache.Delete(ctx); err != nil {
		return eris.Wrap(err, "invalidating cached sitemap")
	}
	return nil
}

func (b *Builder) recordError(err error, message string) {
	if b.logger != nil {
		b.logger.WithField("error", err.Error()).Error(message)
	}
	if b.sentryHub != nil {
		b.sentryHub.CaptureException(err)
	}
}

func (b *Builder) logWarning(err error, message string) {
	if b.logger != nil {
		b.logger.WithField("error", err.Error()).Warn(message)
	}
}
