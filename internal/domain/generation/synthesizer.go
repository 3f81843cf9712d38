// Package generation synthesizes GeneratedPage rows from professions, cities and page templates.
package generation

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"cartaseo/app/internal/domain/auth"
	"cartaseo/app/internal/domain/content"
	"cartaseo/app/internal/domain/seo"
)

// Template names looked up by the generators.
const (
	ProfessionTemplate = "profession-main"
	CityTemplate       = "city-main"
	CombinedTemplate   = "profession-city-combined"
	GuideTemplate      = "guide-main"
	SectorTemplate     = "sector-main"
)

// Template types accepted by GenerateSeoPages.
const (
	TypeProfession = "profession"
	TypeCity       = "city"
	TypeCombined   = "combined"
	TypeAll        = "all"
)

const metaDescriptionLength = 160

// Options configures a Synthesizer.
type Options struct {
	Repository    seo.Repository
	Strategy      Strategy
	CombinedBound CombinedBound
	Variation     content.Variation
	// Invalidator is notified after a run that wrote at least one page.
	Invalidator seo.Invalidator
	Logger      *logrus.Logger
	SentryHub   *sentry.Hub
}

// Synthesizer renders templates against entities and persists the resulting pages.
type Synthesizer struct {
	repo        seo.Repository
	strategy    Strategy
	bound       CombinedBound
	variation   content.Variation
	invalidator seo.Invalidator
	logger      *logrus.Logger
	sentryHub   *sentry.Hub
}

// NewSynthesizer validates the options and returns a synthesizer.
func NewSynthesizer(opts Options) (*Synthesizer, error) {
	if opts.Repository == nil {
		return nil, eris.New("seo repository is required")
	}

	bound := opts.CombinedBound
	if bound.Professions <= 0 {
		bound.Professions = DefaultCombinedBound.Professions
	}
	if bound.Cities <= 0 {
		bound.Cities = DefaultCombinedBound.Cities
	}

	strategy := opts.Strategy
	if strategy.Name == "" {
		strategy = OnDemand
	}

	return &Synthesizer{
		repo:        opts.Repository,
		strategy:    strategy,
		bound:       bound,
		variation:   opts.Variation,
		invalidator: opts.Invalidator,
		logger:      opts.Logger,
		sentryHub:   opts.SentryHub,
	}, nil
}

// Strategy returns the strategy the synthesizer runs with.
func (s *Synthesizer) Strategy() Strategy {
	return s.strategy
}

// Bound returns the combined generation bound.
func (s *Synthesizer) Bound() CombinedBound {
	return s.bound
}

// GenerateSeoPages dispatches on the template type. "all" runs every generator
// with a third of the limit each.
func (s *Synthesizer) GenerateSeoPages(ctx context.Context, templateType string, limit int) (Result, error) {
	if err := s.authorize(ctx, "generating seo pages"); err != nil {
		return Result{}, err
	}
	if limit < 1 {
		return Result{}, eris.Wrapf(seo.ErrValidation, "limit must be at least 1, got %d", limit)
	}

	var (
		result Result
		err    error
	)
	switch strings.ToLower(strings.TrimSpace(templateType)) {
	case TypeProfession:
		result, err = s.professionPages(ctx, limit)
	case TypeCity:
		result, err = s.cityPages(ctx, limit)
	case TypeCombined:
		result, err = s.combinedPages(ctx, limit)
	case TypeAll:
		share := limit / 3
		var partial Result
		for _, run := range []func(context.Context, int) (Result, error){s.professionPages, s.cityPages, s.combinedPages} {
			partial, err = run(ctx, share)
			result = result.Add(partial)
			if err != nil {
				break
			}
		}
	default:
		return Result{}, eris.Wrapf(seo.ErrValidation, "invalid template type %q", templateType)
	}

	s.finish(ctx, templateType, result)
	return result, err
}

// GenerateProfessionPages renders profession-main for the first limit active professions.
func (s *Synthesizer) GenerateProfessionPages(ctx context.Context, limit int) (Result, error) {
	if err := s.guard(ctx, "generating profession pages", limit); err != nil {
		return Result{}, err
	}
	result, err := s.professionPages(ctx, limit)
	s.finish(ctx, TypeProfession, result)
	return result, err
}

// GenerateCityPages renders city-main for the first limit active cities.
func (s *Synthesizer) GenerateCityPages(ctx context.Context, limit int) (Result, error) {
	if err := s.guard(ctx, "generating city pages", limit); err != nil {
		return Result{}, err
	}
	result, err := s.cityPages(ctx, limit)
	s.finish(ctx, TypeCity, result)
	return result, err
}

// GenerateCombinedPages pairs the bounded profession and city sets, profession-major.
// Every visited pair counts against limit, including pages that already exist.
func (s *Synthesizer) GenerateCombinedPages(ctx context.Context, limit int) (Result, error) {
	if err := s.guard(ctx, "generating combined pages", limit); err != nil {
		return Result{}, err
	}
	result, err := s.combinedPages(ctx, limit)
	s.finish(ctx, TypeCombined, result)
	return result, err
}

// GenerateGuidePages renders guide-main once per guide.
func (s *Synthesizer) GenerateGuidePages(ctx context.Context, guides []seo.Guide) (Result, error) {
	if err := s.authorize(ctx, "generating guide pages"); err != nil {
		return Result{}, err
	}
	if len(guides) == 0 {
		return Result{}, nil
	}

	template, err := s.template(ctx, GuideTemplate)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, guide := range guides {
		page, err := s.guidePage(template, guide)
		if err == nil {
			err = s.persist(ctx, page, &result)
		}
		if err := s.itemFailed(&result, logrus.Fields{"guide": guide.Topic}, err); err != nil {
			s.finish(ctx, "guide", result)
			return result, err
		}
	}

	s.finish(ctx, "guide", result)
	return result, nil
}

// GenerateSectorPages renders sector-main once per sector.
func (s *Synthesizer) GenerateSectorPages(ctx context.Context, sectors []seo.Sector) (Result, error) {
	if err := s.authorize(ctx, "generating sector pages"); err != nil {
		return Result{}, err
	}
	if len(sectors) == 0 {
		return Result{}, nil
	}

	template, err := s.template(ctx, SectorTemplate)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, sector := range sectors {
		page, err := s.sectorPage(template, sector)
		if err == nil {
			err = s.persist(ctx, page, &result)
		}
		if err := s.itemFailed(&result, logrus.Fields{"sector": sector.Slug}, err); err != nil {
			s.finish(ctx, "sector", result)
			return result, err
		}
	}

	s.finish(ctx, "sector", result)
	return result, nil
}

func (s *Synthesizer) professionPages(ctx context.Context, limit int) (Result, error) {
	if limit < 1 {
		return Result{}, nil
	}

	template, err := s.template(ctx, ProfessionTemplate)
	if err != nil {
		return Result{}, err
	}

	professions, err := s.repo.ListProfessions(ctx, seo.ListOptions{Limit: limit, Order: seo.OrderByID})
	if err != nil {
		s.recordError(nil, err, "listing professions for generation")
		return Result{}, eris.Wrap(err, "listing professions")
	}

	var result Result
	for _, profession := range professions {
		page, err := s.professionPage(template, profession)
		if err == nil {
			err = s.persist(ctx, page, &result)
		}
		if err := s.itemFailed(&result, logrus.Fields{"profession": profession.Slug}, err); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *Synthesizer) cityPages(ctx context.Context, limit int) (Result, error) {
	if limit < 1 {
		return Result{}, nil
	}

	template, err := s.template(ctx, CityTemplate)
	if err != nil {
		return Result{}, err
	}

	cities, err := s.repo.ListCities(ctx, seo.ListOptions{Limit: limit, Order: seo.OrderByID})
	if err != nil {
		s.recordError(nil, err, "listing cities for generation")
		return Result{}, eris.Wrap(err, "listing cities")
	}

	var result Result
	for _, city := range cities {
		page, err := s.cityPage(template, city)
		if err == nil {
			err = s.persist(ctx, page, &result)
		}
		if err := s.itemFailed(&result, logrus.Fields{"city": city.Slug}, err); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *Synthesizer) combinedPages(ctx context.Context, limit int) (Result, error) {
	if limit < 1 {
		return Result{}, nil
	}

	template, err := s.template(ctx, CombinedTemplate)
	if err != nil {
		return Result{}, err
	}

	professions, err := s.repo.ListProfessions(ctx, seo.ListOptions{Limit: s.bound.Professions, Order: seo.OrderByID})
	if err != nil {
		s.recordError(nil, err, "listing professions for combined generation")
		return Result{}, eris.Wrap(err, "listing professions")
	}
	cities, err := s.repo.ListCities(ctx, seo.ListOptions{Limit: s.bound.Cities, Order: seo.OrderByID})
	if err != nil {
		s.recordError(nil, err, "listing cities for combined generation")
		return Result{}, eris.Wrap(err, "listing cities")
	}

	var (
		result   Result
		attempts int
	)
	for _, profession := range professions {
		for _, city := range cities {
			if attempts >= limit {
				return result, nil
			}
			attempts++

			page, err := s.combinedPage(template, profession, city)
			if err == nil {
				err = s.persist(ctx, page, &result)
			}
			if err := s.itemFailed(&result, logrus.Fields{"profession": profession.Slug, "city": city.Slug}, err); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

func (s *Synthesizer) guard(ctx context.Context, operation string, limit int) error {
	if err := s.authorize(ctx, operation); err != nil {
		return err
	}
	if limit < 1 {
		return eris.Wrapf(seo.ErrValidation, "limit must be at least 1, got %d", limit)
	}
	return nil
}

func (s *Synthesizer) authorize(ctx context.Context, operation string) error {
	if !s.strategy.RequirePrincipal {
		return nil
	}
	_, err := auth.Require(ctx, operation)
	return err
}

func (s *Synthesizer) template(ctx context.Context, name string) (*seo.PageTemplate, error) {
	template, err := s.repo.FindTemplate(ctx, name)
	if err != nil {
		s.recordError(logrus.Fields{"template": name}, err, "loading page template")
		return nil, eris.Wrapf(err, "loading template %s", name)
	}
	if template == nil {
		err := eris.Wrapf(seo.ErrConfiguration, "template %s", name)
		s.recordError(logrus.Fields{"template": name}, err, "page template missing")
		return nil, err
	}
	return template, nil
}

// persist writes the page according to the refresh policy and updates result.
func (s *Synthesizer) persist(ctx context.Context, page *seo.GeneratedPage, result *Result) error {
	if err := page.Validate(); err != nil {
		return err
	}

	if s.strategy.Refresh == UpsertAlways {
		created, err := s.repo.UpsertPage(ctx, page)
		if err != nil {
			return eris.Wrapf(err, "upserting page %s", page.Slug)
		}
		if created {
			result.Created++
		} else {
			result.Refreshed++
		}
		return nil
	}

	existing, err := s.repo.FindPageBySlug(ctx, page.Slug)
	if err != nil {
		return eris.Wrapf(err, "checking page %s", page.Slug)
	}
	if existing != nil {
		result.Skipped++
		return nil
	}

	if err := s.repo.CreatePage(ctx, page); err != nil {
		if eris.Is(err, seo.ErrPersistenceConflict) {
			result.Skipped++
			return nil
		}
		return eris.Wrapf(err, "creating page %s", page.Slug)
	}
	result.Created++
	return nil
}

// itemFailed applies the OnItemError policy. It returns the error only when the run must stop.
func (s *Synthesizer) itemFailed(result *Result, fields logrus.Fields, err error) error {
	if err == nil {
		return nil
	}
	s.recordError(fields, err, "generating page")
	if s.strategy.OnItemError == Abort {
		return err
	}
	result.Failed++
	return nil
}

func (s *Synthesizer) finish(ctx context.Context, kind string, result Result) {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"strategy":  s.strategy.Name,
			"type":      kind,
			"created":   result.Created,
			"refreshed": result.Refreshed,
			"skipped":   result.Skipped,
			"failed":    result.Failed,
		}).Info("seo page generation finished")
	}

	if result.Written() == 0 || s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.WithField("error", err.Error()).Warn("invalidating sitemap after generation")
	}
}

func (s *Synthesizer) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}
