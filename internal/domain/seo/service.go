package seo

import (
	"context"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"cartaseo/app/internal/domain/auth"
)

// Invalidator drops derived artefacts, such as a cached sitemap, after pages change.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// ProfessionDetail is a profession together with its active pages.
type ProfessionDetail struct {
	Profession Profession
	Pages      []PageSummary
}

// CityDetail is a city together with its active pages.
type CityDetail struct {
	City  City
	Pages []PageSummary
}

// Service exposes the read and maintenance operations over generated pages.
type Service interface {
	GetPage(ctx context.Context, slug string) (*GeneratedPage, error)
	GetProfession(ctx context.Context, ref string) (*ProfessionDetail, error)
	GetCity(ctx context.Context, ref string) (*CityDetail, error)
	ListProfessions(ctx context.Context) ([]Profession, error)
	ListCities(ctx context.Context) ([]City, error)
	// TrackView increments the view counter. Failures are logged and reported as false.
	TrackView(ctx context.Context, slug string) bool
	UpdatePage(ctx context.Context, id uint, update PageUpdate) (*GeneratedPage, error)
	DeactivatePage(ctx context.Context, slug string) (*GeneratedPage, error)
}

type service struct {
	repo        Repository
	invalidator Invalidator
	logger      *logrus.Logger
	sentryHub   *sentry.Hub
}

var _ Service = (*service)(nil)

// NewService wires the page query service. The invalidator is optional.
func NewService(repo Repository, invalidator Invalidator, logger *logrus.Logger, hub *sentry.Hub) (Service, error) {
	if repo == nil {
		return nil, eris.New("seo repository is required")
	}

	return &service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
		sentryHub:   hub,
	}, nil
}

func (s *service) GetPage(ctx context.Context, slug string) (*GeneratedPage, error) {
	trimmedSlug := strings.TrimSpace(slug)
	if trimmedSlug == "" {
		return nil, eris.Wrap(ErrValidation, "slug is required")
	}

	page, err := s.repo.FindPageBySlug(ctx, trimmedSlug)
	if err != nil {
		s.recordError(logrus.Fields{"slug": trimmedSlug}, err, "retrieving page from repository")
		return nil, eris.Wrapf(err, "retrieving page: %s", trimmedSlug)
	}

	if page == nil || !page.Active {
		return nil, eris.Wrapf(ErrNotFound, "page %s", trimmedSlug)
	}

	return page, nil
}

func (s *service) GetProfession(ctx context.Context, ref string) (*ProfessionDetail, error) {
	trimmedRef := strings.TrimSpace(ref)
	if trimmedRef == "" {
		return nil, eris.Wrap(ErrValidation, "profession reference is required")
	}

	var (
		profession *Profession
		err        error
	)
	if id, ok := parseID(trimmedRef); ok {
		profession, err = s.repo.FindProfessionByID(ctx, id)
	} else {
		profession, err = s.repo.FindProfessionBySlug(ctx, trimmedRef)
	}
	if err != nil {
		s.recordError(logrus.Fields{"profession": trimmedRef}, err, "retrieving profession from repository")
		return nil, eris.Wrapf(err, "retrieving profession: %s", trimmedRef)
	}
	if profession == nil || !profession.Active {
		return nil, eris.Wrapf(ErrNotFound, "profession %s", trimmedRef)
	}

	pages, err := s.repo.ListPages(ctx, PageFilter{ActiveOnly: true, ProfessionID: &profession.ID})
	if err != nil {
		s.recordError(logrus.Fields{"profession": profession.Slug}, err, "listing profession pages")
		return nil, eris.Wrapf(err, "listing pages for profession %s", profession.Slug)
	}

	return &ProfessionDetail{Profession: *profession, Pages: summarize(pages)}, nil
}

func (s *service) GetCity(ctx context.Context, ref string) (*CityDetail, error) {
	trimmedRef := strings.TrimSpace(ref)
	if trimmedRef == "" {
		return nil, eris.Wrap(ErrValidation, "city reference is required")
	}

	var (
		city *City
		err  error
	)
	if id, ok := parseID(trimmedRef); ok {
		city, err = s.repo.FindCityByID(ctx, id)
	} else {
		city, err = s.repo.FindCityBySlug(ctx, trimmedRef)
	}
	if err != nil {
		s.recordError(logrus.Fields{"city": trimmedRef}, err, "retrieving city from repository")
		return nil, eris.Wrapf(err, "retrieving city: %s", trimmedRef)
	}
	if city == nil || !city.Active {
		return nil, eris.Wrapf(ErrNotFound, "city %s", trimmedRef)
	}

	pages, err := s.repo.ListPages(ctx, PageFilter{ActiveOnly: true, CityID: &city.ID})
	if err != nil {
		s.recordError(logrus.Fields{"city": city.Slug}, err, "listing city pages")
		return nil, eris.Wrapf(err, "listing pages for city %s", city.Slug)
	}

	return &CityDetail{City: *city, Pages: summarize(pages)}, nil
}

func (s *service) ListProfessions(ctx context.Context) ([]Profession, error) {
	professions, err := s.repo.ListProfessions(ctx, ListOptions{Order: OrderByName})
	if err != nil {
		s.recordError(nil, err, "listing professions")
		return nil, eris.Wrap(err, "listing professions")
	}
	return professions, nil
}

func (s *service) ListCities(ctx context.Context) ([]City, error) {
	cities, err := s.repo.ListCities(ctx, ListOptions{Order: OrderByName})
	if err != nil {
		s.recordError(nil, err, "listing cities")
		return nil, eris.Wrap(err, "listing cities")
	}
	return cities, nil
}

func (s *service) TrackView(ctx context.Context, slug string) bool {
	trimmedSlug := strings.TrimSpace(slug)
	if trimmedSlug == "" {
		return false
	}

	if err := s.repo.IncrementViewCount(ctx, trimmedSlug); err != nil {
		wrapped := eris.Wrapf(ErrTrackingFailure, "slug %s: %v", trimmedSlug, err)
		if eris.Is(err, ErrNotFound) {
			s.logWarning(logrus.Fields{"slug": trimmedSlug}, wrapped, "tracking view for unknown page")
			return false
		}
		s.recordError(logrus.Fields{"slug": trimmedSlug}, wrapped, "tracking page view")
		return false
	}

	return true
}

func (s *service) UpdatePage(ctx context.Context, id uint, update PageUpdate) (*GeneratedPage, error) {
	principal, err := auth.Require(ctx, "updating page")
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, eris.Wrap(ErrValidation, "page id is required")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	page, err := s.repo.UpdatePage(ctx, id, update)
	if err != nil {
		s.recordError(logrus.Fields{"page_id": id, "subject": principal.Subject}, err, "updating page")
		return nil, eris.Wrapf(err, "updating page %d", id)
	}
	if page == nil {
		return nil, eris.Wrapf(ErrNotFound, "page %d", id)
	}

	s.invalidate(ctx)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"page_id": id, "slug": page.Slug, "subject": principal.Subject}).Info("page updated")
	}

	return page, nil
}

func (s *service) DeactivatePage(ctx context.Context, slug string) (*GeneratedPage, error) {
	if _, err := auth.Require(ctx, "deactivating page"); err != nil {
		return nil, err
	}

	trimmedSlug := strings.TrimSpace(slug)
	if trimmedSlug == "" {
		return nil, eris.Wrap(ErrValidation, "slug is required")
	}

	page, err := s.repo.FindPageBySlug(ctx, trimmedSlug)
	if err != nil {
		s.recordError(logrus.Fields{"slug": trimmedSlug}, err, "retrieving page for deactivation")
		return nil, eris.Wrapf(err, "retrieving page: %s", trimmedSlug)
	}
	if page == nil {
		return nil, eris.Wrapf(ErrNotFound, "page %s", trimmedSlug)
	}

	inactive := false
	return s.UpdatePage(ctx, page.ID, PageUpdate{Active: &inactive})
}

func (s *service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		s.logWarning(nil, err, "invalidating derived page artefacts")
	}
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
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

func (s *service) logWarning(fields logrus.Fields, err error, message string) {
	if s.logger == nil || err == nil {
		return
	}
	entry := s.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Warn(message)
}

func parseID(ref string) (uint, bool) {
	value, err := strconv.ParseUint(ref, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func summarize(pages []GeneratedPage) []PageSummary {
	summaries := make([]PageSummary, 0, len(pages))
	for _, page := range pages {
		summaries = append(summaries, PageSummary{Slug: page.Slug, Title: page.Title, Category: page.Category})
	}
	return summaries
}
