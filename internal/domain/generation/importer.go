package generation

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"cartaseo/app/internal/domain/seo"
)

// Report summarizes a seed import.
type Report struct {
	Professions int
	Cities      int
	Templates   int
	// Rejected counts seed records that failed validation or could not be stored.
	Rejected int
	Pages    Result
	// Errors holds the generation stages that could not run, such as a missing template.
	Errors []error
}

// Importer loads a seed catalog into the store and generates every page from it.
type Importer struct {
	repo        seo.Repository
	synthesizer *Synthesizer
	logger      *logrus.Logger
	sentryHub   *sentry.Hub
}

// NewImporter wires an importer. The synthesizer should run with the SeedImport strategy.
func NewImporter(repo seo.Repository, synthesizer *Synthesizer, logger *logrus.Logger, hub *sentry.Hub) (*Importer, error) {
	if repo == nil {
		return nil, eris.New("seo repository is required")
	}
	if synthesizer == nil {
		return nil, eris.New("synthesizer is required")
	}
	if synthesizer.Strategy().RequirePrincipal {
		return nil, eris.Errorf("strategy %s requires a principal and cannot run a seed import", synthesizer.Strategy().Name)
	}

	return &Importer{repo: repo, synthesizer: synthesizer, logger: logger, sentryHub: hub}, nil
}

// Import upserts the catalog entities, logging and skipping invalid records, then
// generates profession, city, combined, guide and sector pages.
func (i *Importer) Import(ctx context.Context, catalog seo.Catalog) (Report, error) {
	var report Report

	for idx := range catalog.Professions {
		profession := catalog.Professions[idx]
		if err := ctx.Err(); err != nil {
			return report, eris.Wrap(err, "importing professions")
		}
		err := profession.Validate()
		if err == nil {
			err = i.repo.UpsertProfession(ctx, &profession)
		}
		if err != nil {
			report.Rejected++
			i.recordError(logrus.Fields{"profession": profession.Slug}, err, "importing profession")
			continue
		}
		report.Professions++
	}

	for idx := range catalog.Cities {
		city := catalog.Cities[idx]
		if err := ctx.Err(); err != nil {
			return report, eris.Wrap(err, "importing cities")
		}
		err := city.Validate()
		if err == nil {
			err = i.repo.UpsertCity(ctx, &city)
		}
		if err != nil {
			report.Rejected++
			i.recordError(logrus.Fields{"city": city.Slug}, err, "importing city")
			continue
		}
		report.Cities++
	}

	for idx := range catalog.Templates {
		template := catalog.Templates[idx]
		if err := ctx.Err(); err != nil {
			return report, eris.Wrap(err, "importing templates")
		}
		err := template.Validate()
		if err == nil {
			err = i.repo.UpsertTemplate(ctx, &template)
		}
		if err != nil {
			report.Rejected++
			i.recordError(logrus.Fields{"template": template.Name}, err, "importing template")
			continue
		}
		report.Templates++
	}

	professions, err := i.repo.ListProfessions(ctx, seo.ListOptions{Order: seo.OrderByID})
	if err != nil {
		return report, eris.Wrap(err, "counting professions")
	}
	cities, err := i.repo.ListCities(ctx, seo.ListOptions{Order: seo.OrderByID})
	if err != nil {
		return report, eris.Wrap(err, "counting cities")
	}

	bound := i.synthesizer.Bound()
	stages := []struct {
		name string
		run  func() (Result, error)
	}{
		{"profession", func() (Result, error) { return i.runBounded(ctx, i.synthesizer.GenerateProfessionPages, len(professions)) }},
		{"city", func() (Result, error) { return i.runBounded(ctx, i.synthesizer.GenerateCityPages, len(cities)) }},
		{"combined", func() (Result, error) {
			return i.runBounded(ctx, i.synthesizer.GenerateCombinedPages, bound.Professions*bound.Cities)
		}},
		{"guide", func() (Result, error) { return i.synthesizer.GenerateGuidePages(ctx, catalog.Guides) }},
		{"sector", func() (Result, error) { return i.synthesizer.GenerateSectorPages(ctx, catalog.Sectors) }},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return report, eris.Wrapf(err, "generating %s pages", stage.name)
		}
		result, err := stage.run()
		report.Pages = report.Pages.Add(result)
		if err != nil {
			wrapped := eris.Wrapf(err, "generating %s pages", stage.name)
			report.Errors = append(report.Errors, wrapped)
			i.recordError(logrus.Fields{"stage": stage.name}, wrapped, "seed generation stage failed")
		}
	}

	if i.logger != nil {
		i.logger.WithFields(logrus.Fields{
			"professions": report.Professions,
			"cities":      report.Cities,
			"templates":   report.Templates,
			"rejected":    report.Rejected,
			"created":     report.Pages.Created,
			"refreshed":   report.Pages.Refreshed,
			"failed":      report.Pages.Failed,
		}).Info("seed import finished")
	}

	return report, nil
}

func (i *Importer) runBounded(ctx context.Context, generate func(context.Context, int) (Result, error), limit int) (Result, error) {
	if limit < 1 {
		return Result{}, nil
	}
	return generate(ctx, limit)
}

func (i *Importer) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if i.logger != nil {
		entry := i.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if i.sentryHub != nil {
		i.sentryHub.CaptureException(err)
	}
}
