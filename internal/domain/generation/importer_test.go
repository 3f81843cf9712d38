package generation

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"

	"cartaseo/app/internal/domain/seo"
	"cartaseo/app/internal/domain/seo/seotest"
)

func TestImporterLoadsCatalogAndGeneratesPages(t *testing.T) {
	t.Parallel()

	repo := seotest.New()
	synth := newSynthesizer(t, repo, SeedImport, nil)
	importer, err := NewImporter(repo, synth, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewImporter returned error: %v", err)
	}

	population := int64(237591)
	catalog := seo.Catalog{
		Professions: []seo.Profession{
			{Name: "Enfermeiro", Slug: "enfermeiro", Active: true},
			{Name: "Advogado", Slug: "advogado", Active: true},
			{Name: "", Slug: "sem-nome", Active: true},
		},
		Cities: []seo.City{
			{Name: "Porto", Slug: "porto", Population: &population, Active: true},
		},
		Templates: testTemplates(),
		Guides:    []seo.Guide{{Topic: "dicas", Title: "Dicas", MetaDescription: "Dicas úteis."}},
		Sectors:   []seo.Sector{{Name: "Saúde", Slug: "saude"}},
	}

	report, err := importer.Import(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if report.Professions != 2 || report.Cities != 1 || report.Templates != 5 {
		t.Fatalf("unexpected entity counts %#v", report)
	}
	if report.Rejected != 1 {
		t.Fatalf("expected the nameless profession to be rejected, got %d", report.Rejected)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("expected no stage errors, got %v", report.Errors)
	}

	// 2 professions, 1 city, 2 combined, 1 guide, 1 sector.
	if report.Pages.Created != 7 {
		t.Fatalf("expected 7 created pages, got %#v", report.Pages)
	}

	again, err := importer.Import(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if again.Pages.Created != 0 || again.Pages.Refreshed != 7 {
		t.Fatalf("expected re-import to refresh in place, got %#v", again.Pages)
	}
	if got := len(repo.Pages()); got != 7 {
		t.Fatalf("expected 7 stored pages after re-import, got %d", got)
	}
}

func TestImporterReportsMissingTemplates(t *testing.T) {
	t.Parallel()

	repo := seotest.New()
	synth := newSynthesizer(t, repo, SeedImport, nil)
	importer, err := NewImporter(repo, synth, silentLogger(), nil)
	if err != nil {
		t.Fatalf("NewImporter returned error: %v", err)
	}

	report, err := importer.Import(context.Background(), seo.Catalog{
		Professions: []seo.Profession{{Name: "Enfermeiro", Slug: "enfermeiro", Active: true}},
	})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("expected profession and combined stages to fail, got %v", report.Errors)
	}
	for _, stageErr := range report.Errors {
		if !eris.Is(stageErr, seo.ErrConfiguration) {
			t.Fatalf("expected ErrConfiguration, got %v", stageErr)
		}
	}
}

func TestNewImporterRejectsPrincipalStrategy(t *testing.T) {
	t.Parallel()

	repo := seotest.New()
	synth := newSynthesizer(t, repo, OnDemand, nil)
	if _, err := NewImporter(repo, synth, silentLogger(), nil); err == nil {
		t.Fatalf("expected error for a strategy requiring a principal")
	}
}
