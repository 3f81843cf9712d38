package bootstrap

import (
	"context"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"cartaseo/app/internal/platform/config"
)

func testDependencies(t *testing.T) Dependencies {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return Dependencies{
		Config: config.Config{
			DBDriver:                "sqlite",
			DBPath:                  filepath.Join(t.TempDir(), "cartas.db"),
			ServerPort:              8080,
			SiteBaseURL:             "https://cartadeapresentacao.pt",
			SitemapDecodeMode:       "legacy",
			SitemapCacheTTL:         time.Hour,
			CombinedProfessionLimit: 2,
			CombinedCityLimit:       2,
			ContentSeed:             1,
			JWTSecret:               "bootstrap-secret",
			RateLimit: config.RateLimitConfig{
				Burst:             100,
				RequestsPerSecond: 100,
				ClientTTL:         time.Minute,
			},
		},
		Logger: logger,
	}
}

func TestBuildImporterThenServeSitemap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	deps := testDependencies(t)

	imported, err := BuildImporter(ctx, deps)
	if err != nil {
		t.Fatalf("BuildImporter returned error: %v", err)
	}

	report, err := imported.Importer.Import(ctx, imported.Catalog)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("expected no stage errors, got %v", report.Errors)
	}
	if report.Pages.Created == 0 {
		t.Fatalf("expected pages to be created, got %#v", report.Pages)
	}
	if err := imported.Cleanup(); err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}

	built, err := Build(ctx, deps)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := built.Cleanup(); err != nil {
			t.Errorf("Cleanup returned error: %v", err)
		}
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(stdhttp.MethodGet, "/sitemap.xml", nil)
	built.HTTPServer.Handler().ServeHTTP(recorder, request)

	if recorder.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "https://cartadeapresentacao.pt/profissao/") {
		t.Fatalf("expected profession locations in sitemap, got %s", body)
	}
	if !strings.Contains(body, "https://cartadeapresentacao.pt/guia/") {
		t.Fatalf("expected guide locations in sitemap, got %s", body)
	}
}

func TestBuildRejectsUnknownDecodeMode(t *testing.T) {
	t.Parallel()

	deps := testDependencies(t)
	deps.Config.SitemapDecodeMode = "fancy"

	if _, err := Build(context.Background(), deps); err == nil {
		t.Fatalf("expected error for unknown decode mode")
	}
}
