package slugs

import (
	"testing"

	"github.com/rotisserie/eris"

	"cartaseo/app/internal/domain/seo"
)

func TestEncodePatterns(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		encode   func() (string, error)
		expected string
	}{
		{"profession", func() (string, error) { return ProfessionPageSlug("enfermeiro") }, "carta-apresentacao-enfermeiro"},
		{"city", func() (string, error) { return CityPageSlug("lisboa") }, "carta-apresentacao-lisboa"},
		{"combined", func() (string, error) { return ProfessionCityPageSlug("advogado", "porto") }, "carta-apresentacao-advogado-porto"},
		{"guide", func() (string, error) { return GuidePageSlug("como-escrever") }, "guia-como-escrever"},
		{"sector", func() (string, error) { return SectorPageSlug("tecnologia") }, "carta-apresentacao-sector-tecnologia"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.encode()
			if err != nil {
				t.Fatalf("encode returned error: %v", err)
			}
			if got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestEncodeRejectsInvalidSlugs(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "Engenheiro Software", "-porto", "porto-"} {
		if _, err := ProfessionPageSlug(input); !eris.Is(err, seo.ErrValidation) {
			t.Fatalf("expected ErrValidation for %q, got %v", input, err)
		}
	}
	if _, err := ProfessionCityPageSlug("advogado", "Vila Real"); !eris.Is(err, seo.ErrValidation) {
		t.Fatalf("expected ErrValidation for invalid city, got %v", err)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	values := []string{"enfermeiro", "engenheiro-software", "vila-nova-gaia", "a1"}
	for _, value := range values {
		professionSlug, _ := ProfessionPageSlug(value)
		if got := Decode(professionSlug, seo.CategoryProfession); got.Subject != value || got.Path != "/profissao/"+value {
			t.Fatalf("profession round trip for %q gave %#v", value, got)
		}

		citySlug, _ := CityPageSlug(value)
		if got := Decode(citySlug, seo.CategoryCity); got.Subject != value || got.Path != "/cidade/"+value {
			t.Fatalf("city round trip for %q gave %#v", value, got)
		}

		guideSlug, _ := GuidePageSlug(value)
		if got := Decode(guideSlug, seo.CategoryGuide); got.Subject != value || got.Path != "/guia/"+value {
			t.Fatalf("guide round trip for %q gave %#v", value, got)
		}

		sectorSlug, _ := SectorPageSlug(value)
		if got := Decode(sectorSlug, seo.CategorySector); got.Subject != value || got.Path != "/setor/"+value {
			t.Fatalf("sector round trip for %q gave %#v", value, got)
		}
	}
}

func TestDecodeLegacySectorPrefix(t *testing.T) {
	t.Parallel()

	got := Decode("carta-apresentacao-setor-saude", seo.CategorySector)
	if got.Path != "/setor/saude" {
		t.Fatalf("expected /setor/saude, got %q", got.Path)
	}
}

func TestDecodeCombinedMisattributesHyphenatedCity(t *testing.T) {
	t.Parallel()

	encoded, err := ProfessionCityPageSlug("designer-grafico", "vila-nova-gaia")
	if err != nil {
		t.Fatalf("ProfessionCityPageSlug returned error: %v", err)
	}
	if encoded != "carta-apresentacao-designer-grafico-vila-nova-gaia" {
		t.Fatalf("unexpected slug %q", encoded)
	}

	got := Decode(encoded, seo.CategoryProfessionCity)
	if got.ProfessionSlug != "designer-grafico-vila-nova" {
		t.Fatalf("expected profession designer-grafico-vila-nova, got %q", got.ProfessionSlug)
	}
	if got.CitySlug != "gaia" {
		t.Fatalf("expected city gaia, got %q", got.CitySlug)
	}
	if got.Path != "/cidade/gaia/designer-grafico-vila-nova" {
		t.Fatalf("unexpected path %q", got.Path)
	}
}

func TestDecodeFallsBackToSlugPath(t *testing.T) {
	t.Parallel()

	if got := Decode("carta-apresentacao-porto", seo.CategoryProfessionCity); got.Path != "/carta-apresentacao-porto" {
		t.Fatalf("expected fallback for unsplittable slug, got %q", got.Path)
	}
	if got := Decode("pagina-avulsa", seo.CategoryOther); got.Path != "/pagina-avulsa" {
		t.Fatalf("expected fallback for unknown category, got %q", got.Path)
	}
}

func TestDecodePageStructuredMode(t *testing.T) {
	t.Parallel()

	page := seo.GeneratedPage{
		Slug:           "carta-apresentacao-designer-grafico-vila-nova-gaia",
		Category:       seo.CategoryProfessionCity,
		ProfessionSlug: "designer-grafico",
		CitySlug:       "vila-nova-gaia",
	}

	if got := DecodePage(page, DecodeStructured); got.Path != "/cidade/vila-nova-gaia/designer-grafico" {
		t.Fatalf("expected structured path, got %q", got.Path)
	}
	if got := DecodePage(page, DecodeLegacy); got.Path != "/cidade/gaia/designer-grafico-vila-nova" {
		t.Fatalf("expected legacy path, got %q", got.Path)
	}

	page.ProfessionSlug = ""
	if got := DecodePage(page, DecodeStructured); got.Path != "/cidade/gaia/designer-grafico-vila-nova" {
		t.Fatalf("expected legacy fallback without stored slugs, got %q", got.Path)
	}
}

func TestDecodePageAcceptsLegacyCategoryNames(t *testing.T) {
	t.Parallel()

	page := seo.GeneratedPage{Slug: "guia-dicas", Category: seo.Category("guia")}
	if got := DecodePage(page, DecodeLegacy); got.Path != "/guia/dicas" {
		t.Fatalf("expected /guia/dicas, got %q", got.Path)
	}
}

func TestParseDecodeMode(t *testing.T) {
	t.Parallel()

	if mode, err := ParseDecodeMode(""); err != nil || mode != DecodeLegacy {
		t.Fatalf("expected legacy default, got %q (%v)", mode, err)
	}
	if mode, err := ParseDecodeMode(" Structured "); err != nil || mode != DecodeStructured {
		t.Fatalf("expected structured, got %q (%v)", mode, err)
	}
	if _, err := ParseDecodeMode("fixed"); !eris.Is(err, seo.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
