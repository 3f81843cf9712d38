package seo

import (
	"testing"

	"github.com/rotisserie/eris"
)

func TestGeneratedPageValidateReferences(t *testing.T) {
	t.Parallel()

	id := uint(3)
	cases := []struct {
		name    string
		page    GeneratedPage
		wantErr bool
	}{
		{
			name: "profession with profession reference",
			page: GeneratedPage{Slug: "carta-apresentacao-enfermeiro", Title: "t", Content: "c", Category: CategoryProfession, ProfessionID: &id},
		},
		{
			name:    "profession without reference",
			page:    GeneratedPage{Slug: "carta-apresentacao-enfermeiro", Title: "t", Content: "c", Category: CategoryProfession},
			wantErr: true,
		},
		{
			name:    "city carrying a profession reference",
			page:    GeneratedPage{Slug: "carta-apresentacao-porto", Title: "t", Content: "c", Category: CategoryCity, CityID: &id, ProfessionID: &id},
			wantErr: true,
		},
		{
			name: "combined with both references",
			page: GeneratedPage{Slug: "carta-apresentacao-a-b", Title: "t", Content: "c", Category: CategoryProfessionCity, CityID: &id, ProfessionID: &id},
		},
		{
			name:    "guide with a city reference",
			page:    GeneratedPage{Slug: "guia-dicas", Title: "t", Content: "c", Category: CategoryGuide, CityID: &id},
			wantErr: true,
		},
		{
			name:    "malformed slug",
			page:    GeneratedPage{Slug: "Guia Dicas", Title: "t", Content: "c", Category: CategoryGuide},
			wantErr: true,
		},
		{
			name:    "unknown category",
			page:    GeneratedPage{Slug: "guia-dicas", Title: "t", Content: "c", Category: Category("blog")},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.page.Validate()
			if tc.wantErr {
				if !eris.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate returned error: %v", err)
			}
		})
	}
}

func TestParseCategoryAcceptsLegacyNames(t *testing.T) {
	t.Parallel()

	cases := map[string]Category{
		"profissao":        CategoryProfession,
		"cidade":           CategoryCity,
		"profissao-cidade": CategoryProfessionCity,
		"guia":             CategoryGuide,
		"setor":            CategorySector,
		" Guide ":          CategoryGuide,
		"blog":             CategoryOther,
	}
	for raw, expected := range cases {
		if got := ParseCategory(raw); got != expected {
			t.Fatalf("ParseCategory(%q) = %q, expected %q", raw, got, expected)
		}
	}
}

func TestPageTemplateValidateName(t *testing.T) {
	t.Parallel()

	valid := PageTemplate{Name: "profession-main", Category: "profession", TitleTemplate: "{profession}", ContentTemplate: "<p/>"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	invalid := valid
	invalid.Name = "city-main"
	if err := invalid.Validate(); !eris.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for mismatched name, got %v", err)
	}
}
