package slugs

import (
	"strings"

	"github.com/rotisserie/eris"

	"cartaseo/app/internal/domain/seo"
)

// DecodeMode selects how combined pages are mapped back to paths.
type DecodeMode string

const (
	// DecodeLegacy splits combined slugs on the last hyphen. It matches already
	// indexed URLs but misattributes hyphenated city slugs to the profession.
	DecodeLegacy DecodeMode = "legacy"
	// DecodeStructured prefers the profession and city slugs stored on the page.
	DecodeStructured DecodeMode = "structured"
)

// ParseDecodeMode parses a configured mode. Empty input selects DecodeLegacy.
func ParseDecodeMode(raw string) (DecodeMode, error) {
	switch DecodeMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DecodeLegacy:
		return DecodeLegacy, nil
	case DecodeStructured:
		return DecodeStructured, nil
	}
	return "", eris.Wrapf(seo.ErrValidation, "unknown sitemap decode mode %q", raw)
}

// Decoded is the public location derived from a page slug.
type Decoded struct {
	Path           string
	Subject        string
	ProfessionSlug string
	CitySlug       string
}

// Decode maps a slug and its category to a public URL path. Combined slugs are
// split on the last hyphen; slugs that cannot be split fall back to "/{slug}".
func Decode(pageSlug string, category seo.Category) Decoded {
	switch category {
	case seo.CategoryProfession:
		subject := strings.TrimPrefix(pageSlug, PagePrefix)
		return Decoded{Path: "/" + ProfessionSegment + "/" + subject, Subject: subject, ProfessionSlug: subject}
	case seo.CategoryCity:
		subject := strings.TrimPrefix(pageSlug, PagePrefix)
		return Decoded{Path: "/" + CitySegment + "/" + subject, Subject: subject, CitySlug: subject}
	case seo.CategoryGuide:
		subject := strings.TrimPrefix(pageSlug, GuidePrefix)
		return Decoded{Path: "/" + GuideSegment + "/" + subject, Subject: subject}
	case seo.CategorySector:
		subject := strings.TrimPrefix(pageSlug, SectorPrefix)
		if subject == pageSlug {
			subject = strings.TrimPrefix(pageSlug, LegacySectorPrefix)
		}
		return Decoded{Path: "/" + SectorSegment + "/" + subject, Subject: subject}
	case seo.CategoryProfessionCity:
		remainder := strings.TrimPrefix(pageSlug, PagePrefix)
		idx := strings.LastIndexByte(remainder, '-')
		if idx <= 0 || idx == len(remainder)-1 {
			return Decoded{Path: "/" + pageSlug}
		}
		return CombinedLocation(remainder[:idx], remainder[idx+1:])
	}
	return Decoded{Path: "/" + pageSlug}
}

// CombinedLocation builds the path of a combined page from its two slugs.
func CombinedLocation(professionSlug, citySlug string) Decoded {
	return Decoded{
		Path:           "/" + CitySegment + "/" + citySlug + "/" + professionSlug,
		ProfessionSlug: professionSlug,
		CitySlug:       citySlug,
	}
}

// DecodePage decodes a stored page. In structured mode combined pages use their
// stored slugs when both are present and otherwise fall back to the legacy split.
func DecodePage(page seo.GeneratedPage, mode DecodeMode) Decoded {
	category := seo.ParseCategory(string(page.Category))
	if mode == DecodeStructured && category == seo.CategoryProfessionCity &&
		page.ProfessionSlug != "" && page.CitySlug != "" {
		return CombinedLocation(page.ProfessionSlug, page.CitySlug)
	}
	return Decode(page.Slug, category)
}
