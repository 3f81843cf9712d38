// Package slugs encodes entity identities into page slugs and decodes page slugs into public URL paths.
package slugs

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/rotisserie/eris"

	"cartaseo/app/internal/domain/seo"
)

const (
	// PagePrefix starts every profession, city, combined and sector page slug.
	PagePrefix = "carta-apresentacao-"
	// GuidePrefix starts every guide page slug.
	GuidePrefix = "guia-"
	// SectorPrefix is the prefix new sector pages are encoded with.
	SectorPrefix = PagePrefix + "sector-"
	// LegacySectorPrefix is the prefix sector pages were published with before the
	// encoder switched to SectorPrefix. Both stay decodable; do not merge them.
	LegacySectorPrefix = PagePrefix + "setor-"
)

// Public path segments. The sector segment is Portuguese ("setor") while the
// encoded slug uses "sector"; published URLs depend on both spellings.
const (
	ProfessionSegment = "profissao"
	CitySegment       = "cidade"
	GuideSegment      = "guia"
	SectorSegment     = "setor"
)

// ProfessionPageSlug encodes the slug of a profession page.
func ProfessionPageSlug(profession string) (string, error) {
	if err := requireSlug("profession", profession); err != nil {
		return "", err
	}
	return PagePrefix + profession, nil
}

// CityPageSlug encodes the slug of a city page.
func CityPageSlug(city string) (string, error) {
	if err := requireSlug("city", city); err != nil {
		return "", err
	}
	return PagePrefix + city, nil
}

// ProfessionCityPageSlug encodes the slug of a combined profession and city page.
func ProfessionCityPageSlug(profession, city string) (string, error) {
	if err := requireSlug("profession", profession); err != nil {
		return "", err
	}
	if err := requireSlug("city", city); err != nil {
		return "", err
	}
	return PagePrefix + profession + "-" + city, nil
}

// GuidePageSlug encodes the slug of a guide page.
func GuidePageSlug(topic string) (string, error) {
	if err := requireSlug("guide topic", topic); err != nil {
		return "", err
	}
	return GuidePrefix + topic, nil
}

// SectorPageSlug encodes the slug of a sector page.
func SectorPageSlug(sector string) (string, error) {
	if err := requireSlug("sector", sector); err != nil {
		return "", err
	}
	return SectorPrefix + sector, nil
}

// Normalize turns a display name into a slug, for seed records that omit one.
func Normalize(name string) string {
	return slug.Make(name)
}

func requireSlug(kind, value string) error {
	if strings.TrimSpace(value) == "" {
		return eris.Wrapf(seo.ErrValidation, "%s slug is required", kind)
	}
	if !slug.IsSlug(value) {
		return eris.Wrapf(seo.ErrValidation, "%s slug %q is not a valid slug", kind, value)
	}
	return nil
}
