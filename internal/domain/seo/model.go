package seo

import (
	"sort"
	"strings"
	"time"
)

// Category classifies a generated page. The canonical values are English; rows imported
// from the legacy system may still carry the Portuguese names, see ParseCategory.
type Category string

const (
	CategoryProfession     Category = "profession"
	CategoryCity           Category = "city"
	CategoryProfessionCity Category = "profession-city"
	CategoryGuide          Category = "guide"
	CategorySector         Category = "sector"
	CategoryOther          Category = "other"
)

var legacyCategories = map[string]Category{
	"profissao":        CategoryProfession,
	"cidade":           CategoryCity,
	"profissao-cidade": CategoryProfessionCity,
	"guia":             CategoryGuide,
	"setor":            CategorySector,
}

// ParseCategory maps canonical and legacy category names onto a Category.
// Unrecognised names yield CategoryOther.
func ParseCategory(raw string) Category {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch Category(value) {
	case CategoryProfession, CategoryCity, CategoryProfessionCity, CategoryGuide, CategorySector:
		return Category(value)
	}
	if category, ok := legacyCategories[value]; ok {
		return category
	}
	return CategoryOther
}

// RequiresProfession reports whether pages of this category reference a profession.
func (c Category) RequiresProfession() bool {
	return c == CategoryProfession || c == CategoryProfessionCity
}

// RequiresCity reports whether pages of this category reference a city.
func (c Category) RequiresCity() bool {
	return c == CategoryCity || c == CategoryProfessionCity
}

// Profession is a job title pages are generated for.
type Profession struct {
	ID          uint
	Name        string
	Slug        string
	Description string
	SalaryText  string
	Skills      []string
	Active      bool
}

// City is a location pages are generated for.
type City struct {
	ID          uint
	Name        string
	Slug        string
	District    string
	Population  *int64
	Description string
	Active      bool
}

// PageTemplate holds the placeholder templates a generator renders.
type PageTemplate struct {
	ID              uint
	Name            string
	Category        string
	TitleTemplate   string
	MetaTemplate    string
	ContentTemplate string
	Active          bool
}

// TemplateName builds the unique `{category}-{subcategory}` template name.
func TemplateName(category, subcategory string) string {
	return strings.TrimSpace(category) + "-" + strings.TrimSpace(subcategory)
}

// GeneratedPage is a synthesized, indexable content page.
type GeneratedPage struct {
	ID              uint
	Slug            string
	Title           string
	MetaDescription string
	Content         string
	Category        Category
	Subcategory     string
	Keywords        []string
	ProfessionID    *uint
	CityID          *uint
	ProfessionSlug  string
	CitySlug        string
	ViewCount       int64
	Active          bool
	LastUpdated     time.Time

	Profession *Profession
	City       *City
}

// PageSummary is the short form of a page used in entity listings.
type PageSummary struct {
	Slug     string
	Title    string
	Category Category
}

// PageUpdate carries the editable fields of a generated page. Nil fields are left as-is.
type PageUpdate struct {
	Title           *string
	MetaDescription *string
	Content         *string
	Keywords        []string
	Active          *bool
}

// Guide describes a fixed editorial guide page.
type Guide struct {
	Topic           string
	Title           string
	MetaDescription string
	Keywords        []string
}

// Sector describes an industry sector landing page.
type Sector struct {
	Name        string
	Slug        string
	Description string
}

// Catalog is the full set of seed entities loaded by the seed import.
type Catalog struct {
	Professions []Profession
	Cities      []City
	Templates   []PageTemplate
	Guides      []Guide
	Sectors     []Sector
}

// StoredNames returns every category name, canonical and legacy, that parses to c.
func (c Category) StoredNames() []string {
	names := []string{string(c)}
	for legacy, category := range legacyCategories {
		if category == c {
			names = append(names, legacy)
		}
	}
	sort.Strings(names[1:])
	return names
}
