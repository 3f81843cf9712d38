// Package sitemap builds the sitemaps.org document listing every active generated page.
package sitemap

import (
	"github.com/shopspring/decimal"

	"cartaseo/app/internal/domain/seo"
)

// Namespace is the sitemaps.org 0.9 XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFrequency is a sitemap <changefreq> value.
type ChangeFrequency string

const (
	Daily   ChangeFrequency = "daily"
	Weekly  ChangeFrequency = "weekly"
	Monthly ChangeFrequency = "monthly"
)

// Metadata is the crawl hint attached to a sitemap entry.
type Metadata struct {
	ChangeFrequency ChangeFrequency
	Priority        decimal.Decimal
}

var categoryMetadata = map[seo.Category]Metadata{
	seo.CategoryProfession:     {Monthly, decimal.RequireFromString("0.8")},
	seo.CategoryCity:           {Monthly, decimal.RequireFromString("0.7")},
	seo.CategoryGuide:          {Weekly, decimal.RequireFromString("0.9")},
	seo.CategoryProfessionCity: {Monthly, decimal.RequireFromString("0.6")},
}

var defaultMetadata = Metadata{Monthly, decimal.RequireFromString("0.5")}

// MetadataFor returns the crawl hints for a page category. Legacy category names are
// accepted; sector and unknown categories share the default.
func MetadataFor(category seo.Category) Metadata {
	if metadata, ok := categoryMetadata[seo.ParseCategory(string(category))]; ok {
		return metadata
	}
	return defaultMetadata
}

type staticRoute struct {
	path     string
	metadata Metadata
}

// staticRoutes are listed ahead of the generated pages.
var staticRoutes = []staticRoute{
	{"/", Metadata{Daily, decimal.RequireFromString("1.0")}},
	{"/login", Metadata{Monthly, decimal.RequireFromString("0.3")}},
	{"/jobs", Metadata{Weekly, decimal.RequireFromString("0.7")}},
}
