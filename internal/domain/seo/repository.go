package seo

import "context"

// ListOrder selects the ordering of entity listings.
type ListOrder int

const (
	// OrderByID returns entities in insertion order. Generation bounds rely on it.
	OrderByID ListOrder = iota
	// OrderByName returns entities alphabetically.
	OrderByName
)

// ListOptions filters profession and city listings. Only active rows are returned.
type ListOptions struct {
	Limit int
	Order ListOrder
}

// PageFilter filters generated page listings.
type PageFilter struct {
	ActiveOnly   bool
	Category     Category
	ProfessionID *uint
	CityID       *uint
	Limit        int
	// LocationsOnly loads just the columns needed to place a page in the sitemap:
	// id, slug, category, the structured slugs and the timestamps.
	LocationsOnly bool
}

// Repository defines the entity store operations the SEO domain depends on.
// Find methods return (nil, nil) when nothing matches.
type Repository interface {
	FindProfessionBySlug(ctx context.Context, slug string) (*Profession, error)
	FindProfessionByID(ctx context.Context, id uint) (*Profession, error)
	ListProfessions(ctx context.Context, opts ListOptions) ([]Profession, error)
	UpsertProfession(ctx context.Context, profession *Profession) error

	FindCityBySlug(ctx context.Context, slug string) (*City, error)
	FindCityByID(ctx context.Context, id uint) (*City, error)
	ListCities(ctx context.Context, opts ListOptions) ([]City, error)
	UpsertCity(ctx context.Context, city *City) error

	FindTemplate(ctx context.Context, name string) (*PageTemplate, error)
	UpsertTemplate(ctx context.Context, template *PageTemplate) error

	// FindPageBySlug returns the page regardless of its active flag.
	FindPageBySlug(ctx context.Context, slug string) (*GeneratedPage, error)
	// ListPages returns pages ordered most recently updated first.
	ListPages(ctx context.Context, filter PageFilter) ([]GeneratedPage, error)
	// CreatePage inserts a page and returns ErrPersistenceConflict when the slug is taken.
	CreatePage(ctx context.Context, page *GeneratedPage) error
	// UpsertPage creates or refreshes the page keyed by slug and reports whether it was created.
	UpsertPage(ctx context.Context, page *GeneratedPage) (bool, error)
	UpdatePage(ctx context.Context, id uint, update PageUpdate) (*GeneratedPage, error)
	// IncrementViewCount bumps the counter without touching the last-updated timestamp.
	IncrementViewCount(ctx context.Context, slug string) error
}
