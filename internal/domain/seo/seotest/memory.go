// Package seotest provides an in-memory seo.Repository for tests.
package seotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"cartaseo/app/internal/domain/seo"
)

// Repository is a mutex-guarded in-memory store enforcing slug uniqueness.
type Repository struct {
	mu sync.Mutex

	professions []seo.Profession
	cities      []seo.City
	templates   map[string]seo.PageTemplate
	pages       []seo.GeneratedPage

	nextID uint
	clock  time.Time

	// FailIncrement makes IncrementViewCount return this error when set.
	FailIncrement error
	// FailListPages makes ListPages return this error when set.
	FailListPages error
	// CreateCalls counts CreatePage invocations, including conflicting ones.
	CreateCalls int
	// PageFilters records every filter passed to ListPages.
	PageFilters []seo.PageFilter
}

var _ seo.Repository = (*Repository)(nil)

// New returns an empty repository whose timestamps advance one second per write.
func New() *Repository {
	return &Repository{
		templates: make(map[string]seo.PageTemplate),
		clock:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *Repository) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *Repository) id() uint {
	r.nextID++
	return r.nextID
}

// AddProfession stores a profession and returns its id.
func (r *Repository) AddProfession(profession seo.Profession) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	profession.ID = r.id()
	r.professions = append(r.professions, profession)
	return profession.ID
}

// AddCity stores a city and returns its id.
func (r *Repository) AddCity(city seo.City) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	city.ID = r.id()
	r.cities = append(r.cities, city)
	return city.ID
}

// AddTemplate stores a template under its name.
func (r *Repository) AddTemplate(template seo.PageTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	template.ID = r.id()
	r.templates[template.Name] = template
}

// SeedPage stores a page as given, keeping its LastUpdated value.
func (r *Repository) SeedPage(page seo.GeneratedPage) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	page.ID = r.id()
	r.pages = append(r.pages, page)
	return page.ID
}

// Pages returns a copy of every stored page in insertion order.
func (r *Repository) Pages() []seo.GeneratedPage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]seo.GeneratedPage, len(r.pages))
	copy(out, r.pages)
	return out
}

// Page returns the stored page for a slug, or nil.
func (r *Repository) Page(slug string) *seo.GeneratedPage {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, page := range r.pages {
		if page.Slug == slug {
			copied := page
			return &copied
		}
	}
	return nil
}

func (r *Repository) FindProfessionBySlug(_ context.Context, slug string) (*seo.Profession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, profession := range r.professions {
		if profession.Slug == slug {
			copied := profession
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *Repository) FindProfessionByID(_ context.Context, id uint) (*seo.Profession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, profession := range r.professions {
		if profession.ID == id {
			copied := profession
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *Repository) ListProfessions(_ context.Context, opts seo.ListOptions) ([]seo.Profession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]seo.Profession, 0, len(r.professions))
	for _, profession := range r.professions {
		if profession.Active {
			out = append(out, profession)
		}
	}
	if opts.Order == seo.OrderByName {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *Repository) UpsertProfession(_ context.Context, profession *seo.Profession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, existing := range r.professions {
		if existing.Slug == profession.Slug {
			profession.ID = existing.ID
			r.professions[idx] = *profession
			return nil
		}
	}
	profession.ID = r.id()
	r.professions = append(r.professions, *profession)
	return nil
}

func (r *Repository) FindCityBySlug(_ context.Context, slug string) (*seo.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, city := range r.cities {
		if city.Slug == slug {
			copied := city
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *Repository) FindCityByID(_ context.Context, id uint) (*seo.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, city := range r.cities {
		if city.ID == id {
			copied := city
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *Repository) ListCities(_ context.Context, opts seo.ListOptions) ([]seo.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]seo.City, 0, len(r.cities))
	for _, city := range r.cities {
		if city.Active {
			out = append(out, city)
		}
	}
	if opts.Order == seo.OrderByName {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *Repository) UpsertCity(_ context.Context, city *seo.City) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, existing := range r.cities {
		if existing.Slug == city.Slug {
			city.ID = existing.ID
			r.cities[idx] = *city
			return nil
		}
	}
	city.ID = r.id()
	r.cities = append(r.cities, *city)
	return nil
}

func (r *Repository) FindTemplate(_ context.Context, name string) (*seo.PageTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	template, ok := r.templates[name]
	if !ok || !template.Active {
		return nil, nil
	}
	return &template, nil
}

func (r *Repository) UpsertTemplate(_ context.Context, template *seo.PageTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.templates[template.Name]; ok {
		template.ID = existing.ID
	} else {
		template.ID = r.id()
	}
	r.templates[template.Name] = *template
	return nil
}

func (r *Repository) FindPageBySlug(_ context.Context, slug string) (*seo.GeneratedPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, page := range r.pages {
		if page.Slug == slug {
			copied := page
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *Repository) ListPages(_ context.Context, filter seo.PageFilter) ([]seo.GeneratedPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PageFilters = append(r.PageFilters, filter)
	if r.FailListPages != nil {
		return nil, r.FailListPages
	}

	out := make([]seo.GeneratedPage, 0, len(r.pages))
	for _, page := range r.pages {
		if filter.ActiveOnly && !page.Active {
			continue
		}
		if filter.Category != "" && page.Category != filter.Category {
			continue
		}
		if filter.ProfessionID != nil && (page.ProfessionID == nil || *page.ProfessionID != *filter.ProfessionID) {
			continue
		}
		if filter.CityID != nil && (page.CityID == nil || *page.CityID != *filter.CityID) {
			continue
		}
		if filter.LocationsOnly {
			page = seo.GeneratedPage{
				ID:             page.ID,
				Slug:           page.Slug,
				Category:       page.Category,
				ProfessionSlug: page.ProfessionSlug,
				CitySlug:       page.CitySlug,
				Active:         page.Active,
				LastUpdated:    page.LastUpdated,
			}
		}
		out = append(out, page)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].ID > out[j].ID
		}
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *Repository) CreatePage(_ context.Context, page *seo.GeneratedPage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateCalls++
	for _, existing := range r.pages {
		if existing.Slug == page.Slug {
			return eris.Wrapf(seo.ErrPersistenceConflict, "slug %s", page.Slug)
		}
	}
	page.ID = r.id()
	page.LastUpdated = r.tick()
	r.pages = append(r.pages, *page)
	return nil
}

func (r *Repository) UpsertPage(_ context.Context, page *seo.GeneratedPage) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, existing := range r.pages {
		if existing.Slug == page.Slug {
			page.ID = existing.ID
			page.ViewCount = existing.ViewCount
			page.Active = true
			page.LastUpdated = r.tick()
			r.pages[idx] = *page
			return false, nil
		}
	}
	page.ID = r.id()
	page.Active = true
	page.LastUpdated = r.tick()
	r.pages = append(r.pages, *page)
	return true, nil
}

func (r *Repository) UpdatePage(_ context.Context, id uint, update seo.PageUpdate) (*seo.GeneratedPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, page := range r.pages {
		if page.ID != id {
			continue
		}
		if update.Title != nil {
			page.Title = *update.Title
		}
		if update.MetaDescription != nil {
			page.MetaDescription = *update.MetaDescription
		}
		if update.Content != nil {
			page.Content = *update.Content
		}
		if update.Keywords != nil {
			page.Keywords = append([]string(nil), update.Keywords...)
		}
		if update.Active != nil {
			page.Active = *update.Active
		}
		page.LastUpdated = r.tick()
		r.pages[idx] = page
		copied := page
		return &copied, nil
	}
	return nil, nil
}

func (r *Repository) IncrementViewCount(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailIncrement != nil {
		return r.FailIncrement
	}
	for idx := range r.pages {
		if r.pages[idx].Slug == slug {
			r.pages[idx].ViewCount++
			return nil
		}
	}
	return eris.Wrapf(seo.ErrNotFound, "page %s", slug)
}
