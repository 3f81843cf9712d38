package seo

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domainseo "cartaseo/app/internal/domain/seo"
)

// Repository persists professions, cities, templates and generated pages using Gorm.
type Repository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(db *gorm.DB, logger *logrus.Logger) (*Repository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &Repository{db: db, logger: logger}, nil
}

var _ domainseo.Repository = (*Repository)(nil)

// FindProfessionBySlug returns the profession for the slug or nil when not found.
func (r *Repository) FindProfessionBySlug(ctx context.Context, slug string) (*domainseo.Profession, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.Wrap(domainseo.ErrValidation, "profession slug is required")
	}

	var record ProfessionRecord
	if err := r.db.WithContext(ctx).First(&record, "slug = ?", trimmed).Error; err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"slug": trimmed}, err, "fetching profession by slug")
		return nil, eris.Wrapf(err, "fetching profession by slug: %s", trimmed)
	}

	return toDomainProfession(&record), nil
}

// FindProfessionByID returns the profession for the id or nil when not found.
func (r *Repository) FindProfessionByID(ctx context.Context, id uint) (*domainseo.Profession, error) {
	var record ProfessionRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"profession_id": id}, err, "fetching profession by id")
		return nil, eris.Wrapf(err, "fetching profession by id: %d", id)
	}

	return toDomainProfession(&record), nil
}

// ListProfessions returns active professions in the requested order.
func (r *Repository) ListProfessions(ctx context.Context, opts domainseo.ListOptions) ([]domainseo.Profession, error) {
	var records []ProfessionRecord

	if err := listQuery(r.db.WithContext(ctx), opts).Find(&records).Error; err != nil {
		r.logError(nil, err, "listing professions")
		return nil, eris.Wrap(err, "listing professions")
	}

	professions := make([]domainseo.Profession, 0, len(records))
	for idx := range records {
		professions = append(professions, *toDomainProfession(&records[idx]))
	}
	return professions, nil
}

// UpsertProfession creates or overwrites the profession keyed by slug.
func (r *Repository) UpsertProfession(ctx context.Context, profession *domainseo.Profession) error {
	if profession == nil {
		return eris.New("profession is nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record ProfessionRecord
		err := tx.First(&record, "slug = ?", profession.Slug).Error
		if err != nil && !eris.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record.Name = profession.Name
		record.Slug = profession.Slug
		record.Description = profession.Description
		record.SalaryText = profession.SalaryText
		record.Skills = profession.Skills
		record.Active = profession.Active

		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		profession.ID = record.ID
		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"slug": profession.Slug}, err, "upserting profession")
		return eris.Wrapf(err, "upserting profession: %s", profession.Slug)
	}
	return nil
}

// FindCityBySlug returns the city for the slug or nil when not found.
func (r *Repository) FindCityBySlug(ctx context.Context, slug string) (*domainseo.City, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.Wrap(domainseo.ErrValidation, "city slug is required")
	}

	var record CityRecord
	if err := r.db.WithContext(ctx).First(&record, "slug = ?", trimmed).Error; err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"slug": trimmed}, err, "fetching city by slug")
		return nil, eris.Wrapf(err, "fetching city by slug: %s", trimmed)
	}

	return toDomainCity(&record), nil
}

// FindCityByID returns the city for the id or nil when not found.
func (r *Repository) FindCityByID(ctx context.Context, id uint) (*domainseo.City, error) {
	var record CityRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"city_id": id}, err, "fetching city by id")
		return nil, eris.Wrapf(err, "fetching city by id: %d", id)
	}

	return toDomainCity(&record), nil
}

// ListCities returns active cities in the requested order.
func (r *Repository) ListCities(ctx context.Context, opts domainseo.ListOptions) ([]domainseo.City, error) {
	var records []CityRecord

	if err := listQuery(r.db.WithContext(ctx), opts).Find(&records).Error; err != nil {
		r.logError(nil, err, "listing cities")
		return nil, eris.Wrap(err, "listing cities")
	}

	cities := make([]domainseo.City, 0, len(records))
	for idx := range records {
		cities = append(cities, *toDomainCity(&records[idx]))
	}
	return cities, nil
}

// UpsertCity creates or overwrites the city keyed by slug.
func (r *Repository) UpsertCity(ctx context.Context, city *domainseo.City) error {
	if city == nil {
		return eris.New("city is nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record CityRecord
		err := tx.First(&record, "slug = ?", city.Slug).Error
		if err != nil && !eris.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record.Name = city.Name
		record.Slug = city.Slug
		record.District = city.District
		record.Population = city.Population
		record.Description = city.Description
		record.Active = city.Active

		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		city.ID = record.ID
		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"slug": city.Slug}, err, "upserting city")
		return eris.Wrapf(err, "upserting city: %s", city.Slug)
	}
	return nil
}

// FindTemplate returns the active template with the given name or nil when not found.
func (r *Repository) FindTemplate(ctx context.Context, name string) (*domainseo.PageTemplate, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, eris.Wrap(domainseo.ErrValidation, "template name is required")
	}

	var record TemplateRecord
	if err := r.db.WithContext(ctx).First(&record, "name = ? AND active = ?", trimmed, true).Error; err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"template": trimmed}, err, "fetching template")
		return nil, eris.Wrapf(err, "fetching template: %s", trimmed)
	}

	return toDomainTemplate(&record), nil
}

// UpsertTemplate creates or overwrites the template keyed by name.
func (r *Repository) UpsertTemplate(ctx context.Context, template *domainseo.PageTemplate) error {
	if template == nil {
		return eris.New("template is nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record TemplateRecord
		err := tx.First(&record, "name = ?", template.Name).Error
		if err != nil && !eris.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record.Name = template.Name
		record.Category = template.Category
		record.TitleTemplate = template.TitleTemplate
		record.MetaTemplate = template.MetaTemplate
		record.ContentTemplate = template.ContentTemplate
		record.Active = template.Active

		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		template.ID = record.ID
		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"template": template.Name}, err, "upserting template")
		return eris.Wrapf(err, "upserting template: %s", template.Name)
	}
	return nil
}

// FindPageBySlug returns the page with its profession and city, active or not.
func (r *Repository) FindPageBySlug(ctx context.Context, slug string) (*domainseo.GeneratedPage, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.Wrap(domainseo.ErrValidation, "page slug is required")
	}

	var record PageRecord
	err := r.db.WithContext(ctx).
		Preload("Profession").
		Preload("City").
		First(&record, "slug = ?", trimmed).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"slug": trimmed}, err, "fetching page by slug")
		return nil, eris.Wrapf(err, "fetching page by slug: %s", trimmed)
	}

	return toDomainPage(&record), nil
}

var locationColumns = []string{"id", "slug", "category", "profession_slug", "city_slug", "active", "created_at", "updated_at"}

// ListPages returns pages matching the filter, most recently updated first.
func (r *Repository) ListPages(ctx context.Context, filter domainseo.PageFilter) ([]domainseo.GeneratedPage, error) {
	query := r.db.WithContext(ctx).Model(&PageRecord{})
	if filter.LocationsOnly {
		query = query.Select(locationColumns)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category IN ?", filter.Category.StoredNames())
	}
	if filter.ProfessionID != nil {
		query = query.Where("profession_id = ?", *filter.ProfessionID)
	}
	if filter.CityID != nil {
		query = query.Where("city_id = ?", *filter.CityID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var records []PageRecord
	if err := query.Order("updated_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		r.logError(nil, err, "listing pages")
		return nil, eris.Wrap(err, "listing pages")
	}

	pages := make([]domainseo.GeneratedPage, 0, len(records))
	for idx := range records {
		pages = append(pages, *toDomainPage(&records[idx]))
	}
	return pages, nil
}

// CreatePage stores a new page. A taken slug yields ErrPersistenceConflict.
func (r *Repository) CreatePage(ctx context.Context, page *domainseo.GeneratedPage) error {
	if page == nil {
		return eris.New("page is nil")
	}

	record := toPageRecord(page)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isDuplicate(err) {
			return eris.Wrapf(domainseo.ErrPersistenceConflict, "creating page %s", page.Slug)
		}
		r.logError(logrus.Fields{"slug": page.Slug}, err, "creating page")
		return eris.Wrapf(err, "creating page: %s", page.Slug)
	}

	page.ID = record.ID
	page.LastUpdated = record.lastUpdated()
	return nil
}

// UpsertPage creates the page or refreshes the existing row for its slug in place,
// keeping the view count and re-activating it.
func (r *Repository) UpsertPage(ctx context.Context, page *domainseo.GeneratedPage) (bool, error) {
	if page == nil {
		return false, eris.New("page is nil")
	}

	created, err := r.upsertPage(ctx, page)
	if err != nil && eris.Is(err, domainseo.ErrPersistenceConflict) {
		// A concurrent writer inserted the slug between our read and insert.
		created, err = r.upsertPage(ctx, page)
	}
	if err != nil {
		r.logError(logrus.Fields{"slug": page.Slug}, err, "upserting page")
		return false, eris.Wrapf(err, "upserting page: %s", page.Slug)
	}
	return created, nil
}

func (r *Repository) upsertPage(ctx context.Context, page *domainseo.GeneratedPage) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing PageRecord
		err := tx.First(&existing, "slug = ?", page.Slug).Error
		if err != nil && !eris.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record := toPageRecord(page)
		record.Active = true
		if err == nil {
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
			record.ViewCount = existing.ViewCount
		} else {
			created = true
		}

		if err := tx.Save(record).Error; err != nil {
			if isDuplicate(err) {
				return eris.Wrapf(domainseo.ErrPersistenceConflict, "page %s", page.Slug)
			}
			return err
		}

		page.ID = record.ID
		page.ViewCount = record.ViewCount
		page.Active = true
		page.LastUpdated = record.lastUpdated()
		return nil
	})
	return created, err
}

// UpdatePage applies the non-nil fields of the update. It returns nil when no page has the id.
func (r *Repository) UpdatePage(ctx context.Context, id uint, update domainseo.PageUpdate) (*domainseo.GeneratedPage, error) {
	var updated *domainseo.GeneratedPage

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record PageRecord
		if err := tx.First(&record, id).Error; err != nil {
			if eris.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		columns := make([]string, 0, 5)
		if update.Title != nil {
			record.Title = *update.Title
			columns = append(columns, "title")
		}
		if update.MetaDescription != nil {
			record.MetaDescription = *update.MetaDescription
			columns = append(columns, "meta_description")
		}
		if update.Content != nil {
			record.Content = *update.Content
			columns = append(columns, "content")
		}
		if update.Keywords != nil {
			record.Keywords = update.Keywords
			columns = append(columns, "keywords")
		}
		if update.Active != nil {
			record.Active = *update.Active
			columns = append(columns, "active")
		}

		if len(columns) > 0 {
			if err := tx.Model(&record).Select(columns).Updates(&record).Error; err != nil {
				return err
			}
		}

		updated = toDomainPage(&record)
		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"page_id": id}, err, "updating page")
		return nil, eris.Wrapf(err, "updating page: %d", id)
	}

	return updated, nil
}

// IncrementViewCount bumps the view counter without touching updated_at.
func (r *Repository) IncrementViewCount(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).
		Model(&PageRecord{}).
		Where("slug = ?", slug).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		r.logError(logrus.Fields{"slug": slug}, result.Error, "incrementing view count")
		return eris.Wrapf(result.Error, "incrementing view count: %s", slug)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(domainseo.ErrNotFound, "page %s", slug)
	}
	return nil
}

func (r *Repository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil || err == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}

func listQuery(db *gorm.DB, opts domainseo.ListOptions) *gorm.DB {
	query := db.Where("active = ?", true)
	switch opts.Order {
	case domainseo.OrderByName:
		query = query.Order("name ASC").Order("id ASC")
	default:
		query = query.Order("id ASC")
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	return query
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique") || strings.Contains(message, "duplicate")
}
