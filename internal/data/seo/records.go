package seo

import (
	"time"

	"gorm.io/gorm"
)

// ProfessionRecord is a profession row.
type ProfessionRecord struct {
	gorm.Model
	Name        string   `gorm:"size:255;not null"`
	Slug        string   `gorm:"size:255;uniqueIndex:idx_professions_slug;not null"`
	Description string   `gorm:"type:text"`
	SalaryText  string   `gorm:"size:255"`
	Skills      []string `gorm:"type:text;serializer:json"`
	Active      bool     `gorm:"not null;index"`
}

// TableName defines the table name for the profession model.
func (ProfessionRecord) TableName() string {
	return "professions"
}

// CityRecord is a city row.
type CityRecord struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Slug        string `gorm:"size:255;uniqueIndex:idx_cities_slug;not null"`
	District    string `gorm:"size:255"`
	Population  *int64
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;index"`
}

// TableName defines the table name for the city model.
func (CityRecord) TableName() string {
	return "cities"
}

// TemplateRecord is a page template row, unique by name.
type TemplateRecord struct {
	gorm.Model
	Name            string `gorm:"size:255;uniqueIndex:idx_page_templates_name;not null"`
	Category        string `gorm:"size:64;not null"`
	TitleTemplate   string `gorm:"type:text;not null"`
	MetaTemplate    string `gorm:"type:text"`
	ContentTemplate string `gorm:"type:text;not null"`
	Active          bool   `gorm:"not null"`
}

// TableName defines the table name for the page template model.
func (TemplateRecord) TableName() string {
	return "page_templates"
}

// PageRecord is a generated page row. UpdatedAt doubles as the sitemap lastmod.
type PageRecord struct {
	gorm.Model
	Slug            string   `gorm:"size:255;uniqueIndex:idx_generated_pages_slug;not null"`
	Title           string   `gorm:"size:512;not null"`
	MetaDescription string   `gorm:"type:text"`
	Content         string   `gorm:"type:text;not null"`
	Category        string   `gorm:"size:64;not null;index"`
	Subcategory     string   `gorm:"size:255"`
	Keywords        []string `gorm:"type:text;serializer:json"`
	ProfessionID    *uint    `gorm:"index"`
	CityID          *uint    `gorm:"index"`
	ProfessionSlug  string   `gorm:"size:255"`
	CitySlug        string   `gorm:"size:255"`
	ViewCount       int64    `gorm:"not null;default:0"`
	Active          bool     `gorm:"not null;index"`

	Profession *ProfessionRecord `gorm:"foreignKey:ProfessionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	City       *CityRecord       `gorm:"foreignKey:CityID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName defines the table name for the generated page model.
func (PageRecord) TableName() string {
	return "generated_pages"
}

// lastUpdated prefers UpdatedAt and falls back to CreatedAt for rows imported without one.
func (r PageRecord) lastUpdated() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}
