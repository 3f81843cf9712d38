package http

import (
	"time"

	"cartaseo/app/internal/domain/seo"
)

type professionBody struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Salary      string   `json:"salary,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

type cityBody struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	District    string `json:"district,omitempty"`
	Population  *int64 `json:"population,omitempty"`
	Description string `json:"description,omitempty"`
}

type pageSummaryBody struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type pageBody struct {
	ID              uint            `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	MetaDescription string          `json:"metaDescription"`
	Content         string          `json:"content"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory,omitempty"`
	Keywords        []string        `json:"keywords"`
	ViewCount       int64           `json:"viewCount"`
	Active          bool            `json:"active"`
	LastUpdated     time.Time       `json:"lastUpdated"`
	Profession      *professionBody `json:"profession,omitempty"`
	City            *cityBody       `json:"city,omitempty"`
}

func newProfessionBody(profession *seo.Profession) *professionBody {
	if profession == nil {
		return nil
	}
	return &professionBody{
		ID:          profession.ID,
		Name:        profession.Name,
		Slug:        profession.Slug,
		Description: profession.Description,
		Salary:      profession.SalaryText,
		Skills:      profession.Skills,
	}
}

func newCityBody(city *seo.City) *cityBody {
	if city == nil {
		return nil
	}
	return &cityBody{
		ID:          city.ID,
		Name:        city.Name,
		Slug:        city.Slug,
		District:    city.District,
		Population:  city.Population,
		Description: city.Description,
	}
}

func newPageBody(page *seo.GeneratedPage) pageBody {
	keywords := page.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return pageBody{
		ID:              page.ID,
		Slug:            page.Slug,
		Title:           page.Title,
		MetaDescription: page.MetaDescription,
		Content:         page.Content,
		Category:        string(page.Category),
		Subcategory:     page.Subcategory,
		Keywords:        keywords,
		ViewCount:       page.ViewCount,
		Active:          page.Active,
		LastUpdated:     page.LastUpdated,
		Profession:      newProfessionBody(page.Profession),
		City:            newCityBody(page.City),
	}
}

func newSummaryBodies(pages []seo.PageSummary) []pageSummaryBody {
	bodies := make([]pageSummaryBody, 0, len(pages))
	for _, page := range pages {
		bodies = append(bodies, pageSummaryBody{Slug: page.Slug, Title: page.Title, Category: string(page.Category)})
	}
	return bodies
}
