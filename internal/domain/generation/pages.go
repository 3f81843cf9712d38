package generation

import (
	"strings"

	"cartaseo/app/internal/domain/content"
	"cartaseo/app/internal/domain/seo"
	"cartaseo/app/internal/domain/slugs"
)

func (s *Synthesizer) professionPage(template *seo.PageTemplate, profession seo.Profession) (*seo.GeneratedPage, error) {
	slug, err := slugs.ProfessionPageSlug(profession.Slug)
	if err != nil {
		return nil, err
	}

	variables := s.variables(slug, profession.Name)
	addProfession(variables, profession)

	name := strings.ToLower(profession.Name)
	id := profession.ID
	page := render(template, variables)
	page.Slug = slug
	page.Category = seo.CategoryProfession
	page.Subcategory = profession.Name
	page.Keywords = []string{
		"carta apresentação " + name,
		"modelo carta " + name,
		"exemplo carta " + name,
	}
	page.ProfessionID = &id
	page.ProfessionSlug = profession.Slug
	return page, nil
}

func (s *Synthesizer) cityPage(template *seo.PageTemplate, city seo.City) (*seo.GeneratedPage, error) {
	slug, err := slugs.CityPageSlug(city.Slug)
	if err != nil {
		return nil, err
	}

	variables := s.variables(slug, city.Name)
	addCity(variables, city)

	name := strings.ToLower(city.Name)
	id := city.ID
	page := render(template, variables)
	page.Slug = slug
	page.Category = seo.CategoryCity
	page.Subcategory = city.Name
	page.Keywords = []string{
		"carta apresentação " + name,
		"emprego " + name,
		"trabalho " + name,
	}
	page.CityID = &id
	page.CitySlug = city.Slug
	return page, nil
}

func (s *Synthesizer) combinedPage(template *seo.PageTemplate, profession seo.Profession, city seo.City) (*seo.GeneratedPage, error) {
	slug, err := slugs.ProfessionCityPageSlug(profession.Slug, city.Slug)
	if err != nil {
		return nil, err
	}

	variables := s.variables(slug, profession.Name)
	addProfession(variables, profession)
	addCity(variables, city)
	variables["description"] = profession.Description

	pair := strings.ToLower(profession.Name) + " " + strings.ToLower(city.Name)
	professionID, cityID := profession.ID, city.ID
	page := render(template, variables)
	page.Slug = slug
	page.Category = seo.CategoryProfessionCity
	page.Subcategory = profession.Name + " em " + city.Name
	page.Keywords = []string{
		"carta apresentação " + pair,
		"emprego " + pair,
		"trabalho " + pair,
	}
	page.ProfessionID = &professionID
	page.CityID = &cityID
	page.ProfessionSlug = profession.Slug
	page.CitySlug = city.Slug
	return page, nil
}

func (s *Synthesizer) guidePage(template *seo.PageTemplate, guide seo.Guide) (*seo.GeneratedPage, error) {
	slug, err := slugs.GuidePageSlug(guide.Topic)
	if err != nil {
		return nil, err
	}

	topic := strings.ReplaceAll(guide.Topic, "-", " ")
	variables := s.variables(slug, topic)
	variables["topic"] = topic
	variables["title"] = guide.Title
	variables["meta"] = guide.MetaDescription

	page := render(template, variables)
	if strings.TrimSpace(guide.Title) != "" {
		page.Title = guide.Title
	}
	if strings.TrimSpace(guide.MetaDescription) != "" {
		page.MetaDescription = guide.MetaDescription
	}
	page.Slug = slug
	page.Category = seo.CategoryGuide
	page.Subcategory = guide.Topic
	page.Keywords = append([]string(nil), guide.Keywords...)
	return page, nil
}

func (s *Synthesizer) sectorPage(template *seo.PageTemplate, sector seo.Sector) (*seo.GeneratedPage, error) {
	slug, err := slugs.SectorPageSlug(sector.Slug)
	if err != nil {
		return nil, err
	}

	variables := s.variables(slug, sector.Name)
	variables["sector"] = sector.Name
	variables["description"] = sector.Description

	name := strings.ToLower(sector.Name)
	page := render(template, variables)
	page.Slug = slug
	page.Category = seo.CategorySector
	page.Subcategory = sector.Name
	page.Keywords = []string{
		"carta apresentação " + name,
		"emprego " + name,
		"sector " + name,
	}
	return page, nil
}

// variables seeds the phrase variables for a page. The page slug keys the variation
// so a page renders identically on every run.
func (s *Synthesizer) variables(slug, subject string) map[string]string {
	return s.variation.Phrases(slug, subject)
}

func addProfession(variables map[string]string, profession seo.Profession) {
	variables["profession"] = profession.Name
	variables["salary"] = content.Salary(profession.SalaryText)
	variables["skills"] = content.JoinSkills(profession.Skills)
	variables["description"] = profession.Description
}

func addCity(variables map[string]string, city seo.City) {
	district := strings.TrimSpace(city.District)
	if district == "" {
		district = city.Name
	}
	variables["city"] = city.Name
	variables["district"] = district
	variables["population"] = content.FormatPopulation(city.Population)
	variables["description"] = city.Description
}

func render(template *seo.PageTemplate, variables map[string]string) *seo.GeneratedPage {
	body := content.Render(template.ContentTemplate, variables)
	meta := strings.TrimSpace(content.Render(template.MetaTemplate, variables))
	if meta == "" {
		meta = content.Excerpt(body, metaDescriptionLength)
	}

	return &seo.GeneratedPage{
		Title:           strings.TrimSpace(content.Render(template.TitleTemplate, variables)),
		MetaDescription: meta,
		Content:         body,
		Active:          true,
	}
}
