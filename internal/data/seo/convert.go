package seo

import (
	domainseo "cartaseo/app/internal/domain/seo"
)

func toDomainProfession(record *ProfessionRecord) *domainseo.Profession {
	if record == nil {
		return nil
	}
	return &domainseo.Profession{
		ID:          record.ID,
		Name:        record.Name,
		Slug:        record.Slug,
		Description: record.Description,
		SalaryText:  record.SalaryText,
		Skills:      append([]string(nil), record.Skills...),
		Active:      record.Active,
	}
}

func toDomainCity(record *CityRecord) *domainseo.City {
	if record == nil {
		return nil
	}
	return &domainseo.City{
		ID:          record.ID,
		Name:        record.Name,
		Slug:        record.Slug,
		District:    record.District,
		Population:  record.Population,
		Description: record.Description,
		Active:      record.Active,
	}
}

func toDomainTemplate(record *TemplateRecord) *domainseo.PageTemplate {
	return &domainseo.PageTemplate{
		ID:              record.ID,
		Name:            record.Name,
		Category:        record.Category,
		TitleTemplate:   record.TitleTemplate,
		MetaTemplate:    record.MetaTemplate,
		ContentTemplate: record.ContentTemplate,
		Active:          record.Active,
	}
}

func toDomainPage(record *PageRecord) *domainseo.GeneratedPage {
	return &domainseo.GeneratedPage{
		ID:              record.ID,
		Slug:            record.Slug,
		Title:           record.Title,
		MetaDescription: record.MetaDescription,
		Content:         record.Content,
		Category:        domainseo.ParseCategory(record.Category),
		Subcategory:     record.Subcategory,
		Keywords:        append([]string(nil), record.Keywords...),
		ProfessionID:    record.ProfessionID,
		CityID:          record.CityID,
		ProfessionSlug:  record.ProfessionSlug,
		CitySlug:        record.CitySlug,
		ViewCount:       record.ViewCount,
		Active:          record.Active,
		LastUpdated:     record.lastUpdated(),
		Profession:      toDomainProfession(record.Profession),
		City:            toDomainCity(record.City),
	}
}

// toPageRecord maps the persisted columns of a page. Associations are left unset so
// saves never cascade into the profession or city tables.
func toPageRecord(page *domainseo.GeneratedPage) *PageRecord {
	record := &PageRecord{
		Slug:            page.Slug,
		Title:           page.Title,
		MetaDescription: page.MetaDescription,
		Content:         page.Content,
		Category:        string(page.Category),
		Subcategory:     page.Subcategory,
		Keywords:        page.Keywords,
		ProfessionID:    page.ProfessionID,
		CityID:          page.CityID,
		ProfessionSlug:  page.ProfessionSlug,
		CitySlug:        page.CitySlug,
		ViewCount:       page.ViewCount,
		Active:          page.Active,
	}
	record.ID = page.ID
	return record
}
