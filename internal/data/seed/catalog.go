package seed

import (
	"bytes"
	"embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"cartaseo/app/internal/domain/seo"
	"cartaseo/app/internal/domain/slugs"
)

//go:embed catalog/*.yaml
var embedded embed.FS

type document struct {
	Professions []professionEntry `yaml:"professions"`
	Cities      []cityEntry       `yaml:"cities"`
	Templates   []templateEntry   `yaml:"templates"`
	Guides      []guideEntry      `yaml:"guides"`
	Sectors     []sectorEntry     `yaml:"sectors"`
}

type professionEntry struct {
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	Salary      string   `yaml:"salary"`
	Skills      []string `yaml:"skills"`
	Inactive    bool     `yaml:"inactive"`
}

type cityEntry struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	District    string `yaml:"district"`
	Population  *int64 `yaml:"population"`
	Description string `yaml:"description"`
	Inactive    bool   `yaml:"inactive"`
}

type templateEntry struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Title    string `yaml:"title"`
	Meta     string `yaml:"meta"`
	Content  string `yaml:"content"`
	Inactive bool   `yaml:"inactive"`
}

type guideEntry struct {
	Topic           string   `yaml:"topic"`
	Title           string   `yaml:"title"`
	MetaDescription string   `yaml:"meta_description"`
	Keywords        []string `yaml:"keywords"`
}

type sectorEntry struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// Default returns the catalog embedded in the binary.
func Default() (seo.Catalog, error) {
	sub, err := fs.Sub(embedded, "catalog")
	if err != nil {
		return seo.Catalog{}, eris.Wrap(err, "preparing embedded catalog filesystem")
	}
	return Load(sub)
}

// LoadDir reads every YAML file in dir. An empty dir selects the embedded catalog.
func LoadDir(dir string) (seo.Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return Default()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return seo.Catalog{}, eris.Wrapf(err, "reading seed directory %s", dir)
	}
	if !info.IsDir() {
		return seo.Catalog{}, eris.Errorf("seed path %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load merges the YAML files at the root of fsys into a catalog. Files are read in
// name order and each may hold any subset of the catalog sections.
func Load(fsys fs.FS) (seo.Catalog, error) {
	if fsys == nil {
		return seo.Catalog{}, eris.New("catalog filesystem is required")
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return seo.Catalog{}, eris.Wrap(err, "listing catalog files")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return seo.Catalog{}, eris.New("catalog contains no yaml files")
	}

	var merged document
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return seo.Catalog{}, eris.Wrapf(err, "reading catalog file %s", name)
		}

		doc, err := decode(data)
		if err != nil {
			return seo.Catalog{}, eris.Wrapf(err, "parsing catalog file %s", name)
		}

		merged.Professions = append(merged.Professions, doc.Professions...)
		merged.Cities = append(merged.Cities, doc.Cities...)
		merged.Templates = append(merged.Templates, doc.Templates...)
		merged.Guides = append(merged.Guides, doc.Guides...)
		merged.Sectors = append(merged.Sectors, doc.Sectors...)
	}

	return merged.catalog(), nil
}

func decode(data []byte) (document, error) {
	var doc document

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return document{}, err
	}
	return doc, nil
}

func (d document) catalog() seo.Catalog {
	catalog := seo.Catalog{
		Professions: make([]seo.Profession, 0, len(d.Professions)),
		Cities:      make([]seo.City, 0, len(d.Cities)),
		Templates:   make([]seo.PageTemplate, 0, len(d.Templates)),
		Guides:      make([]seo.Guide, 0, len(d.Guides)),
		Sectors:     make([]seo.Sector, 0, len(d.Sectors)),
	}

	for _, entry := range d.Professions {
		catalog.Professions = append(catalog.Professions, seo.Profession{
			Name:        strings.TrimSpace(entry.Name),
			Slug:        slugOrNormalized(entry.Slug, entry.Name),
			Description: strings.TrimSpace(entry.Description),
			SalaryText:  strings.TrimSpace(entry.Salary),
			Skills:      entry.Skills,
			Active:      !entry.Inactive,
		})
	}

	for _, entry := range d.Cities {
		catalog.Cities = append(catalog.Cities, seo.City{
			Name:        strings.TrimSpace(entry.Name),
			Slug:        slugOrNormalized(entry.Slug, entry.Name),
			District:    strings.TrimSpace(entry.District),
			Population:  entry.Population,
			Description: strings.TrimSpace(entry.Description),
			Active:      !entry.Inactive,
		})
	}

	for _, entry := range d.Templates {
		catalog.Templates = append(catalog.Templates, seo.PageTemplate{
			Name:            strings.TrimSpace(entry.Name),
			Category:        strings.TrimSpace(entry.Category),
			TitleTemplate:   entry.Title,
			MetaTemplate:    entry.Meta,
			ContentTemplate: entry.Content,
			Active:          !entry.Inactive,
		})
	}

	for _, entry := range d.Guides {
		catalog.Guides = append(catalog.Guides, seo.Guide{
			Topic:           slugOrNormalized(entry.Topic, entry.Title),
			Title:           strings.TrimSpace(entry.Title),
			MetaDescription: strings.TrimSpace(entry.MetaDescription),
			Keywords:        entry.Keywords,
		})
	}

	for _, entry := range d.Sectors {
		catalog.Sectors = append(catalog.Sectors, seo.Sector{
			Name:        strings.TrimSpace(entry.Name),
			Slug:        slugOrNormalized(entry.Slug, entry.Name),
			Description: strings.TrimSpace(entry.Description),
		})
	}

	return catalog
}

func slugOrNormalized(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return slugs.Normalize(fallback)
}
