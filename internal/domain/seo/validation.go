package seo

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gosimple/slug"
	"github.com/rotisserie/eris"
)

var isSlug = validation.By(func(value interface{}) error {
	text, _ := value.(string)
	if text == "" {
		return nil
	}
	if !slug.IsSlug(text) {
		return eris.Errorf("%q is not a valid slug", text)
	}
	return nil
})

var knownCategory = validation.By(func(value interface{}) error {
	category, _ := value.(Category)
	if ParseCategory(string(category)) == CategoryOther {
		return eris.Errorf("unknown category %q", category)
	}
	return nil
})

// Validate checks the page invariants enforced before persistence.
func (p GeneratedPage) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Slug, validation.Required, isSlug),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Content, validation.Required),
		validation.Field(&p.Category, validation.Required, knownCategory),
		validation.Field(&p.ProfessionID,
			validation.When(p.Category.RequiresProfession(), validation.Required.Error("is required for this category")).
				Else(validation.Nil.Error("must be empty for this category")),
		),
		validation.Field(&p.CityID,
			validation.When(p.Category.RequiresCity(), validation.Required.Error("is required for this category")).
				Else(validation.Nil.Error("must be empty for this category")),
		),
	)
	if err != nil {
		return eris.Wrapf(ErrValidation, "page %s: %v", p.Slug, err)
	}
	return nil
}

// Validate checks a profession seed record.
func (p Profession) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Slug, validation.Required, isSlug),
	)
	if err != nil {
		return eris.Wrapf(ErrValidation, "profession %s: %v", p.Slug, err)
	}
	return nil
}

// Validate checks a city seed record.
func (c City) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Slug, validation.Required, isSlug),
		validation.Field(&c.Population, validation.When(c.Population != nil, validation.Min(int64(0)))),
	)
	if err != nil {
		return eris.Wrapf(ErrValidation, "city %s: %v", c.Slug, err)
	}
	return nil
}

// Validate checks a page template record.
func (t PageTemplate) Validate() error {
	err := validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Category, validation.Required),
		validation.Field(&t.TitleTemplate, validation.Required),
		validation.Field(&t.ContentTemplate, validation.Required),
	)
	if err != nil {
		return eris.Wrapf(ErrValidation, "template %s: %v", t.Name, err)
	}
	if !strings.HasPrefix(t.Name, t.Category+"-") {
		return eris.Wrapf(ErrValidation, "template %s: name must start with category %q", t.Name, t.Category)
	}
	return nil
}

// Validate checks a page update payload.
func (u PageUpdate) Validate() error {
	err := validation.ValidateStruct(&u,
		validation.Field(&u.Title, validation.When(u.Title != nil, validation.Required)),
		validation.Field(&u.Content, validation.When(u.Content != nil, validation.Required)),
	)
	if err != nil {
		return eris.Wrapf(ErrValidation, "page update: %v", err)
	}
	return nil
}
