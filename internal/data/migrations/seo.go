package migrations

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	seodata "cartaseo/app/internal/data/seo"
)

// MigrateSEO applies the entity and generated page schema using Gorm's AutoMigrate.
func MigrateSEO(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "seo.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying seo schema")
	}

	err := db.WithContext(ctx).AutoMigrate(
		&seodata.ProfessionRecord{},
		&seodata.CityRecord{},
		&seodata.TemplateRecord{},
		&seodata.PageRecord{},
	)
	if err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("seo schema migration failed")
		}
		return eris.Wrap(err, "auto migrating seo schema")
	}

	if logger != nil {
		logger.WithFields(logFields).Info("seo schema migration complete")
	}

	return nil
}
