package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/hsuden/wellatlas/models"
)

// Migrations creates the schema. Migrations are additive only and safe to
// run on every startup.
func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250901_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.Customer{}, &models.Site{}, &models.Job{},
					&models.Note{}, &models.Photo{},
					&models.JobNote{}, &models.JobPhoto{},
					&models.CustomerPhoto{}, &models.ShareToken{},
				)
			},
		},
	})
	return m.Migrate()
}
