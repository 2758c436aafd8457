package schema

import (
	"fmt"

	"gorm.io/gorm"
)

// AllModels returns every model managed by cardlab in creation order.
func AllModels() []any {
	return []any{
		&Card{},
		&Passive{},
		&KeywordAbility{},
		&Category{},
		&Location{},
		&VersionRecord{},
		&CardReference{},
	}
}

// Migrate creates or updates all tables and indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
