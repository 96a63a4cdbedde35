package store

import (
	"fmt"

	"gorm.io/gorm"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
)

// SchemaVersion is the current schema version this build understands.
// Matches spec §4.A: "a monotonic integer version is persisted; on open,
// the store runs all migrations whose version exceeds the stored one
// inside a single transaction per migration. Downgrades are rejected."
const SchemaVersion = 1

// migration is one schema step, numbered 1..N. Adding a migration means
// appending a new entry here and bumping SchemaVersion — never editing a
// migration already shipped, the same discipline the hand-written SQL
// migration of the pack's termfx/morfx (internal/db/migrate.go) follows by keeping
// every CREATE TABLE IF NOT EXISTS idempotent and additive.
type migration struct {
	version int
	apply   func(tx *gorm.DB) error
}

var migrations = []migration{
	{
		version: 1,
		apply: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&fileRow{}, &nodeRow{}, &edgeRow{}, &vectorRow{}); err != nil {
				return err
			}
			return nil
		},
	},
}

// runMigrations brings db up to SchemaVersion, one transaction per
// migration step, rejecting any stored version newer than this build
// understands (a downgrade attempt).
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaVersionRow{}); err != nil {
		return cgerrors.New(cgerrors.StoreIntegrity, "migrate", err)
	}

	var row schemaVersionRow
	result := db.First(&row, "id = ?", 1)
	stored := 0
	if result.Error == nil {
		stored = row.Version
	} else if result.Error != gorm.ErrRecordNotFound {
		return cgerrors.New(cgerrors.StoreIntegrity, "migrate", result.Error)
	}

	if stored > SchemaVersion {
		return cgerrors.New(cgerrors.StoreIntegrity, "migrate",
			fmt.Errorf("stored schema version %d is newer than this build supports (%d); refusing to downgrade", stored, SchemaVersion))
	}

	for _, m := range migrations {
		if m.version <= stored {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.apply(tx); err != nil {
				return err
			}
			return tx.Save(&schemaVersionRow{ID: 1, Version: m.version}).Error
		})
		if err != nil {
			return cgerrors.New(cgerrors.StoreIntegrity, "migrate", fmt.Errorf("migration %d failed: %w", m.version, err))
		}
	}
	return nil
}
