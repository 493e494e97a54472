// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure either MySQL (production) or SQLite (single-host
// deployments and tests) from the application's configuration. The returned
// *gorm.DB is the connection pool; it is passed explicitly to every storage
// component, never held in a package global.
//
// # Error Translation
//
// Open enables gorm's TranslateError so a unique-constraint violation surfaces
// as gorm.ErrDuplicatedKey on both drivers. The account registry relies on
// this to tell "already registered" apart from real storage failures.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns (SHOW COLUMNS on MySQL, PRAGMA
// table_info on SQLite). The integrity checks use it to verify the live
// schema against the models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("failed to connect to database: %w", err)
//	}
package database
