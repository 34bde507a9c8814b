package models

import (
	"github.com/jinzhu/gorm"
	// sqlite driver
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Open opens the sqlite history database.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open("sqlite3", path)
}

// Migrate performs automatic migration of the history tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Run{},
		&Measurement{},
	).Error
}
