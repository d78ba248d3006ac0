package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/philipobiorah/attendance-app/models"
)

// Open connects to the sqlite database at path and migrates the schema.
// TranslateError is on so a violation of the (session_id, student_id)
// unique index comes back as gorm.ErrDuplicatedKey instead of a raw
// driver error string.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&models.Session{}, &models.Attendance{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}
