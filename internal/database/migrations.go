package database

import (
	"gorm.io/gorm"

	"github.com/Nofexxx/pet-f/internal/logger"
)

// createProjectionIndexes creates the composite indexes the read paths rely
// on, beyond what the model tags declare.
func createProjectionIndexes(db *gorm.DB) error {
	indexes := []string{
		// Covering index for gathering attribute names per tag occurrence.
		"CREATE INDEX IF NOT EXISTS idx_attributes_tag_name ON attributes(tag_id, name)",
		// Listing order of the file endpoint.
		"CREATE INDEX IF NOT EXISTS idx_files_created_at ON files(created_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			logger.Errorf("failed to create index: %s: %v", indexSQL, err)
			return err
		}
	}

	return nil
}
