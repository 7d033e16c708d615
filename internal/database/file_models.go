package database

import (
	"time"
)

// File represents one ingested XML document.
// A File row is created once at the start of ingestion and never mutated.
// The uploaded filename is the natural key: re-uploading the same name is
// rejected before any decomposition work happens.
type File struct {
	ID        uint      `gorm:"primarykey" json:"id"`                        // surrogate key, auto increment
	FileID    string    `gorm:"uniqueIndex;not null;size:36" json:"file_id"` // opaque public identifier (UUID)
	Name      string    `gorm:"uniqueIndex;not null;size:255" json:"name"`   // uploaded filename, globally unique
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Tags []Tag `gorm:"foreignKey:FileID" json:"tags,omitempty"` // every element occurrence of this document
}

// TableName maps the File model to the "files" table.
func (File) TableName() string {
	return "files"
}
