package database

import (
	"time"
)

// Tag represents one XML element occurrence within one file.
// Element names are not unique: every opening of an element produces its own
// row. ParentID records the enclosing element occurrence (NULL for the root),
// taken from the nesting stack at the moment the element is opened.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                       // surrogate key, referenced by Attribute rows
	Name      string    `gorm:"not null;size:255;index:idx_tags_file_name" json:"name"`     // element name (local, no namespace processing)
	FileID    uint      `gorm:"not null;index:idx_tags_file_name" json:"file_id"`           // owning document
	ParentID  *uint     `gorm:"index" json:"parent_id"`                                     // enclosing element occurrence, NULL for the root
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	File       File        `gorm:"foreignKey:FileID" json:"file,omitempty"`
	Attributes []Attribute `gorm:"foreignKey:TagID" json:"attributes,omitempty"`
}

// TableName maps the Tag model to the "tags" table.
func (Tag) TableName() string {
	return "tags"
}

// Attribute represents one name/value pair belonging to one Tag occurrence.
// Rows are written immediately after their owning Tag, in the same unit of
// work, and never mutated.
type Attribute struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`   // attribute name
	Value     string    `gorm:"not null;type:text" json:"value"` // attribute value
	TagID     uint      `gorm:"not null;index" json:"tag_id"`    // owning element occurrence
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Tag Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

// TableName maps the Attribute model to the "attributes" table.
func (Attribute) TableName() string {
	return "attributes"
}
