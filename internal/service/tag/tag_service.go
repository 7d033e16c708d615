// Package tag implements the read side: tag occurrence counting scoped to a
// file and distinct attribute-name aggregation across all occurrences of a
// tag name. Both operations are pure reads.
package tag

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Nofexxx/pet-f/internal/database"
	apperrors "github.com/Nofexxx/pet-f/internal/errors"
)

// TagService defines the query operations over the decomposed projection.
type TagService interface {
	// CountOccurrences counts how many times the element tagName occurs in
	// the file named fileName. A tag with zero occurrences reports the same
	// not-found error as an unknown tag name.
	CountOccurrences(fileName, tagName string) (int64, error)

	// DistinctAttributeNames gathers the distinct attribute names across
	// every occurrence of tagName in all files. fileName only has to exist;
	// it does not scope the result.
	DistinctAttributeNames(fileName, tagName string) ([]string, error)
}

// tagService is the TagService implementation.
type tagService struct {
	db *gorm.DB
}

// NewTagService creates a tag query service instance.
func NewTagService(db *gorm.DB) TagService {
	return &tagService{
		db: db,
	}
}

// CountOccurrences counts Tag rows matching name and owning file.
func (s *tagService) CountOccurrences(fileName, tagName string) (int64, error) {
	file, err := s.findFileByName(fileName)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.Model(&database.Tag{}).
		Where("name = ? AND file_id = ?", tagName, file.ID).
		Count(&count).Error; err != nil {
		return 0, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}
	if count == 0 {
		return 0, apperrors.NewByCode(apperrors.ErrTagNotFound)
	}

	return count, nil
}

// DistinctAttributeNames collapses attribute names across all occurrences of
// a tag name, file-agnostic.
func (s *tagService) DistinctAttributeNames(fileName, tagName string) ([]string, error) {
	if _, err := s.findFileByName(fileName); err != nil {
		return nil, err
	}

	var tagIDs []uint
	if err := s.db.Model(&database.Tag{}).
		Where("name = ?", tagName).
		Pluck("id", &tagIDs).Error; err != nil {
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}
	if len(tagIDs) == 0 {
		return nil, apperrors.NewByCode(apperrors.ErrTagNotFound)
	}

	names := make([]string, 0)
	if err := s.db.Model(&database.Attribute{}).
		Distinct("name").
		Where("tag_id IN ?", tagIDs).
		Pluck("name", &names).Error; err != nil {
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}

	return names, nil
}

// findFileByName resolves a file by its unique name.
func (s *tagService) findFileByName(name string) (*database.File, error) {
	var file database.File
	if err := s.db.Where("name = ?", name).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrFileNotFound)
		}
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}
	return &file, nil
}
