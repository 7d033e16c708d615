package tag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nofexxx/pet-f/internal/database"
	apperrors "github.com/Nofexxx/pet-f/internal/errors"
	fileservice "github.com/Nofexxx/pet-f/internal/service/file"
)

// setupServices ingests through the real pipeline so the queries run against
// a projection the decomposer produced.
func setupServices(t *testing.T) (TagService, fileservice.FileService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&database.File{},
		&database.Tag{},
		&database.Attribute{},
	)
	require.NoError(t, err)

	return NewTagService(db), fileservice.NewFileService(db)
}

func TestCountOccurrences(t *testing.T) {
	tagSvc, fileSvc := setupServices(t)

	_, err := fileSvc.IngestFile("f", strings.NewReader(`<a><b/><b/></a>`))
	require.NoError(t, err)

	t.Run("counts occurrences within the file", func(t *testing.T) {
		count, err := tagSvc.CountOccurrences("f", "b")
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)

		count, err = tagSvc.CountOccurrences("f", "a")
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("zero occurrences reports tag not found", func(t *testing.T) {
		_, err := tagSvc.CountOccurrences("f", "c")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrTagNotFound))
	})

	t.Run("unknown file reports file not found", func(t *testing.T) {
		_, err := tagSvc.CountOccurrences("missing", "b")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileNotFound))
	})

	t.Run("count is scoped to the file", func(t *testing.T) {
		_, err := fileSvc.IngestFile("g", strings.NewReader(`<a><b/></a>`))
		require.NoError(t, err)

		count, err := tagSvc.CountOccurrences("g", "b")
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestDistinctAttributeNames(t *testing.T) {
	tagSvc, fileSvc := setupServices(t)

	_, err := fileSvc.IngestFile("first.xml", strings.NewReader(`<x k="1"/>`))
	require.NoError(t, err)
	_, err = fileSvc.IngestFile("second.xml", strings.NewReader(`<x k="2" j="3"/>`))
	require.NoError(t, err)

	t.Run("aggregates across all files regardless of the file argument", func(t *testing.T) {
		names, err := tagSvc.DistinctAttributeNames("first.xml", "x")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"k", "j"}, names)

		names, err = tagSvc.DistinctAttributeNames("second.xml", "x")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"k", "j"}, names)
	})

	t.Run("duplicate names collapse", func(t *testing.T) {
		names, err := tagSvc.DistinctAttributeNames("first.xml", "x")
		require.NoError(t, err)
		assert.Len(t, names, 2)
	})

	t.Run("tag with no attributes yields an empty set", func(t *testing.T) {
		_, err := fileSvc.IngestFile("plain.xml", strings.NewReader(`<y/>`))
		require.NoError(t, err)

		names, err := tagSvc.DistinctAttributeNames("plain.xml", "y")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("unknown tag name reports tag not found", func(t *testing.T) {
		_, err := tagSvc.DistinctAttributeNames("first.xml", "nope")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrTagNotFound))
	})

	t.Run("file must exist even though the lookup is file-agnostic", func(t *testing.T) {
		_, err := tagSvc.DistinctAttributeNames("missing.xml", "x")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileNotFound))
	})
}
