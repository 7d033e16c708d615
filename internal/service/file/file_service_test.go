package file

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nofexxx/pet-f/internal/database"
	apperrors "github.com/Nofexxx/pet-f/internal/errors"
)

// setupTestDB opens an in-memory database with the projection schema.
func setupTestDB(t *testing.T) *gorm.DB {
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

	return db
}

// countRows returns the row counts of the three relations.
func countRows(t *testing.T, db *gorm.DB) (files, tags, attrs int64) {
	require.NoError(t, db.Model(&database.File{}).Count(&files).Error)
	require.NoError(t, db.Model(&database.Tag{}).Count(&tags).Error)
	require.NoError(t, db.Model(&database.Attribute{}).Count(&attrs).Error)
	return
}

func TestIngestFile(t *testing.T) {
	t.Run("well-formed document", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewFileService(db)

		file, err := svc.IngestFile("doc.xml", strings.NewReader(`<a><b k="1"/><b k="2" j="3"/></a>`))
		require.NoError(t, err)
		require.NotNil(t, file)
		assert.NotEmpty(t, file.FileID)
		assert.Equal(t, "doc.xml", file.Name)

		files, tags, attrs := countRows(t, db)
		assert.EqualValues(t, 1, files)
		assert.EqualValues(t, 3, tags)
		assert.EqualValues(t, 3, attrs)
	})

	t.Run("empty filename is rejected before any write", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewFileService(db)

		_, err := svc.IngestFile("", strings.NewReader(`<a/>`))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrNoFileName))

		files, tags, attrs := countRows(t, db)
		assert.Zero(t, files+tags+attrs)
	})

	t.Run("duplicate name is a conflict with zero writes", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewFileService(db)

		_, err := svc.IngestFile("dup.xml", strings.NewReader(`<a><b/></a>`))
		require.NoError(t, err)
		filesBefore, tagsBefore, attrsBefore := countRows(t, db)

		_, err = svc.IngestFile("dup.xml", strings.NewReader(`<c/>`))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileAlreadyExists))

		files, tags, attrs := countRows(t, db)
		assert.Equal(t, filesBefore, files)
		assert.Equal(t, tagsBefore, tags)
		assert.Equal(t, attrsBefore, attrs)
	})

	t.Run("malformed document rolls back everything", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewFileService(db)

		_, err := svc.IngestFile("bad.xml", strings.NewReader(`<a><b k="1"></a>`))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileParseFailed))

		files, tags, attrs := countRows(t, db)
		assert.Zero(t, files, "the File row must not survive a parse failure")
		assert.Zero(t, tags)
		assert.Zero(t, attrs)
	})

	t.Run("failed attempt does not block a later upload of the same name", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewFileService(db)

		_, err := svc.IngestFile("retry.xml", strings.NewReader(`<a>`))
		require.Error(t, err)

		_, err = svc.IngestFile("retry.xml", strings.NewReader(`<a/>`))
		require.NoError(t, err)
	})
}

func TestGetFileByName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFileService(db)

	_, err := svc.IngestFile("known.xml", strings.NewReader(`<a/>`))
	require.NoError(t, err)

	t.Run("existing file", func(t *testing.T) {
		file, err := svc.GetFileByName("known.xml")
		require.NoError(t, err)
		assert.Equal(t, "known.xml", file.Name)
	})

	t.Run("unknown file", func(t *testing.T) {
		_, err := svc.GetFileByName("missing.xml")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileNotFound))
	})
}

func TestListFiles(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFileService(db)

	_, err := svc.IngestFile("one.xml", strings.NewReader(`<a><b/></a>`))
	require.NoError(t, err)
	_, err = svc.IngestFile("two.xml", strings.NewReader(`<a/>`))
	require.NoError(t, err)

	summaries, total, err := svc.ListFiles(1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, summaries, 2)

	counts := make(map[string]int64)
	for _, s := range summaries {
		counts[s.Name] = s.TagCount
	}
	assert.EqualValues(t, 2, counts["one.xml"])
	assert.EqualValues(t, 1, counts["two.xml"])
}
