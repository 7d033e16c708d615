// Package file implements the ingestion pipeline: upload validation, File
// row creation and driving the streaming decomposer over the byte stream,
// all inside one unit of work.
package file

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Nofexxx/pet-f/internal/database"
	apperrors "github.com/Nofexxx/pet-f/internal/errors"
	"github.com/Nofexxx/pet-f/internal/logger"
	"github.com/Nofexxx/pet-f/internal/parser"
)

// FileService defines the ingestion operations.
type FileService interface {
	// IngestFile validates the filename, creates the File row and decomposes
	// the XML stream into Tag and Attribute rows. The whole ingestion is one
	// transaction: on any failure nothing of the attempt remains visible.
	// A single attempt is made; there are no retries.
	IngestFile(name string, r io.Reader) (*database.File, error)

	// GetFileByName resolves an ingested file by its unique name.
	GetFileByName(name string) (*database.File, error)

	// ListFiles returns ingested files with their element counts, newest
	// first. page is 1-based; both values must be positive, the HTTP layer
	// normalizes them.
	ListFiles(page, pageSize int) ([]FileSummary, int64, error)
}

// FileSummary is one row of the file listing.
type FileSummary struct {
	FileID    string    `json:"file_id"`
	Name      string    `json:"name"`
	TagCount  int64     `json:"tag_count"`
	CreatedAt time.Time `json:"created_at"`
}

// fileService is the FileService implementation.
type fileService struct {
	db *gorm.DB
}

// NewFileService creates a file service instance.
func NewFileService(db *gorm.DB) FileService {
	return &fileService{
		db: db,
	}
}

// IngestFile implements the ingestion pipeline.
func (s *fileService) IngestFile(name string, r io.Reader) (*database.File, error) {
	if name == "" {
		return nil, apperrors.NewByCode(apperrors.ErrNoFileName)
	}

	var file *database.File
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing database.File
		err := tx.Where("name = ?", name).First(&existing).Error
		if err == nil {
			return apperrors.NewByCode(apperrors.ErrFileAlreadyExists)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
		}

		file = &database.File{
			FileID: uuid.New().String(),
			Name:   name,
		}
		if err := tx.Create(file).Error; err != nil {
			// The unique index closes the race between the lookup above and
			// this insert when two uploads carry the same name.
			if isUniqueViolation(err) {
				return apperrors.NewByCode(apperrors.ErrFileAlreadyExists)
			}
			return apperrors.WrapByCode(apperrors.ErrDatabaseInsert, err)
		}

		d := parser.NewDecomposer(tx, file.ID)
		if err := d.Run(r); err != nil {
			// Rolling back discards the File row and every Tag/Attribute
			// written before the failure.
			return err
		}

		logger.WithFields(logrus.Fields{
			"file":       name,
			"file_id":    file.FileID,
			"tags":       d.TagCount(),
			"attributes": d.AttributeCount(),
		}).Info("file ingested")
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.GetAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseTransaction, err)
	}

	return file, nil
}

// GetFileByName resolves an ingested file by name.
func (s *fileService) GetFileByName(name string) (*database.File, error) {
	var file database.File
	if err := s.db.Where("name = ?", name).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrFileNotFound)
		}
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}
	return &file, nil
}

// ListFiles returns the file listing with per-file element counts.
func (s *fileService) ListFiles(page, pageSize int) ([]FileSummary, int64, error) {
	var total int64
	if err := s.db.Model(&database.File{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}

	offset := (page - 1) * pageSize
	summaries := make([]FileSummary, 0, pageSize)
	err := s.db.Model(&database.File{}).
		Select("files.file_id, files.name, files.created_at, COUNT(tags.id) AS tag_count").
		Joins("LEFT JOIN tags ON tags.file_id = files.id").
		Group("files.id").
		Order("files.created_at DESC, files.id DESC").
		Offset(offset).
		Limit(pageSize).
		Scan(&summaries).Error
	if err != nil {
		return nil, 0, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}

	return summaries, total, nil
}

// isUniqueViolation reports whether err is a unique-constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
