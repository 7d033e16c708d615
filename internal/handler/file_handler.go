// Package handler provides the HTTP handlers of the XML decomposition API.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nofexxx/pet-f/internal/errors"
	"github.com/Nofexxx/pet-f/internal/response"
	fileservice "github.com/Nofexxx/pet-f/internal/service/file"
)

// FileHandler handles file ingestion endpoints.
type FileHandler struct {
	fileService fileservice.FileService
}

// NewFileHandler creates a file handler instance.
func NewFileHandler(fileService fileservice.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// ReadFile ingests an uploaded XML document.
// @Summary Ingest an XML file
// @Description Decomposes the uploaded XML document into tag and attribute records
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XML document to ingest"
// @Router /api/file/read [post]
func (h *FileHandler) ReadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, apperrors.GetErrorMessage(apperrors.ErrNoFileFound))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, apperrors.GetErrorMessage(apperrors.ErrInternalServer))
		return
	}
	defer src.Close()

	if _, err := h.fileService.IngestFile(fileHeader.Filename, src); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c)
}

// ListFiles returns the ingested files with their element counts.
// @Summary List ingested files
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Router /api/file/list [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	page := 1
	pageSize := 20

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		if ps, err := strconv.Atoi(pageSizeStr); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}

	files, total, err := h.fileService.ListFiles(page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKWithData(c, gin.H{
		"files":     files,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
