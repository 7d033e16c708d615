package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/Nofexxx/pet-f/internal/errors"
	"github.com/Nofexxx/pet-f/internal/response"
	tagservice "github.com/Nofexxx/pet-f/internal/service/tag"
)

// TagHandler handles tag query endpoints.
type TagHandler struct {
	tagService tagservice.TagService
}

// NewTagHandler creates a tag handler instance.
func NewTagHandler(tagService tagservice.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// GetTagCount counts the occurrences of a tag within one file.
// @Summary Count tag occurrences in a file
// @Produce json
// @Param file query string true "File name"
// @Param tag query string true "Tag name"
// @Router /api/tags/get-count [get]
func (h *TagHandler) GetTagCount(c *gin.Context) {
	fileName := c.Query("file")
	tagName := c.Query("tag")

	if fileName == "" || tagName == "" {
		response.BadRequest(c, apperrors.GetErrorMessage(apperrors.ErrNoFileSpecified))
		return
	}

	count, err := h.tagService.CountOccurrences(fileName, tagName)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKWithData(c, gin.H{
		"count": count,
	})
}

// GetTagAttributes returns the distinct attribute names across every
// occurrence of a tag. The file parameter is validated for existence but the
// aggregation spans all files.
// @Summary Distinct attribute names of a tag
// @Produce json
// @Param file query string true "File name"
// @Param tag query string true "Tag name"
// @Router /api/tags/attributes/get [get]
func (h *TagHandler) GetTagAttributes(c *gin.Context) {
	fileName := c.Query("file")
	tagName := c.Query("tag")

	if fileName == "" || tagName == "" {
		response.BadRequest(c, apperrors.GetErrorMessage(apperrors.ErrNoFileSpecified))
		return
	}

	names, err := h.tagService.DistinctAttributeNames(fileName, tagName)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKWithData(c, gin.H{
		"unique_attributes": names,
	})
}
