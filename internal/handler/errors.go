package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/Nofexxx/pet-f/internal/errors"
	"github.com/Nofexxx/pet-f/internal/logger"
	"github.com/Nofexxx/pet-f/internal/response"
)

// respondError maps an application error to its HTTP response. Validation
// and conflict errors answer 400, missing entities 404, everything else is
// an internal failure of the current request.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.GetAppError(err)
	if !ok {
		logger.Errorf("unexpected error: %v", err)
		response.InternalServerError(c, apperrors.GetErrorMessage(apperrors.ErrInternalServer))
		return
	}

	switch appErr.Code {
	case apperrors.ErrNoFileFound,
		apperrors.ErrNoFileName,
		apperrors.ErrNoFileSpecified,
		apperrors.ErrFileAlreadyExists,
		apperrors.ErrFileParseFailed:
		response.BadRequest(c, appErr.Message)
	case apperrors.ErrFileNotFound,
		apperrors.ErrTagNotFound:
		response.NotFound(c, appErr.Message)
	default:
		if appErr.OriginalError != nil {
			logger.Errorf("internal error: %v", appErr)
		}
		response.InternalServerError(c, appErr.Message)
	}
}
