// Package errors defines the application error taxonomy: invalid input,
// conflicts on unique keys, missing entities, XML parse failures and
// storage-layer failures.
package errors

import (
	"fmt"

	"github.com/Nofexxx/pet-f/internal/i18n"
)

// ErrorCode identifies one failure kind.
type ErrorCode int

// Error code ranges, one block per concern.
const (
	// General (1000-1999)
	ErrSuccess        ErrorCode = 0
	ErrInternalServer ErrorCode = 1000
	ErrInvalidParams  ErrorCode = 1001
	ErrNotFound       ErrorCode = 1004

	// File ingestion (2000-2999)
	ErrNoFileFound       ErrorCode = 2000 // multipart field "file" missing
	ErrNoFileName        ErrorCode = 2001 // empty filename
	ErrNoFileSpecified   ErrorCode = 2002 // query parameter missing
	ErrFileAlreadyExists ErrorCode = 2003 // duplicate unique filename
	ErrFileParseFailed   ErrorCode = 2004 // malformed XML mid-stream
	ErrFileNotFound      ErrorCode = 2005

	// Tag queries (3000-3999)
	ErrTagNotFound ErrorCode = 3000 // covers zero occurrences and unknown name

	// Database (4000-4999)
	ErrDatabaseQuery       ErrorCode = 4001
	ErrDatabaseInsert      ErrorCode = 4002
	ErrDatabaseTransaction ErrorCode = 4005
)

// AppError is the unified application error carried from services to
// handlers.
type AppError struct {
	Code          ErrorCode `json:"code"`
	Message       string    `json:"message"`
	Details       string    `json:"details,omitempty"`
	OriginalError error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// WithDetails attaches detail text to the error.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// New creates an application error with an explicit message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewByCode creates an application error whose message is resolved through
// the message catalog.
func NewByCode(code ErrorCode) *AppError {
	return New(code, GetErrorMessage(code))
}

// Wrap converts an underlying error into an application error, keeping the
// original for logging.
func Wrap(code ErrorCode, message string, err error) *AppError {
	appErr := &AppError{
		Code:          code,
		Message:       message,
		OriginalError: err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// WrapByCode is Wrap with the message resolved through the message catalog.
func WrapByCode(code ErrorCode, err error) *AppError {
	return Wrap(code, GetErrorMessage(code), err)
}

// IsAppError reports whether err is an application error.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts the application error from err.
func GetAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// IsCode reports whether err is an application error with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.Code == code
}

// Error code to message catalog key.
var errorCodeToKeyMap = map[ErrorCode]string{
	ErrSuccess:        "success",
	ErrInternalServer: "internal_server_error",
	ErrInvalidParams:  "invalid_params",
	ErrNotFound:       "not_found",

	ErrNoFileFound:       "no_file_found",
	ErrNoFileName:        "no_file_name",
	ErrNoFileSpecified:   "no_file_specified",
	ErrFileAlreadyExists: "file_already_exists",
	ErrFileParseFailed:   "file_parse_failed",
	ErrFileNotFound:      "file_not_found",

	ErrTagNotFound: "tag_not_found",

	ErrDatabaseQuery:       "database_query",
	ErrDatabaseInsert:      "database_insert",
	ErrDatabaseTransaction: "database_transaction",
}

// GetErrorMessage resolves the message of a code in the default language.
func GetErrorMessage(code ErrorCode) string {
	return GetErrorMessageWithLang(code, i18n.GetInstance().GetDefaultLanguage())
}

// GetErrorMessageWithLang resolves the message of a code in the given
// language.
func GetErrorMessageWithLang(code ErrorCode, lang string) string {
	key, exists := errorCodeToKeyMap[code]
	if !exists {
		key = "unknown_error"
	}
	return i18n.GetInstance().Translate(key, lang)
}
