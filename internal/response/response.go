// Package response renders the API envelope. Every response carries a
// "success" flag; failures add an "error" message and successes merge their
// payload fields into the envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK renders a bare success response.
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// OKWithData renders a success response with payload fields merged into the
// envelope.
func OKWithData(c *gin.Context, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail renders a failure response with the given HTTP status.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// BadRequest renders a 400 failure response.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// NotFound renders a 404 failure response.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// InternalServerError renders a 500 failure response.
func InternalServerError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
