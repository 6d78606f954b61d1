package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/archfolio/backend/pkg/errs"
)

// parseID reads a numeric id from a path or query value.
func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// respondError translates a service error into the JSON error body and
// status the API contract defines (404/400/500).
func respondError(c *gin.Context, err error) {
	c.JSON(errs.StatusOf(err), gin.H{"error": err.Error()})
}
