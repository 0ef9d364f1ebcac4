package http

import (
	"errors"
	"net/http"
	"strconv"

	"skillstream/internal/entity"
	"skillstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps domain error categories to HTTP status codes. Unknown
// errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pageParams reads page/page_size query params; the use case clamps them.
func pageParams(c *gin.Context) (int, int) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 0)
	return page, pageSize
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	if value := c.Query(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
