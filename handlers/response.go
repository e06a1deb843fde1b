package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// internalError logs err and answers 500 with message.
func internalError(c *gin.Context, logger *zap.Logger, message string, err error) {
	_ = c.Error(err)
	logger.Error(message, zap.Error(err), zap.String("path", c.FullPath()))
	fail(c, http.StatusInternalServerError, message)
}

// idParam returns the :id path value when it is a UUID.
func idParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
