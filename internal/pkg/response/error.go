package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Error writes {"success":false,"error":...}. AppErrors carry their own
// status; anything else is a 500 with a generic message.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(apperror.StatusOf(err), ErrorResponse{Error: appErr.Message})
		return
	}

	// Unknown errors are recorded for the error reporter middleware.
	_ = c.Error(err)
	logger.WithComponent("http").WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// Abort is Error followed by aborting the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
