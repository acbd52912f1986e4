package middleware

import (
	"errors"
	"net/http"

	"myresume-backend/internal/delivery/http/response"
	"myresume-backend/pkg/apperror"
	"myresume-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Err != nil {
					// Wrapped cause is logged server-side only.
					logger.Log.Error("request failed",
						"status", appErr.Code,
						"message", appErr.Message,
						"error", appErr.Err,
						"path", c.Request.URL.Path)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients.
				logger.Log.Error("unhandled error", "error", err, "path", c.Request.URL.Path)
				response.Error(c, http.StatusInternalServerError,
					"An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
