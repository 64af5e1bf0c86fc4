package middleware

import (
	"errors"

	apiError "cms-admin/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var apiErr *apiError.APIError
		if !errors.As(err, &apiErr) {
			// raw errors were not expected by the handler
			apiErr = apiError.Internal(err)
		}

		if apiErr.Status >= 500 {
			log.Error().Err(apiErr.Internal).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg(apiErr.Message)
		} else {
			log.Info().Err(apiErr.Internal).Int("status", apiErr.Status).Str("path", c.FullPath()).Msg(apiErr.Message)
		}

		c.AbortWithStatusJSON(apiErr.Status, apiErr)
	}
}
