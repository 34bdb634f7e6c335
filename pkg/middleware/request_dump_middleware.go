package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"

	"linguastory-backend/internal/logging"
)

func RequestDumpMiddleware(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		log.Debugw("request",
			"method", c.Request.Method,
			"url", c.Request.URL.String(),
			"params", c.Params,
			"body", string(bodyBytes),
		)

		c.Next()
	}
}
