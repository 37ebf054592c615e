package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// A API só expõe GET/POST/PATCH; o restante devolve 404 de rota
// mesmo, então o preflight não precisa anunciar mais que isso.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set(
				"Access-Control-Allow-Headers",
				"Content-Type, Authorization, "+HeaderRequestID,
			)
			c.Writer.Header().Set(
				"Access-Control-Allow-Methods",
				"GET, POST, PATCH, OPTIONS",
			)
			// o front correlaciona erro com log via request id
			c.Writer.Header().Set("Access-Control-Expose-Headers", HeaderRequestID)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
