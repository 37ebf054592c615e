package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexconsult/crm-scheduler/internal/audit"
)

const (
	ContextRequestID = "requestID"
	HeaderRequestID  = "X-Request-ID"
)

// RequestIDMiddleware propaga (ou gera) o id de correlação usado
// nos audit logs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(ContextRequestID, rid)
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Request = c.Request.WithContext(
			audit.WithRequestID(c.Request.Context(), rid),
		)

		c.Next()
	}
}
