package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRequestID     = "X-Request-ID"
)

// RequestID gắn correlation id cho mỗi request
// Lấy từ X-Correlation-ID (hoặc X-Request-ID) nếu client gửi, nếu không thì sinh UUID mới
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderCorrelationID)
		if id == "" {
			id = c.GetHeader(HeaderRequestID)
		}
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Header(HeaderCorrelationID, id)

		c.Next()
	}
}
