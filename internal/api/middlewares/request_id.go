// internal/api/middlewares/request_id.go
// Request ID 中介軟體

package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID Request ID header
	HeaderRequestID = "X-Request-ID"

	requestIDKey       = "request_id"
	maxRequestIDLength = 128
)

// RequestID 沿用上游帶入的 X-Request-ID，沒有則產生 UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := normalizeRequestID(c.GetHeader(HeaderRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set(requestIDKey, reqID)
		c.Header(HeaderRequestID, reqID)

		c.Next()
	}
}

// GetRequestID 取得目前請求的 Request ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func normalizeRequestID(v string) string {
	if strings.ContainsAny(v, "\r\n") {
		return ""
	}
	v = strings.TrimSpace(v)
	if len(v) > maxRequestIDLength {
		v = v[:maxRequestIDLength]
	}
	return v
}
