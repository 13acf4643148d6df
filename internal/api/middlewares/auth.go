// internal/api/middlewares/auth.go
// 共用密鑰認證中介軟體

package middlewares

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"alert-relay/internal/config"
)

// SharedSecretAuth 共用密鑰認證中介軟體
// header 值需與 AUTH_SECRET 完全相同 (區分大小寫)，否則回傳 401 純文字
func SharedSecretAuth(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.AuthSecret)

	return func(c *gin.Context) {
		if !secretMatches(c.GetHeader(cfg.AuthHeader), secret) {
			log.Printf("[Auth] rejected %s %s request_id=%s", c.Request.Method, c.Request.URL.Path, GetRequestID(c))
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Next()
	}
}

// secretMatches 固定時間比對，空值一律拒絕
func secretMatches(header string, secret []byte) bool {
	if header == "" || len(secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(header), secret) == 1
}
