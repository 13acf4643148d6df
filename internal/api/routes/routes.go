// internal/api/routes/routes.go
// Gin 路由註冊

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alert-relay/internal/alert"
	"alert-relay/internal/api/handlers"
	"alert-relay/internal/api/middlewares"
	"alert-relay/internal/config"
	"alert-relay/internal/services"
)

// Dependencies 路由依賴
type Dependencies struct {
	Config   *config.Config
	Relay    services.MailRelay
	Renderer *alert.Renderer
}

// RegisterRoutes 註冊所有路由
// 所有路徑 (含未定義路徑) 都需通過共用密鑰認證，認證失敗一律 401
func RegisterRoutes(router *gin.Engine, deps *Dependencies) {
	// 不自動轉址，錯誤 method 回 404 而非 405
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.HandleMethodNotAllowed = false

	// 初始化 Handlers
	mailHandler := handlers.NewMailHandler(deps.Config, deps.Relay, deps.Renderer)

	router.Use(middlewares.RequestID())
	router.Use(middlewares.SharedSecretAuth(deps.Config))

	router.POST("/send", mailHandler.Send)
	router.POST("/cancel", mailHandler.Cancel)

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})
}
