// cmd/api/main.go
// Gin RESTful API 入口

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"alert-relay/internal/alert"
	"alert-relay/internal/api/routes"
	"alert-relay/internal/config"
	"alert-relay/internal/services"
)

func main() {
	log.Println("Starting RUOK? Alert Relay...")

	// 載入設定
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 初始化 Resend 轉送服務
	relay, err := services.NewResendRelay(cfg, &http.Client{})
	if err != nil {
		log.Fatalf("Failed to initialize Resend relay: %v", err)
	}

	// 初始化通知模板
	renderer, err := alert.NewRenderer(cfg.MessageEscapeMode)
	if err != nil {
		log.Fatalf("Failed to initialize alert renderer: %v", err)
	}
	log.Printf("Message escape mode: %s", renderer.Mode())

	// 初始化 Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// 註冊路由
	routes.RegisterRoutes(router, &routes.Dependencies{
		Config:   cfg,
		Relay:    relay,
		Renderer: renderer,
	})

	// 建立 HTTP Server
	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 優雅關機
	go func() {
		log.Printf("Alert Relay listening on port %s", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down alert relay...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Alert Relay stopped")
}
