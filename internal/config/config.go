// internal/config/config.go
// 設定模組 - 載入環境變數

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"alert-relay/internal/alert"
)

// DefaultMaxBodyBytes 入站與上游 body 預設上限 (1 MiB)
const DefaultMaxBodyBytes = 1 << 20

// Config 應用程式設定
type Config struct {
	// 環境
	Env     string
	APIPort string

	// Resend
	ResendAPIKey    string
	ResendBaseURL   string
	UpstreamTimeout time.Duration
	MaxBodyBytes    int64

	// 入站認證
	AuthSecret string
	AuthHeader string

	// 訊息模板
	MessageEscapeMode string

	// 關機
	ShutdownTimeout time.Duration
}

// Load 載入設定
func Load() *Config {
	// 嘗試載入 .env 檔案 (開發環境)
	_ = godotenv.Load()

	return &Config{
		// 環境
		Env:     getEnv("APP_ENV", "development"),
		APIPort: getEnv("API_PORT", "8787"),

		// Resend
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		ResendBaseURL:   getEnv("RESEND_BASE_URL", "https://api.resend.com/"),
		UpstreamTimeout: time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxBodyBytes:    int64(getEnvAsInt("MAX_BODY_BYTES", DefaultMaxBodyBytes)),

		// 入站認證
		AuthSecret: getEnv("AUTH_SECRET", ""),
		AuthHeader: getEnv("AUTH_HEADER", "Authorization"),

		// 訊息模板
		MessageEscapeMode: strings.ToLower(getEnv("MESSAGE_ESCAPE_MODE", alert.EscapeModeRaw)),

		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

// Validate 檢查必要設定
func (c *Config) Validate() error {
	var errs []error

	if c.ResendAPIKey == "" {
		errs = append(errs, errors.New("RESEND_API_KEY is required"))
	}
	if c.AuthSecret == "" {
		errs = append(errs, errors.New("AUTH_SECRET is required"))
	}
	if c.AuthHeader == "" {
		errs = append(errs, errors.New("AUTH_HEADER must not be empty"))
	}
	if c.UpstreamTimeout < 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT_SECONDS must not be negative"))
	}
	if c.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must not be negative"))
	}

	if !alert.IsValidEscapeMode(c.MessageEscapeMode) {
		errs = append(errs, fmt.Errorf("unknown MESSAGE_ESCAPE_MODE %q", c.MessageEscapeMode))
	}

	return errors.Join(errs...)
}

// BodyLimit 回傳 body 上限，未設定時使用預設值
func (c *Config) BodyLimit() int64 {
	if c.MaxBodyBytes > 0 {
		return c.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

// IsProduction 是否為正式環境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv 取得環境變數，若不存在則回傳預設值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 取得環境變數並轉換為整數
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
