// internal/alert/template.go
// RUOK? 緊急通知 HTML 模板

package alert

import (
	"fmt"
	"html"
	"strings"
	"text/template"

	"github.com/microcosm-cc/bluemonday"
)

// 訊息插入模板時的處理模式
const (
	EscapeModeRaw      = "raw"      // 原樣插入，不做 escape
	EscapeModeEscape   = "escape"   // HTML escape
	EscapeModeSanitize = "sanitize" // bluemonday 移除所有標籤
)

// 品牌固定字串，不隨訊息內容變動
const (
	BrandTitle    = "RUOK? Emergency Alert"
	BrandLinkText = "Learn more about RUOK?"
)

// alertLayout 訊息插入於 "Personal Message from User" 區塊的引號之間
const alertLayout = `
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #1a1a1a; line-height: 1.6;">
  <div style="padding: 32px; border: 1px solid #e5e7eb; border-radius: 24px; background-color: #ffffff;">
    <!-- Header -->
    <div style="display: flex; align-items: center; margin-bottom: 24px;">
      <div style="background-color: #fee2e2; padding: 10px; border-radius: 12px; margin-right: 12px;">
        <span style="font-size: 24px;">🚨</span>
      </div>
      <h2 style="color: #dc2626; font-size: 22px; margin: 0; font-weight: 800; letter-spacing: -0.025em;">RUOK? Emergency Alert</h2>
    </div>

    <!-- Description -->
    <p style="font-size: 16px; color: #4b5563; margin-bottom: 32px;">
      This is an automated safety notification. The user has not checked into their RUOK? safety switch within the scheduled time.
    </p>

    <!-- Message Box -->
    <div style="background-color: #f9fafb; padding: 24px; border-radius: 16px; border-left: 4px solid #dc2626; margin-bottom: 40px;">
      <p style="margin: 0 0 12px 0; font-weight: 700; font-size: 12px; text-transform: uppercase; color: #9ca3af; letter-spacing: 0.1em;">Personal Message from User</p>
      <p style="margin: 0; font-size: 18px; color: #111827; font-style: italic; line-height: 1.5;">"{{.Message}}"</p>
    </div>
    
    <!-- Brand Section (RUOK Branding) -->
    <div style="margin-top: 48px; border-top: 1px solid #f3f4f6; padding-top: 40px;">
      <p style="font-size: 12px; color: #9ca3af; text-align: center; margin-bottom: 24px;">Automatically delivered by RUOK? Protection System</p>
      
      <div style="background-color: #0c0a09; padding: 32px; border-radius: 20px; color: white; text-align: center; border: 1px solid #00FF41;">
        <h3 style="margin: 0; font-size: 20px; font-weight: 700; color: #00FF41;">Your Last Line of Defense</h3>
        <p style="margin: 12px 0 24px; font-size: 14px; opacity: 0.9; line-height: 1.6;">RUOK? is a dedicated safety App designed for individuals living alone. The system will automatically notify your emergency contacts if a scheduled check-in is missed beyond the set time limit, ensuring you are never truly alone in critical moments.</p>
        <a href="https://gowellapp.me" style="background-color: #00FF41; color: #000000; padding: 14px 28px; text-decoration: none; border-radius: 12px; font-weight: 700; font-size: 14px; display: inline-block;">Learn more about RUOK?</a>
      </div>
    </div>

    <!-- Footer -->
    <div style="margin-top: 32px; text-align: center;">
      <p style="font-size: 12px; color: #d1d5db; margin: 0;">&copy; 2026 RUOK? Safety Systems. All rights reserved.</p>
    </div>
  </div>
</div>
    `

// Renderer 通知信 HTML 產生器
type Renderer struct {
	tmpl   *template.Template
	mode   string
	policy *bluemonday.Policy
}

// NewRenderer 建立 Renderer
func NewRenderer(mode string) (*Renderer, error) {
	if !IsValidEscapeMode(mode) {
		return nil, fmt.Errorf("unknown escape mode %q", mode)
	}

	// text/template 不會自動 escape，raw 模式需要原樣輸出
	tmpl, err := template.New("alert").Parse(alertLayout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse alert layout: %w", err)
	}

	return &Renderer{
		tmpl:   tmpl,
		mode:   mode,
		policy: bluemonday.StrictPolicy(),
	}, nil
}

// IsValidEscapeMode 檢查處理模式是否支援
func IsValidEscapeMode(mode string) bool {
	switch mode {
	case EscapeModeRaw, EscapeModeEscape, EscapeModeSanitize:
		return true
	}
	return false
}

// Mode 回傳目前的處理模式
func (r *Renderer) Mode() string {
	return r.mode
}

// Render 產生完整 HTML
func (r *Renderer) Render(message string) (string, error) {
	var sb strings.Builder
	data := struct{ Message string }{Message: r.prepare(message)}

	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render alert: %w", err)
	}
	return sb.String(), nil
}

func (r *Renderer) prepare(message string) string {
	switch r.mode {
	case EscapeModeEscape:
		return html.EscapeString(message)
	case EscapeModeSanitize:
		return r.policy.Sanitize(message)
	default:
		return message
	}
}
