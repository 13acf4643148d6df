// internal/models/mail.go
// 郵件轉送資料模型

package models

import "encoding/json"

// 請求欄位名稱
const (
	FieldHTML = "html"
	FieldID   = "id"
)

// SendPayload 發送請求
// 欄位依 Resend 定義，除 html 外全部原樣轉送
type SendPayload map[string]json.RawMessage

// CancelPayload 取消請求，需要 id
type CancelPayload map[string]json.RawMessage

// UpstreamResponse Resend 原始回應 (狀態碼與 body 不做任何轉換)
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// ErrorResponse 本服務自己產生的錯誤回應
type ErrorResponse struct {
	Error string `json:"error"`
}
