// internal/services/mail_sender.go
// 郵件轉送服務共用介面

package services

import (
	"context"
	"encoding/json"

	"alert-relay/internal/models"
)

// MailRelay 郵件轉送服務介面
// 回傳上游的原始狀態碼與 body，非 2xx 不視為錯誤
type MailRelay interface {
	// Send 發送郵件，payload 需為 JSON 物件
	Send(ctx context.Context, payload json.RawMessage) (*models.UpstreamResponse, error)

	// Cancel 取消已排程的郵件
	Cancel(ctx context.Context, id string) (*models.UpstreamResponse, error)

	// Name 回傳服務名稱，用於 logging
	Name() string
}
