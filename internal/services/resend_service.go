// internal/services/resend_service.go
// Resend 郵件轉送服務

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"

	"alert-relay/internal/config"
	"alert-relay/internal/models"
)

// ErrInvalidUpstreamBody 上游回應不是合法 JSON
var ErrInvalidUpstreamBody = errors.New("upstream returned invalid JSON")

// ResendRelay Resend 轉送服務
// 實作 MailRelay interface
//
// 請求由 resend SDK 建立 (base URL、Bearer key、User-Agent)，
// 但直接以 http.Client 執行，保留 Resend 原生的狀態碼與錯誤格式。
type ResendRelay struct {
	cfg        *config.Config
	httpClient *http.Client
	client     *resend.Client
}

// NewResendRelay 建立 Resend 轉送服務
func NewResendRelay(cfg *config.Config, httpClient *http.Client) (*ResendRelay, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	baseURL, err := parseBaseURL(cfg.ResendBaseURL)
	if err != nil {
		return nil, err
	}

	client := resend.NewCustomClient(httpClient, cfg.ResendAPIKey)
	client.BaseURL = baseURL

	return &ResendRelay{
		cfg:        cfg,
		httpClient: httpClient,
		client:     client,
	}, nil
}

// Name 回傳服務名稱
func (s *ResendRelay) Name() string {
	return "Resend"
}

// Send 發送郵件 (POST /emails)
func (s *ResendRelay) Send(ctx context.Context, payload json.RawMessage) (*models.UpstreamResponse, error) {
	if !json.Valid(payload) {
		return nil, errors.New("payload is not valid JSON")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req, err := s.client.NewRequest(ctx, http.MethodPost, "emails", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req)
}

// Cancel 取消排程郵件 (POST /emails/{id}/cancel)，不帶 body
func (s *ResendRelay) Cancel(ctx context.Context, id string) (*models.UpstreamResponse, error) {
	if id == "" {
		return nil, errors.New("email id is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	path := "emails/" + url.PathEscape(id) + "/cancel"
	req, err := s.client.NewRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cancel request: %w", err)
	}
	req.Header.Del("Content-Type")

	return s.do(req)
}

// do 執行請求並讀取完整回應
func (s *ResendRelay) do(req *http.Request) (*models.UpstreamResponse, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Resend: %w", err)
	}
	defer resp.Body.Close()

	limit := s.cfg.BodyLimit()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read Resend response: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("Resend response exceeds %d bytes", limit)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w (status %d)", ErrInvalidUpstreamBody, resp.StatusCode)
	}

	return &models.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

func (s *ResendRelay) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.UpstreamTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	}
	return context.WithCancel(ctx)
}

// parseBaseURL 確保 base URL 以 / 結尾，相對路徑才會接在後面
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid Resend base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid Resend base URL %q", raw)
	}
	return u, nil
}
