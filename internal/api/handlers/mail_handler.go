// internal/api/handlers/mail_handler.go
// 郵件轉送 API Handler

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"alert-relay/internal/alert"
	"alert-relay/internal/api/middlewares"
	"alert-relay/internal/config"
	"alert-relay/internal/models"
	"alert-relay/internal/services"
)

var errNotObject = errors.New("request body must be a JSON object")

// MailHandler 郵件 Handler
type MailHandler struct {
	cfg      *config.Config
	relay    services.MailRelay
	renderer *alert.Renderer
}

// NewMailHandler 建立 Mail Handler
func NewMailHandler(cfg *config.Config, relay services.MailRelay, renderer *alert.Renderer) *MailHandler {
	return &MailHandler{
		cfg:      cfg,
		relay:    relay,
		renderer: renderer,
	}
}

// Send 套用通知模板後轉送到 Resend
func (h *MailHandler) Send(c *gin.Context) {
	fields, err := h.decodeObject(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	payload := models.SendPayload(fields)

	// 取出訊息並重建 HTML
	message, err := alert.ExtractMessage(payload[models.FieldHTML])
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	rendered, err := h.renderer.Render(message)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	htmlJSON, err := json.Marshal(rendered)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	payload[models.FieldHTML] = htmlJSON

	// 其他欄位原樣轉送
	out, err := json.Marshal(payload)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	resp, err := h.relay.Send(c.Request.Context(), out)
	if err != nil {
		log.Printf("[Mail] %s send failed request_id=%s: %v", h.relay.Name(), middlewares.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	relayResponse(c, resp)
}

// Cancel 取消已排程的郵件
func (h *MailHandler) Cancel(c *gin.Context) {
	fields, err := h.decodeObject(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	payload := models.CancelPayload(fields)

	id, ok := emailID(payload[models.FieldID])
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing email ID"})
		return
	}

	resp, err := h.relay.Cancel(c.Request.Context(), id)
	if err != nil {
		log.Printf("[Mail] %s cancel %s failed request_id=%s: %v", h.relay.Name(), id, middlewares.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	relayResponse(c, resp)
}

// decodeObject 解析 JSON 物件 (null 與非物件皆視為錯誤)
func (h *MailHandler) decodeObject(c *gin.Context) (map[string]json.RawMessage, error) {
	limit := h.cfg.BodyLimit()
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("request body exceeds %d bytes", limit)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errNotObject
	}
	return fields, nil
}

// emailID 取出 id，不存在或為空值 ("", 0, false, null) 回傳 false
func emailID(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return "", false
	}

	switch v := value.(type) {
	case string:
		return v, v != ""
	case json.Number:
		// 超出 float64 範圍時 ParseFloat 回傳 ±Inf 與 ErrRange
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return "", false
		}
		return numberString(f), f != 0
	case bool:
		return strconv.FormatBool(v), v
	default:
		return "", false
	}
}

// numberString 依 ECMAScript Number::toString 規則格式化
// 1e-6 <= |f| < 1e21 使用一般小數，其餘使用指數 (1e+21、1.5e-7)
func numberString(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + exp
}

// relayResponse 原樣回傳上游狀態碼與 body
func relayResponse(c *gin.Context, resp *models.UpstreamResponse) {
	c.Data(resp.StatusCode, "application/json", resp.Body)
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}
