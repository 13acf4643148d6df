// internal/alert/message.go
// 從請求的 html 欄位取出使用者訊息

package alert

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// FallbackMessage html 欄位不存在或為空值時使用的訊息
const FallbackMessage = "No message provided."

// ErrInvalidMessage html 欄位不是字串
var ErrInvalidMessage = errors.New("html must be a string")

// ExtractMessage 取出訊息
// 移除 <p>、將 </p> 轉為換行、去除前後空白後只保留第一行。
// 不做 HTML 解析，其他標籤原樣保留。
func ExtractMessage(raw json.RawMessage) (string, error) {
	message, err := rawMessage(raw)
	if err != nil {
		return "", err
	}

	message = strings.ReplaceAll(message, "<p>", "")
	message = strings.ReplaceAll(message, "</p>", "\n")
	message = strings.TrimFunc(message, isTrimSpace)

	first, _, _ := strings.Cut(message, "\n")
	return first, nil
}

// isTrimSpace 與 ECMAScript String.prototype.trim 相同的空白集合：
// Unicode Zs 類別、行終止符、TAB/VT/FF 與 BOM (U+FEFF)。
// U+0085 (NEL) 不在其中。
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// rawMessage 解析 html 欄位
// 不存在、null、""、false、0 皆視為未提供
func rawMessage(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return FallbackMessage, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("failed to decode html: %w", err)
	}

	switch v := value.(type) {
	case nil:
		return FallbackMessage, nil
	case string:
		if v == "" {
			return FallbackMessage, nil
		}
		return v, nil
	case bool:
		if !v {
			return FallbackMessage, nil
		}
	case float64:
		if v == 0 {
			return FallbackMessage, nil
		}
	}

	return "", fmt.Errorf("%w, got %s", ErrInvalidMessage, jsonKind(value))
}

func jsonKind(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
