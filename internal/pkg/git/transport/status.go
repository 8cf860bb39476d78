package transport

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	pkgErrors "forgekit/pkg/errors"
)

// StatusPolicy 平台状态码到错误类型的映射规则
type StatusPolicy struct {
	// MessageKey 403 时从响应体读取错误信息的字段
	MessageKey string
	// RateLimited 429 是否视为限流, nil 表示总是
	RateLimited func(resp *Response) bool
}

// Classify 2xx 返回 nil, 其余返回对应错误
func (p StatusPolicy) Classify(resp *Response) error {
	if resp.OK() {
		return nil
	}
	switch resp.Status {
	case http.StatusUnauthorized:
		return pkgErrors.ErrUnauthorized
	case http.StatusNotFound:
		return pkgErrors.ErrNotFound
	case http.StatusForbidden:
		return pkgErrors.Forbidden(p.message(resp))
	case http.StatusTooManyRequests:
		if p.RateLimited == nil || p.RateLimited(resp) {
			return pkgErrors.ErrRateLimit
		}
		return pkgErrors.Forbidden(p.message(resp))
	}
	return pkgErrors.New(pkgErrors.CodeTransport, fmt.Sprintf("平台返回异常状态码 %d: %s", resp.Status, p.message(resp)))
}

func (p StatusPolicy) message(resp *Response) string {
	key := p.MessageKey
	if key == "" {
		key = "message"
	}
	if gjson.ValidBytes(resp.Body) {
		if v := gjson.GetBytes(resp.Body, key); v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

// HeaderExhausted 响应头中的剩余额度为 0 时视为限流
func HeaderExhausted(header string) func(resp *Response) bool {
	return func(resp *Response) bool {
		return resp.Header.Get(header) == "0"
	}
}
