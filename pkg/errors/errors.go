package errors

import (
	stderrors "errors"
	"fmt"
)

// 错误码
const (
	CodeSuccess           = 2000000
	CodeBadRequest        = 4000000
	CodeUnauthorized      = 4010000
	CodeCredentialMissing = 4011000 // 本地未配置访问令牌
	CodeForbidden         = 4030000
	CodeNotFound          = 4040000
	CodeRateLimit         = 4290000
	CodeInternalError     = 5000000
	CodeURLConstruction   = 5001000
	CodeTransport         = 5020000
	CodeMalformedResponse = 5021000 // 平台返回结构不符合预期
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较, 便于 errors.Is(err, ErrNotFound)
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Kind 返回错误码, 非 AppError 统一视为内部错误
func Kind(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}

// Forbidden 构造携带平台错误信息的禁止访问错误
func Forbidden(message string) *AppError {
	if message == "" {
		message = "禁止访问"
	}
	return New(CodeForbidden, message)
}

// Transport 包装网络层错误
func Transport(err error) *AppError {
	return Wrap(CodeTransport, "请求平台接口失败", err)
}

// Malformed 平台响应缺少必需字段或格式错误
func Malformed(format string, args ...any) *AppError {
	return New(CodeMalformedResponse, fmt.Sprintf(format, args...))
}

// URLConstruction 构造请求地址失败
func URLConstruction(raw string, err error) *AppError {
	return Wrap(CodeURLConstruction, fmt.Sprintf("构造请求地址失败: %s", raw), err)
}

// 预定义错误
var (
	ErrBadRequest        = New(CodeBadRequest, "请求参数错误")
	ErrUnauthorized      = New(CodeUnauthorized, "未授权")
	ErrCredentialMissing = New(CodeCredentialMissing, "未设置访问令牌")
	ErrForbidden         = New(CodeForbidden, "禁止访问")
	ErrNotFound          = New(CodeNotFound, "资源不存在")
	ErrRateLimit         = New(CodeRateLimit, "触发平台限流")
	ErrInternalError     = New(CodeInternalError, "内部服务器错误")
	ErrTransport         = New(CodeTransport, "请求平台接口失败")
	ErrMalformedResponse = New(CodeMalformedResponse, "平台响应格式错误")
	ErrURLConstruction   = New(CodeURLConstruction, "构造请求地址失败")

	ErrInvalidToken      = New(CodeUnauthorized, "无效的Token")
	ErrTokenExpired      = New(CodeUnauthorized, "Token已过期")
	ErrPlatformNotFound  = New(CodeNotFound, "未配置该平台")
	ErrUnsupportedFormat = New(CodeBadRequest, "不支持的输出格式")
)
