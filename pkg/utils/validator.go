package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError 格式化网关参数与配置的校验错误
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, formatFieldError(e))
		}
		return strings.Join(messages, "; ")
	}

	// 查询参数中的时间
	var timeErr *time.ParseError
	if errors.As(err, &timeErr) {
		return fmt.Sprintf("time '%s' must be RFC3339, e.g. 2024-01-02T15:04:05Z", timeErr.Value)
	}

	return err.Error()
}

// formatFieldError 格式化单个字段的校验错误, min/max 按字段类型区分数值与长度
func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s%s", field, e.Param(), unit(e.Kind()))
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s%s", field, e.Param(), unit(e.Kind()))
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", field, e.Param())
	case "len":
		return fmt.Sprintf("field '%s' must be exactly %s%s", field, e.Param(), unit(e.Kind()))
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("field '%s' must be a valid URL", field)
	default:
		return fmt.Sprintf("field '%s' validation failed on '%s' tag", field, e.Tag())
	}
}

// unit 数值字段无单位, 字符串与集合按长度计
func unit(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	}
	return ""
}
