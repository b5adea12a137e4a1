// Package requests 请求解析和表单验证
package requests

import (
	"fmt"
	"net/url"

	"github.com/thedevsaddam/govalidator"
)

// ValidationError 表单验证失败，Message 为第一条错误
type ValidationError struct {
	Message string
	Errors  url.Values
}

// Error 实现 error 接口
func (v *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", v.Message)
}

// ValidateStruct 使用 govalidator 按 json 标签校验结构体，data 必须是指针。
// order 决定多个字段出错时 Message 取哪一条。
func ValidateStruct(data interface{}, rules, messages govalidator.MapData, order ...string) *ValidationError {
	opts := govalidator.Options{
		Data:     data,
		Rules:    rules,
		Messages: messages,
	}

	errs := govalidator.New(opts).ValidateStruct()
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Message: firstMessage(errs, order), Errors: errs}
}

func firstMessage(errs url.Values, order []string) string {
	for _, field := range order {
		if msgs := errs[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	for _, msgs := range errs {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return "Validation failed"
}
