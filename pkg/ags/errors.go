package ags

import (
	"errors"
	"strings"
)

// GenericErrorMessage 后端没有返回可读信息时的兜底提示
const GenericErrorMessage = "Something went wrong. Please try again."

var (
	// ErrNoActingUser 无法确定当前操作人
	ErrNoActingUser = errors.New("ags: acting user not found")
	// ErrNotFound 本地缓存中没有该记录
	ErrNotFound = errors.New("ags: payment not found")
	// ErrNotActive 只有有效记录可以编辑或作废
	ErrNotActive = errors.New("ags: payment is not active")
	// ErrSubmitInFlight 上一次提交尚未返回
	ErrSubmitInFlight = errors.New("ags: submit already in progress")
	// ErrConfirmationDeclined 用户取消了确认框
	ErrConfirmationDeclined = errors.New("ags: confirmation declined")
)

// ValidationError 表单校验失败
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "ags: " + e.Message
}

// userMessenger 后端错误携带的可读信息，agsapi.APIError 实现该接口
type userMessenger interface {
	UserMessage() string
}

// ErrorMessage 将错误转换为展示给用户的提示文案
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var um userMessenger
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return GenericErrorMessage
}
