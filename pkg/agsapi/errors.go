package agsapi

import "fmt"

// APIError 后端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("agsapi: status %d", e.Status)
	}
	return fmt.Sprintf("agsapi: status %d: %s", e.Status, e.Message)
}

// UserMessage 后端给出的可读提示，为空时由调用方兜底
func (e *APIError) UserMessage() string {
	return e.Message
}
