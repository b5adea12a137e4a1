package activity

import (
	"namogange/pkg/ags"
)

// FromEvent 由事件生成日志，taskID 用于去重
func FromEvent(taskID, ip string, event ags.ActivityEvent) *Log {
	return &Log{
		TaskID:      taskID,
		Module:      event.Module,
		Action:      event.Action,
		Description: event.Description,
		UserID:      event.UserID,
		ClientID:    event.ClientID,
		IP:          ip,
	}
}
