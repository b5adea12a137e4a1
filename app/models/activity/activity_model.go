// Package activity 操作日志
package activity

import (
	"namogange/app/models"
)

// Log 一条操作日志。TaskID 来自队列任务，重复投递时不会重复写入
type Log struct {
	models.BaseModel

	TaskID      string `gorm:"type:varchar(36);uniqueIndex" json:"task_id"`
	Module      string `gorm:"type:varchar(40);index" json:"module"`
	Action      string `gorm:"type:varchar(40)" json:"action"`
	Description string `gorm:"type:text" json:"description"`
	UserID      string `gorm:"type:varchar(64);index" json:"user_id"`
	ClientID    string `gorm:"type:varchar(64);index" json:"client_id"`
	IP          string `gorm:"type:varchar(45)" json:"ip"`

	models.CommonTimestampsField
}

// TableName 表名
func (Log) TableName() string {
	return "activity_logs"
}
