// Package bank 支票付款可选的银行
package bank

import (
	"namogange/app/models"
	"namogange/pkg/ags"
)

// Bank 银行
type Bank struct {
	models.BaseModel
	Name string `gorm:"type:varchar(120);uniqueIndex;not null"`

	models.CommonTimestampsField
}

// TableName 表名
func (Bank) TableName() string {
	return "banks"
}

// ToAGS 转为接口输出结构
func (b Bank) ToAGS() ags.Bank {
	return ags.Bank{ID: b.ID, Name: b.Name}
}
