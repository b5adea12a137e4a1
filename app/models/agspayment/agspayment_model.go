// Package agspayment AGS 研讨会缴费记录
package agspayment

import (
	"github.com/shopspring/decimal"

	"namogange/app/models"
)

// AGSPayment 缴费记录模型
type AGSPayment struct {
	models.BaseModel

	ClientID       string          `gorm:"type:varchar(64);index;not null"`
	RegistrationNo string          `gorm:"type:varchar(32);uniqueIndex;not null"` // 登记号，全局唯一
	PaymentFor     string          `gorm:"type:varchar(40);not null"`
	SeminarDay     string          `gorm:"type:varchar(20);not null"`
	IdentityNumber string          `gorm:"type:varchar(12);index;not null"` // Aadhaar 或 PAN
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMode    string          `gorm:"type:varchar(20);not null"`

	// 按付款方式填写
	BankName        string `gorm:"type:varchar(120)"`
	ChequeNo        string `gorm:"type:varchar(32)"`
	DateOfIssue     string `gorm:"type:varchar(10)"`
	Branch          string `gorm:"type:varchar(120)"`
	PaytmNo         string `gorm:"type:varchar(10)"`
	TransactionID   string `gorm:"type:varchar(30)"`
	UpiID           string `gorm:"type:varchar(120)"`
	BankReferenceNo string `gorm:"type:varchar(64)"`
	OrderNo         string `gorm:"type:varchar(64)"`

	PaymentStatus string `gorm:"type:varchar(12);index;not null"`
	CreatedBy     string `gorm:"type:varchar(120)"`
	UpdatedBy     string `gorm:"type:varchar(120)"`

	models.CommonTimestampsField
}

// TableName 表名
func (AGSPayment) TableName() string {
	return "ags_payments"
}
