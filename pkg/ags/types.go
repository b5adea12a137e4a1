// Package ags 实现 AGS 研讨会缴费登记的前台工作流：
// 表单校验、缴费记录缓存以及新增/编辑/作废/删除的流程控制。
package ags

import (
	"time"
)

// PaymentFor 缴费用途
type PaymentFor string

const (
	ForSeminarOnly           PaymentFor = "Seminar Only"
	ForPaperPresentationOnly PaymentFor = "Paper Presentation Only"
	ForPosterPresentation    PaymentFor = "Poster Presentation Only"
)

// SeminarDay 参会日期，选择后需要重新预览登记号
type SeminarDay string

const (
	Day1    SeminarDay = "For 1st Day"
	Day2    SeminarDay = "For 2nd Day"
	Day3    SeminarDay = "For 3rd Day"
	AllDays SeminarDay = "For All Days"
)

// Code 返回登记号中使用的日期代码
func (d SeminarDay) Code() string {
	switch d {
	case Day1:
		return "D1"
	case Day2:
		return "D2"
	case Day3:
		return "D3"
	case AllDays:
		return "ALL"
	}
	return ""
}

// IsValid 是否为已知的参会日期
func (d SeminarDay) IsValid() bool {
	return d.Code() != ""
}

// PaymentMode 付款方式，决定表单中哪些附加字段必填
type PaymentMode string

const (
	ModeCash           PaymentMode = "Cash"
	ModeCheque         PaymentMode = "Cheque"
	ModePaytm          PaymentMode = "Paytm"
	ModeNeftRtgs       PaymentMode = "NEFT/RTGS"
	ModePaymentGateway PaymentMode = "Payment Gateway"
)

// PaymentModes 全部付款方式，按表单下拉框顺序排列
var PaymentModes = []PaymentMode{ModeCash, ModeCheque, ModePaytm, ModeNeftRtgs, ModePaymentGateway}

// IsValid 是否为已知的付款方式
func (m PaymentMode) IsValid() bool {
	for _, mode := range PaymentModes {
		if m == mode {
			return true
		}
	}
	return false
}

// Status 缴费记录状态，只允许 Active -> Cancelled
type Status string

const (
	StatusActive    Status = "Active"
	StatusCancelled Status = "Cancelled"
)

// Payment 缴费记录，字段与后端 JSON 保持一致
type Payment struct {
	ID              uint64      `json:"id,omitempty"`
	ClientID        string      `json:"client_id"`
	RegistrationNo  string      `json:"registration_no"`
	PaymentFor      PaymentFor  `json:"payment_for"`
	SeminarDay      SeminarDay  `json:"seminar_day"`
	IdentityNumber  string      `json:"identity_number"`
	Amount          string      `json:"amount"`
	Mode            PaymentMode `json:"payment_mode"`
	BankName        string      `json:"bank_name,omitempty"`
	ChequeNo        string      `json:"cheque_no,omitempty"`
	DateOfIssue     string      `json:"date_of_issue,omitempty"`
	Branch          string      `json:"branch,omitempty"`
	PaytmNo         string      `json:"paytm_no,omitempty"`
	TransactionID   string      `json:"transaction_id,omitempty"`
	UpiID           string      `json:"upi_id,omitempty"`
	BankReferenceNo string      `json:"bank_reference_no,omitempty"`
	OrderNo         string      `json:"order_no,omitempty"`
	Status          Status      `json:"payment_status"`
	CreatedBy       string      `json:"created_by,omitempty"`
	UpdatedBy       string      `json:"updated_by,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// IsActive 是否为有效记录
func (p Payment) IsActive() bool {
	return p.Status == StatusActive
}

// IsCancelled 是否已作废
func (p Payment) IsCancelled() bool {
	return p.Status == StatusCancelled
}

// Payload 提交给后端的新增/更新请求体
type Payload struct {
	Payment
	// UserID 操作人 ID
	UserID string `json:"user_id"`
}

// Form 缴费表单的输入状态，所有字段都按用户输入的字符串保存
type Form struct {
	PaymentFor      PaymentFor
	SeminarDay      SeminarDay
	IdentityNumber  string
	Amount          string
	BankName        string
	ChequeNo        string
	DateOfIssue     string
	Branch          string
	PaytmNo         string
	TransactionID   string
	UpiID           string
	BankReferenceNo string
	OrderNo         string

	// RegistrationNo 仅在编辑时由原记录带入，新增时为空
	RegistrationNo string
}

// FormFromPayment 原样回填表单
func FormFromPayment(p Payment) Form {
	return Form{
		PaymentFor:      p.PaymentFor,
		SeminarDay:      p.SeminarDay,
		IdentityNumber:  p.IdentityNumber,
		Amount:          p.Amount,
		BankName:        p.BankName,
		ChequeNo:        p.ChequeNo,
		DateOfIssue:     p.DateOfIssue,
		Branch:          p.Branch,
		PaytmNo:         p.PaytmNo,
		TransactionID:   p.TransactionID,
		UpiID:           p.UpiID,
		BankReferenceNo: p.BankReferenceNo,
		OrderNo:         p.OrderNo,
		RegistrationNo:  p.RegistrationNo,
	}
}

// Bank 银行，用于支票付款的银行下拉框
type Bank struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// User 当前操作人
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
}

// ActivityEvent 操作日志事件
type ActivityEvent struct {
	Module      string `json:"module"`
	Action      string `json:"action"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	ClientID    string `json:"client_id"`
}

// NotifyKind 提示类型
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyWarning NotifyKind = "warning"
	NotifyError   NotifyKind = "error"
)
