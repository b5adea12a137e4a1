package agspayment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"namogange/pkg/ags"
)

var (
	// ErrReactivate 作废后不能恢复
	ErrReactivate = errors.New("cancelled payments cannot be reactivated")
	// ErrAmount 金额不是两位小数以内的正数
	ErrAmount = errors.New("amount must be positive with at most 2 decimal places")
)

// ToAGS 转为接口输出结构
func (p *AGSPayment) ToAGS() ags.Payment {
	return ags.Payment{
		ID:              p.ID,
		ClientID:        p.ClientID,
		RegistrationNo:  p.RegistrationNo,
		PaymentFor:      ags.PaymentFor(p.PaymentFor),
		SeminarDay:      ags.SeminarDay(p.SeminarDay),
		IdentityNumber:  p.IdentityNumber,
		Amount:          p.Amount.String(),
		Mode:            ags.PaymentMode(p.PaymentMode),
		BankName:        p.BankName,
		ChequeNo:        p.ChequeNo,
		DateOfIssue:     p.DateOfIssue,
		Branch:          p.Branch,
		PaytmNo:         p.PaytmNo,
		TransactionID:   p.TransactionID,
		UpiID:           p.UpiID,
		BankReferenceNo: p.BankReferenceNo,
		OrderNo:         p.OrderNo,
		Status:          ags.Status(p.PaymentStatus),
		CreatedBy:       p.CreatedBy,
		UpdatedBy:       p.UpdatedBy,
		CreatedAt:       p.CreatedAt,
	}
}

// ToAGSList 批量转换
func ToAGSList(payments []AGSPayment) []ags.Payment {
	out := make([]ags.Payment, 0, len(payments))
	for i := range payments {
		out = append(out, payments[i].ToAGS())
	}
	return out
}

// Apply 用表单字段覆盖可编辑字段。登记号、客户、创建人不在此修改
func (p *AGSPayment) Apply(in ags.Payment) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return err
	}
	// 列为 decimal(12,2)，多余的小数位会被数据库截断
	if !amount.IsPositive() || !amount.Equal(amount.Round(ags.AmountScale)) {
		return fmt.Errorf("%w: %s", ErrAmount, in.Amount)
	}
	p.PaymentFor = string(in.PaymentFor)
	p.SeminarDay = string(in.SeminarDay)
	p.IdentityNumber = strings.TrimSpace(in.IdentityNumber)
	p.Amount = amount
	p.PaymentMode = string(in.Mode)
	p.BankName = strings.TrimSpace(in.BankName)
	p.ChequeNo = strings.TrimSpace(in.ChequeNo)
	p.DateOfIssue = strings.TrimSpace(in.DateOfIssue)
	p.Branch = strings.TrimSpace(in.Branch)
	p.PaytmNo = strings.TrimSpace(in.PaytmNo)
	p.TransactionID = strings.TrimSpace(in.TransactionID)
	p.UpiID = strings.TrimSpace(in.UpiID)
	p.BankReferenceNo = strings.TrimSpace(in.BankReferenceNo)
	p.OrderNo = strings.TrimSpace(in.OrderNo)
	if in.UpdatedBy != "" {
		p.UpdatedBy = in.UpdatedBy
	}
	return nil
}

// TransitionTo 修改状态，只允许 Active -> Cancelled
func (p *AGSPayment) TransitionTo(status ags.Status) error {
	if status == "" || string(status) == p.PaymentStatus {
		return nil
	}
	if p.PaymentStatus == string(ags.StatusCancelled) {
		return ErrReactivate
	}
	p.PaymentStatus = string(status)
	return nil
}

// IsActive 是否有效
func (p *AGSPayment) IsActive() bool {
	return p.PaymentStatus == string(ags.StatusActive)
}
