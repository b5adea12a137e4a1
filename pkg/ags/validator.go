package ags

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	aadharPattern        = regexp.MustCompile(`^\d{12}$`)
	panPattern           = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	paytmNoPattern       = regexp.MustCompile(`^\d{10}$`)
	transactionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,30}$`)
)

// 校验提示文案
const (
	MsgPaymentForRequired      = "Payment For is required"
	MsgSeminarDayRequired      = "Seminar Day is required"
	MsgIdentityRequired        = "Identity Number is required"
	MsgIdentityInvalid         = "Identity Number must be a valid Aadhar (12 digits) or PAN"
	MsgAmountRequired          = "Amount is required"
	MsgAmountInvalid           = "Amount must be valid number greater than 0"
	MsgAmountPrecision         = "Amount can have at most 2 decimal places"
	MsgModeRequired            = "Payment Mode is required"
	MsgBankNameRequired        = "Bank Name is required"
	MsgChequeNoRequired        = "Cheque No is required"
	MsgDateOfIssueRequired     = "Date of Issue is required"
	MsgBranchRequired          = "Branch is required"
	MsgUpiIDRequired           = "UPI ID is required"
	MsgPaytmNoInvalid          = "Paytm No must be 10 digits"
	MsgTransactionIDInvalid    = "Transaction ID must be 6-30 letters, digits, _ or -"
	MsgBankReferenceNoRequired = "Bank Reference No is required"
	MsgOrderNoRequired         = "Order No is required"
)

// Validate 提交时校验表单，返回第一条未通过规则的提示，全部通过返回空字符串。
// 先校验公共必填项，再按付款方式校验附加字段。
func Validate(form Form, mode PaymentMode) string {
	switch {
	case blank(string(form.PaymentFor)):
		return MsgPaymentForRequired
	case blank(string(form.SeminarDay)):
		return MsgSeminarDayRequired
	case blank(form.IdentityNumber):
		return MsgIdentityRequired
	case !IsValidIdentityNumber(form.IdentityNumber):
		return MsgIdentityInvalid
	case blank(form.Amount):
		return MsgAmountRequired
	case !IsValidAmount(form.Amount):
		return MsgAmountInvalid
	case !HasAmountScale(form.Amount):
		return MsgAmountPrecision
	case blank(string(mode)):
		return MsgModeRequired
	}

	switch mode {
	case ModeCheque:
		switch {
		case blank(form.BankName):
			return MsgBankNameRequired
		case blank(form.ChequeNo):
			return MsgChequeNoRequired
		case blank(form.DateOfIssue):
			return MsgDateOfIssueRequired
		case blank(form.Branch):
			return MsgBranchRequired
		}
	case ModePaytm:
		switch {
		case blank(form.UpiID):
			return MsgUpiIDRequired
		case !blank(form.PaytmNo) && !paytmNoPattern.MatchString(form.PaytmNo):
			return MsgPaytmNoInvalid
		case !blank(form.TransactionID) && !transactionIDPattern.MatchString(form.TransactionID):
			return MsgTransactionIDInvalid
		}
	case ModeNeftRtgs:
		if blank(form.BankReferenceNo) {
			return MsgBankReferenceNoRequired
		}
	case ModePaymentGateway:
		if blank(form.OrderNo) {
			return MsgOrderNoRequired
		}
	}
	return ""
}

// IsValidIdentityNumber 12 位 Aadhar 或大写 PAN
func IsValidIdentityNumber(s string) bool {
	return aadharPattern.MatchString(s) || panPattern.MatchString(s)
}

// IsValidAmount 金额必须是大于 0 的数字
func IsValidAmount(s string) bool {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return amount.IsPositive()
}

// AmountScale 金额列保存的小数位数
const AmountScale = 2

// HasAmountScale 小数位不超过两位，超出部分入库时会被截掉
func HasAmountScale(s string) bool {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return amount.Equal(amount.Round(AmountScale))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
