package requests

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"namogange/pkg/ags"
)

// AGSPaymentRequest 新增/修改缴费记录的请求体
type AGSPaymentRequest struct {
	ClientID        string `json:"client_id"`
	RegistrationNo  string `json:"registration_no"`
	PaymentFor      string `json:"payment_for"`
	SeminarDay      string `json:"seminar_day"`
	IdentityNumber  string `json:"identity_number"`
	Amount          string `json:"amount"`
	PaymentMode     string `json:"payment_mode"`
	BankName        string `json:"bank_name"`
	ChequeNo        string `json:"cheque_no"`
	DateOfIssue     string `json:"date_of_issue"`
	Branch          string `json:"branch"`
	PaytmNo         string `json:"paytm_no"`
	TransactionID   string `json:"transaction_id"`
	UpiID           string `json:"upi_id"`
	BankReferenceNo string `json:"bank_reference_no"`
	OrderNo         string `json:"order_no"`
	PaymentStatus   string `json:"payment_status"`
	CreatedBy       string `json:"created_by"`
	UpdatedBy       string `json:"updated_by"`
	UserID          string `json:"user_id"`
}

// Form 转为表单结构，复用前台的校验规则
func (r *AGSPaymentRequest) Form() ags.Form {
	return ags.Form{
		PaymentFor:      ags.PaymentFor(r.PaymentFor),
		SeminarDay:      ags.SeminarDay(r.SeminarDay),
		IdentityNumber:  r.IdentityNumber,
		Amount:          r.Amount,
		BankName:        r.BankName,
		ChequeNo:        r.ChequeNo,
		DateOfIssue:     r.DateOfIssue,
		Branch:          r.Branch,
		PaytmNo:         r.PaytmNo,
		TransactionID:   r.TransactionID,
		UpiID:           r.UpiID,
		BankReferenceNo: r.BankReferenceNo,
		OrderNo:         r.OrderNo,
		RegistrationNo:  r.RegistrationNo,
	}
}

// Payment 转为领域结构
func (r *AGSPaymentRequest) Payment() ags.Payment {
	return ags.Payment{
		ClientID:        r.ClientID,
		RegistrationNo:  r.RegistrationNo,
		PaymentFor:      ags.PaymentFor(r.PaymentFor),
		SeminarDay:      ags.SeminarDay(r.SeminarDay),
		IdentityNumber:  r.IdentityNumber,
		Amount:          r.Amount,
		Mode:            ags.PaymentMode(r.PaymentMode),
		BankName:        r.BankName,
		ChequeNo:        r.ChequeNo,
		DateOfIssue:     r.DateOfIssue,
		Branch:          r.Branch,
		PaytmNo:         r.PaytmNo,
		TransactionID:   r.TransactionID,
		UpiID:           r.UpiID,
		BankReferenceNo: r.BankReferenceNo,
		OrderNo:         r.OrderNo,
		Status:          ags.Status(r.PaymentStatus),
		CreatedBy:       r.CreatedBy,
		UpdatedBy:       r.UpdatedBy,
	}
}

var agsPaymentRules = govalidator.MapData{
	"client_id":    []string{"required", "max:64"},
	"user_id":      []string{"required"},
	"payment_for":  []string{"in:" + joinEnum(ags.ForSeminarOnly, ags.ForPaperPresentationOnly, ags.ForPosterPresentation)},
	"seminar_day":  []string{"in:" + joinEnum(ags.Day1, ags.Day2, ags.Day3, ags.AllDays)},
	"payment_mode": []string{"in:" + joinEnum(ags.PaymentModes...)},
}

var agsPaymentMessages = govalidator.MapData{
	"client_id": []string{
		"required:Client ID is required",
		"max:Client ID is too long",
	},
	"user_id":      []string{"required:User ID is required"},
	"payment_for":  []string{"in:Payment For is invalid"},
	"seminar_day":  []string{"in:Seminar Day is invalid"},
	"payment_mode": []string{"in:Payment Mode is invalid"},
}

// MsgStatusInvalid 状态取值错误
const MsgStatusInvalid = "Payment Status must be Active or Cancelled"

// ValidateAGSPayment 解析并校验请求体。
// 先按表单规则给出与前台一致的提示，再校验客户、操作人和枚举取值。
func ValidateAGSPayment(c *gin.Context) (*AGSPaymentRequest, error) {
	var req AGSPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}

	if msg := ags.Validate(req.Form(), ags.PaymentMode(req.PaymentMode)); msg != "" {
		return nil, &ValidationError{Message: msg, Errors: url.Values{"form": {msg}}}
	}
	if verr := ValidateStruct(&req, agsPaymentRules, agsPaymentMessages,
		"client_id", "user_id", "payment_for", "seminar_day", "payment_mode"); verr != nil {
		return nil, verr
	}

	switch ags.Status(req.PaymentStatus) {
	case "", ags.StatusActive, ags.StatusCancelled:
	default:
		return nil, &ValidationError{Message: MsgStatusInvalid, Errors: url.Values{"payment_status": {MsgStatusInvalid}}}
	}
	return &req, nil
}

func joinEnum[T ~string](values ...T) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += string(v)
	}
	return out
}
