package main

import (
	"context"
	"flag"

	"namogange/pkg/ags"
)

// formFlags 表单字段对应的命令行参数
type formFlags struct {
	paymentFor, seminarDay, identity, amount, mode string

	bankName, chequeNo, dateOfIssue, branch string
	paytmNo, transactionID, upiID         string
	bankReferenceNo, orderNo              string
}

func bindFormFlags(fs *flag.FlagSet) *formFlags {
	f := &formFlags{}
	fs.StringVar(&f.paymentFor, "for", "", `"Seminar Only"、"Paper Presentation Only" 或 "Poster Presentation Only"`)
	fs.StringVar(&f.seminarDay, "day", "", `"For 1st Day"、"For 2nd Day"、"For 3rd Day" 或 "For All Days"`)
	fs.StringVar(&f.identity, "identity", "", "Aadhar 或 PAN")
	fs.StringVar(&f.amount, "amount", "", "金额")
	fs.StringVar(&f.mode, "mode", "", "Cash、Cheque、Paytm、NEFT/RTGS 或 Payment Gateway")
	fs.StringVar(&f.bankName, "bank", "", "Cheque: 银行")
	fs.StringVar(&f.chequeNo, "cheque-no", "", "Cheque: 支票号")
	fs.StringVar(&f.dateOfIssue, "issued", "", "Cheque: 出票日期 YYYY-MM-DD")
	fs.StringVar(&f.branch, "branch", "", "Cheque: 支行")
	fs.StringVar(&f.paytmNo, "paytm-no", "", "Paytm: 手机号")
	fs.StringVar(&f.transactionID, "txn", "", "Paytm: 交易号")
	fs.StringVar(&f.upiID, "upi", "", "Paytm: UPI ID")
	fs.StringVar(&f.bankReferenceNo, "ref", "", "NEFT/RTGS: 银行流水号")
	fs.StringVar(&f.orderNo, "order", "", "Payment Gateway: 订单号")
	return f
}

// apply 只覆盖命令行中出现的字段，编辑时其余字段保持原值。
// 指定参会日期时重新预览登记号
func (f *formFlags) apply(ctx context.Context, fs *flag.FlagSet, ctl *ags.Controller) error {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["mode"] {
		ctl.SetPaymentMode(ags.PaymentMode(f.mode))
	}
	ctl.UpdateForm(func(form *ags.Form) {
		assign := func(name string, dst *string, v string) {
			if set[name] {
				*dst = v
			}
		}
		if set["for"] {
			form.PaymentFor = ags.PaymentFor(f.paymentFor)
		}
		assign("identity", &form.IdentityNumber, f.identity)
		assign("amount", &form.Amount, f.amount)
		assign("bank", &form.BankName, f.bankName)
		assign("cheque-no", &form.ChequeNo, f.chequeNo)
		assign("issued", &form.DateOfIssue, f.dateOfIssue)
		assign("branch", &form.Branch, f.branch)
		assign("paytm-no", &form.PaytmNo, f.paytmNo)
		assign("txn", &form.TransactionID, f.transactionID)
		assign("upi", &form.UpiID, f.upiID)
		assign("ref", &form.BankReferenceNo, f.bankReferenceNo)
		assign("order", &form.OrderNo, f.orderNo)
	})

	if set["day"] {
		return ctl.SetSeminarDay(ctx, ags.SeminarDay(f.seminarDay))
	}
	return nil
}
