// Package view 将缴费记录整理为有效/作废两张表格，并输出有效记录的打印页
package view

import (
	"fmt"
	"strings"
	"time"

	"namogange/pkg/ags"
)

// EmptyMessage 分区为空时表格唯一的一行
const EmptyMessage = "No payments found"

const (
	dateLayout     = "02 Jan 2006"
	dateTimeLayout = "02 Jan 2006 03:04 PM"
)

// Action 行操作
type Action string

const (
	ActionEdit   Action = "Edit"
	ActionCancel Action = "Cancel"
	ActionDelete Action = "Delete"
)

// ActiveRow 有效记录表的一行
type ActiveRow struct {
	SNo                 int
	PaymentID           uint64
	RegistrationDetails string
	PaymentDetails      string
	Actions             []Action
}

// CancelledRow 作废记录表的一行
type CancelledRow struct {
	PaymentID      uint64
	RegistrationNo string
	Amount         string
	Mode           string
	DateTime       string
	Status         string
	Actions        []Action
}

// ActiveTable 有效记录表，Rows 为空时展示 EmptyMessage
type ActiveTable struct {
	Rows []ActiveRow
}

// Empty 是否为空表
func (t ActiveTable) Empty() bool {
	return len(t.Rows) == 0
}

// CancelledTable 作废记录表
type CancelledTable struct {
	Rows []CancelledRow
}

// Empty 是否为空表
func (t CancelledTable) Empty() bool {
	return len(t.Rows) == 0
}

// Presenter 负责表格数据整理，日期按 loc 时区格式化
type Presenter struct {
	loc *time.Location
}

// NewPresenter 创建 Presenter，loc 为空时使用 UTC
func NewPresenter(loc *time.Location) *Presenter {
	if loc == nil {
		loc = time.UTC
	}
	return &Presenter{loc: loc}
}

// Active 生成有效记录表，只接收 Active 状态的记录
func (p *Presenter) Active(payments []ags.Payment) ActiveTable {
	var table ActiveTable
	for _, payment := range payments {
		if !payment.IsActive() {
			continue
		}
		table.Rows = append(table.Rows, ActiveRow{
			SNo:                 len(table.Rows) + 1,
			PaymentID:           payment.ID,
			RegistrationDetails: RegistrationDetails(payment),
			PaymentDetails:      p.PaymentDetails(payment),
			Actions:             []Action{ActionEdit, ActionCancel, ActionDelete},
		})
	}
	return table
}

// Cancelled 生成作废记录表，只允许删除
func (p *Presenter) Cancelled(payments []ags.Payment) CancelledTable {
	var table CancelledTable
	for _, payment := range payments {
		if !payment.IsCancelled() {
			continue
		}
		table.Rows = append(table.Rows, CancelledRow{
			PaymentID:      payment.ID,
			RegistrationNo: payment.RegistrationNo,
			Amount:         FormatAmount(payment.Amount),
			Mode:           string(payment.Mode),
			DateTime:       p.format(payment.CreatedAt, dateTimeLayout),
			Status:         string(payment.Status),
			Actions:        []Action{ActionDelete},
		})
	}
	return table
}

// RegistrationDetails 登记号、用途、参会日期
func RegistrationDetails(payment ags.Payment) string {
	return strings.Join([]string{
		payment.RegistrationNo,
		string(payment.PaymentFor),
		string(payment.SeminarDay),
	}, " | ")
}

// PaymentDetails 缴费说明，如：
// Rs. 500 received on 16 Oct 2026 via Paytm (Transaction ID: TXN12345) against Registration No. AGS-2026-D1-001
func (p *Presenter) PaymentDetails(payment ags.Payment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s received on %s via %s",
		FormatAmount(payment.Amount), p.format(payment.CreatedAt, dateLayout), payment.Mode)
	if payment.TransactionID != "" {
		fmt.Fprintf(&b, " (Transaction ID: %s)", payment.TransactionID)
	}
	fmt.Fprintf(&b, " against Registration No. %s", payment.RegistrationNo)
	return b.String()
}

// FormatAmount 金额加货币前缀
func FormatAmount(amount string) string {
	return "Rs. " + strings.TrimSpace(amount)
}

func (p *Presenter) format(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(p.loc).Format(layout)
}
