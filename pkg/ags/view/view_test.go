package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namogange/pkg/ags"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func samplePayments() []ags.Payment {
	created := time.Date(2026, 10, 16, 4, 30, 0, 0, time.UTC) // 10:00 IST
	return []ags.Payment{
		{ID: 1, RegistrationNo: "AGS-2026-D1-001", PaymentFor: ags.ForSeminarOnly, SeminarDay: ags.Day1,
			Amount: "500", Mode: ags.ModeCash, Status: ags.StatusActive, CreatedAt: created},
		{ID: 2, RegistrationNo: "AGS-2026-D2-001", PaymentFor: ags.ForPaperPresentationOnly, SeminarDay: ags.Day2,
			Amount: "1200", Mode: ags.ModeCheque, Status: ags.StatusCancelled, CreatedAt: created},
		{ID: 3, RegistrationNo: "AGS-2026-ALL-001", PaymentFor: ags.ForPosterPresentation, SeminarDay: ags.AllDays,
			Amount: "900", Mode: ags.ModePaytm, TransactionID: "TXN12345", Status: ags.StatusActive, CreatedAt: created},
	}
}

func TestPresenter_Active(t *testing.T) {
	table := NewPresenter(ist).Active(samplePayments())

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 1, table.Rows[0].SNo)
	assert.Equal(t, 2, table.Rows[1].SNo)
	assert.Equal(t, uint64(3), table.Rows[1].PaymentID)

	assert.Equal(t, "AGS-2026-D1-001 | Seminar Only | For 1st Day", table.Rows[0].RegistrationDetails)
	assert.Equal(t,
		"Rs. 500 received on 16 Oct 2026 via Cash against Registration No. AGS-2026-D1-001",
		table.Rows[0].PaymentDetails)
	assert.Equal(t,
		"Rs. 900 received on 16 Oct 2026 via Paytm (Transaction ID: TXN12345) against Registration No. AGS-2026-ALL-001",
		table.Rows[1].PaymentDetails)
	assert.Equal(t, []Action{ActionEdit, ActionCancel, ActionDelete}, table.Rows[0].Actions)
}

func TestPresenter_Cancelled(t *testing.T) {
	table := NewPresenter(ist).Cancelled(samplePayments())

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "AGS-2026-D2-001", row.RegistrationNo)
	assert.Equal(t, "Rs. 1200", row.Amount)
	assert.Equal(t, "Cheque", row.Mode)
	assert.Equal(t, "16 Oct 2026 10:00 AM", row.DateTime)
	assert.Equal(t, "Cancelled", row.Status)
	assert.Equal(t, []Action{ActionDelete}, row.Actions)
}

func TestPresenter_EmptyPartitions(t *testing.T) {
	p := NewPresenter(nil)
	assert.True(t, p.Active(nil).Empty())
	assert.True(t, p.Cancelled([]ags.Payment{{ID: 1, Status: ags.StatusActive}}).Empty())
}

func TestPresenter_ZeroDate(t *testing.T) {
	details := NewPresenter(nil).PaymentDetails(ags.Payment{Amount: "10", Mode: ags.ModeCash, RegistrationNo: "R"})
	assert.Equal(t, "Rs. 10 received on - via Cash against Registration No. R", details)
}

func TestRenderActiveHTML(t *testing.T) {
	var buf bytes.Buffer
	table := NewPresenter(ist).Active(samplePayments())

	require.NoError(t, RenderActiveHTML(&buf, "AGS Payments", table))

	out := buf.String()
	assert.Contains(t, out, `<table id="active-payments">`)
	assert.Contains(t, out, "AGS-2026-D1-001 | Seminar Only | For 1st Day")
	assert.NotContains(t, out, "AGS-2026-D2-001", "cancelled payments are not printed")
	assert.NotContains(t, out, "<form")
}

func TestRenderActiveHTML_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderActiveHTML(&buf, "AGS Payments", ActiveTable{}))
	assert.Contains(t, buf.String(), `<td colspan="3">No payments found</td>`)
}

func TestRenderText(t *testing.T) {
	p := NewPresenter(ist)
	var buf bytes.Buffer

	require.NoError(t, RenderActiveText(&buf, p.Active(samplePayments())))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Edit/Cancel/Delete")

	buf.Reset()
	require.NoError(t, RenderCancelledText(&buf, p.Cancelled(nil)))
	assert.Contains(t, buf.String(), EmptyMessage)
}
