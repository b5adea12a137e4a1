package view

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"
)

// 打印只包含有效记录表，不包含表单和作废表
var activeTemplate = template.Must(template.New("active").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 12px; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #444; padding: 6px; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
</style>
</head>
<body>
<h3>{{.Title}}</h3>
<table id="active-payments">
<thead><tr><th>S.No</th><th>Registration Details</th><th>Payment Details</th></tr></thead>
<tbody>
{{- if .Table.Empty}}
<tr><td colspan="3">{{.EmptyMessage}}</td></tr>
{{- else}}{{range .Table.Rows}}
<tr><td>{{.SNo}}</td><td>{{.RegistrationDetails}}</td><td>{{.PaymentDetails}}</td></tr>
{{- end}}{{end}}
</tbody>
</table>
</body>
</html>
`))

// RenderActiveHTML 输出有效记录表的打印页
func RenderActiveHTML(w io.Writer, title string, table ActiveTable) error {
	return activeTemplate.Execute(w, struct {
		Title        string
		Table        ActiveTable
		EmptyMessage string
	}{
		Title:        title,
		Table:        table,
		EmptyMessage: EmptyMessage,
	})
}

// RenderActiveText 以终端表格输出有效记录
func RenderActiveText(w io.Writer, table ActiveTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "S.No\tRegistration Details\tPayment Details\tActions")
	if table.Empty() {
		fmt.Fprintln(tw, EmptyMessage)
		return tw.Flush()
	}
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.SNo, row.RegistrationDetails, row.PaymentDetails, joinActions(row.Actions))
	}
	return tw.Flush()
}

// RenderCancelledText 以终端表格输出作废记录
func RenderCancelledText(w io.Writer, table CancelledTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Registration No\tAmount\tMode\tDate\tStatus\tActions")
	if table.Empty() {
		fmt.Fprintln(tw, EmptyMessage)
		return tw.Flush()
	}
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.RegistrationNo, row.Amount, row.Mode, row.DateTime, row.Status, joinActions(row.Actions))
	}
	return tw.Flush()
}

func joinActions(actions []Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return strings.Join(names, "/")
}
