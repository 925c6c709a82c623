// Package documents renders read-side views of the bill aggregate. It never
// computes or persists billing state.
package documents

import (
	"html/template"
	"io"

	"hospital-management-backend/internal/models"
)

type ReceiptData struct {
	Hospital string
	Bill     *models.Bill
	Patient  *models.Patient
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{.Bill.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
.totals td { font-weight: bold; }
.status { text-transform: uppercase; }
</style>
</head>
<body>
<h1>{{.Hospital}}</h1>
<h2>Invoice / Receipt</h2>
<p>
Bill: {{.Bill.ID}}<br>
Patient: {{.Patient.FirstName}} {{.Patient.LastName}} ({{.Patient.MRN}})<br>
Date: {{.Bill.CreatedAt.Format "2006-01-02"}}<br>
Status: <span class="status">{{.Bill.Status}}</span>
</p>

<table>
<tr><th>Item</th><th>Description</th><th>Qty</th><th>Unit price</th><th>Total</th></tr>
{{range .Bill.Items}}
<tr><td>{{.ItemType}}</td><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.TotalPrice}}</td></tr>
{{end}}
<tr class="totals"><td colspan="4">Total</td><td>{{.Bill.TotalAmount}}</td></tr>
<tr class="totals"><td colspan="4">Paid</td><td>{{.Bill.PaidAmount}}</td></tr>
<tr class="totals"><td colspan="4">Balance due</td><td>{{.Bill.RemainingBalance}}</td></tr>
</table>

{{if .Bill.Payments}}
<h3>Payments</h3>
<table>
<tr><th>Date</th><th>Method</th><th>Amount</th></tr>
{{range .Bill.Payments}}
<tr><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td><td>{{.Method}}</td><td>{{.Amount}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Bill.Notes}}<p>Notes: {{.Bill.Notes}}</p>{{end}}
</body>
</html>
`))

// RenderReceipt writes the HTML invoice/receipt for a bill aggregate.
func RenderReceipt(w io.Writer, data ReceiptData) error {
	if data.Hospital == "" {
		data.Hospital = "General Hospital"
	}
	return receiptTmpl.Execute(w, data)
}
