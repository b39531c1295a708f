package pipeline

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"orders/internal/core/domain/model/order"
)

// Plain-text payloads: the triggering contract is what matters here, the
// visual typesetting of invoices and delivery notes belongs to the document
// rendering collaborator.

type documentLine struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type documentData struct {
	Number       string
	IssuedAt     string
	OrderNumber  string
	CustomerName string
	Address      order.Address
	Lines        []documentLine
	Subtotal     string
	Shipping     string
	Tax          string
	Discount     string
	Total        string
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`INVOICE {{.Number}}
Issued: {{.IssuedAt}}
Order: {{.OrderNumber}}
Billed to: {{.CustomerName}}
{{.Address.Line1}}{{if .Address.Line2}}
{{.Address.Line2}}{{end}}
{{.Address.PostalCode}} {{.Address.City}}, {{.Address.Country}}

Items:
{{range .Lines}}  {{.Quantity}} x {{.Name}} ({{.SKU}}) @ {{.UnitPrice}} = {{.LineTotal}}
{{end}}
Subtotal: {{.Subtotal}}
Shipping: {{.Shipping}}
Tax:      {{.Tax}}
Discount: {{.Discount}}
Total:    {{.Total}}
`))

var deliveryNoteTemplate = template.Must(template.New("delivery_note").Parse(`DELIVERY NOTE {{.Number}}
Issued: {{.IssuedAt}}
Order: {{.OrderNumber}}
Ship to: {{.CustomerName}}
{{.Address.Line1}}{{if .Address.Line2}}
{{.Address.Line2}}{{end}}
{{.Address.PostalCode}} {{.Address.City}}, {{.Address.Country}}

Contents:
{{range .Lines}}  {{.Quantity}} x {{.Name}} ({{.SKU}})
{{end}}`))

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func documentDataFor(o *order.Order, number string, issuedAt time.Time, address order.Address) documentData {
	items := o.Items()
	lines := make([]documentLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, documentLine{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: formatCents(item.UnitPriceCents),
			LineTotal: formatCents(item.UnitPriceCents * int64(item.Quantity)),
		})
	}

	totals := o.Totals()
	return documentData{
		Number:       number,
		IssuedAt:     issuedAt.Format("2006-01-02"),
		OrderNumber:  o.Number(),
		CustomerName: o.Customer().Name,
		Address:      address,
		Lines:        lines,
		Subtotal:     formatCents(totals.SubtotalCents),
		Shipping:     formatCents(totals.ShippingCents),
		Tax:          formatCents(totals.TaxCents),
		Discount:     formatCents(totals.DiscountCents),
		Total:        formatCents(totals.TotalCents),
	}
}

func renderInvoice(o *order.Order, number string, issuedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, documentDataFor(o, number, issuedAt, o.BillingAddress())); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", number, err)
	}
	return buf.Bytes(), nil
}

func renderDeliveryNote(o *order.Order, number string, issuedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := deliveryNoteTemplate.Execute(&buf, documentDataFor(o, number, issuedAt, o.ShippingAddress())); err != nil {
		return nil, fmt.Errorf("render delivery note %s: %w", number, err)
	}
	return buf.Bytes(), nil
}
