// Package pdf renders an invoice to a printable A4 document. It is the
// export collaborator of the core: the store and controller never depend on
// it, they only hand it a complete invoice.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mcfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/aakashfurniture/invoicing/internal/config"
	"github.com/aakashfurniture/invoicing/internal/models"
	"github.com/aakashfurniture/invoicing/internal/money"
)

// Exporter renders invoices for the configured seller.
type Exporter struct {
	biz config.Business
}

// NewExporter returns an Exporter for the given business identity.
func NewExporter(biz config.Business) *Exporter {
	return &Exporter{biz: biz}
}

// Export renders the invoice to PDF bytes.
func (e *Exporter) Export(inv models.Invoice) ([]byte, error) {
	cfg := mcfg.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Seller header
	m.AddRow(10,
		text.NewCol(8, e.biz.Name, props.Text{Size: 18, Style: fontstyle.Bold}),
		text.NewCol(4, "TAX INVOICE", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Top: 3}),
	)
	m.AddRow(16, col.New(12).Add(
		text.New(e.biz.Address, props.Text{Size: 9}),
		text.New(fmt.Sprintf("%s | %s", e.biz.Phone1, e.biz.Phone2), props.Text{Size: 9, Top: 4}),
		text.New(fmt.Sprintf("%s | GSTIN: %s", e.biz.Email, e.biz.GSTIN), props.Text{Size: 9, Top: 8}),
	))

	m.AddRow(2, line.NewCol(12))

	// Invoice meta and bill-to
	m.AddRow(24,
		col.New(6).Add(
			text.New("Invoice No: "+inv.InvoiceNumber, props.Text{Size: 10, Style: fontstyle.Bold}),
			text.New("Date: "+inv.Date, props.Text{Size: 9, Top: 5}),
			text.New("Due Date: "+inv.DueDate, props.Text{Size: 9, Top: 9}),
			text.New("Status: "+string(inv.Status), props.Text{Size: 9, Top: 13}),
		),
		col.New(6).Add(
			text.New("Bill To", props.Text{Size: 10, Style: fontstyle.Bold}),
			text.New(inv.Customer.Name, props.Text{Size: 9, Top: 5}),
			text.New(inv.Customer.Address, props.Text{Size: 9, Top: 9}),
			text.New(inv.Customer.Phone, props.Text{Size: 9, Top: 13}),
			text.New(inv.Customer.Email, props.Text{Size: 9, Top: 17}),
		),
	)

	// Item table
	m.AddRow(8,
		text.NewCol(5, "Description", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(1, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "GST %", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(1, line.NewCol(12))
	for _, it := range inv.Items {
		m.AddRow(7,
			text.NewCol(5, it.Description, props.Text{Size: 9}),
			text.NewCol(1, trimFloat(it.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money.Format(it.Rate), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, trimFloat(it.GSTRate), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money.Format(it.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(1, line.NewCol(12))

	// Totals
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, money.Format(inv.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "GST Total", props.Text{Size: 9}),
		text.NewCol(2, money.Format(inv.TaxTotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Grand Total", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, money.Format(inv.GrandTotal), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	if inv.Notes != "" {
		m.AddRow(12, col.New(12).Add(
			text.New("Notes", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(inv.Notes, props.Text{Size: 9, Top: 4}),
		))
	}

	m.AddRow(10, text.NewCol(12,
		fmt.Sprintf("Subject to %s jurisdiction. This is a computer generated invoice.", e.biz.Jurisdiction),
		props.Text{Size: 8, Align: align.Center, Top: 4},
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// Filename is the suggested download name for the exported document.
func Filename(inv models.Invoice) string {
	return fmt.Sprintf("Invoice_%s.pdf", inv.InvoiceNumber)
}

// trimFloat renders a number without trailing zero decimals (2 not 2.00,
// but 1.5 stays 1.5).
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
