// Package compute holds the pure monetary derivations: line amounts,
// document totals and the dashboard aggregates. Nothing here touches
// storage or does any rounding; stored values keep full float precision and
// two-decimal rendering is a display concern (see internal/money).
package compute

import "github.com/aakashfurniture/invoicing/internal/models"

// ItemAmount computes the GST-inclusive amount of one line:
// quantity*rate plus quantity*rate*gstRate/100.
//
// Negative quantities or rates are not rejected here; whatever the caller
// feeds in flows through unchanged. Boundary validation, if any, belongs to
// the form layer.
func ItemAmount(quantity, rate, gstRate float64) float64 {
	base := quantity * rate
	return base + base*gstRate/100
}

// Totals are the three document-level monetary fields of an invoice.
type Totals struct {
	Subtotal   float64
	TaxTotal   float64
	GrandTotal float64
}

// InvoiceTotals reduces an item list to its pre-tax subtotal, aggregated GST
// and grand total. An empty (or nil) list yields all zeros.
func InvoiceTotals(items []models.InvoiceItem) Totals {
	var t Totals
	for _, it := range items {
		base := it.Quantity * it.Rate
		t.Subtotal += base
		t.TaxTotal += base * it.GSTRate / 100
	}
	t.GrandTotal = t.Subtotal + t.TaxTotal
	return t
}

// Recompute is the single entry point that restores the derived-field
// invariants of an invoice: every item amount is rewritten from its current
// quantity/rate/gstRate, then the document totals are rewritten from the
// item list. Call it after any mutation to Items, including add and remove.
func Recompute(inv *models.Invoice) {
	for i := range inv.Items {
		it := &inv.Items[i]
		it.Amount = ItemAmount(it.Quantity, it.Rate, it.GSTRate)
	}
	t := InvoiceTotals(inv.Items)
	inv.Subtotal = t.Subtotal
	inv.TaxTotal = t.TaxTotal
	inv.GrandTotal = t.GrandTotal
}
