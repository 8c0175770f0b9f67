package models

// Status represents the workflow label of an invoice. Any status may be set
// at any time; there is no enforced transition graph.
type Status string

const (
	StatusDraft   Status = "Draft"
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
	StatusOverdue Status = "Overdue"
)

// Statuses lists every valid workflow label in display order.
var Statuses = []Status{StatusDraft, StatusPending, StatusPaid, StatusOverdue}

// Valid reports whether s is one of the known workflow labels.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// GSTRates is the fixed set of per-item GST percentages offered by the form.
var GSTRates = []float64{0, 5, 12, 18, 28}

// ValidGSTRate reports whether rate belongs to the allowed GST rate set.
func ValidGSTRate(rate float64) bool {
	for _, r := range GSTRates {
		if r == rate {
			return true
		}
	}
	return false
}

// Customer holds the buyer details printed on the invoice. Name is the only
// field required for a saveable invoice.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// InvoiceItem represents a single line of an invoice.
//
// Amount is derived from Quantity, Rate and GSTRate; it is never an
// independent input. Every mutation path refreshes it through
// compute.Recompute before the document is persisted.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	GSTRate     float64 `json:"gstRate"`
	Amount      float64 `json:"amount"`
}

// NewItem returns a blank line with the form defaults (quantity 1, GST 18%).
func NewItem(id string) InvoiceItem {
	return InvoiceItem{ID: id, Quantity: 1, GSTRate: 18}
}

// Invoice represents the whole persisted document.
//
// ID is the sole lookup and merge key; InvoiceNumber is the human-facing
// sequential code shown to the customer. Subtotal, TaxTotal and GrandTotal
// are fully determined by Items and recomputed on every change to the item
// list.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          string        `json:"date"`
	DueDate       string        `json:"dueDate"`
	Status        Status        `json:"status"`
	Customer      Customer      `json:"customer"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxTotal      float64       `json:"taxTotal"`
	GrandTotal    float64       `json:"grandTotal"`
	Notes         string        `json:"notes,omitempty"`
}

// Item returns a pointer to the line with the given id, or nil.
func (inv *Invoice) Item(id string) *InvoiceItem {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return &inv.Items[i]
		}
	}
	return nil
}
