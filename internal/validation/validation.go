// Package validation carries the save-gate rules as structured outcomes
// instead of panics or dialogs: a save either passes or comes back with a
// field-keyed list of violations.
package validation

import (
	"strings"

	"github.com/aakashfurniture/invoicing/internal/models"
)

// Violations maps a field path to a short machine-readable reason.
type Violations map[string]string

// Empty reports whether the check passed.
func (v Violations) Empty() bool { return len(v) == 0 }

// Required flags the field when value is blank.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// NotEmpty flags the field when the list has no entries.
func NotEmpty(field string, n int, v Violations) {
	if n == 0 {
		v[field] = "must_not_be_empty"
	}
}

// Invoice runs the save gate: a persistable invoice needs a customer name
// and at least one item. Quantity and rate signs are deliberately not
// checked here; the engine accepts whatever the caller enters.
func Invoice(inv models.Invoice) Violations {
	v := Violations{}
	Required("customer.name", inv.Customer.Name, v)
	NotEmpty("items", len(inv.Items), v)
	if inv.Status != "" && !inv.Status.Valid() {
		v["status"] = "unknown_status"
	}
	return v
}
