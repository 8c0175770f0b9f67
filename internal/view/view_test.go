package view

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aakashfurniture/invoicing/internal/compute"
	"github.com/aakashfurniture/invoicing/internal/config"
	"github.com/aakashfurniture/invoicing/internal/models"
)

func TestRenderDashboard(t *testing.T) {
	w := httptest.NewRecorder()
	err := Render(w, "dashboard.html", map[string]any{
		"Business": config.Load().Business,
		"Invoices": []models.Invoice{
			{
				ID:            "abc",
				InvoiceNumber: "AF-24-001",
				Date:          "2024-03-15",
				Status:        models.StatusPaid,
				Customer:      models.Customer{Name: "Rahul Sharma"},
				GrandTotal:    236,
			},
		},
		"Stats": compute.DashboardStats{TotalRevenue: 236, InvoiceCount: 1},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := w.Body.String()
	for _, want := range []string{"AF-24-001", "Rahul Sharma", "₹236.00", "status-paid"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderForm(t *testing.T) {
	w := httptest.NewRecorder()
	inv := models.Invoice{
		ID:            "abc",
		InvoiceNumber: "AF-24-002",
		Status:        models.StatusPending,
		Items:         []models.InvoiceItem{{ID: "i1", Description: "Sofa", Quantity: 2, Rate: 100, GSTRate: 18}},
	}
	err := Render(w, "invoice_form.html", map[string]any{
		"Business":   config.Load().Business,
		"Invoice":    inv,
		"Editing":    true,
		"Violations": map[string]string{"customer.name": "required"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := w.Body.String()
	for _, want := range []string{"AF-24-002", "customer.name", "Sofa"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered form missing %q", want)
		}
	}
}
