package compute

import "github.com/aakashfurniture/invoicing/internal/models"

// DashboardStats are the headline figures shown above the invoice table.
type DashboardStats struct {
	TotalRevenue  float64 // sum of grand totals over Paid invoices
	PendingAmount float64 // sum of grand totals over Pending and Overdue invoices
	InvoiceCount  int
}

// Stats aggregates the stored collection into the dashboard figures.
func Stats(invoices []models.Invoice) DashboardStats {
	s := DashboardStats{InvoiceCount: len(invoices)}
	for _, inv := range invoices {
		switch inv.Status {
		case models.StatusPaid:
			s.TotalRevenue += inv.GrandTotal
		case models.StatusPending, models.StatusOverdue:
			s.PendingAmount += inv.GrandTotal
		}
	}
	return s
}
