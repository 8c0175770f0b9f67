package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aakashfurniture/invoicing/internal/compute"
	"github.com/aakashfurniture/invoicing/internal/config"
	"github.com/aakashfurniture/invoicing/internal/httpx"
	"github.com/aakashfurniture/invoicing/internal/logger"
	"github.com/aakashfurniture/invoicing/internal/models"
	"github.com/aakashfurniture/invoicing/internal/pdf"
	"github.com/aakashfurniture/invoicing/internal/session"
	"github.com/aakashfurniture/invoicing/internal/share"
	"github.com/aakashfurniture/invoicing/internal/store"
	"github.com/aakashfurniture/invoicing/internal/view"
)

// InvoiceHandler serves the invoice pages and the matching JSON API.
// HTML and JSON share the same code paths; the Accept header picks the
// representation.
type InvoiceHandler struct {
	Ctrl     *session.Controller
	Store    *store.Store
	Exporter *pdf.Exporter
	Biz      config.Business
	log      zerolog.Logger
}

// NewInvoiceHandler wires the handler to its collaborators.
func NewInvoiceHandler(ctrl *session.Controller, st *store.Store, exp *pdf.Exporter, biz config.Business) *InvoiceHandler {
	return &InvoiceHandler{
		Ctrl:     ctrl,
		Store:    st,
		Exporter: exp,
		Biz:      biz,
		log:      logger.WithComponent("handlers"),
	}
}

// Dashboard: GET / – list with headline stats, HTML or JSON.
func (h *InvoiceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Ctrl.Back()
	h.Ctrl.Refresh()
	invoices := h.Ctrl.Invoices()
	stats := compute.Stats(invoices)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"items":         invoices,
			"total":         stats.InvoiceCount,
			"totalRevenue":  stats.TotalRevenue,
			"pendingAmount": stats.PendingAmount,
		})
		return
	}
	if err := view.Render(w, "dashboard.html", map[string]any{
		"Business": h.Biz,
		"Invoices": invoices,
		"Stats":    stats,
	}); err != nil {
		h.renderError(w, err)
	}
}

// New: GET /invoices/new – open the editor on a fresh invoice.
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	draft := h.Ctrl.StartCreate()
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, draft)
		return
	}
	h.renderForm(w, draft, false, nil)
}

// Edit: GET /invoices/{id}/edit – open the editor on a stored invoice.
func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	draft, err := h.Ctrl.StartEdit(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, draft)
		return
	}
	h.renderForm(w, draft, true, nil)
}

// Show: GET /invoices/{id} – preview with share targets.
func (h *InvoiceHandler) Show(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Ctrl.Open(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, inv)
		return
	}
	if err := view.Render(w, "invoice_view.html", map[string]any{
		"Business": h.Biz,
		"Invoice":  inv,
		"Mailto":   share.Mailto(inv, h.Biz),
		"WhatsApp": share.WhatsApp(inv, h.Biz),
	}); err != nil {
		h.renderError(w, err)
	}
}

// Save: POST /invoices and POST /invoices/{id} – persist the whole document.
func (h *InvoiceHandler) Save(w http.ResponseWriter, r *http.Request) {
	inv, err := h.readInvoice(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}
	violations, err := h.Ctrl.Save(inv)
	if err != nil {
		h.log.Error().Err(err).Str("invoice", inv.ID).Msg("save failed")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_invoice", nil)
		return
	}
	if !violations.Empty() {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
			return
		}
		h.renderForm(w, inv, r.PathValue("id") != "", violations)
		return
	}
	if httpx.WantsJSON(r) {
		saved, _ := h.Store.Get(inv.ID)
		httpx.JSON(w, http.StatusCreated, saved)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Cancel: POST /invoices/cancel – discard the draft without saving.
func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.Ctrl.Cancel()
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"state": string(h.Ctrl.State())})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete: POST /invoices/{id}/delete – requires confirmed=true.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	confirmed := r.FormValue("confirmed") == "true"
	done, err := h.Ctrl.Delete(id, confirmed)
	if err != nil {
		h.log.Error().Err(err).Str("invoice", id).Msg("delete failed")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": done})
		return
	}
	if !done {
		// Declined confirmation leaves everything as it was.
		http.Redirect(w, r, "/invoices/"+id, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// PDF: GET /invoices/{id}/pdf – printable document download.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.Store.Get(r.PathValue("id"))
	if !ok {
		h.notFound(w, r)
		return
	}
	data, err := h.Exporter.Export(inv)
	if err != nil {
		h.log.Error().Err(err).Str("invoice", inv.ID).Msg("pdf export failed")
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed",
			"could not render the invoice, try the print view instead")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(inv)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Share: GET /invoices/{id}/share – templated share targets as JSON.
func (h *InvoiceHandler) Share(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.Store.Get(r.PathValue("id"))
	if !ok {
		h.notFound(w, r)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"subject":  share.EmailSubject(inv, h.Biz),
		"body":     share.EmailBody(inv, h.Biz),
		"message":  share.Message(inv, h.Biz),
		"mailto":   share.Mailto(inv, h.Biz),
		"whatsapp": share.WhatsApp(inv, h.Biz),
	})
}

func (h *InvoiceHandler) renderForm(w http.ResponseWriter, inv models.Invoice, editing bool, violations map[string]string) {
	if err := view.Render(w, "invoice_form.html", map[string]any{
		"Business":   h.Biz,
		"Invoice":    inv,
		"Editing":    editing,
		"Violations": violations,
	}); err != nil {
		h.renderError(w, err)
	}
}

func (h *InvoiceHandler) renderError(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("template render failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (h *InvoiceHandler) notFound(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	http.NotFound(w, r)
}

// readInvoice decodes the whole document from a JSON body or the HTML form.
// A payload without an id gets fresh identity from the store, so API
// clients can create in one call without visiting /invoices/new first.
func (h *InvoiceHandler) readInvoice(r *http.Request) (models.Invoice, error) {
	var inv models.Invoice
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			return models.Invoice{}, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return models.Invoice{}, err
		}
		inv = h.invoiceFromForm(r)
	}
	if inv.ID == "" {
		blank := h.Store.CreateEmpty()
		inv.ID = blank.ID
		if inv.InvoiceNumber == "" {
			inv.InvoiceNumber = blank.InvoiceNumber
		}
		if inv.Date == "" {
			inv.Date = blank.Date
		}
		if inv.DueDate == "" {
			inv.DueDate = blank.DueDate
		}
	}
	if inv.Status == "" {
		inv.Status = models.StatusPending
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = h.Store.NewID()
		}
	}
	return inv, nil
}

// invoiceFromForm rebuilds the document from the editor form. Item rows
// arrive as parallel arrays in DOM order.
func (h *InvoiceHandler) invoiceFromForm(r *http.Request) models.Invoice {
	inv := models.Invoice{
		ID:            r.PostFormValue("id"),
		InvoiceNumber: r.PostFormValue("invoiceNumber"),
		Date:          r.PostFormValue("date"),
		DueDate:       r.PostFormValue("dueDate"),
		Status:        models.Status(r.PostFormValue("status")),
		Notes:         r.PostFormValue("notes"),
		Customer: models.Customer{
			Name:    r.PostFormValue("customer_name"),
			Phone:   r.PostFormValue("customer_phone"),
			Email:   r.PostFormValue("customer_email"),
			Address: r.PostFormValue("customer_address"),
		},
	}
	ids := r.PostForm["item_id"]
	descs := r.PostForm["item_description"]
	qtys := r.PostForm["item_quantity"]
	rates := r.PostForm["item_rate"]
	gsts := r.PostForm["item_gst"]
	for i := range descs {
		item := models.InvoiceItem{Description: descs[i]}
		if i < len(ids) {
			item.ID = ids[i]
		}
		if i < len(qtys) {
			item.Quantity = parseFloat(qtys[i])
		}
		if i < len(rates) {
			item.Rate = parseFloat(rates[i])
		}
		if i < len(gsts) {
			item.GSTRate = parseFloat(gsts[i])
		}
		inv.Items = append(inv.Items, item)
	}
	return inv
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
