package main

import (
	"net/http"

	"github.com/aakashfurniture/invoicing/internal/config"
	"github.com/aakashfurniture/invoicing/internal/handlers"
	"github.com/aakashfurniture/invoicing/internal/pdf"
	"github.com/aakashfurniture/invoicing/internal/session"
	"github.com/aakashfurniture/invoicing/internal/store"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
}

// NewApp wires the controller, store and export surface into the router.
func NewApp(ctrl *session.Controller, st *store.Store, biz config.Business) *App {
	app := &App{mux: http.NewServeMux()}
	ih := handlers.NewInvoiceHandler(ctrl, st, pdf.NewExporter(biz), biz)

	app.mux.HandleFunc("GET /{$}", ih.Dashboard)
	app.mux.HandleFunc("GET /invoices/new", ih.New)
	app.mux.HandleFunc("POST /invoices", ih.Save)
	app.mux.HandleFunc("POST /invoices/cancel", ih.Cancel)
	app.mux.HandleFunc("GET /invoices/{id}", ih.Show)
	app.mux.HandleFunc("GET /invoices/{id}/edit", ih.Edit)
	app.mux.HandleFunc("POST /invoices/{id}", ih.Save)
	app.mux.HandleFunc("POST /invoices/{id}/delete", ih.Delete)
	app.mux.HandleFunc("GET /invoices/{id}/pdf", ih.PDF)
	app.mux.HandleFunc("GET /invoices/{id}/share", ih.Share)

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}
