// Package view renders the HTML pages. Templates live in templates/ and
// share a single layout; parsed templates are cached per page.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/aakashfurniture/invoicing/internal/models"
	"github.com/aakashfurniture/invoicing/internal/money"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

// detectBase finds the templates directory relative to the working
// directory, so both `go run ./cmd/server` from the repo root and a test
// run from a package directory resolve it.
func detectBase() {
	for _, c := range []string{"templates", "../templates", "../../templates"} {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the helper map available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"inr":   money.INR,
		"money": money.Format,
		"statusClass": func(s models.Status) string {
			switch s {
			case models.StatusPaid:
				return "status-paid"
			case models.StatusPending:
				return "status-pending"
			case models.StatusOverdue:
				return "status-overdue"
			default:
				return "status-draft"
			}
		},
		"statuses": func() []models.Status { return models.Statuses },
		"gstRates": func() []float64 { return models.GSTRates },
	}
}

func load(name string) (*template.Template, error) {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}
	once.Do(detectBase)
	t, err := template.New("layout.html").Funcs(Funcs()).ParseFiles(
		filepath.Join(baseDir, "layout.html"),
		filepath.Join(baseDir, name),
	)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	tplCache.Lock()
	tplCache.m[name] = t
	tplCache.Unlock()
	return t, nil
}

// Render executes the named page inside the layout. The page is rendered to
// a buffer first so a template error never writes a half page.
func Render(w http.ResponseWriter, name string, data any) error {
	t, err := load(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write(buf.Bytes())
	return err
}
