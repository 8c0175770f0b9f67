// Package session holds the single-user lifecycle controller: the current
// view state, the in-memory cache of invoices, and the selected document.
// Every mutation goes through the store and ends with a full re-read so the
// visible list always reflects persisted truth.
package session

import (
	"errors"
	"sync"

	"github.com/aakashfurniture/invoicing/internal/compute"
	"github.com/aakashfurniture/invoicing/internal/models"
	"github.com/aakashfurniture/invoicing/internal/store"
	"github.com/aakashfurniture/invoicing/internal/validation"
)

// State is the current view of the session.
type State string

const (
	StateList    State = "list"
	StateEditing State = "editing"
	StateViewing State = "viewing"
)

// ErrNotFound is returned when an id does not match any stored invoice.
var ErrNotFound = errors.New("invoice not found")

// Controller mediates between the UI actions and the store/engine. The app
// runs one controller per session; methods serialize on an internal mutex
// so the HTTP layer can call in from concurrent requests.
type Controller struct {
	mu       sync.Mutex
	store    *store.Store
	state    State
	cache    []models.Invoice
	selected *models.Invoice // set while viewing
	draft    *models.Invoice // set while editing
	editing  bool            // draft came from an existing invoice
}

// New returns a controller in the list state with a freshly loaded cache.
func New(st *store.Store) *Controller {
	c := &Controller{store: st, state: StateList}
	c.refresh()
	return c
}

// State returns the current view state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Invoices returns the cached collection, most recent first.
func (c *Controller) Invoices() []models.Invoice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Invoice, len(c.cache))
	copy(out, c.cache)
	return out
}

// Selected returns a copy of the invoice being viewed, if any.
func (c *Controller) Selected() (models.Invoice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return models.Invoice{}, false
	}
	return *c.selected, true
}

// Draft returns a copy of the invoice being edited, if any.
func (c *Controller) Draft() (models.Invoice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return models.Invoice{}, false
	}
	return *c.draft, true
}

// EditingExisting reports whether the current draft edits a stored invoice.
func (c *Controller) EditingExisting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft != nil && c.editing
}

// Refresh re-reads the full collection from the store.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()
}

func (c *Controller) refresh() {
	c.cache = c.store.List()
}

// StartCreate opens the editor on a fresh empty invoice.
func (c *Controller) StartCreate() models.Invoice {
	c.mu.Lock()
	defer c.mu.Unlock()
	inv := c.store.CreateEmpty()
	c.draft = &inv
	c.editing = false
	c.selected = nil
	c.state = StateEditing
	return inv
}

// StartEdit opens the editor on a stored invoice.
func (c *Controller) StartEdit(id string) (models.Invoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inv, ok := c.find(id)
	if !ok {
		return models.Invoice{}, ErrNotFound
	}
	c.draft = &inv
	c.editing = true
	c.selected = nil
	c.state = StateEditing
	return inv, nil
}

// Open switches to the viewing state for a stored invoice.
func (c *Controller) Open(id string) (models.Invoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inv, ok := c.find(id)
	if !ok {
		return models.Invoice{}, ErrNotFound
	}
	c.selected = &inv
	c.draft = nil
	c.state = StateViewing
	return inv, nil
}

// Back returns to the list, dropping any selection.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toList()
}

// Cancel discards the in-memory draft without persisting anything.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toList()
}

// Save validates and persists the invoice as a whole document, then returns
// to the list with a refreshed cache. On validation failure nothing is
// persisted and the violations are returned; the controller stays in the
// editing state so the user can correct and retry.
func (c *Controller) Save(inv models.Invoice) (validation.Violations, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v := validation.Invoice(inv); !v.Empty() {
		return v, nil
	}
	compute.Recompute(&inv)
	if err := c.store.Save(inv); err != nil {
		return nil, err
	}
	c.refresh()
	c.toList()
	return nil, nil
}

// Delete removes an invoice after explicit confirmation. An unconfirmed
// delete leaves every piece of state untouched. When the deleted invoice is
// the one currently selected or being edited, the session falls back to the
// list with the selection cleared. The removal reports success even when
// the id no longer exists.
func (c *Controller) Delete(id string, confirmed bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !confirmed {
		return false, nil
	}
	if err := c.store.Delete(id); err != nil {
		return false, err
	}
	c.refresh()
	if (c.selected != nil && c.selected.ID == id) || (c.draft != nil && c.draft.ID == id) {
		c.toList()
	}
	return true, nil
}

func (c *Controller) toList() {
	c.state = StateList
	c.selected = nil
	c.draft = nil
	c.editing = false
}

func (c *Controller) find(id string) (models.Invoice, bool) {
	for _, inv := range c.cache {
		if inv.ID == id {
			return inv, true
		}
	}
	// Cache may be stale relative to the store; fall back to a direct read.
	return c.store.Get(id)
}
