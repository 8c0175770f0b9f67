// Package store owns the durable invoice collection: one storage slot holds
// the whole list as a JSON array, most recent first.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/aakashfurniture/invoicing/internal/logger"
	"github.com/aakashfurniture/invoicing/internal/models"
	"github.com/aakashfurniture/invoicing/internal/storage"
)

// slotKey is the single slot carrying the serialized invoice array.
const slotKey = "aakash_furniture_invoices"

// numberPrefix is the seller prefix of human-facing invoice numbers.
const numberPrefix = "AF"

// Store reads and writes the invoice collection through a storage.Medium.
// Construct one per session and pass it by reference; there is no package
// level state.
type Store struct {
	medium storage.Medium
	log    zerolog.Logger
	now    func() time.Time
}

// New returns a Store over the given medium.
func New(m storage.Medium) *Store {
	return &Store{
		medium: m,
		log:    logger.WithComponent("store"),
		now:    time.Now,
	}
}

// NewID produces an identifier with a time-based prefix and a random tail.
// Uniqueness is probabilistic; collisions are not checked.
func (s *Store) NewID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), ulid.DefaultEntropy()).String()
}

// NextInvoiceNumber derives the next human-facing number from the current
// stored count: AF-<two-digit year>-<count+1 zero-padded to three digits>.
// The sequence is a function of the collection length at call time, so a
// number can be issued again after deletions.
func (s *Store) NextInvoiceNumber() string {
	count := len(s.List()) + 1
	return fmt.Sprintf("%s-%s-%03d", numberPrefix, s.now().Format("06"), count)
}

// List returns the full stored collection. An absent slot yields an empty
// list, and so does unreadable or corrupt data: read failures are logged
// and swallowed, never surfaced to the caller.
func (s *Store) List() []models.Invoice {
	data, ok, err := s.medium.Get(slotKey)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load invoices")
		return []models.Invoice{}
	}
	if !ok {
		return []models.Invoice{}
	}
	var invoices []models.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		s.log.Error().Err(err).Msg("stored invoice data is corrupt, starting empty")
		return []models.Invoice{}
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices
}

// Get returns the invoice with the given id from the stored collection.
func (s *Store) Get(id string) (models.Invoice, bool) {
	for _, inv := range s.List() {
		if inv.ID == id {
			return inv, true
		}
	}
	return models.Invoice{}, false
}

// Save writes the invoice into the collection: an existing document with the
// same id is replaced in place, a new one is inserted at the front. The
// whole collection is written back in a single medium call; write failures
// propagate.
func (s *Store) Save(inv models.Invoice) error {
	invoices := s.List()
	replaced := false
	for i := range invoices {
		if invoices[i].ID == inv.ID {
			invoices[i] = inv
			replaced = true
			break
		}
	}
	if !replaced {
		invoices = append([]models.Invoice{inv}, invoices...)
	}
	return s.write(invoices)
}

// Delete removes the invoice with the given id. Deleting an absent id is a
// no-op, not an error.
func (s *Store) Delete(id string) error {
	invoices := s.List()
	kept := invoices[:0]
	for _, inv := range invoices {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	return s.write(kept)
}

// CreateEmpty builds a fresh unsaved invoice: new id and number, both dates
// set to today, status Pending, no items, zero totals.
func (s *Store) CreateEmpty() models.Invoice {
	today := s.now().Format("2006-01-02")
	return models.Invoice{
		ID:            s.NewID(),
		InvoiceNumber: s.NextInvoiceNumber(),
		Date:          today,
		DueDate:       today,
		Status:        models.StatusPending,
		Items:         []models.InvoiceItem{},
	}
}

func (s *Store) write(invoices []models.Invoice) error {
	data, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("encode invoices: %w", err)
	}
	if err := s.medium.Set(slotKey, data); err != nil {
		return fmt.Errorf("persist invoices: %w", err)
	}
	return nil
}
