// Package storage provides the local key-value medium behind the invoice
// store: a single table of opaque slots, one of which carries the whole
// serialized invoice collection.
package storage

// Medium is the narrow persistence contract the store sits on. Get reports
// absence through its bool rather than an error so callers can treat a
// missing slot as "no data yet".
type Medium interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}
