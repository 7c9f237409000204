// Package export defines the canonical cookie record model, aggregates
// records from every source, and serializes the result as CSV.
package export

import "context"

// Record is one recovered cookie, self-contained and valid independently of
// the store that produced it.
type Record struct {
	// Source tags the browser/store of origin, e.g. "Chrome" or "Safari".
	Source string
	Domain string
	Name   string
	// Value is empty when decryption failed; the failure is recorded by the
	// source, never fatal.
	Value string
	Path  string
	// Expires is a resolved wall-clock string, or "Session" / "Unknown".
	Expires  string
	Secure   bool
	HTTPOnly bool
	// SameSite is 0 for stores lacking the attribute.
	SameSite int
}

// Source yields the records of one browser store. A Source that cannot read
// its store returns an error and contributes nothing; it never aborts the run.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]Record, error)
}
