// Package refheaders is a small reference container for the
// (name, value) pairs Callbacks.OnField hands the caller one at a
// time. It is not part of the parser itself — a host is free to
// collect fields into whatever structure it already owns — but is
// provided as a ready-made Callbacks.OnField target; nothing else in
// this module imports it. Grounded on the teacher's own
// internal/datastruct.KeyValue (itself backed by linear search rather
// than a map, since header-field counts are small enough that this
// outperforms map overhead).
package refheaders

import (
	"github.com/indigo-web/iter"
	"github.com/indigo-web/utils/strcomp"
)

// Pair is a single stored (name, value) entry.
type Pair struct {
	Name, Value string
}

// Headers accumulates header fields in wire order and exposes
// case-insensitive lookup plus ordered iteration.
type Headers struct {
	pairs      []Pair
	valuesBuff []string
}

// New returns an empty Headers, preallocated to hold n fields without
// reallocating — n would typically be config.Headers.MaxCount, or the
// count a prior message of the same kind actually carried.
func New(n int) *Headers {
	return &Headers{pairs: make([]Pair, 0, n)}
}

// Add appends a field. Fields with the same name (repeated header
// fields, legal per RFC 7230 §3.2.2) accumulate rather than overwrite.
func (h *Headers) Add(name, value string) {
	h.pairs = append(h.pairs, Pair{Name: name, Value: value})
}

// Value returns the first value stored under name, and whether one
// was found.
func (h *Headers) Value(name string) (string, bool) {
	for _, p := range h.pairs {
		if strcomp.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}

	return "", false
}

// ValueOr is Value with a fallback for the not-found case.
func (h *Headers) ValueOr(name, or string) string {
	if v, ok := h.Value(name); ok {
		return v
	}

	return or
}

// Values returns every value stored under name, in wire order.
//
// The returned slice is reused on the next call to Values; copy it if
// it must outlive that call.
func (h *Headers) Values(name string) []string {
	h.valuesBuff = h.valuesBuff[:0]

	for _, p := range h.pairs {
		if strcomp.EqualFold(p.Name, name) {
			h.valuesBuff = append(h.valuesBuff, p.Value)
		}
	}

	if len(h.valuesBuff) == 0 {
		return nil
	}

	return h.valuesBuff
}

// Has reports whether name was stored at least once.
func (h *Headers) Has(name string) bool {
	_, ok := h.Value(name)
	return ok
}

// Len returns the number of stored fields.
func (h *Headers) Len() int { return len(h.pairs) }

// Iter returns an iterator over the stored pairs in wire order.
func (h *Headers) Iter() iter.Iterator[Pair] {
	return iter.Slice(h.pairs)
}

// Clear empties the container for reuse across messages without
// releasing its backing array.
func (h *Headers) Clear() {
	h.pairs = h.pairs[:0]
}
