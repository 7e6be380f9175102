package sched

import (
	"fmt"

	"github.com/google/btree"

	"github.com/adamse/ghc-eventlog/event"
)

// Entry is a single event with the capability it was attributed to. Cap is
// event.NoCap when the record was outside any block span.
type Entry struct {
	Cap   event.CapNo
	Event event.Event
}

// String implements fmt.Stringer.
func (e Entry) String() string {
	return fmt.Sprintf(`[%v] %v`, e.Cap, e.Event)
}

type bucket struct {
	ts      uint64
	entries []Entry
}

func newTree() *btree.BTreeG[*bucket] {
	return btree.NewG(degree, func(a, b *bucket) bool {
		return a.ts < b.ts
	})
}

// Trace is the result of an aggregation pass: every scheduling event keyed by
// timestamp. Timestamps ascend, events sharing a timestamp keep the order in
// which they were decoded.
type Trace struct {
	tree  *btree.BTreeG[*bucket]
	count int
}

// Len returns the number of distinct timestamps.
func (t *Trace) Len() int {
	return t.tree.Len()
}

// Count returns the number of events.
func (t *Trace) Count() int {
	return t.count
}

// Ascend calls fn for each timestamp in ascending order until fn returns
// false. The entries slice must not be modified.
func (t *Trace) Ascend(fn func(ts uint64, entries []Entry) bool) {
	t.tree.Ascend(func(b *bucket) bool {
		return fn(b.ts, b.entries)
	})
}

// Timestamps returns every timestamp in ascending order.
func (t *Trace) Timestamps() []uint64 {
	out := make([]uint64, 0, t.tree.Len())
	t.Ascend(func(ts uint64, _ []Entry) bool {
		out = append(out, ts)
		return true
	})
	return out
}

// At returns the events at ts, or nil if there are none.
func (t *Trace) At(ts uint64) []Entry {
	b, ok := t.tree.Get(&bucket{ts: ts})
	if !ok {
		return nil
	}
	return b.entries
}
