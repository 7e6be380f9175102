// Package sched rebuilds a time ordered view of the scheduling activity in an
// eventlog.
//
// Each capability flushes its own buffer, so records reach the decoder grouped
// by capability rather than by time. An Aggregator collects the scheduling
// events of a full decode pass, tags each with the capability that emitted it
// and orders them by timestamp.
package sched

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/btree"
	"github.com/sirupsen/logrus"

	"github.com/adamse/ghc-eventlog/block"
	"github.com/adamse/ghc-eventlog/event"
)

var (
	// ErrUnknownTag is returned when the log contains a record whose layout is
	// not known. A schedule built without it could silently miss events.
	ErrUnknownTag = errors.New(`unknown event tag`)

	// ErrLabelEncoding is returned when a thread label is not valid utf8.
	ErrLabelEncoding = errors.New(`thread label was not valid utf8`)
)

// degree of the timestamp tree, small logs rarely exceed a few levels.
const degree = 32

// Aggregator is an event.Sink that collects scheduling events into a Trace.
// Records must be delivered through the Sink method so they are attributed to
// the correct capability.
type Aggregator struct {
	event.NopSink

	block *block.Tracker
	tree  *btree.BTreeG[*bucket]
	last  *bucket
	count int
}

// Option configures an Aggregator.
type Option func(a *Aggregator)

// WithLogger sets the logger of the block tracker owned by the Aggregator.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Aggregator) {
		a.block.SetLogger(l)
	}
}

// New returns an empty Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{tree: newTree()}
	a.block = block.NewTracker(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sink returns the sink a decoder should deliver records to. It tracks block
// spans before forwarding to the Aggregator.
func (a *Aggregator) Sink() event.Sink {
	return a.block
}

// Tracker returns the block tracker used to attribute records.
func (a *Aggregator) Tracker() *block.Tracker {
	return a.block
}

// Trace hands over the events collected so far and leaves the Aggregator
// empty. The block state is kept, so decoding may continue.
func (a *Aggregator) Trace() *Trace {
	t := &Trace{tree: a.tree, count: a.count}
	a.tree, a.last, a.count = newTree(), nil, 0
	return t
}

func (a *Aggregator) add(ts uint64, e event.Event) error {
	entry := Entry{Cap: a.block.Context(), Event: e}
	a.count++

	// Within a block timestamps are ascending, most inserts hit the last bucket.
	if a.last != nil && a.last.ts == ts {
		a.last.entries = append(a.last.entries, entry)
		return nil
	}
	if b, ok := a.tree.Get(&bucket{ts: ts}); ok {
		b.entries = append(b.entries, entry)
		a.last = b
		return nil
	}
	b := &bucket{ts: ts, entries: []Entry{entry}}
	a.tree.ReplaceOrInsert(b)
	a.last = b
	return nil
}

// Unknown implements event.Sink, it always fails.
func (a *Aggregator) Unknown(tag event.Tag, ts uint64, data []byte) error {
	return fmt.Errorf(`%w %d (%d bytes) at ts %d`, ErrUnknownTag, uint16(tag), len(data), ts)
}

// CreateThread implements event.Sink.
func (a *Aggregator) CreateThread(ts uint64, thread event.ThreadID) error {
	return a.add(ts, event.ThreadCreate{ID: thread})
}

// RunThread implements event.Sink.
func (a *Aggregator) RunThread(ts uint64, thread event.ThreadID) error {
	return a.add(ts, event.ThreadRun{ID: thread})
}

// StopThread implements event.Sink. A status outside the known range fails
// the pass.
func (a *Aggregator) StopThread(ts uint64, thread event.ThreadID, status uint16, blockedOn event.ThreadID) error {
	st, err := event.ParseStopStatus(status)
	if err != nil {
		return fmt.Errorf(`thread %d: %w`, thread, err)
	}
	return a.add(ts, event.ThreadStop{ID: thread, Status: st, BlockedOn: blockedOn})
}

// ThreadRunnable implements event.Sink.
func (a *Aggregator) ThreadRunnable(ts uint64, thread event.ThreadID) error {
	return a.add(ts, event.ThreadRunnable{ID: thread})
}

// MigrateThread implements event.Sink.
func (a *Aggregator) MigrateThread(ts uint64, thread event.ThreadID, capno event.CapNo) error {
	return a.add(ts, event.ThreadMigrate{ID: thread, Cap: capno})
}

// ThreadWakeup implements event.Sink.
func (a *Aggregator) ThreadWakeup(ts uint64, thread event.ThreadID, capno event.CapNo) error {
	return a.add(ts, event.ThreadWakeup{ID: thread, Cap: capno})
}

// ThreadLabel implements event.Sink.
func (a *Aggregator) ThreadLabel(ts uint64, thread event.ThreadID, label []byte) error {
	if !utf8.Valid(label) {
		return fmt.Errorf(`%w: thread %d`, ErrLabelEncoding, thread)
	}
	return a.add(ts, event.ThreadLabel{ID: thread, Label: string(label)})
}

// CapCreate implements event.Sink.
func (a *Aggregator) CapCreate(ts uint64, capno event.CapNo) error {
	return a.add(ts, event.CapCreate{Cap: capno})
}

// CapDelete implements event.Sink.
func (a *Aggregator) CapDelete(ts uint64, capno event.CapNo) error {
	return a.add(ts, event.CapDelete{Cap: capno})
}

// CapDisable implements event.Sink.
func (a *Aggregator) CapDisable(ts uint64, capno event.CapNo) error {
	return a.add(ts, event.CapDisable{Cap: capno})
}

// CapEnable implements event.Sink.
func (a *Aggregator) CapEnable(ts uint64, capno event.CapNo) error {
	return a.add(ts, event.CapEnable{Cap: capno})
}

// TaskCreate implements event.Sink.
func (a *Aggregator) TaskCreate(ts uint64, task event.TaskID, capno event.CapNo, kernelTID uint64) error {
	return a.add(ts, event.TaskCreate{TaskID: task, Cap: capno, KernelTID: kernelTID})
}

// TaskMigrate implements event.Sink.
func (a *Aggregator) TaskMigrate(ts uint64, task event.TaskID, from, to event.CapNo) error {
	return a.add(ts, event.TaskMigrate{TaskID: task, From: from, To: to})
}

// TaskDelete implements event.Sink.
func (a *Aggregator) TaskDelete(ts uint64, task event.TaskID) error {
	return a.add(ts, event.TaskDelete{TaskID: task})
}
