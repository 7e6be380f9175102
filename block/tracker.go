// Package block attributes records to the capability that emitted them.
//
// The runtime writes events into per capability buffers and flushes each
// buffer as a block introduced by a block marker record. The marker announces
// the cap and the number of bytes that follow, records inside the span carry
// no cap of their own. A Tracker sits between a decoder and any event.Sink,
// counting the bytes of every record against the current span.
package block

import (
	"github.com/sirupsen/logrus"

	"github.com/adamse/ghc-eventlog/event"
)

// recordOverhead is the size of the tag and timestamp preceding every payload.
const recordOverhead = 2 + 8

// Tracker is an event.Sink decorator that maintains which capability produced
// the record currently being delivered. Every method not overridden here is
// forwarded to the wrapped Sink unchanged.
type Tracker struct {
	event.Sink

	capno     event.CapNo
	remaining int64
	before    int64
	context   event.CapNo
	resyncs   int
	spans     int
	log       logrus.FieldLogger
}

// NewTracker returns a Tracker forwarding to s, with no active capability.
func NewTracker(s event.Sink) *Tracker {
	return &Tracker{
		Sink:    s,
		capno:   event.NoCap,
		context: event.NoCap,
		log:     logrus.StandardLogger(),
	}
}

// SetLogger sets the logger used to report spans that did not end exactly
// where the next block marker begins.
func (t *Tracker) SetLogger(l logrus.FieldLogger) {
	t.log = l
}

// Context returns the capability of the record currently being delivered, or
// event.NoCap if it is outside any span. It is evaluated before the bytes of
// the record are counted, so a block marker is reported under the span that
// was active when it started and the record after it under the new span.
func (t *Tracker) Context() event.CapNo {
	return t.context
}

// Current returns the capability of the active span, or event.NoCap once the
// span has been fully consumed.
func (t *Tracker) Current() event.CapNo {
	if t.remaining > 0 {
		return t.capno
	}
	return event.NoCap
}

// Remaining returns the number of bytes left in the current span. It may be
// negative if records overran the size the marker announced.
func (t *Tracker) Remaining() int64 {
	return t.remaining
}

// Spans returns the number of block markers seen.
func (t *Tracker) Spans() int {
	return t.spans
}

// Resyncs returns how many block markers arrived while the previous span had
// not been consumed exactly.
func (t *Tracker) Resyncs() int {
	return t.resyncs
}

// RecordObserved implements event.Sink.
func (t *Tracker) RecordObserved(tag event.Tag, ts uint64, size int) error {
	t.context = t.Current()
	t.before = t.remaining
	t.remaining -= int64(recordOverhead + size)
	return t.Sink.RecordObserved(tag, ts, size)
}

// BlockMarker implements event.Sink. The marker is forwarded before the new
// span starts. The counter is reset unconditionally, a marker is a point of
// resynchronization rather than a checked boundary.
func (t *Tracker) BlockMarker(ts uint64, blockSize uint32, endTime uint64, capno event.CapNo) error {
	if err := t.Sink.BlockMarker(ts, blockSize, endTime, capno); err != nil {
		return err
	}
	// The marker itself was already counted, check the span as it stood
	// before the marker.
	if t.spans > 0 && t.before != 0 {
		t.resyncs++
		t.log.WithFields(logrus.Fields{
			"cap":       uint16(t.capno),
			"remaining": t.before,
			"ts":        ts,
		}).Debug("block span did not end at the next block marker")
	}
	t.spans++
	t.capno = capno
	t.remaining = int64(blockSize)
	return nil
}
