package eventgen

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/adamse/ghc-eventlog/encoding"
	"github.com/adamse/ghc-eventlog/event"
)

// Encoder writes an eventlog to an output stream.
//
// Logs produced by the Encoder are always lexically correct, logical
// consistency with runtime produced logs is the responsibility of the caller.
// It backs the Builder for everything a well formed log contains.
type Encoder struct {
	w     *offsetWriter
	err   error
	sizes map[event.Tag]event.Size
	count int
	state encoderState
}

// maxDescription matches the allocation guard of the decoder.
const maxDescription = 1e6

var (
	magicHeaderBegin    = [4]byte{'h', 'd', 'r', 'b'}
	magicHeaderEnd      = [4]byte{'h', 'd', 'r', 'e'}
	magicTypesBegin     = [4]byte{'h', 'e', 't', 'b'}
	magicTypesEnd       = [4]byte{'h', 'e', 't', 'e'}
	magicEventTypeBegin = [4]byte{'e', 't', 'b', 0}
	magicEventTypeEnd   = [4]byte{'e', 't', 'e', 0}
	magicDataBegin      = [4]byte{'d', 'a', 't', 'b'}
)

type encoderState int

const (
	stateHeader encoderState = iota
	stateData
	stateClosed
)

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: &offsetWriter{w: w}}
}

// Err returns the first error that occurred during encoding, once an error
// occurs all future calls to Err() will return the same value.
func (e *Encoder) Err() error {
	return e.err
}

// Reset the Encoder for writing a new log to w.
func (e *Encoder) Reset(w io.Writer) {
	e.err, e.w.off, e.w.w = nil, 0, w
	e.sizes, e.count, e.state = nil, 0, stateHeader
}

// Off returns the number of bytes written.
func (e *Encoder) Off() int64 {
	return e.w.Off()
}

// Count returns the number of records written.
func (e *Encoder) Count() int {
	return e.count
}

// WriteHeader writes the header declaring types followed by the start of the
// data section. It must be called once before Emit.
func (e *Encoder) WriteHeader(types ...event.EventType) error {
	if e.err != nil {
		return e.err
	}
	if e.state != stateHeader {
		return e.fail(errors.New(`header was already written`))
	}

	reg := event.NewRegistry()
	for _, et := range types {
		if err := reg.Add(et); err != nil {
			return e.fail(err)
		}
		if maxDescription < len(et.Description) {
			return e.fail(fmt.Errorf(
				"description size %v exceeds allocation limit(%v)", len(et.Description), maxDescription))
		}
	}

	w := &fieldWriter{w: e.w}
	w.magic(magicHeaderBegin)
	w.magic(magicTypesBegin)
	e.sizes = make(map[event.Tag]event.Size, len(types))
	for _, et := range types {
		e.sizes[et.Tag] = et.Size
		w.magic(magicEventTypeBegin)
		w.u16(uint16(et.Tag))
		w.u16(uint16(int16(et.Size)))
		w.u32(uint32(len(et.Description)))
		w.bytes([]byte(et.Description))
		w.u32(0)
		w.magic(magicEventTypeEnd)
	}
	w.magic(magicTypesEnd)
	w.magic(magicHeaderEnd)
	w.magic(magicDataBegin)
	if w.err != nil {
		return e.fail(w.err)
	}
	e.state = stateData
	return nil
}

// Emit writes a single record. The tag must have been declared in the header
// and, unless it is variable sized, the payload must have the declared size.
// If Emit returns a non-nil error then failure is permanent and all future
// calls will immediately return the same error.
func (e *Encoder) Emit(tag event.Tag, ts uint64, payload []byte) error {
	if e.err != nil {
		return e.err
	}
	if e.state != stateData {
		return e.fail(errors.New(`records must follow the header`))
	}

	size, ok := e.sizes[tag]
	if !ok {
		return e.fail(&encoding.FormatError{Off: e.Off(), Tag: tag, HasTag: true, Err: encoding.ErrUnregistered})
	}
	n, fixed := size.Fixed()
	switch {
	case fixed && n != len(payload):
		return e.fail(&encoding.FormatError{Off: e.Off(), Tag: tag, HasTag: true,
			Err: fmt.Errorf(`%w: declared %d bytes; got %d`, encoding.ErrEventSize, n, len(payload))})
	case !fixed && len(payload) > 0xffff:
		return e.fail(&encoding.FormatError{Off: e.Off(), Tag: tag, HasTag: true,
			Err: fmt.Errorf(`%w: %d bytes exceeds the length field`, encoding.ErrEventSize, len(payload))})
	}

	w := &fieldWriter{w: e.w}
	w.u16(uint16(tag))
	w.u64(ts)
	if !fixed {
		w.u16(uint16(len(payload)))
	}
	w.bytes(payload)
	if w.err != nil {
		return e.fail(w.err)
	}
	e.count++
	return nil
}

// Close writes the tag terminating the data section. It does not close the
// underlying writer.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if e.state != stateData {
		return e.fail(errors.New(`log has no data section to terminate`))
	}
	w := &fieldWriter{w: e.w}
	w.u16(uint16(event.TagEnd))
	if w.err != nil {
		return e.fail(w.err)
	}
	e.state = stateClosed
	return nil
}

func (e *Encoder) fail(err error) error {
	e.err = err
	return err
}

type offsetWriter struct {
	w   io.Writer
	off int64
}

func (w *offsetWriter) Off() int64 {
	return w.off
}

func (w *offsetWriter) Write(p []byte) (n int, err error) {
	n, err = w.w.Write(p)
	w.off += int64(n)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	return
}

// fieldWriter writes big-endian fields, after the first error every write is
// a no-op.
type fieldWriter struct {
	w   io.Writer
	err error
	num [8]byte
}

func (w *fieldWriter) bytes(p []byte) {
	if w.err == nil {
		_, w.err = w.w.Write(p)
	}
}

func (w *fieldWriter) magic(m [4]byte) { w.bytes(m[:]) }

func (w *fieldWriter) u16(v uint16) {
	binary.BigEndian.PutUint16(w.num[:2], v)
	w.bytes(w.num[:2])
}

func (w *fieldWriter) u32(v uint32) {
	binary.BigEndian.PutUint32(w.num[:4], v)
	w.bytes(w.num[:4])
}

func (w *fieldWriter) u64(v uint64) {
	binary.BigEndian.PutUint64(w.num[:8], v)
	w.bytes(w.num[:8])
}
