// Package encoding implements a streaming Decoder for the GHC eventlog format.
// For a higher level interface see the parent eventlog package.
//
// Overview
//
// An eventlog is self describing. It begins with a header declaring every
// event type that may appear in the data section, each with a numeric tag and
// either a fixed payload size or a marker that records of that type carry
// their own 16 bit length. The data section that follows is a flat sequence of
// records, each a tag, a nanosecond timestamp, an optional length and the
// payload, terminated by the tag 0xffff.
//
//   EventLog :
//     "hdrb" "hetb" EventType* "hete" "hdre" "datb" Event* 0xffff
//
//   EventType :
//     "etb\0" tag:u16 size:i16 descr_len:u32 descr ext_len:u32 ext "ete\0"
//
//   Event :
//     tag:u16 timestamp:u64 [len:u16] payload
//
// All numbers are big-endian. A size of -1 declares a variable sized type.
//
// Records are not buffered, the Decoder calls one method of an event.Sink per
// record as soon as it is read. Every record is consumed using the size the
// header declared for its tag, whether or not its layout is known, so a sink
// that only understands a handful of tags never desynchronizes the stream.
package encoding

import (
	"errors"
	"fmt"

	"github.com/adamse/ghc-eventlog/event"
)

const (
	// Guards against a bad log file or decoder bug from causing oom
	maxMakeSize = 1e6
)

// Magic sequences framing the header and the data section.
var (
	magicHeaderBegin    = [4]byte{'h', 'd', 'r', 'b'}
	magicHeaderEnd      = [4]byte{'h', 'd', 'r', 'e'}
	magicTypesBegin     = [4]byte{'h', 'e', 't', 'b'}
	magicTypesEnd       = [4]byte{'h', 'e', 't', 'e'}
	magicEventTypeBegin = [4]byte{'e', 't', 'b', 0}
	magicEventTypeEnd   = [4]byte{'e', 't', 'e', 0}
	magicDataBegin      = [4]byte{'d', 'a', 't', 'b'}
)

var (
	// ErrMagic occurs when a framing marker does not match the expected one.
	ErrMagic = errors.New(`framing marker was malformed`)

	// ErrEventSize occurs when an event type declares a negative size other
	// than -1.
	ErrEventSize = errors.New(`event type size was malformed`)

	// ErrUnregistered occurs when a record uses a tag the header did not
	// declare.
	ErrUnregistered = errors.New(`event tag was not declared in the header`)

	// ErrShortPayload occurs when a record of a known tag is smaller than the
	// fields of that tag.
	ErrShortPayload = errors.New(`event payload was shorter than its fields`)

	// ErrUnsafeUsage occurs when Decode is called again while it is running.
	ErrUnsafeUsage = errors.New(`possible unsafe usage from multiple goroutines`)
)

// FormatError is returned for every failure while decoding, it records where
// in the input the failure happened. Err may be one of the sentinel errors in
// this package, io.ErrUnexpectedEOF, or an error returned by an event.Sink.
type FormatError struct {

	// Off is the offset of the first byte of the header entry or record that
	// failed, relative to the beginning of the input stream.
	Off int64

	// Tag is the tag of the record that failed, it is only set when HasTag is
	// true.
	Tag    event.Tag
	HasTag bool

	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.HasTag {
		return fmt.Sprintf(`eventlog: %v in %v at 0x%x`, e.Err, e.Tag, e.Off)
	}
	return fmt.Sprintf(`eventlog: %v at 0x%x`, e.Err, e.Off)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
