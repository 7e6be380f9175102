// Package eventgen builds eventlogs byte by byte for tests and examples.
package eventgen

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/adamse/ghc-eventlog/event"
)

// Type is an event type declaration written to the header.
type Type struct {
	Tag         event.Tag
	Size        event.Size
	Description string
	Ext         []byte
}

// variable lists the known tags whose payload ends in a text field.
var variable = map[event.Tag]bool{
	event.TagUserMsg:       true,
	event.TagUserMarker:    true,
	event.TagThreadLabel:   true,
	event.TagRtsIdentifier: true,
	event.TagProgramArgs:   true,
	event.TagProgramEnv:    true,
}

// Types returns a declaration for every known tag, sized the way the runtime
// declares them.
func Types() []Type {
	var out []Type
	for _, tag := range event.Tags() {
		out = append(out, TypeOf(tag))
	}
	return out
}

// TypeOf returns the declaration of a known tag.
func TypeOf(tag event.Tag) Type {
	size := event.Size(tag.MinSize())
	if variable[tag] {
		size = event.Variable
	}
	return Type{Tag: tag, Size: size, Description: tag.Name()}
}

// Builder writes an eventlog. The header is written by New, records are
// appended by Record and its helpers and End writes the terminator.
//
// Well formed parts of the log are written with an Encoder. Anything
// the Encoder would reject, such as extension blobs, duplicate declarations or
// records disagreeing with the header, is written byte by byte instead.
type Builder struct {
	buf     bytes.Buffer
	enc     *Encoder
	sizes   map[event.Tag]event.Size
	lastTS  uint64
	counted int
}

// New returns a Builder with a header declaring types.
func New(types ...Type) *Builder {
	b := &Builder{sizes: make(map[event.Tag]event.Size)}

	ets := make([]event.EventType, 0, len(types))
	plain := true
	for _, t := range types {
		ets = append(ets, event.EventType{Tag: t.Tag, Size: t.Size, Description: t.Description})
		plain = plain && len(t.Ext) == 0
	}
	if enc := NewEncoder(&b.buf); plain && enc.WriteHeader(ets...) == nil {
		for _, t := range types {
			b.sizes[t.Tag] = t.Size
		}
		b.enc = enc
		return b
	}

	b.buf.Reset()
	b.buf.WriteString("hdrb")
	b.buf.WriteString("hetb")
	for _, t := range types {
		b.sizes[t.Tag] = t.Size
		b.buf.WriteString("etb\x00")
		b.put(uint16(t.Tag), int16(t.Size), uint32(len(t.Description)), t.Description)
		b.put(uint32(len(t.Ext)), t.Ext)
		b.buf.WriteString("ete\x00")
	}
	b.buf.WriteString("hete")
	b.buf.WriteString("hdre")
	b.buf.WriteString("datb")
	return b
}

// Record appends a record. Fields are encoded big-endian in order, see
// Fields. A tag declared Variable gets a length prefix, any other tag is
// written as given, so records that disagree with the header can be built.
func (b *Builder) Record(tag event.Tag, ts uint64, fields ...interface{}) *Builder {
	data := Fields(fields...)
	if !b.emit(tag, ts, data) {
		b.put(uint16(tag), ts)
		if b.sizes[tag] == event.Variable {
			b.put(uint16(len(data)))
		}
		b.buf.Write(data)
	}
	b.lastTS = ts
	b.counted += RecordSize(len(data))
	return b
}

// emit writes the record with the Encoder if it agrees with the header.
func (b *Builder) emit(tag event.Tag, ts uint64, data []byte) bool {
	size, ok := b.sizes[tag]
	if b.enc == nil || !ok {
		return false
	}
	if n, fixed := size.Fixed(); (fixed && n != len(data)) || (!fixed && len(data) > 0xffff) {
		return false
	}
	return b.enc.Emit(tag, ts, data) == nil
}

// BlockMarker appends a block marker record.
func (b *Builder) BlockMarker(ts uint64, size uint32, end uint64, capno event.CapNo) *Builder {
	return b.Record(event.TagBlockMarker, ts, size, end, capno)
}

// Block appends a block marker for capno followed by the records fn appends.
// The size of the marker is the sum of RecordSize over those records and its
// end time is the timestamp of the last one.
func (b *Builder) Block(ts uint64, capno event.CapNo, fn func(b *Builder)) *Builder {
	b.BlockMarker(ts, 0, 0, capno)
	sizeAt := b.buf.Len() - 14
	start := b.counted
	fn(b)

	out := b.buf.Bytes()
	binary.BigEndian.PutUint32(out[sizeAt:], uint32(b.counted-start))
	binary.BigEndian.PutUint64(out[sizeAt+4:], b.lastTS)
	return b
}

// Raw appends bytes as is.
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf.Write(p)
	return b
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Bytes returns a copy of the bytes written so far, without a terminator.
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// End appends the terminating tag and returns a copy of the log.
func (b *Builder) End() []byte {
	if b.enc == nil || b.enc.Close() != nil {
		b.put(uint16(event.TagEnd))
	}
	return b.Bytes()
}

func (b *Builder) put(fields ...interface{}) {
	b.buf.Write(Fields(fields...))
}

// Fields encodes values big-endian in order. It panics on a type it can not
// encode.
func Fields(values ...interface{}) []byte {
	var out []byte
	for _, v := range values {
		switch v := v.(type) {
		case uint16:
			out = binary.BigEndian.AppendUint16(out, v)
		case int16:
			out = binary.BigEndian.AppendUint16(out, uint16(v))
		case uint32:
			out = binary.BigEndian.AppendUint32(out, v)
		case uint64:
			out = binary.BigEndian.AppendUint64(out, v)
		case event.CapNo:
			out = binary.BigEndian.AppendUint16(out, uint16(v))
		case event.StopStatus:
			out = binary.BigEndian.AppendUint16(out, uint16(v))
		case event.ThreadID:
			out = binary.BigEndian.AppendUint32(out, uint32(v))
		case event.TaskID:
			out = binary.BigEndian.AppendUint64(out, uint64(v))
		case []byte:
			out = append(out, v...)
		case string:
			out = append(out, v...)
		default:
			panic(fmt.Sprintf(`eventgen: can not encode %T`, v))
		}
	}
	return out
}

// RecordSize returns the number of bytes a record with the given payload
// length counts against a block span. The length prefix of variable sized
// records is not counted.
func RecordSize(payload int) int {
	return 2 + 8 + payload
}
