package eventgen

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamse/ghc-eventlog/encoding"
	"github.com/adamse/ghc-eventlog/event"
	"github.com/adamse/ghc-eventlog/printer"
)

func printed(t *testing.T, data []byte) []string {
	t.Helper()
	var buf bytes.Buffer
	p := printer.New(&buf)
	if err := encoding.NewDecoder(bytes.NewReader(data)).Decode(p.Sink()); err != nil {
		t.Fatalf(`exp nil err; got %v`, err)
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestEncoder(t *testing.T) {
	types := []event.EventType{
		{Tag: event.TagRunThread, Size: 4, Description: "Run thread"},
		{Tag: event.TagUserMsg, Size: event.Variable, Description: "Log message"},
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.WriteHeader(types...); err != nil {
		t.Fatalf(`exp nil err; got %v`, err)
	}
	if err := enc.Emit(event.TagRunThread, 7, Fields(event.ThreadID(3))); err != nil {
		t.Fatalf(`exp nil err; got %v`, err)
	}
	if err := enc.Emit(event.TagUserMsg, 8, []byte("hello")); err != nil {
		t.Fatalf(`exp nil err; got %v`, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf(`exp nil err; got %v`, err)
	}
	if exp, got := int64(buf.Len()), enc.Off(); exp != got {
		t.Fatalf(`exp offset %v; got %v`, exp, got)
	}
	if exp, got := 2, enc.Count(); exp != got {
		t.Fatalf(`exp count %v; got %v`, exp, got)
	}

	d := encoding.NewDecoder(bytes.NewReader(buf.Bytes()))
	reg, err := d.Registry()
	if err != nil {
		t.Fatalf(`exp nil err; got %v`, err)
	}
	if diff := cmp.Diff(types, reg.Types()); diff != "" {
		t.Fatalf("registry mismatch (-want +got):\n%s", diff)
	}

	exp := []string{`[7] thread run ti:3`, `[8] user msg "hello"`}
	if diff := cmp.Diff(exp, printed(t, buf.Bytes())); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoderMatchesBuilder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.WriteHeader(event.EventType{Tag: event.TagCapCreate, Size: 2, Description: event.TagCapCreate.Name()})
	enc.Emit(event.TagCapCreate, 1, []byte{0, 1})
	enc.Close()
	if err := enc.Err(); err != nil {
		t.Fatalf(`exp nil err; got %v`, err)
	}

	b := New(TypeOf(event.TagCapCreate))
	b.Record(event.TagCapCreate, 1, event.CapNo(1))
	if exp, got := b.End(), buf.Bytes(); !bytes.Equal(exp, got) {
		t.Fatalf("exp bytes\n%q\ngot\n%q", exp, got)
	}
}

func TestEncoderErrors(t *testing.T) {
	header := []event.EventType{
		{Tag: event.TagRunThread, Size: 4},
		{Tag: event.TagUserMsg, Size: event.Variable},
	}
	tests := []struct {
		name string
		fn   func(enc *Encoder) error
		exp  error
		msg  string
	}{
		{`EmitBeforeHeader`, func(enc *Encoder) error {
			return enc.Emit(event.TagRunThread, 0, make([]byte, 4))
		}, nil, `must follow the header`},
		{`CloseBeforeHeader`, func(enc *Encoder) error {
			return enc.Close()
		}, nil, `no data section`},
		{`HeaderTwice`, func(enc *Encoder) error {
			enc.WriteHeader(header...)
			return enc.WriteHeader(header...)
		}, nil, `already written`},
		{`DuplicateType`, func(enc *Encoder) error {
			return enc.WriteHeader(header[0], header[0])
		}, event.ErrDuplicate, ``},
		{`Unregistered`, func(enc *Encoder) error {
			enc.WriteHeader(header...)
			return enc.Emit(event.TagGCStart, 0, nil)
		}, encoding.ErrUnregistered, ``},
		{`FixedSize`, func(enc *Encoder) error {
			enc.WriteHeader(header...)
			return enc.Emit(event.TagRunThread, 0, make([]byte, 5))
		}, encoding.ErrEventSize, ``},
		{`VariableSize`, func(enc *Encoder) error {
			enc.WriteHeader(header...)
			return enc.Emit(event.TagUserMsg, 0, make([]byte, 0x10000))
		}, encoding.ErrEventSize, ``},
		{`EmitAfterClose`, func(enc *Encoder) error {
			enc.WriteHeader(header...)
			enc.Close()
			return enc.Emit(event.TagRunThread, 0, make([]byte, 4))
		}, nil, `must follow the header`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			enc := NewEncoder(io.Discard)
			err := test.fn(enc)
			if err == nil {
				t.Fatal(`exp non-nil err`)
			}
			if test.exp != nil && !errors.Is(err, test.exp) {
				t.Fatalf(`exp err %v; got %v`, test.exp, err)
			}
			if !strings.Contains(err.Error(), test.msg) {
				t.Fatalf(`exp err containing %q; got %v`, test.msg, err)
			}

			// all future calls should be same error
			for i := 0; i < 3; i++ {
				if got := enc.Emit(event.TagRunThread, 0, make([]byte, 4)); got != err {
					t.Fatalf(`exp err %v; got %v`, err, got)
				}
				if got := enc.Err(); got != err {
					t.Fatalf(`exp err %v; got %v`, err, got)
				}
			}

			enc.Reset(io.Discard)
			if err := enc.Err(); err != nil {
				t.Fatalf(`error should clear after Reset, but got: %v`, err)
			}
			if err := enc.WriteHeader(header...); err != nil {
				t.Fatalf(`exp nil err after Reset; got %v`, err)
			}
		})
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestEncoderShortWrite(t *testing.T) {
	enc := NewEncoder(shortWriter{})
	if err := enc.WriteHeader(); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf(`exp io.ErrShortWrite; got %v`, err)
	}
}
