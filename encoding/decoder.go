package encoding

import (
	"bufio"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/adamse/ghc-eventlog/event"
)

// Decoder reads an eventlog from an input stream and delivers its records to
// an event.Sink.
type Decoder struct {
	err     error
	buf     *offsetReader
	reg     *event.Registry
	log     logrus.FieldLogger
	count   int
	running bool
}

// Option configures a Decoder.
type Option func(d *Decoder)

// WithLogger sets the logger used to report the decoded header and the end of
// the data section at debug level. The default is logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Decoder) {
		d.log = l
	}
}

// NewDecoder returns a new decoder that reads from r. If the given r is a
// bufio.Reader then the decoder will use it for buffering, otherwise creating
// a new bufio.Reader.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	buf, ok := r.(*bufio.Reader)
	if !ok {
		buf = bufio.NewReader(r)
	}
	d := &Decoder{buf: &offsetReader{Reader: buf}, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Reset the Decoder to read from r, if r is a bufio.Reader it will use it for
// buffering, otherwise resetting the existing bufio.Reader which may have been
// obtained from the caller of NewDecoder.
func (d *Decoder) Reset(r io.Reader) {
	buf, ok := r.(*bufio.Reader)
	if ok {
		d.buf.Reader = buf
	} else {
		d.buf.Reader.Reset(r)
	}
	d.err, d.reg, d.count, d.running, d.buf.off = nil, nil, 0, false, 0
}

// Err returns the first error that occurred during decoding. Reaching the end
// of the data section is not an error, Err returns nil in that case.
func (d *Decoder) Err() error {
	if d.err == io.EOF {
		return nil
	}
	return d.err
}

// More returns true when records may still be retrieved with Next, false
// otherwise. Once More returns false all future calls return false until Reset
// is called.
func (d *Decoder) More() bool {
	return d.err == nil
}

// Count returns the number of records decoded so far, the terminating tag is
// not counted.
func (d *Decoder) Count() int {
	return d.count
}

// Off returns the number of bytes consumed from the input stream.
func (d *Decoder) Off() int64 {
	return d.buf.Off()
}

// Registry returns the event types declared in the header of the log. You do
// not need to call this function before decoding records, it is done on the
// first call to Next or Decode if it was not called prior. Only the first call
// to Registry results in I/O to the underlying reader.
func (d *Decoder) Registry() (*event.Registry, error) {
	if d.reg == nil && d.err == nil {
		d.init()
	}
	if d.reg == nil {
		return nil, d.err
	}
	return d.reg, nil
}

// Decode reads every remaining record of the log and delivers it to s. It
// returns nil when the terminating tag was reached. Any error returned
// indicates permanent failure and all future calls return the same error until
// Reset.
func (d *Decoder) Decode(s event.Sink) error {
	if d.running {
		return ErrUnsafeUsage
	}
	d.running = true
	defer func() { d.running = false }()

	for {
		err := d.Next(s)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Next reads a single record and delivers it to s. It returns io.EOF once the
// terminating tag has been read, or a *FormatError if the record could not be
// decoded or s returned an error.
func (d *Decoder) Next(s event.Sink) error {
	if s == nil {
		return errors.New(`nil event.Sink given to Next`)
	}
	if d.reg == nil && d.err == nil {
		d.init()
	}
	if d.err != nil {
		// Once an error occurs the decoder may no longer be used.
		return d.err
	}
	if err := d.next(s); err != nil {
		d.err = err
		return err
	}
	d.count++
	return nil
}

// init will initialize the Decoder so it may begin receiving records by
// decoding the header.
func (d *Decoder) init() {
	reg, off, err := decodeHeader(d.buf)
	if err != nil {
		d.err = &FormatError{Off: off, Err: err}
		return
	}
	d.reg = reg
	d.log.WithFields(logrus.Fields{
		"types":  reg.Len(),
		"offset": d.buf.Off(),
	}).Debug("decoded eventlog header")
}

func (d *Decoder) next(s event.Sink) error {
	off := d.buf.Off()
	tag, err := d.buf.u16()
	if err != nil {
		return &FormatError{Off: off, Err: err}
	}
	if event.Tag(tag) == event.TagEnd {
		d.log.WithFields(logrus.Fields{
			"records": d.count,
			"offset":  d.buf.Off(),
		}).Debug("reached end of eventlog data")
		return io.EOF
	}

	rec, err := d.record(event.Tag(tag))
	if err != nil {
		return &FormatError{Off: off, Tag: event.Tag(tag), HasTag: true, Err: err}
	}
	if err = s.RecordObserved(rec.tag, rec.ts, len(rec.data)); err == nil {
		err = dispatch(s, rec.tag, rec.ts, rec.data)
	}
	if err != nil {
		return &FormatError{Off: off, Tag: rec.tag, HasTag: true, Err: err}
	}
	return nil
}

// record is a single record read from the data section, data is only valid
// until the next record is read.
type record struct {
	tag  event.Tag
	ts   uint64
	data []byte
}

// record reads the remainder of the record for tag, consuming exactly the
// payload size declared in the header.
func (d *Decoder) record(tag event.Tag) (rec record, err error) {
	rec.tag = tag
	if rec.ts, err = d.buf.u64(); err != nil {
		return rec, err
	}

	et, ok := d.reg.Lookup(tag)
	if !ok {
		return rec, ErrUnregistered
	}
	size, fixed := et.Size.Fixed()
	if !fixed {
		n, err := d.buf.u16()
		if err != nil {
			return rec, err
		}
		size = int(n)
	}
	rec.data, err = d.buf.read(size)
	return rec, err
}
