package encoding

import (
	"fmt"
	"unicode/utf8"

	"github.com/adamse/ghc-eventlog/event"
)

// decodeHeader reads the header up to and including the data section marker,
// returning a sealed registry of the declared event types. The off returned
// is the offset of the entry that failed when err is non-nil.
func decodeHeader(r *offsetReader) (reg *event.Registry, off int64, err error) {
	off = r.Off()
	if err = r.expect(magicHeaderBegin); err != nil {
		return nil, off, err
	}
	off = r.Off()
	if err = r.expect(magicTypesBegin); err != nil {
		return nil, off, err
	}

	reg = event.NewRegistry()
	for {
		off = r.Off()
		m, err := r.magic()
		if err != nil {
			return nil, off, err
		}
		if m == magicTypesEnd {
			break
		}
		if m != magicEventTypeBegin {
			return nil, off, fmt.Errorf(`%w: expected %q or %q; got %q`,
				ErrMagic, magicEventTypeBegin[:], magicTypesEnd[:], m[:])
		}

		et, err := decodeEventType(r)
		if err != nil {
			return nil, off, err
		}
		if err = reg.Add(et); err != nil {
			return nil, off, err
		}
	}

	off = r.Off()
	if err = r.expect(magicHeaderEnd); err != nil {
		return nil, off, err
	}
	off = r.Off()
	if err = r.expect(magicDataBegin); err != nil {
		return nil, off, err
	}
	reg.Seal()
	return reg, off, nil
}

// decodeEventType reads a single event type entry following its begin marker.
func decodeEventType(r *offsetReader) (et event.EventType, err error) {
	tag, err := r.u16()
	if err != nil {
		return et, err
	}
	et.Tag = event.Tag(tag)

	size, err := r.u16()
	if err != nil {
		return et, err
	}
	switch sz := int16(size); {
	case sz == -1:
		et.Size = event.Variable
	case sz >= 0:
		et.Size = event.Size(sz)
	default:
		return et, fmt.Errorf(`%w: tag %d declared size %d`, ErrEventSize, tag, sz)
	}

	n, err := r.u32()
	if err != nil {
		return et, err
	}
	if maxMakeSize < n {
		return et, fmt.Errorf(
			"description size %v exceeds allocation limit(%v)", n, maxMakeSize)
	}
	descr, err := r.read(int(n))
	if err != nil {
		return et, err
	}
	if !utf8.Valid(descr) {
		return et, fmt.Errorf(`description of tag %d was not valid utf8`, tag)
	}
	et.Description = string(descr)

	// Extra info is reserved for future extensions of the format.
	if n, err = r.u32(); err != nil {
		return et, err
	}
	if maxMakeSize < n {
		return et, fmt.Errorf(
			"extension size %v exceeds allocation limit(%v)", n, maxMakeSize)
	}
	if err = r.skip(int(n)); err != nil {
		return et, err
	}
	return et, r.expect(magicEventTypeEnd)
}
