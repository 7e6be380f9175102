package event

import (
	"errors"
	"fmt"
	"sort"
)

// Variable is the Size of event types whose records carry their own length.
const Variable Size = -1

// Size is the payload size class of an event type as declared in the header.
// A value >= 0 is a fixed payload length in bytes, Variable means every record
// is prefixed with a 16 bit length.
type Size int32

// Valid returns true if this Size is Variable or a fixed length that fits the
// 16 bit size field of the header.
func (s Size) Valid() bool {
	return s == Variable || (0 <= s && s <= 0x7fff)
}

// Fixed returns the fixed payload length and true, or 0 and false for
// Variable.
func (s Size) Fixed() (int, bool) {
	if s < 0 {
		return 0, false
	}
	return int(s), true
}

// String implements fmt.Stringer.
func (s Size) String() string {
	if s == Variable {
		return `Variable`
	}
	return fmt.Sprintf(`Fixed(%d)`, int32(s))
}

// EventType is a single entry of the event type table in the log header.
type EventType struct {
	Tag         Tag
	Size        Size
	Description string
}

// String implements fmt.Stringer.
func (et EventType) String() string {
	return fmt.Sprintf(`%d %v %q`, uint16(et.Tag), et.Size, et.Description)
}

var (
	// ErrSealed is returned when adding to a Registry after it was sealed.
	ErrSealed = errors.New(`event type registry is sealed`)

	// ErrDuplicate is returned when a tag is registered twice.
	ErrDuplicate = errors.New(`event type was already registered`)
)

// Registry maps the tags declared in a log header to their event type. It is
// populated once while decoding the header and sealed before the first event
// record is read.
type Registry struct {
	types  map[Tag]EventType
	sealed bool
}

// NewRegistry returns an empty, unsealed Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[Tag]EventType)}
}

// Add registers et. It fails if the registry is sealed, the tag was already
// added, the tag is the end of data sentinel or the size is invalid.
func (r *Registry) Add(et EventType) error {
	switch {
	case r.sealed:
		return ErrSealed
	case et.Tag == TagEnd:
		return fmt.Errorf(`tag %d is reserved for the end of data`, uint16(et.Tag))
	case !et.Size.Valid():
		return fmt.Errorf(`tag %d has invalid size %d`, uint16(et.Tag), int32(et.Size))
	}
	if _, ok := r.types[et.Tag]; ok {
		return fmt.Errorf(`%w: tag %d`, ErrDuplicate, uint16(et.Tag))
	}
	r.types[et.Tag] = et
	return nil
}

// Seal prevents any further calls to Add from succeeding.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports if Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Lookup returns the event type registered for tag and true, or the zero value
// and false if the header did not declare it.
func (r *Registry) Lookup(tag Tag) (EventType, bool) {
	et, ok := r.types[tag]
	return et, ok
}

// Len returns the number of registered event types.
func (r *Registry) Len() int {
	return len(r.types)
}

// Types returns every registered event type ordered by tag.
func (r *Registry) Types() []EventType {
	out := make([]EventType, 0, len(r.types))
	for _, et := range r.types {
		out = append(out, et)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}
