package eventgen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamse/ghc-eventlog/event"
)

func TestHeader(t *testing.T) {
	b := New(Type{Tag: 7, Size: 3, Description: "ab", Ext: []byte{9}})
	exp := []byte("hdrbhetbetb\x00" +
		"\x00\x07\x00\x03\x00\x00\x00\x02ab\x00\x00\x00\x01\x09" +
		"ete\x00hetehdredatb")
	assert.Equal(t, exp, b.Bytes())
}

func TestRecord(t *testing.T) {
	b := New(TypeOf(event.TagThreadLabel), TypeOf(event.TagCapCreate))
	start := b.Len()

	b.Record(event.TagCapCreate, 1, event.CapNo(2))
	b.Record(event.TagThreadLabel, 2, event.ThreadID(3), "x")
	got := b.End()[start:]

	exp := []byte{
		0, 45, 0, 0, 0, 0, 0, 0, 0, 1, 0, 2,
		0, 44, 0, 0, 0, 0, 0, 0, 0, 2, 0, 5, 0, 0, 0, 3, 'x',
		0xff, 0xff,
	}
	assert.Equal(t, exp, got)
}

func TestBlock(t *testing.T) {
	b := New(Types()...)
	b.Block(5, 1, func(b *Builder) {
		b.Record(event.TagRunThread, 6, event.ThreadID(1))
		b.Record(event.TagUserMsg, 7, "hi")
	})
	data := b.Bytes()

	marker := bytes.Index(data, []byte("datb")) + 4
	fields := data[marker+10 : marker+24]
	exp := Fields(
		uint32(RecordSize(4)+RecordSize(2)),
		uint64(7),
		event.CapNo(1))
	assert.Equal(t, exp, fields)
}

func TestTypes(t *testing.T) {
	types := Types()
	require.Len(t, types, len(event.Tags()))
	for _, typ := range types {
		if variable[typ.Tag] {
			assert.Equal(t, event.Variable, typ.Size, typ.Tag.String())
			continue
		}
		assert.Equal(t, event.Size(typ.Tag.MinSize()), typ.Size, typ.Tag.String())
	}
}

func TestFieldsPanics(t *testing.T) {
	assert.Panics(t, func() { Fields(1) })
}

func TestSynthetic(t *testing.T) {
	a, b := Synthetic(8), Synthetic(8)
	assert.Equal(t, a, b)
	assert.True(t, bytes.HasSuffix(a, []byte{0xff, 0xff}))
	assert.Greater(t, len(Synthetic(16)), len(a))
}
