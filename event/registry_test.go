package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	tests := []struct {
		size  Size
		valid bool
		fixed int
		ok    bool
		str   string
	}{
		{Variable, true, 0, false, `Variable`},
		{0, true, 0, true, `Fixed(0)`},
		{14, true, 14, true, `Fixed(14)`},
		{0x7fff, true, 0x7fff, true, `Fixed(32767)`},
		{-2, false, 0, false, `Fixed(-2)`},
		{0x8000, false, 0x8000, true, `Fixed(32768)`},
	}
	for _, test := range tests {
		assert.Equal(t, test.valid, test.size.Valid(), `%v`, test.str)
		n, ok := test.size.Fixed()
		assert.Equal(t, test.fixed, n)
		assert.Equal(t, test.ok, ok)
		assert.Equal(t, test.str, test.size.String())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(EventType{Tag: TagRunThread, Size: 4, Description: `Run thread`}))
	require.NoError(t, r.Add(EventType{Tag: TagCreateThread, Size: 4}))
	require.NoError(t, r.Add(EventType{Tag: TagUserMsg, Size: Variable}))

	t.Run(`Duplicate`, func(t *testing.T) {
		err := r.Add(EventType{Tag: TagRunThread, Size: 8})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicate))

		et, ok := r.Lookup(TagRunThread)
		require.True(t, ok)
		assert.Equal(t, Size(4), et.Size, `size must not change once registered`)
	})
	t.Run(`Invalid`, func(t *testing.T) {
		assert.Error(t, r.Add(EventType{Tag: 100, Size: -3}))
		assert.Error(t, r.Add(EventType{Tag: TagEnd, Size: 0}))
	})
	t.Run(`Lookup`, func(t *testing.T) {
		et, ok := r.Lookup(TagRunThread)
		require.True(t, ok)
		assert.Equal(t, `Run thread`, et.Description)

		_, ok = r.Lookup(TagStopThread)
		assert.False(t, ok)
	})
	t.Run(`Types`, func(t *testing.T) {
		types := r.Types()
		require.Len(t, types, 3)
		assert.Equal(t, TagCreateThread, types[0].Tag)
		assert.Equal(t, TagRunThread, types[1].Tag)
		assert.Equal(t, TagUserMsg, types[2].Tag)
		assert.Equal(t, 3, r.Len())
	})
	t.Run(`Sealed`, func(t *testing.T) {
		assert.False(t, r.Sealed())
		r.Seal()
		assert.True(t, r.Sealed())

		err := r.Add(EventType{Tag: TagStopThread, Size: 10})
		assert.True(t, errors.Is(err, ErrSealed))
		_, ok := r.Lookup(TagStopThread)
		assert.False(t, ok)
	})
}
