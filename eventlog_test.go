package eventlog

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamse/ghc-eventlog/encoding"
	"github.com/adamse/ghc-eventlog/event"
	"github.com/adamse/ghc-eventlog/internal/eventgen"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type countSink struct {
	event.NopSink
	records int
}

func (s *countSink) RecordObserved(event.Tag, uint64, int) error {
	s.records++
	return nil
}

func TestParse(t *testing.T) {
	var s countSink
	require.NoError(t, Parse(bytes.NewReader(eventgen.Synthetic(4)), &s))
	assert.Greater(t, s.records, 4)

	err := Parse(bytes.NewReader([]byte(`hdrx`)), &s)
	assert.True(t, errors.Is(err, encoding.ErrMagic), `%v`, err)
}

func TestSchedule(t *testing.T) {
	tr, err := Schedule(bytes.NewReader(eventgen.Synthetic(4)))
	require.NoError(t, err)
	assert.Greater(t, tr.Count(), 4)

	_, err = Schedule(bytes.NewReader(nil))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), `%v`, err)
}

func TestFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), `main.eventlog`)
	data := eventgen.Synthetic(6)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	var s countSink
	require.NoError(t, ParseFile(path, &s))

	tr, err := ScheduleFile(path)
	require.NoError(t, err)
	exp, err := Schedule(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, exp.Timestamps(), tr.Timestamps())

	_, err = ScheduleFile(filepath.Join(t.TempDir(), `missing`))
	assert.True(t, os.IsNotExist(err), `%v`, err)
	assert.Error(t, ParseFile(filepath.Join(t.TempDir(), `missing`), &s))
}
