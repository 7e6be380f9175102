package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	NopSink
	calls []string
	err   error
}

func (s *recordingSink) CreateThread(ts uint64, thread ThreadID) error {
	s.calls = append(s.calls, ThreadCreate{ID: thread}.String())
	return s.err
}

func (s *recordingSink) MigrateThread(ts uint64, thread ThreadID, capno CapNo) error {
	s.calls = append(s.calls, ThreadMigrate{ID: thread, Cap: capno}.String())
	return s.err
}

func TestTee(t *testing.T) {
	a, b := new(recordingSink), new(recordingSink)
	s := Tee(a, b)

	require.NoError(t, s.CreateThread(1, 7))
	require.NoError(t, s.MigrateThread(2, 7, 3))
	require.NoError(t, s.GCStart(3))

	exp := []string{`thread create ti:7`, `thread migrate ti:7 c:3`}
	assert.Equal(t, exp, a.calls)
	assert.Equal(t, exp, b.calls)

	t.Run(`Error`, func(t *testing.T) {
		sentinel := errors.New(`sentinel`)
		a, b := &recordingSink{err: sentinel}, new(recordingSink)
		err := Tee(a, b).CreateThread(1, 9)
		assert.Equal(t, sentinel, err)
		assert.Len(t, a.calls, 1)
		assert.Empty(t, b.calls, `sinks after a failing sink are not called`)
	})
}

func TestCapNo(t *testing.T) {
	assert.False(t, NoCap.Valid())
	assert.True(t, CapNo(0).Valid())
	assert.Equal(t, `c:none`, NoCap.String())
	assert.Equal(t, `c:12`, CapNo(12).String())
}

func TestEventStrings(t *testing.T) {
	tests := []struct {
		evt Event
		tag Tag
		exp string
	}{
		{CapCreate{Cap: 1}, TagCapCreate, `cap create c:1`},
		{CapEnable{Cap: 1}, TagCapEnable, `cap enable c:1`},
		{TaskCreate{TaskID: 4, Cap: 0, KernelTID: 99}, TagTaskCreate, `task create ta:4 c:0 k:99`},
		{TaskMigrate{TaskID: 4, From: 0, To: 2}, TagTaskMigrate, `task migrate ta:4 c:0 -> c:2`},
		{ThreadStop{ID: 3, Status: ThreadFinished}, TagStopThread, `thread stop ti:3 ThreadFinished on:0`},
		{ThreadLabel{ID: 3, Label: `main`}, TagThreadLabel, `thread label ti:3 "main"`},
		{ThreadWakeup{ID: 3, Cap: 1}, TagThreadWakeup, `thread wakeup ti:3 c:1`},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, test.evt.String())
		assert.Equal(t, test.tag, test.evt.Tag())
	}
}
