package printer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
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

func testLog() []byte {
	types := append(eventgen.Types(), eventgen.Type{Tag: 300, Size: 2})
	b := eventgen.New(types...)
	b.Record(event.TagCapCreate, 1, event.CapNo(0))
	b.Block(2, 0, func(b *eventgen.Builder) {
		b.Record(event.TagCreateThread, 3, event.ThreadID(1))
		b.Record(event.TagStopThread, 4, event.ThreadID(1), uint16(99), event.ThreadID(0))
		b.Record(300, 5, []byte{1, 2})
		b.Record(event.TagUserMsg, 6, "hello")
	})
	b.Record(event.TagGCStart, 7)
	return b.End()
}

func printLog(t *testing.T, data []byte, opts ...Option) (string, *Printer) {
	t.Helper()
	var buf bytes.Buffer
	p := New(&buf, opts...)
	require.NoError(t, encoding.NewDecoder(bytes.NewReader(data)).Decode(p.Sink()))
	return buf.String(), p
}

func TestPrinter(t *testing.T) {
	out, p := printLog(t, testLog())
	exp := strings.Join([]string{
		`[1] cap create c:0`,
		`[2] block start c:0 61 6`,
		`[3][0] thread create ti:1`,
		`[4][0] thread stop ti:1 StopStatus(invalid 99) on:0`,
		`[5][0] [unknown 300] 2 bytes`,
		`[6][0] user msg "hello"`,
		`[7] gc start`,
	}, "\n") + "\n"
	assert.Equal(t, exp, out)
	assert.Equal(t, 7, p.Lines())
}

func TestPrinterFilter(t *testing.T) {
	tests := []struct {
		re     string
		invert bool
		exp    []string
	}{
		{`Thread`, false, []string{
			`[3][0] thread create ti:1`,
			`[4][0] thread stop ti:1 StopStatus(invalid 99) on:0`}},
		{`hello`, false, []string{`[6][0] user msg "hello"`}},
		{`^(Cap|GC)`, true, []string{
			`[2] block start c:0 61 6`,
			`[3][0] thread create ti:1`,
			`[4][0] thread stop ti:1 StopStatus(invalid 99) on:0`,
			`[5][0] [unknown 300] 2 bytes`,
			`[6][0] user msg "hello"`}},
	}
	for _, test := range tests {
		t.Run(test.re, func(t *testing.T) {
			out, _ := printLog(t, testLog(), WithFilter(regexp.MustCompile(test.re), test.invert))
			assert.Equal(t, strings.Join(test.exp, "\n")+"\n", out)
		})
	}
}

func TestPrinterHideUnknown(t *testing.T) {
	out, _ := printLog(t, testLog(), WithUnknown(false))
	assert.NotContains(t, out, `unknown`)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New(`closed`) }

func TestPrinterWriteError(t *testing.T) {
	p := New(failWriter{})
	err := encoding.NewDecoder(bytes.NewReader(testLog())).Decode(p.Sink())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `closed`)
}
