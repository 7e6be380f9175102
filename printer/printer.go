// Package printer renders every record of an eventlog as a line of text.
//
// Lines have the form
//
//	[ts][cap] text
//
// where the cap is omitted for records outside any block span. A Printer never
// rejects a record it can print, unknown tags and malformed values included.
package printer

import (
	"fmt"
	"io"
	"regexp"

	"github.com/adamse/ghc-eventlog/block"
	"github.com/adamse/ghc-eventlog/event"
)

// Printer is an event.Sink writing one line per record to an io.Writer. Deliver
// records through Sink so lines carry the capability that emitted them.
type Printer struct {
	event.NopSink

	w           io.Writer
	block       *block.Tracker
	filter      *regexp.Regexp
	invert      bool
	hideUnknown bool
	lines       int
}

// Option configures a Printer.
type Option func(p *Printer)

// WithFilter only prints records whose name or text matches re, or with
// invert set only those that do not match.
func WithFilter(re *regexp.Regexp, invert bool) Option {
	return func(p *Printer) {
		p.filter, p.invert = re, invert
	}
}

// WithUnknown controls whether records with an unknown tag are printed, they
// are by default.
func WithUnknown(show bool) Option {
	return func(p *Printer) {
		p.hideUnknown = !show
	}
}

// New returns a Printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w}
	p.block = block.NewTracker(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sink returns the sink a decoder should deliver records to.
func (p *Printer) Sink() event.Sink {
	return p.block
}

// Tracker returns the block tracker used to attribute records.
func (p *Printer) Tracker() *block.Tracker {
	return p.block
}

// Lines returns the number of lines written.
func (p *Printer) Lines() int {
	return p.lines
}

func (p *Printer) match(name, text string) bool {
	if p.filter == nil {
		return true
	}
	ok := p.filter.MatchString(name) || p.filter.MatchString(text)
	return ok != p.invert
}

func (p *Printer) line(name string, ts uint64, text string) error {
	if !p.match(name, text) {
		return nil
	}

	var err error
	if c := p.block.Context(); c.Valid() {
		_, err = fmt.Fprintf(p.w, "[%d][%d] %s\n", ts, uint16(c), text)
	} else {
		_, err = fmt.Fprintf(p.w, "[%d] %s\n", ts, text)
	}
	if err != nil {
		return err
	}
	p.lines++
	return nil
}

func (p *Printer) print(tag event.Tag, ts uint64, format string, args ...interface{}) error {
	return p.line(tag.Name(), ts, fmt.Sprintf(format, args...))
}

func (p *Printer) event(ts uint64, e event.Event) error {
	return p.line(e.Tag().Name(), ts, e.String())
}

// Unknown implements event.Sink.
func (p *Printer) Unknown(tag event.Tag, ts uint64, data []byte) error {
	if p.hideUnknown {
		return nil
	}
	return p.line(`unknown`, ts, fmt.Sprintf(`[unknown %d] %d bytes`, uint16(tag), len(data)))
}

// BlockMarker implements event.Sink.
func (p *Printer) BlockMarker(ts uint64, blockSize uint32, endTime uint64, capno event.CapNo) error {
	return p.print(event.TagBlockMarker, ts, `block start %v %d %d`, capno, blockSize, endTime)
}

// CreateThread implements event.Sink.
func (p *Printer) CreateThread(ts uint64, thread event.ThreadID) error {
	return p.event(ts, event.ThreadCreate{ID: thread})
}

// RunThread implements event.Sink.
func (p *Printer) RunThread(ts uint64, thread event.ThreadID) error {
	return p.event(ts, event.ThreadRun{ID: thread})
}

// StopThread implements event.Sink. Statuses out of range are printed as
// invalid rather than rejected.
func (p *Printer) StopThread(ts uint64, thread event.ThreadID, status uint16, blockedOn event.ThreadID) error {
	return p.event(ts, event.ThreadStop{ID: thread, Status: event.StopStatus(status), BlockedOn: blockedOn})
}

// ThreadRunnable implements event.Sink.
func (p *Printer) ThreadRunnable(ts uint64, thread event.ThreadID) error {
	return p.event(ts, event.ThreadRunnable{ID: thread})
}

// MigrateThread implements event.Sink.
func (p *Printer) MigrateThread(ts uint64, thread event.ThreadID, capno event.CapNo) error {
	return p.event(ts, event.ThreadMigrate{ID: thread, Cap: capno})
}

// ThreadWakeup implements event.Sink.
func (p *Printer) ThreadWakeup(ts uint64, thread event.ThreadID, capno event.CapNo) error {
	return p.event(ts, event.ThreadWakeup{ID: thread, Cap: capno})
}

// ThreadLabel implements event.Sink.
func (p *Printer) ThreadLabel(ts uint64, thread event.ThreadID, label []byte) error {
	return p.event(ts, event.ThreadLabel{ID: thread, Label: string(label)})
}

// CapCreate implements event.Sink.
func (p *Printer) CapCreate(ts uint64, capno event.CapNo) error {
	return p.event(ts, event.CapCreate{Cap: capno})
}

// CapDelete implements event.Sink.
func (p *Printer) CapDelete(ts uint64, capno event.CapNo) error {
	return p.event(ts, event.CapDelete{Cap: capno})
}

// CapDisable implements event.Sink.
func (p *Printer) CapDisable(ts uint64, capno event.CapNo) error {
	return p.event(ts, event.CapDisable{Cap: capno})
}

// CapEnable implements event.Sink.
func (p *Printer) CapEnable(ts uint64, capno event.CapNo) error {
	return p.event(ts, event.CapEnable{Cap: capno})
}

// TaskCreate implements event.Sink.
func (p *Printer) TaskCreate(ts uint64, task event.TaskID, capno event.CapNo, kernelTID uint64) error {
	return p.event(ts, event.TaskCreate{TaskID: task, Cap: capno, KernelTID: kernelTID})
}

// TaskMigrate implements event.Sink.
func (p *Printer) TaskMigrate(ts uint64, task event.TaskID, from, to event.CapNo) error {
	return p.event(ts, event.TaskMigrate{TaskID: task, From: from, To: to})
}

// TaskDelete implements event.Sink.
func (p *Printer) TaskDelete(ts uint64, task event.TaskID) error {
	return p.event(ts, event.TaskDelete{TaskID: task})
}

func (p *Printer) CapsetCreate(ts uint64, capset uint32, typ uint16) error {
	return p.print(event.TagCapsetCreate, ts, `capset create %d type:%d`, capset, typ)
}

func (p *Printer) CapsetDelete(ts uint64, capset uint32) error {
	return p.print(event.TagCapsetDelete, ts, `capset delete %d`, capset)
}

func (p *Printer) CapsetAssignCap(ts uint64, capset uint32, capno event.CapNo) error {
	return p.print(event.TagCapsetAssignCap, ts, `capset assign %d %v`, capset, capno)
}

func (p *Printer) CapsetRemoveCap(ts uint64, capset uint32, capno event.CapNo) error {
	return p.print(event.TagCapsetRemoveCap, ts, `capset remove %d %v`, capset, capno)
}

func (p *Printer) RtsIdentifier(ts uint64, capset uint32, ident []byte) error {
	return p.print(event.TagRtsIdentifier, ts, `rts identifier %d %q`, capset, ident)
}

func (p *Printer) ProgramArgs(ts uint64, capset uint32, args []byte) error {
	return p.print(event.TagProgramArgs, ts, `program args %d %q`, capset, args)
}

func (p *Printer) ProgramEnv(ts uint64, capset uint32, env []byte) error {
	return p.print(event.TagProgramEnv, ts, `program env %d %q`, capset, env)
}

func (p *Printer) OSProcessPid(ts uint64, capset, pid uint32) error {
	return p.print(event.TagOSProcessPid, ts, `os pid %d %d`, capset, pid)
}

func (p *Printer) OSProcessPpid(ts uint64, capset, ppid uint32) error {
	return p.print(event.TagOSProcessPpid, ts, `os ppid %d %d`, capset, ppid)
}

func (p *Printer) WallClockTime(ts uint64, capset uint32, sec uint64, nsec uint32) error {
	return p.print(event.TagWallClockTime, ts, `wall clock %d %d.%09d`, capset, sec, nsec)
}

func (p *Printer) UserMsg(ts uint64, msg []byte) error {
	return p.print(event.TagUserMsg, ts, `user msg %q`, msg)
}

func (p *Printer) UserMarker(ts uint64, marker []byte) error {
	return p.print(event.TagUserMarker, ts, `user marker %q`, marker)
}

func (p *Printer) SparkCounters(ts uint64, c event.SparkCounters) error {
	return p.print(event.TagSparkCounters, ts, `spark counters %v`, c)
}

func (p *Printer) GCStart(ts uint64) error      { return p.print(event.TagGCStart, ts, `gc start`) }
func (p *Printer) GCEnd(ts uint64) error        { return p.print(event.TagGCEnd, ts, `gc end`) }
func (p *Printer) RequestSeqGC(ts uint64) error { return p.print(event.TagRequestSeqGC, ts, `gc request seq`) }
func (p *Printer) RequestParGC(ts uint64) error { return p.print(event.TagRequestParGC, ts, `gc request par`) }
func (p *Printer) GCIdle(ts uint64) error       { return p.print(event.TagGCIdle, ts, `gc idle`) }
func (p *Printer) GCWork(ts uint64) error       { return p.print(event.TagGCWork, ts, `gc work`) }
func (p *Printer) GCDone(ts uint64) error       { return p.print(event.TagGCDone, ts, `gc done`) }
func (p *Printer) GCGlobalSync(ts uint64) error { return p.print(event.TagGCGlobalSync, ts, `gc global sync`) }

func (p *Printer) GCStatsGHC(ts uint64, s event.GCStats) error {
	return p.print(event.TagGCStatsGHC, ts,
		`gc stats %d gen:%d copied:%d slop:%d frag:%d threads:%d max:%d total:%d balanced:%d`,
		s.Capset, s.Gen, s.Copied, s.Slop, s.Fragmentation, s.Threads,
		s.MaxCopied, s.TotalCopied, s.BalancedCopied)
}

func (p *Printer) HeapAllocated(ts uint64, capset uint32, n uint64) error {
	return p.print(event.TagHeapAllocated, ts, `heap allocated %d %d`, capset, n)
}

func (p *Printer) HeapSize(ts uint64, capset uint32, n uint64) error {
	return p.print(event.TagHeapSize, ts, `heap size %d %d`, capset, n)
}

func (p *Printer) HeapLive(ts uint64, capset uint32, n uint64) error {
	return p.print(event.TagHeapLive, ts, `heap live %d %d`, capset, n)
}

func (p *Printer) HeapInfoGHC(ts uint64, h event.HeapInfo) error {
	return p.print(event.TagHeapInfoGHC, ts,
		`heap info %d gens:%d max:%d alloc:%d mblock:%d block:%d`,
		h.Capset, h.Gens, h.MaxHeap, h.AllocArea, h.MBlockSize, h.BlockSize)
}

func (p *Printer) MemReturn(ts uint64, capset, current, needed, returned uint32) error {
	return p.print(event.TagMemReturn, ts, `mem return %d current:%d needed:%d returned:%d`,
		capset, current, needed, returned)
}

func (p *Printer) BlocksSize(ts uint64, capset uint32, blocks uint64) error {
	return p.print(event.TagBlocksSize, ts, `blocks size %d %d`, capset, blocks)
}
