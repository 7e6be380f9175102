package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/adamse/ghc-eventlog/event"
)

// payload reads the fields of a record. Callers check the payload against the
// minimum size of the tag first, so reads never run past the end.
type payload struct {
	b []byte
}

func (p *payload) u16() uint16 {
	v := binary.BigEndian.Uint16(p.b)
	p.b = p.b[2:]
	return v
}

func (p *payload) u32() uint32 {
	v := binary.BigEndian.Uint32(p.b)
	p.b = p.b[4:]
	return v
}

func (p *payload) u64() uint64 {
	v := binary.BigEndian.Uint64(p.b)
	p.b = p.b[8:]
	return v
}

func (p *payload) capno() event.CapNo     { return event.CapNo(p.u16()) }
func (p *payload) thread() event.ThreadID { return event.ThreadID(p.u32()) }
func (p *payload) task() event.TaskID     { return event.TaskID(p.u64()) }

// rest returns the unread remainder of the payload.
func (p *payload) rest() []byte {
	b := p.b
	p.b = p.b[len(p.b):]
	return b
}

// dispatch decodes the fields of a record and calls the matching method of s.
// Function arguments are evaluated left to right, which is the field order.
// Bytes beyond the fields of a known tag are ignored.
func dispatch(s event.Sink, tag event.Tag, ts uint64, data []byte) error {
	if !tag.Known() {
		return s.Unknown(tag, ts, data)
	}
	if n := tag.MinSize(); len(data) < n {
		return fmt.Errorf(`%w: need %d bytes; got %d`, ErrShortPayload, n, len(data))
	}

	p := &payload{b: data}
	switch tag {
	case event.TagCreateThread:
		return s.CreateThread(ts, p.thread())
	case event.TagRunThread:
		return s.RunThread(ts, p.thread())
	case event.TagStopThread:
		return s.StopThread(ts, p.thread(), p.u16(), p.thread())
	case event.TagThreadRunnable:
		return s.ThreadRunnable(ts, p.thread())
	case event.TagMigrateThread:
		return s.MigrateThread(ts, p.thread(), p.capno())
	case event.TagThreadWakeup:
		return s.ThreadWakeup(ts, p.thread(), p.capno())
	case event.TagThreadLabel:
		return s.ThreadLabel(ts, p.thread(), p.rest())

	case event.TagBlockMarker:
		return s.BlockMarker(ts, p.u32(), p.u64(), p.capno())

	case event.TagCapCreate:
		return s.CapCreate(ts, p.capno())
	case event.TagCapDelete:
		return s.CapDelete(ts, p.capno())
	case event.TagCapDisable:
		return s.CapDisable(ts, p.capno())
	case event.TagCapEnable:
		return s.CapEnable(ts, p.capno())

	case event.TagCapsetCreate:
		return s.CapsetCreate(ts, p.u32(), p.u16())
	case event.TagCapsetDelete:
		return s.CapsetDelete(ts, p.u32())
	case event.TagCapsetAssignCap:
		return s.CapsetAssignCap(ts, p.u32(), p.capno())
	case event.TagCapsetRemoveCap:
		return s.CapsetRemoveCap(ts, p.u32(), p.capno())

	case event.TagTaskCreate:
		return s.TaskCreate(ts, p.task(), p.capno(), p.u64())
	case event.TagTaskMigrate:
		return s.TaskMigrate(ts, p.task(), p.capno(), p.capno())
	case event.TagTaskDelete:
		return s.TaskDelete(ts, p.task())

	case event.TagRtsIdentifier:
		return s.RtsIdentifier(ts, p.u32(), p.rest())
	case event.TagProgramArgs:
		return s.ProgramArgs(ts, p.u32(), p.rest())
	case event.TagProgramEnv:
		return s.ProgramEnv(ts, p.u32(), p.rest())
	case event.TagOSProcessPid:
		return s.OSProcessPid(ts, p.u32(), p.u32())
	case event.TagOSProcessPpid:
		return s.OSProcessPpid(ts, p.u32(), p.u32())
	case event.TagWallClockTime:
		return s.WallClockTime(ts, p.u32(), p.u64(), p.u32())
	case event.TagUserMsg:
		return s.UserMsg(ts, p.rest())
	case event.TagUserMarker:
		return s.UserMarker(ts, p.rest())

	case event.TagSparkCounters:
		var c event.SparkCounters
		for i := range c {
			c[i] = p.u64()
		}
		return s.SparkCounters(ts, c)

	case event.TagGCStart:
		return s.GCStart(ts)
	case event.TagGCEnd:
		return s.GCEnd(ts)
	case event.TagRequestSeqGC:
		return s.RequestSeqGC(ts)
	case event.TagRequestParGC:
		return s.RequestParGC(ts)
	case event.TagGCIdle:
		return s.GCIdle(ts)
	case event.TagGCWork:
		return s.GCWork(ts)
	case event.TagGCDone:
		return s.GCDone(ts)
	case event.TagGCGlobalSync:
		return s.GCGlobalSync(ts)
	case event.TagGCStatsGHC:
		return s.GCStatsGHC(ts, event.GCStats{
			Capset:         p.u32(),
			Gen:            p.u16(),
			Copied:         p.u64(),
			Slop:           p.u64(),
			Fragmentation:  p.u64(),
			Threads:        p.u32(),
			MaxCopied:      p.u64(),
			TotalCopied:    p.u64(),
			BalancedCopied: p.u64(),
		})

	case event.TagHeapAllocated:
		return s.HeapAllocated(ts, p.u32(), p.u64())
	case event.TagHeapSize:
		return s.HeapSize(ts, p.u32(), p.u64())
	case event.TagHeapLive:
		return s.HeapLive(ts, p.u32(), p.u64())
	case event.TagHeapInfoGHC:
		return s.HeapInfoGHC(ts, event.HeapInfo{
			Capset:     p.u32(),
			Gens:       p.u16(),
			MaxHeap:    p.u64(),
			AllocArea:  p.u64(),
			MBlockSize: p.u64(),
			BlockSize:  p.u64(),
		})
	case event.TagMemReturn:
		return s.MemReturn(ts, p.u32(), p.u32(), p.u32(), p.u32())
	case event.TagBlocksSize:
		return s.BlocksSize(ts, p.u32(), p.u64())
	}

	// Known tags are all handled above, reaching here means the tag table and
	// this switch disagree.
	return fmt.Errorf(`no decoder for known tag %v`, tag)
}
