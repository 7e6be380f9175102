package event

// Tee returns a Sink that forwards every record to each of sinks in order. The
// first error returned by any of them stops the forwarding of that record.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

var _ Sink = tee(nil)

func (t tee) each(fn func(s Sink) error) error {
	for _, s := range t {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) RecordObserved(tag Tag, ts uint64, size int) error {
	return t.each(func(s Sink) error { return s.RecordObserved(tag, ts, size) })
}

func (t tee) Unknown(tag Tag, ts uint64, data []byte) error {
	return t.each(func(s Sink) error { return s.Unknown(tag, ts, data) })
}

func (t tee) CreateThread(ts uint64, thread ThreadID) error {
	return t.each(func(s Sink) error { return s.CreateThread(ts, thread) })
}

func (t tee) RunThread(ts uint64, thread ThreadID) error {
	return t.each(func(s Sink) error { return s.RunThread(ts, thread) })
}

func (t tee) StopThread(ts uint64, thread ThreadID, status uint16, blockedOn ThreadID) error {
	return t.each(func(s Sink) error { return s.StopThread(ts, thread, status, blockedOn) })
}

func (t tee) ThreadRunnable(ts uint64, thread ThreadID) error {
	return t.each(func(s Sink) error { return s.ThreadRunnable(ts, thread) })
}

func (t tee) MigrateThread(ts uint64, thread ThreadID, capno CapNo) error {
	return t.each(func(s Sink) error { return s.MigrateThread(ts, thread, capno) })
}

func (t tee) ThreadWakeup(ts uint64, thread ThreadID, capno CapNo) error {
	return t.each(func(s Sink) error { return s.ThreadWakeup(ts, thread, capno) })
}

func (t tee) ThreadLabel(ts uint64, thread ThreadID, label []byte) error {
	return t.each(func(s Sink) error { return s.ThreadLabel(ts, thread, label) })
}

func (t tee) BlockMarker(ts uint64, blockSize uint32, endTime uint64, capno CapNo) error {
	return t.each(func(s Sink) error { return s.BlockMarker(ts, blockSize, endTime, capno) })
}

func (t tee) CapCreate(ts uint64, capno CapNo) error {
	return t.each(func(s Sink) error { return s.CapCreate(ts, capno) })
}

func (t tee) CapDelete(ts uint64, capno CapNo) error {
	return t.each(func(s Sink) error { return s.CapDelete(ts, capno) })
}

func (t tee) CapDisable(ts uint64, capno CapNo) error {
	return t.each(func(s Sink) error { return s.CapDisable(ts, capno) })
}

func (t tee) CapEnable(ts uint64, capno CapNo) error {
	return t.each(func(s Sink) error { return s.CapEnable(ts, capno) })
}

func (t tee) CapsetCreate(ts uint64, capset uint32, typ uint16) error {
	return t.each(func(s Sink) error { return s.CapsetCreate(ts, capset, typ) })
}

func (t tee) CapsetDelete(ts uint64, capset uint32) error {
	return t.each(func(s Sink) error { return s.CapsetDelete(ts, capset) })
}

func (t tee) CapsetAssignCap(ts uint64, capset uint32, capno CapNo) error {
	return t.each(func(s Sink) error { return s.CapsetAssignCap(ts, capset, capno) })
}

func (t tee) CapsetRemoveCap(ts uint64, capset uint32, capno CapNo) error {
	return t.each(func(s Sink) error { return s.CapsetRemoveCap(ts, capset, capno) })
}

func (t tee) TaskCreate(ts uint64, task TaskID, capno CapNo, kernelTID uint64) error {
	return t.each(func(s Sink) error { return s.TaskCreate(ts, task, capno, kernelTID) })
}

func (t tee) TaskMigrate(ts uint64, task TaskID, from, to CapNo) error {
	return t.each(func(s Sink) error { return s.TaskMigrate(ts, task, from, to) })
}

func (t tee) TaskDelete(ts uint64, task TaskID) error {
	return t.each(func(s Sink) error { return s.TaskDelete(ts, task) })
}

func (t tee) RtsIdentifier(ts uint64, capset uint32, name []byte) error {
	return t.each(func(s Sink) error { return s.RtsIdentifier(ts, capset, name) })
}

func (t tee) ProgramArgs(ts uint64, capset uint32, args []byte) error {
	return t.each(func(s Sink) error { return s.ProgramArgs(ts, capset, args) })
}

func (t tee) ProgramEnv(ts uint64, capset uint32, env []byte) error {
	return t.each(func(s Sink) error { return s.ProgramEnv(ts, capset, env) })
}

func (t tee) OSProcessPid(ts uint64, capset uint32, pid uint32) error {
	return t.each(func(s Sink) error { return s.OSProcessPid(ts, capset, pid) })
}

func (t tee) OSProcessPpid(ts uint64, capset uint32, ppid uint32) error {
	return t.each(func(s Sink) error { return s.OSProcessPpid(ts, capset, ppid) })
}

func (t tee) WallClockTime(ts uint64, capset uint32, sec uint64, nsec uint32) error {
	return t.each(func(s Sink) error { return s.WallClockTime(ts, capset, sec, nsec) })
}

func (t tee) UserMsg(ts uint64, msg []byte) error {
	return t.each(func(s Sink) error { return s.UserMsg(ts, msg) })
}

func (t tee) UserMarker(ts uint64, marker []byte) error {
	return t.each(func(s Sink) error { return s.UserMarker(ts, marker) })
}

func (t tee) SparkCounters(ts uint64, counters SparkCounters) error {
	return t.each(func(s Sink) error { return s.SparkCounters(ts, counters) })
}

func (t tee) GCStart(ts uint64) error {
	return t.each(func(s Sink) error { return s.GCStart(ts) })
}

func (t tee) GCEnd(ts uint64) error {
	return t.each(func(s Sink) error { return s.GCEnd(ts) })
}

func (t tee) RequestSeqGC(ts uint64) error {
	return t.each(func(s Sink) error { return s.RequestSeqGC(ts) })
}

func (t tee) RequestParGC(ts uint64) error {
	return t.each(func(s Sink) error { return s.RequestParGC(ts) })
}

func (t tee) GCIdle(ts uint64) error {
	return t.each(func(s Sink) error { return s.GCIdle(ts) })
}

func (t tee) GCWork(ts uint64) error {
	return t.each(func(s Sink) error { return s.GCWork(ts) })
}

func (t tee) GCDone(ts uint64) error {
	return t.each(func(s Sink) error { return s.GCDone(ts) })
}

func (t tee) GCGlobalSync(ts uint64) error {
	return t.each(func(s Sink) error { return s.GCGlobalSync(ts) })
}

func (t tee) GCStatsGHC(ts uint64, stats GCStats) error {
	return t.each(func(s Sink) error { return s.GCStatsGHC(ts, stats) })
}

func (t tee) HeapAllocated(ts uint64, capset uint32, allocated uint64) error {
	return t.each(func(s Sink) error { return s.HeapAllocated(ts, capset, allocated) })
}

func (t tee) HeapSize(ts uint64, capset uint32, size uint64) error {
	return t.each(func(s Sink) error { return s.HeapSize(ts, capset, size) })
}

func (t tee) HeapLive(ts uint64, capset uint32, size uint64) error {
	return t.each(func(s Sink) error { return s.HeapLive(ts, capset, size) })
}

func (t tee) HeapInfoGHC(ts uint64, info HeapInfo) error {
	return t.each(func(s Sink) error { return s.HeapInfoGHC(ts, info) })
}

func (t tee) MemReturn(ts uint64, capset uint32, current, needed, returned uint32) error {
	return t.each(func(s Sink) error { return s.MemReturn(ts, capset, current, needed, returned) })
}

func (t tee) BlocksSize(ts uint64, capset uint32, blocks uint64) error {
	return t.each(func(s Sink) error { return s.BlocksSize(ts, capset, blocks) })
}
