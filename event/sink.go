package event

// SparkCounters are the seven spark pool counters of a capability: created,
// dud, overflowed, converted, fizzled, gc'd and remaining.
type SparkCounters [7]uint64

// HeapInfo is the heap geometry reported by TagHeapInfoGHC.
type HeapInfo struct {
	Capset     uint32
	Gens       uint16
	MaxHeap    uint64
	AllocArea  uint64
	MBlockSize uint64
	BlockSize  uint64
}

// GCStats are the per collection statistics reported by TagGCStatsGHC.
type GCStats struct {
	Capset         uint32
	Gen            uint16
	Copied         uint64
	Slop           uint64
	Fragmentation  uint64
	Threads        uint32
	MaxCopied      uint64
	TotalCopied    uint64
	BalancedCopied uint64
}

// Sink receives the records of a log from a decoder, one method per known tag.
// Every method is called with the timestamp of the record in nanoseconds. A
// non-nil error returned from any method stops decoding and is returned from
// the decoder.
//
// Byte slices passed to a Sink are only valid for the duration of the call.
//
// Implementations should embed NopSink and override the methods they need, so
// that adding tags to this interface does not break them.
type Sink interface {

	// RecordObserved is called for every record, known or not, before its
	// payload is interpreted. The size excludes the tag, timestamp and length
	// prefix.
	RecordObserved(tag Tag, ts uint64, size int) error

	// Unknown is called for records whose tag is registered but has no known
	// layout, data is the complete payload.
	Unknown(tag Tag, ts uint64, data []byte) error

	CreateThread(ts uint64, thread ThreadID) error
	RunThread(ts uint64, thread ThreadID) error
	StopThread(ts uint64, thread ThreadID, status uint16, blockedOn ThreadID) error
	ThreadRunnable(ts uint64, thread ThreadID) error
	MigrateThread(ts uint64, thread ThreadID, capno CapNo) error
	ThreadWakeup(ts uint64, thread ThreadID, capno CapNo) error
	ThreadLabel(ts uint64, thread ThreadID, label []byte) error

	BlockMarker(ts uint64, blockSize uint32, endTime uint64, capno CapNo) error

	CapCreate(ts uint64, capno CapNo) error
	CapDelete(ts uint64, capno CapNo) error
	CapDisable(ts uint64, capno CapNo) error
	CapEnable(ts uint64, capno CapNo) error

	CapsetCreate(ts uint64, capset uint32, typ uint16) error
	CapsetDelete(ts uint64, capset uint32) error
	CapsetAssignCap(ts uint64, capset uint32, capno CapNo) error
	CapsetRemoveCap(ts uint64, capset uint32, capno CapNo) error

	TaskCreate(ts uint64, task TaskID, capno CapNo, kernelTID uint64) error
	TaskMigrate(ts uint64, task TaskID, from, to CapNo) error
	TaskDelete(ts uint64, task TaskID) error

	RtsIdentifier(ts uint64, capset uint32, name []byte) error
	ProgramArgs(ts uint64, capset uint32, args []byte) error
	ProgramEnv(ts uint64, capset uint32, env []byte) error
	OSProcessPid(ts uint64, capset uint32, pid uint32) error
	OSProcessPpid(ts uint64, capset uint32, ppid uint32) error
	WallClockTime(ts uint64, capset uint32, sec uint64, nsec uint32) error
	UserMsg(ts uint64, msg []byte) error
	UserMarker(ts uint64, marker []byte) error

	SparkCounters(ts uint64, counters SparkCounters) error

	GCStart(ts uint64) error
	GCEnd(ts uint64) error
	RequestSeqGC(ts uint64) error
	RequestParGC(ts uint64) error
	GCIdle(ts uint64) error
	GCWork(ts uint64) error
	GCDone(ts uint64) error
	GCGlobalSync(ts uint64) error
	GCStatsGHC(ts uint64, stats GCStats) error

	HeapAllocated(ts uint64, capset uint32, allocated uint64) error
	HeapSize(ts uint64, capset uint32, size uint64) error
	HeapLive(ts uint64, capset uint32, size uint64) error
	HeapInfoGHC(ts uint64, info HeapInfo) error
	MemReturn(ts uint64, capset uint32, current, needed, returned uint32) error
	BlocksSize(ts uint64, capset uint32, blocks uint64) error
}

// NopSink implements every method of Sink by doing nothing.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) RecordObserved(Tag, uint64, int) error                  { return nil }
func (NopSink) Unknown(Tag, uint64, []byte) error                      { return nil }
func (NopSink) CreateThread(uint64, ThreadID) error                    { return nil }
func (NopSink) RunThread(uint64, ThreadID) error                       { return nil }
func (NopSink) StopThread(uint64, ThreadID, uint16, ThreadID) error    { return nil }
func (NopSink) ThreadRunnable(uint64, ThreadID) error                  { return nil }
func (NopSink) MigrateThread(uint64, ThreadID, CapNo) error            { return nil }
func (NopSink) ThreadWakeup(uint64, ThreadID, CapNo) error             { return nil }
func (NopSink) ThreadLabel(uint64, ThreadID, []byte) error             { return nil }
func (NopSink) BlockMarker(uint64, uint32, uint64, CapNo) error        { return nil }
func (NopSink) CapCreate(uint64, CapNo) error                          { return nil }
func (NopSink) CapDelete(uint64, CapNo) error                          { return nil }
func (NopSink) CapDisable(uint64, CapNo) error                         { return nil }
func (NopSink) CapEnable(uint64, CapNo) error                          { return nil }
func (NopSink) CapsetCreate(uint64, uint32, uint16) error              { return nil }
func (NopSink) CapsetDelete(uint64, uint32) error                      { return nil }
func (NopSink) CapsetAssignCap(uint64, uint32, CapNo) error            { return nil }
func (NopSink) CapsetRemoveCap(uint64, uint32, CapNo) error            { return nil }
func (NopSink) TaskCreate(uint64, TaskID, CapNo, uint64) error         { return nil }
func (NopSink) TaskMigrate(uint64, TaskID, CapNo, CapNo) error         { return nil }
func (NopSink) TaskDelete(uint64, TaskID) error                        { return nil }
func (NopSink) RtsIdentifier(uint64, uint32, []byte) error             { return nil }
func (NopSink) ProgramArgs(uint64, uint32, []byte) error               { return nil }
func (NopSink) ProgramEnv(uint64, uint32, []byte) error                { return nil }
func (NopSink) OSProcessPid(uint64, uint32, uint32) error              { return nil }
func (NopSink) OSProcessPpid(uint64, uint32, uint32) error             { return nil }
func (NopSink) WallClockTime(uint64, uint32, uint64, uint32) error     { return nil }
func (NopSink) UserMsg(uint64, []byte) error                           { return nil }
func (NopSink) UserMarker(uint64, []byte) error                        { return nil }
func (NopSink) SparkCounters(uint64, SparkCounters) error              { return nil }
func (NopSink) GCStart(uint64) error                                   { return nil }
func (NopSink) GCEnd(uint64) error                                     { return nil }
func (NopSink) RequestSeqGC(uint64) error                              { return nil }
func (NopSink) RequestParGC(uint64) error                              { return nil }
func (NopSink) GCIdle(uint64) error                                    { return nil }
func (NopSink) GCWork(uint64) error                                    { return nil }
func (NopSink) GCDone(uint64) error                                    { return nil }
func (NopSink) GCGlobalSync(uint64) error                              { return nil }
func (NopSink) GCStatsGHC(uint64, GCStats) error                       { return nil }
func (NopSink) HeapAllocated(uint64, uint32, uint64) error             { return nil }
func (NopSink) HeapSize(uint64, uint32, uint64) error                  { return nil }
func (NopSink) HeapLive(uint64, uint32, uint64) error                  { return nil }
func (NopSink) HeapInfoGHC(uint64, HeapInfo) error                     { return nil }
func (NopSink) MemReturn(uint64, uint32, uint32, uint32, uint32) error { return nil }
func (NopSink) BlocksSize(uint64, uint32, uint64) error                { return nil }
