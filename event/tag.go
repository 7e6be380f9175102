package event

import "fmt"

// These are the event tags with a known record layout. They are assigned by
// the runtime in rts/include/rts/EventLogFormat.h, the field list of each
// record follows the tag in brackets. Any other tag may still appear in a log
// as long as the header declares it.
const (
	TagCreateThread    Tag = 0  // thread created [thread id]
	TagRunThread       Tag = 1  // thread starts running [thread id]
	TagStopThread      Tag = 2  // thread stops running [thread id, status, blocked on]
	TagThreadRunnable  Tag = 3  // thread is runnable [thread id]
	TagMigrateThread   Tag = 4  // thread migrated to another cap [thread id, new cap]
	TagThreadWakeup    Tag = 8  // thread woken up from another cap [thread id, other cap]
	TagGCStart         Tag = 9  // GC started []
	TagGCEnd           Tag = 10 // GC finished []
	TagRequestSeqGC    Tag = 11 // sequential GC requested []
	TagRequestParGC    Tag = 12 // parallel GC requested []
	TagBlockMarker     Tag = 18 // start of a cap block [block size, end time, cap]
	TagUserMsg         Tag = 19 // user message [message]
	TagGCIdle          Tag = 20 // GC thread idle []
	TagGCWork          Tag = 21 // GC thread working []
	TagGCDone          Tag = 22 // GC thread done []
	TagCapsetCreate    Tag = 25 // capset created [capset, capset type]
	TagCapsetDelete    Tag = 26 // capset deleted [capset]
	TagCapsetAssignCap Tag = 27 // cap added to capset [capset, cap]
	TagCapsetRemoveCap Tag = 28 // cap removed from capset [capset, cap]
	TagRtsIdentifier   Tag = 29 // runtime name and version [capset, name]
	TagProgramArgs     Tag = 30 // program arguments [capset, args]
	TagProgramEnv      Tag = 31 // program environment [capset, env]
	TagOSProcessPid    Tag = 32 // os process id [capset, pid]
	TagOSProcessPpid   Tag = 33 // os parent process id [capset, ppid]
	TagSparkCounters   Tag = 34 // spark counters [7 counters]
	TagWallClockTime   Tag = 43 // wall clock at log start [capset, sec, nsec]
	TagThreadLabel     Tag = 44 // thread label [thread id, label]
	TagCapCreate       Tag = 45 // cap created [cap]
	TagCapDelete       Tag = 46 // cap deleted [cap]
	TagCapDisable      Tag = 47 // cap disabled [cap]
	TagCapEnable       Tag = 48 // cap enabled [cap]
	TagHeapAllocated   Tag = 49 // total bytes allocated [capset, bytes]
	TagHeapSize        Tag = 50 // heap size [capset, bytes]
	TagHeapLive        Tag = 51 // live heap [capset, bytes]
	TagHeapInfoGHC     Tag = 52 // heap geometry [capset, gen, max, alloc area, mblock, block]
	TagGCStatsGHC      Tag = 53 // GC stats [capset, gen, copied, slop, frag, threads, max copied, total copied, balanced]
	TagGCGlobalSync    Tag = 54 // all caps stopped for GC []
	TagTaskCreate      Tag = 55 // task created [task id, cap, kernel thread id]
	TagTaskMigrate     Tag = 56 // task migrated [task id, from cap, to cap]
	TagTaskDelete      Tag = 57 // task deleted [task id]
	TagUserMarker      Tag = 58 // user marker [marker]
	TagMemReturn       Tag = 90 // memory returned to the os [capset, current, needed, returned]
	TagBlocksSize      Tag = 91 // allocated blocks [capset, blocks]

	// TagEnd terminates the data section. It is never declared in the header.
	TagEnd Tag = 0xffff
)

// Tag identifies the kind of an event record. The mapping from tag to record
// size is declared in the header of each log, see Registry.
type Tag uint16

// Known returns true if the record layout for this tag is understood by the
// decoder, false otherwise. Unknown tags are still valid if registered.
func (t Tag) Known() bool {
	_, ok := schemas[t]
	return ok
}

// Name returns the name of this tag, or an empty string if it is not known.
func (t Tag) Name() string {
	return schemas[t].name
}

// MinSize returns the number of payload bytes the known fields of this tag
// occupy. A record may carry more bytes than this, never less.
func (t Tag) MinSize() int {
	return schemas[t].size
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	if s, ok := schemas[t]; ok {
		return fmt.Sprintf(`event.%v`, s.name)
	}
	return fmt.Sprintf(`event.Tag(%d)`, uint16(t))
}

// Tags returns every known tag in ascending order.
func Tags() []Tag {
	return tags
}

type schema struct {
	name string
	size int
}

var tags []Tag

func init() {
	for t := Tag(0); t < TagEnd; t++ {
		if _, ok := schemas[t]; ok {
			tags = append(tags, t)
		}
	}
}

var schemas = map[Tag]schema{
	TagCreateThread:    {"CreateThread", 4},
	TagRunThread:       {"RunThread", 4},
	TagStopThread:      {"StopThread", 4 + 2 + 4},
	TagThreadRunnable:  {"ThreadRunnable", 4},
	TagMigrateThread:   {"MigrateThread", 4 + 2},
	TagThreadWakeup:    {"ThreadWakeup", 4 + 2},
	TagGCStart:         {"GCStart", 0},
	TagGCEnd:           {"GCEnd", 0},
	TagRequestSeqGC:    {"RequestSeqGC", 0},
	TagRequestParGC:    {"RequestParGC", 0},
	TagBlockMarker:     {"BlockMarker", 4 + 8 + 2},
	TagUserMsg:         {"UserMsg", 0},
	TagGCIdle:          {"GCIdle", 0},
	TagGCWork:          {"GCWork", 0},
	TagGCDone:          {"GCDone", 0},
	TagCapsetCreate:    {"CapsetCreate", 4 + 2},
	TagCapsetDelete:    {"CapsetDelete", 4},
	TagCapsetAssignCap: {"CapsetAssignCap", 4 + 2},
	TagCapsetRemoveCap: {"CapsetRemoveCap", 4 + 2},
	TagRtsIdentifier:   {"RtsIdentifier", 4},
	TagProgramArgs:     {"ProgramArgs", 4},
	TagProgramEnv:      {"ProgramEnv", 4},
	TagOSProcessPid:    {"OSProcessPid", 4 + 4},
	TagOSProcessPpid:   {"OSProcessPpid", 4 + 4},
	TagSparkCounters:   {"SparkCounters", 7 * 8},
	TagWallClockTime:   {"WallClockTime", 4 + 8 + 4},
	TagThreadLabel:     {"ThreadLabel", 4},
	TagCapCreate:       {"CapCreate", 2},
	TagCapDelete:       {"CapDelete", 2},
	TagCapDisable:      {"CapDisable", 2},
	TagCapEnable:       {"CapEnable", 2},
	TagHeapAllocated:   {"HeapAllocated", 4 + 8},
	TagHeapSize:        {"HeapSize", 4 + 8},
	TagHeapLive:        {"HeapLive", 4 + 8},
	TagHeapInfoGHC:     {"HeapInfoGHC", 4 + 2 + 4*8},
	TagGCStatsGHC:      {"GCStatsGHC", 4 + 2 + 3*8 + 4 + 3*8},
	TagGCGlobalSync:    {"GCGlobalSync", 0},
	TagTaskCreate:      {"TaskCreate", 8 + 2 + 8},
	TagTaskMigrate:     {"TaskMigrate", 8 + 2 + 2},
	TagTaskDelete:      {"TaskDelete", 8},
	TagUserMarker:      {"UserMarker", 0},
	TagMemReturn:       {"MemReturn", 4 * 4},
	TagBlocksSize:      {"BlocksSize", 4 + 8},
}
