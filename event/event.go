package event

import "fmt"

// NoCap is the capability number used by the runtime for "no capability". It
// is also the value reported when a record can not be attributed to a cap.
const NoCap CapNo = 0xffff

// CapNo is the number of a capability, a logical CPU slot of the runtime.
type CapNo uint16

// Valid returns true unless c is NoCap.
func (c CapNo) Valid() bool {
	return c != NoCap
}

// String implements fmt.Stringer.
func (c CapNo) String() string {
	if !c.Valid() {
		return `c:none`
	}
	return fmt.Sprintf(`c:%d`, uint16(c))
}

// ThreadID identifies a lightweight runtime thread.
type ThreadID uint32

// TaskID identifies an OS thread bound task.
type TaskID uint64

// Event is a scheduling event decoded from a log. The set of implementations
// is closed, use a type switch to inspect one.
type Event interface {
	fmt.Stringer

	// Tag returns the tag of the record this event was decoded from.
	Tag() Tag

	event()
}

// CapCreate reports a new capability.
type CapCreate struct{ Cap CapNo }

// CapDelete reports a capability was removed.
type CapDelete struct{ Cap CapNo }

// CapDisable reports a capability was disabled.
type CapDisable struct{ Cap CapNo }

// CapEnable reports a capability was enabled again.
type CapEnable struct{ Cap CapNo }

// TaskCreate reports a task bound to kernel thread KernelTID on Cap.
type TaskCreate struct {
	TaskID    TaskID
	Cap       CapNo
	KernelTID uint64
}

// TaskMigrate reports a task moving between capabilities.
type TaskMigrate struct {
	TaskID   TaskID
	From, To CapNo
}

// TaskDelete reports a task exiting.
type TaskDelete struct{ TaskID TaskID }

// ThreadCreate reports a new thread.
type ThreadCreate struct{ ID ThreadID }

// ThreadRun reports a thread starting to run.
type ThreadRun struct{ ID ThreadID }

// ThreadStop reports a thread that stopped running, BlockedOn is only
// meaningful for some statuses.
type ThreadStop struct {
	ID        ThreadID
	Status    StopStatus
	BlockedOn ThreadID
}

// ThreadLabel attaches a label to a thread.
type ThreadLabel struct {
	ID    ThreadID
	Label string
}

// ThreadRunnable reports a thread becoming runnable.
type ThreadRunnable struct{ ID ThreadID }

// ThreadMigrate reports a thread moved to Cap.
type ThreadMigrate struct {
	ID  ThreadID
	Cap CapNo
}

// ThreadWakeup reports a thread woken up on Cap.
type ThreadWakeup struct {
	ID  ThreadID
	Cap CapNo
}

func (CapCreate) Tag() Tag      { return TagCapCreate }
func (CapDelete) Tag() Tag      { return TagCapDelete }
func (CapDisable) Tag() Tag     { return TagCapDisable }
func (CapEnable) Tag() Tag      { return TagCapEnable }
func (TaskCreate) Tag() Tag     { return TagTaskCreate }
func (TaskMigrate) Tag() Tag    { return TagTaskMigrate }
func (TaskDelete) Tag() Tag     { return TagTaskDelete }
func (ThreadCreate) Tag() Tag   { return TagCreateThread }
func (ThreadRun) Tag() Tag      { return TagRunThread }
func (ThreadStop) Tag() Tag     { return TagStopThread }
func (ThreadLabel) Tag() Tag    { return TagThreadLabel }
func (ThreadRunnable) Tag() Tag { return TagThreadRunnable }
func (ThreadMigrate) Tag() Tag  { return TagMigrateThread }
func (ThreadWakeup) Tag() Tag   { return TagThreadWakeup }

func (CapCreate) event()      {}
func (CapDelete) event()      {}
func (CapDisable) event()     {}
func (CapEnable) event()      {}
func (TaskCreate) event()     {}
func (TaskMigrate) event()    {}
func (TaskDelete) event()     {}
func (ThreadCreate) event()   {}
func (ThreadRun) event()      {}
func (ThreadStop) event()     {}
func (ThreadLabel) event()    {}
func (ThreadRunnable) event() {}
func (ThreadMigrate) event()  {}
func (ThreadWakeup) event()   {}

func (e CapCreate) String() string  { return fmt.Sprintf(`cap create %v`, e.Cap) }
func (e CapDelete) String() string  { return fmt.Sprintf(`cap delete %v`, e.Cap) }
func (e CapDisable) String() string { return fmt.Sprintf(`cap disable %v`, e.Cap) }
func (e CapEnable) String() string  { return fmt.Sprintf(`cap enable %v`, e.Cap) }

func (e TaskCreate) String() string {
	return fmt.Sprintf(`task create ta:%d %v k:%d`, e.TaskID, e.Cap, e.KernelTID)
}

func (e TaskMigrate) String() string {
	return fmt.Sprintf(`task migrate ta:%d %v -> %v`, e.TaskID, e.From, e.To)
}

func (e TaskDelete) String() string   { return fmt.Sprintf(`task delete ta:%d`, e.TaskID) }
func (e ThreadCreate) String() string { return fmt.Sprintf(`thread create ti:%d`, e.ID) }
func (e ThreadRun) String() string    { return fmt.Sprintf(`thread run ti:%d`, e.ID) }

func (e ThreadStop) String() string {
	return fmt.Sprintf(`thread stop ti:%d %v on:%d`, e.ID, e.Status, e.BlockedOn)
}

func (e ThreadLabel) String() string {
	return fmt.Sprintf(`thread label ti:%d %q`, e.ID, e.Label)
}

func (e ThreadRunnable) String() string { return fmt.Sprintf(`thread runnable ti:%d`, e.ID) }

func (e ThreadMigrate) String() string {
	return fmt.Sprintf(`thread migrate ti:%d %v`, e.ID, e.Cap)
}

func (e ThreadWakeup) String() string {
	return fmt.Sprintf(`thread wakeup ti:%d %v`, e.ID, e.Cap)
}
