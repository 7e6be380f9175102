package event

import (
	"errors"
	"fmt"
)

// Reasons a thread stopped running, carried by TagStopThread records. Values
// without a name are reserved by the runtime, they are still accepted.
const (
	HeapOverflow        StopStatus = 1
	StackOverflow       StopStatus = 2
	ThreadYielding      StopStatus = 3
	ThreadBlocked       StopStatus = 4
	ThreadFinished      StopStatus = 5
	ForeignCall         StopStatus = 6
	BlockedOnMVar       StopStatus = 7
	BlockedOnBlackHole  StopStatus = 8
	BlockedOnRead       StopStatus = 9
	BlockedOnWrite      StopStatus = 10
	BlockedOnDelay      StopStatus = 11
	BlockedOnSTM        StopStatus = 12
	BlockedOnDoProc     StopStatus = 13
	BlockedOnMsgThrowTo StopStatus = 16
	BlockedOnMVarRead   StopStatus = 20

	minStopStatus = HeapOverflow
	maxStopStatus = BlockedOnMVarRead
)

// ErrStopStatus is returned from ParseStopStatus for values outside 1..=20.
var ErrStopStatus = errors.New(`stop status out of range`)

// StopStatus is the reason a thread stopped.
type StopStatus uint16

// ParseStopStatus maps a raw status code to a StopStatus, returning an error
// wrapping ErrStopStatus if the code is not in 1..=20.
func ParseStopStatus(v uint16) (StopStatus, error) {
	s := StopStatus(v)
	if !s.Valid() {
		return 0, fmt.Errorf(`%w: %d`, ErrStopStatus, v)
	}
	return s, nil
}

// Valid returns true if this status is within the range the runtime emits.
func (s StopStatus) Valid() bool {
	return minStopStatus <= s && s <= maxStopStatus
}

// Reserved returns true for valid codes that have no assigned meaning.
func (s StopStatus) Reserved() bool {
	return s.Valid() && stopStatusNames[s] == ``
}

// String implements fmt.Stringer.
func (s StopStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf(`StopStatus(invalid %d)`, uint16(s))
	}
	if name := stopStatusNames[s]; name != `` {
		return name
	}
	return fmt.Sprintf(`StopStatus(reserved %d)`, uint16(s))
}

var stopStatusNames = [maxStopStatus + 1]string{
	HeapOverflow:        `HeapOverflow`,
	StackOverflow:       `StackOverflow`,
	ThreadYielding:      `ThreadYielding`,
	ThreadBlocked:       `ThreadBlocked`,
	ThreadFinished:      `ThreadFinished`,
	ForeignCall:         `ForeignCall`,
	BlockedOnMVar:       `BlockedOnMVar`,
	BlockedOnBlackHole:  `BlockedOnBlackHole`,
	BlockedOnRead:       `BlockedOnRead`,
	BlockedOnWrite:      `BlockedOnWrite`,
	BlockedOnDelay:      `BlockedOnDelay`,
	BlockedOnSTM:        `BlockedOnSTM`,
	BlockedOnDoProc:     `BlockedOnDoProc`,
	BlockedOnMsgThrowTo: `BlockedOnMsgThrowTo`,
	BlockedOnMVarRead:   `BlockedOnMVarRead`,
}
