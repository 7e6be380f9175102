// Package eventlog decodes the binary event logs written by the GHC runtime
// system when a program runs with +RTS -l.
//
// The encoding package reads the header and records of a log and delivers
// each record to an event.Sink. The sched package provides a Sink that builds
// a time ordered view of scheduling activity, the printer package one that
// renders each record as text. This package ties them together for the common
// cases.
package eventlog

import (
	"io"

	"github.com/adamse/ghc-eventlog/encoding"
	"github.com/adamse/ghc-eventlog/event"
	"github.com/adamse/ghc-eventlog/internal/eventfile"
	"github.com/adamse/ghc-eventlog/sched"
)

// Parse decodes the log read from r and delivers every record to s. It
// returns nil once the end of the data section was reached.
func Parse(r io.Reader, s event.Sink) error {
	return encoding.NewDecoder(r).Decode(s)
}

// Schedule decodes the log read from r and returns its scheduling events
// ordered by timestamp, each tagged with the capability that emitted it.
func Schedule(r io.Reader) (*sched.Trace, error) {
	a := sched.New()
	if err := Parse(r, a.Sink()); err != nil {
		return nil, err
	}
	return a.Trace(), nil
}

// ParseFile is like Parse for the log stored at path.
func ParseFile(path string, s event.Sink) error {
	f, err := eventfile.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Parse(f.Reader(), s)
}

// ScheduleFile is like Schedule for the log stored at path.
func ScheduleFile(path string) (*sched.Trace, error) {
	f, err := eventfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Schedule(f.Reader())
}
