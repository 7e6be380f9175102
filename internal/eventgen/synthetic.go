package eventgen

import (
	"math/rand"

	"github.com/adamse/ghc-eventlog/event"
)

// Synthetic returns a log resembling a small threaded program: a preamble
// outside any block followed by n blocks alternating between two
// capabilities. The output depends only on n.
func Synthetic(n int) []byte {
	rng := rand.New(rand.NewSource(int64(n)))
	b := New(Types()...)

	ts := uint64(1000)
	b.Record(event.TagCapsetCreate, ts, uint32(0), uint16(2))
	b.Record(event.TagRtsIdentifier, ts, uint32(0), "GHC-9.6.2 rts_thr")
	b.Record(event.TagProgramArgs, ts, uint32(0), "./main\x00+RTS\x00-l\x00")
	b.Record(event.TagWallClockTime, ts, uint32(0), uint64(1700000000), uint32(0))
	b.Record(event.TagCapCreate, ts, event.CapNo(0))
	b.Record(event.TagCapCreate, ts, event.CapNo(1))

	next := event.ThreadID(1)
	for i := 0; i < n; i++ {
		capno := event.CapNo(i % 2)
		ts += uint64(rng.Intn(500) + 1)
		b.Block(ts, capno, func(b *Builder) {
			tid := next
			next++

			b.Record(event.TagCreateThread, ts, tid)
			if i == 0 {
				b.Record(event.TagThreadLabel, ts, tid, "main")
			}
			b.Record(event.TagThreadRunnable, ts, tid)
			for j := 0; j < rng.Intn(4)+1; j++ {
				ts += uint64(rng.Intn(100) + 1)
				b.Record(event.TagRunThread, ts, tid)
				ts += uint64(rng.Intn(100) + 1)
				b.Record(event.TagStopThread, ts, tid, event.ThreadYielding, event.ThreadID(0))
			}
			if rng.Intn(3) == 0 {
				ts++
				b.Record(event.TagMigrateThread, ts, tid, 1-capno)
				b.Record(event.TagThreadWakeup, ts, tid, 1-capno)
			}
			if rng.Intn(4) == 0 {
				ts++
				b.Record(event.TagGCStart, ts)
				ts += uint64(rng.Intn(50) + 1)
				b.Record(event.TagGCEnd, ts)
				b.Record(event.TagHeapLive, ts, uint32(0), uint64(rng.Intn(1<<20)))
			}
			ts++
			b.Record(event.TagStopThread, ts, tid, event.ThreadFinished, event.ThreadID(0))
		})
	}
	return b.End()
}
