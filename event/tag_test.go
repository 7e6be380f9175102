package event

import "testing"

func TestTagKnown(t *testing.T) {
	tests := []struct {
		tag  Tag
		exp  bool
		name string
		min  int
	}{
		{TagCreateThread, true, `CreateThread`, 4},
		{TagStopThread, true, `StopThread`, 10},
		{TagBlockMarker, true, `BlockMarker`, 14},
		{TagTaskCreate, true, `TaskCreate`, 18},
		{TagGCStatsGHC, true, `GCStatsGHC`, 58},
		{TagHeapInfoGHC, true, `HeapInfoGHC`, 38},
		{TagSparkCounters, true, `SparkCounters`, 56},
		{TagGCStart, true, `GCStart`, 0},
		{Tag(5), false, ``, 0},
		{Tag(42), false, ``, 0},
		{Tag(200), false, ``, 0},
		{TagEnd, false, ``, 0},
	}
	for i, test := range tests {
		t.Logf(`test #%v exp tag %d Known() to be %v`, i, uint16(test.tag), test.exp)
		if got := test.tag.Known(); test.exp != got {
			t.Errorf(`expected tag %d Known() to be %v, got %v`,
				uint16(test.tag), test.exp, got)
		}
		if got := test.tag.Name(); test.name != got {
			t.Errorf(`expected tag %d Name() to be %q, got %q`,
				uint16(test.tag), test.name, got)
		}
		if got := test.tag.MinSize(); test.min != got {
			t.Errorf(`expected tag %d MinSize() to be %v, got %v`,
				uint16(test.tag), test.min, got)
		}
	}
}

func TestTagString(t *testing.T) {
	tests := []struct {
		tag Tag
		exp string
	}{
		{TagCreateThread, `event.CreateThread`},
		{TagCapsetAssignCap, `event.CapsetAssignCap`},
		{Tag(7), `event.Tag(7)`},
		{TagEnd, `event.Tag(65535)`},
	}
	for _, test := range tests {
		if got := test.tag.String(); test.exp != got {
			t.Errorf(`expected tag %d String() to be %v, got %v`,
				uint16(test.tag), test.exp, got)
		}
	}
}

func TestTags(t *testing.T) {
	tags := Tags()
	if exp, got := len(schemas), len(tags); exp != got {
		t.Fatalf(`expected %v tags; got %v`, exp, got)
	}
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Fatalf(`expected ascending tags; got %v before %v`, tags[i-1], tags[i])
		}
	}
	if tags[0] != TagCreateThread {
		t.Fatalf(`expected first tag %v; got %v`, TagCreateThread, tags[0])
	}
	if last := tags[len(tags)-1]; last != TagBlocksSize {
		t.Fatalf(`expected last tag %v; got %v`, TagBlocksSize, last)
	}
}
