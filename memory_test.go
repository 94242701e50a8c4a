package bolt

import "testing"

func TestMemoryAllocFreeBalance(t *testing.T) {
	liveBefore := LiveBytes()
	eventsBefore := AllocEvents()

	data := make([]byte, inlineCapacity+8)
	var v Value
	v.ToByteArray(data)
	if LiveBytes() != liveBefore+int64(len(data)) {
		t.Fatalf("LiveBytes = %d, want %d", LiveBytes(), liveBefore+int64(len(data)))
	}
	if AllocEvents() != eventsBefore+1 {
		t.Fatalf("AllocEvents = %d, want %d", AllocEvents(), eventsBefore+1)
	}

	v.destroy()
	if LiveBytes() != liveBefore {
		t.Fatalf("LiveBytes after destroy = %d, want %d", LiveBytes(), liveBefore)
	}
	// AllocEvents is monotonic; destroy never decrements it.
	if AllocEvents() != eventsBefore+1 {
		t.Fatalf("AllocEvents after destroy = %d, want %d", AllocEvents(), eventsBefore+1)
	}
}

func TestMemoryNestedContainersFreeRecursively(t *testing.T) {
	liveBefore := LiveBytes()

	var list Value
	list.ToList(2)
	list.ListAt(0).ToByteArray(make([]byte, inlineCapacity+1))
	list.ListAt(1).ToByteArray(make([]byte, inlineCapacity+2))

	if LiveBytes() == liveBefore {
		t.Fatal("expected LiveBytes to grow for nested heap-backed children")
	}
	list.destroy()
	if LiveBytes() != liveBefore {
		t.Fatalf("LiveBytes after recursive destroy = %d, want %d", LiveBytes(), liveBefore)
	}
}
