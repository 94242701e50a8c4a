package bolt

import "sync/atomic"

// memory accounts for heap payloads owned by Values, so tests can assert
// zero leakage after running the full value-type coverage.
var memory struct {
	liveBytes   int64
	allocEvents int64
}

func memAlloc(n int) []byte {
	if n == 0 {
		return nil
	}
	atomic.AddInt64(&memory.liveBytes, int64(n))
	atomic.AddInt64(&memory.allocEvents, 1)
	return make([]byte, n)
}

func memFree(b []byte) {
	if len(b) == 0 {
		return
	}
	atomic.AddInt64(&memory.liveBytes, -int64(len(b)))
}

// LiveBytes reports bytes currently held in heap-backed Value payloads.
func LiveBytes() int64 { return atomic.LoadInt64(&memory.liveBytes) }

// AllocEvents reports the monotonically increasing count of heap
// allocations performed by the value system since process start.
func AllocEvents() int64 { return atomic.LoadInt64(&memory.allocEvents) }
