// Package bufpool provides a tiered buffer pool for per-message receive
// buffers (the portmap server's TCP and UDP paths use it), reducing GC
// pressure on the hot decode path. Adapted from the teacher's pkg/bufpool: same tiered-size-class
// design, trimmed to the two tiers this module's fragments actually need.
package bufpool

import "sync"

const (
	// SmallSize covers RPC headers, MOUNT/portmap bodies, and most NFS3
	// call/reply structs.
	SmallSize = 4 << 10
	// LargeSize covers requests up to 1 MiB. Larger requests (an RPC
	// fragment may be up to rpc.DefaultMaxFragmentSize, 64 MiB) are
	// allocated directly by Get.
	LargeSize = 1 << 20
)

var (
	small sync.Pool = sync.Pool{New: func() any { b := make([]byte, SmallSize); return &b }}
	large sync.Pool = sync.Pool{New: func() any { b := make([]byte, LargeSize); return &b }}
)

// Get returns a byte slice of at least size bytes. Buffers bigger than
// LargeSize are allocated directly and never pooled, matching the teacher's
// rationale: don't keep oversized buffers alive indefinitely.
func Get(size int) []byte {
	var p *sync.Pool
	switch {
	case size <= SmallSize:
		p = &small
	case size <= LargeSize:
		p = &large
	default:
		return make([]byte, size)
	}
	ptr := p.Get().(*[]byte)
	buf := *ptr
	return buf[:size]
}

// Put returns a buffer obtained from Get back to its pool. Buffers whose
// capacity doesn't match a known tier (including directly-allocated
// oversized buffers) are dropped and left to the garbage collector.
func Put(buf []byte) {
	if buf == nil {
		return
	}
	switch cap(buf) {
	case SmallSize:
		full := buf[:SmallSize]
		small.Put(&full)
	case LargeSize:
		full := buf[:LargeSize]
		large.Put(&full)
	}
}

// GetUint32 is a convenience wrapper for protocols that size buffers with a
// wire-encoded u32 (RPC fragment lengths).
func GetUint32(size uint32) []byte {
	return Get(int(size))
}
