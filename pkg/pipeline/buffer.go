package pipeline

// Entry is one buffered (message, promise) pair held by a MarkedBuffer.
type Entry[T any] struct {
	Msg     T
	Promise *Promise[struct{}]
}

// MarkedBuffer holds outbound (msg, promise) pairs a handler isn't ready to
// flush yet (spec §4.A, used by the SOCKS client handler to queue
// application writes until the handshake reaches Active). A mark records
// how many entries were present at some point of interest; DrainToMark
// drains exactly those, leaving anything added afterward buffered.
//
// Not safe for concurrent use — callers only ever touch a MarkedBuffer from
// inside their owning channel's event loop, same as every other piece of
// per-channel state (spec §5).
type MarkedBuffer[T any] struct {
	entries []Entry[T]
	mark    int
}

// NewMarkedBuffer returns an empty buffer.
func NewMarkedBuffer[T any]() *MarkedBuffer[T] {
	return &MarkedBuffer[T]{}
}

// Add appends a new buffered write.
func (b *MarkedBuffer[T]) Add(msg T, promise *Promise[struct{}]) {
	b.entries = append(b.entries, Entry[T]{Msg: msg, Promise: promise})
}

// Mark records the current length as the drain point.
func (b *MarkedBuffer[T]) Mark() {
	b.mark = len(b.entries)
}

// DrainToMark removes and returns every entry up to the last Mark call,
// leaving later entries buffered.
func (b *MarkedBuffer[T]) DrainToMark() []Entry[T] {
	drained := b.entries[:b.mark]
	remaining := make([]Entry[T], len(b.entries)-b.mark)
	copy(remaining, b.entries[b.mark:])
	b.entries = remaining
	b.mark = 0
	return drained
}

// DrainAll removes and returns every buffered entry.
func (b *MarkedBuffer[T]) DrainAll() []Entry[T] {
	drained := b.entries
	b.entries = nil
	b.mark = 0
	return drained
}

// Len reports how many entries are currently buffered.
func (b *MarkedBuffer[T]) Len() int { return len(b.entries) }
