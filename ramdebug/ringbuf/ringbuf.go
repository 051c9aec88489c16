// Package ringbuf implements the fixed-capacity circular word store
// backing a RAMDebug capture. It generalizes the wrap-reset cursor
// pattern from jbrzusto/ogdar's buffer.SampleBuff: where SampleBuff
// hands out contiguous slices that must not straddle the wrap point
// (a radar scanline can't be split), this buffer is written one word
// at a time and read back by absolute post-start offset, so wrapping
// mid-window is expected rather than avoided.
package ringbuf

// Buffer is a fixed-capacity circular store of 32-bit words. Capacity
// is fixed at construction and never resized.
type Buffer struct {
	data       []uint32
	writeIndex uint32
	startIndex uint32
	wrapped    bool // true once writeIndex has wrapped at least once since the last Reset or SetWriteIndex
}

// New allocates a buffer with room for capacity words.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]uint32, capacity)}
}

// Len returns the buffer's fixed capacity.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset zeroes the store and both cursors. Called from Init only.
func (b *Buffer) Reset() {
	for i := range b.data {
		b.data[i] = 0
	}
	b.writeIndex = 0
	b.startIndex = 0
	b.wrapped = false
}

// Write stores v at the current write cursor and advances it, wrapping
// modulo capacity. Returns the new write index and whether this write
// caused the cursor to wrap back to zero.
func (b *Buffer) Write(v uint32) (writeIndex uint32, wrapped bool) {
	b.data[b.writeIndex] = v
	b.writeIndex++
	if int(b.writeIndex) >= len(b.data) {
		b.writeIndex = 0
		b.wrapped = true
		wrapped = true
	}
	return b.writeIndex, wrapped
}

// WriteIndex returns the next slot that will be written.
func (b *Buffer) WriteIndex() uint32 {
	return b.writeIndex
}

// SetWriteIndex forces the write cursor, used by
// set_pretrigger_sample_count per spec.md §4.5. Clears the wrapped
// flag since this repositions the cursor within a fresh pre-roll.
func (b *Buffer) SetWriteIndex(i uint32) {
	b.writeIndex = i % uint32(len(b.data))
	b.wrapped = false
}

// HasWrapped reports whether the write cursor has wrapped since the
// last Reset or SetWriteIndex.
func (b *Buffer) HasWrapped() bool {
	return b.wrapped
}

// LatchStart records the start of the retrieval window at cursor-minus-
// pretrigger, called exactly once when the trigger fires.
func (b *Buffer) LatchStart(pretriggerCount uint32) {
	capacity := uint32(len(b.data))
	b.startIndex = (b.writeIndex - pretriggerCount + capacity) % capacity
}

// StartIndex returns the latched start of the retrieval window.
func (b *Buffer) StartIndex() uint32 {
	return b.startIndex
}

// At returns the sample at absolute offset i from startIndex.
func (b *Buffer) At(i uint32) uint32 {
	capacity := uint32(len(b.data))
	return b.data[(b.startIndex+i)%capacity]
}
