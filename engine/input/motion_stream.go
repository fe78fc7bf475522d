package input

import (
	"sync"
)

// DefaultMotionCapacity bounds the number of undrained events a MotionStream retains.
const DefaultMotionCapacity = 4096

// MotionEvent is one relative pointer movement in window pixels.
// Positive DX is rightward, positive DY is downward.
type MotionEvent struct {
	DX, DY float32
}

// MotionStream is an append-only buffer of pointer deltas.
// A single producer (the window) pushes; each consumer reads through its own MotionReader,
// which tracks an absolute offset into the stream. Events every reader has passed are discarded.
type MotionStream struct {
	mu       *sync.Mutex
	events   []MotionEvent
	base     uint64 // absolute offset of events[0]
	capacity int
	readers  []*MotionReader
	dropped  uint64 // total events lost by all readers to overflow
}

// MotionReader is one consumer's cursor into a MotionStream. It must not be shared between consumers.
type MotionReader struct {
	stream  *MotionStream
	offset  uint64
	dropped uint64
}

// NewMotionStream creates a stream retaining at most capacity undrained events.
// A capacity <= 0 selects DefaultMotionCapacity.
//
// Parameters:
//   - capacity: maximum retained events
//
// Returns:
//   - *MotionStream: the new stream
func NewMotionStream(capacity int) *MotionStream {
	if capacity <= 0 {
		capacity = DefaultMotionCapacity
	}
	return &MotionStream{
		mu:       &sync.Mutex{},
		capacity: capacity,
	}
}

// Push appends an event. When the buffer is full the oldest event is discarded and
// any reader still pointing at it skips forward.
func (ms *MotionStream) Push(dx, dy float32) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.events = append(ms.events, MotionEvent{DX: dx, DY: dy})
	if over := len(ms.events) - ms.capacity; over > 0 {
		ms.trimLocked(ms.base + uint64(over))
	}
}

// Len returns the number of events retained (not yet passed by every reader).
func (ms *MotionStream) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.events)
}

// Head returns the absolute offset one past the newest event.
func (ms *MotionStream) Head() uint64 {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.base + uint64(len(ms.events))
}

// Dropped returns the total number of events lost by all readers to overflow.
func (ms *MotionStream) Dropped() uint64 {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.dropped
}

// NewReader registers a consumer positioned at the current head; it sees only events pushed afterwards.
//
// Returns:
//   - *MotionReader: the new reader
func (ms *MotionStream) NewReader() *MotionReader {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	r := &MotionReader{
		stream: ms,
		offset: ms.base + uint64(len(ms.events)),
	}
	ms.readers = append(ms.readers, r)
	return r
}

// Close unregisters the reader so it no longer holds back discarding of old events.
func (r *MotionReader) Close() {
	ms := r.stream
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for i, other := range ms.readers {
		if other == r {
			ms.readers = append(ms.readers[:i], ms.readers[i+1:]...)
			break
		}
	}
	ms.compactLocked()
}

// Read returns every event since the reader's last call and advances its cursor past them.
//
// Returns:
//   - []MotionEvent: the unread events, oldest first (nil if none)
func (r *MotionReader) Read() []MotionEvent {
	ms := r.stream
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.catchUpLocked(r)
	head := ms.base + uint64(len(ms.events))
	if r.offset >= head {
		return nil
	}
	start := r.offset - ms.base
	out := make([]MotionEvent, len(ms.events)-int(start))
	copy(out, ms.events[start:])
	r.offset = head
	ms.compactLocked()
	return out
}

// Discard advances the cursor to the head without returning events.
//
// Returns:
//   - int: number of events skipped
func (r *MotionReader) Discard() int {
	ms := r.stream
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.catchUpLocked(r)
	head := ms.base + uint64(len(ms.events))
	n := int(head - r.offset)
	r.offset = head
	ms.compactLocked()
	return n
}

// Offset returns the absolute stream position of the next unread event.
func (r *MotionReader) Offset() uint64 {
	r.stream.mu.Lock()
	defer r.stream.mu.Unlock()
	return r.offset
}

// Dropped returns how many events this reader lost because the stream overflowed.
func (r *MotionReader) Dropped() uint64 {
	r.stream.mu.Lock()
	defer r.stream.mu.Unlock()
	return r.dropped
}

// catchUpLocked moves a reader that fell behind the retained window, which only
// happens after Close, up to the oldest retained event and counts the gap as dropped.
// Caller must hold the mutex.
func (ms *MotionStream) catchUpLocked(r *MotionReader) {
	if r.offset < ms.base {
		r.dropped += ms.base - r.offset
		ms.dropped += ms.base - r.offset
		r.offset = ms.base
	}
}

// compactLocked discards events every registered reader has passed. Caller must hold the mutex.
func (ms *MotionStream) compactLocked() {
	head := ms.base + uint64(len(ms.events))
	low := head
	for _, r := range ms.readers {
		if r.offset < low {
			low = r.offset
		}
	}
	ms.trimLocked(low)
}

// trimLocked drops events before absolute offset to, pushing lagging readers forward.
// Caller must hold the mutex.
func (ms *MotionStream) trimLocked(to uint64) {
	if to <= ms.base {
		return
	}
	n := int(to - ms.base)
	if n >= len(ms.events) {
		ms.events = ms.events[:0]
	} else {
		ms.events = append(ms.events[:0], ms.events[n:]...)
	}
	ms.base = to
	for _, r := range ms.readers {
		if r.offset < to {
			r.dropped += to - r.offset
			ms.dropped += to - r.offset
			r.offset = to
		}
	}
}
