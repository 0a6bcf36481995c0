package chain

import "time"

// Entry is one observed input release
type Entry[K comparable] struct {
	ActionID K
	// Delay is the time since the previous entry was recorded, zero for the first entry of a buffer
	Delay        time.Duration
	HoldDuration time.Duration
}

func (e Entry[K]) IsHeld() bool {
	return e.HoldDuration > 0
}

// History is a fixed capacity buffer of recent inputs.
// A full buffer is dropped as a whole on the next Append rather than sliding.
type History[K comparable] struct {
	entries []Entry[K]
	next    int
}

func NewHistory[K comparable](capacity int) *History[K] {
	if capacity < 1 {
		capacity = 1
	}
	return &History[K]{entries: make([]Entry[K], capacity)}
}

func (h *History[K]) Cap() int {
	return len(h.entries)
}

// Len returns the number of live entries
func (h *History[K]) Len() int {
	return h.next
}

// At returns the live entry at index i
func (h *History[K]) At(i int) (Entry[K], bool) {
	if i < 0 || i >= h.next {
		return Entry[K]{}, false
	}
	return h.entries[i], true
}

// Entries returns a copy of the live entries, oldest first
func (h *History[K]) Entries() []Entry[K] {
	entries := make([]Entry[K], h.next)
	copy(entries, h.entries[:h.next])
	return entries
}

// Append records an entry. It reports whether the buffer was full and had to be cleared first.
func (h *History[K]) Append(entry Entry[K]) bool {
	overflowed := false
	if h.next >= len(h.entries) {
		h.Clear()
		overflowed = true
	}

	if h.next == 0 {
		entry.Delay = 0
	}

	h.entries[h.next] = entry
	h.next++

	return overflowed
}

func (h *History[K]) Clear() {
	clear(h.entries)
	h.next = 0
}

// CompactFrom moves the live entries starting at start to the front of the buffer.
// A start of zero or at least the capacity leaves the buffer untouched.
func (h *History[K]) CompactFrom(start int) {
	if start <= 0 || start >= len(h.entries) {
		return
	}

	if start >= h.next {
		h.Clear()
		return
	}

	count := copy(h.entries, h.entries[start:h.next])
	clear(h.entries[count:])
	h.next = count
}
