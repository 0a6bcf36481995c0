package chain

import (
	"testing"
	"time"
)

func entry(id string) Entry[string] {
	return Entry[string]{ActionID: id, Delay: 10 * time.Millisecond}
}

func ids(entries []Entry[string]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ActionID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHistoryAppend(t *testing.T) {
	h := NewHistory[string](3)

	if h.Cap() != 3 {
		t.Fatalf("Cap() = %d, want 3", h.Cap())
	}

	if overflowed := h.Append(entry("a")); overflowed {
		t.Error("Append to empty buffer reported overflow")
	}
	h.Append(entry("b"))

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	first, ok := h.At(0)
	if !ok {
		t.Fatal("At(0) reported no entry")
	}
	if first.Delay != 0 {
		t.Errorf("first entry delay = %v, want 0", first.Delay)
	}

	second, _ := h.At(1)
	if second.Delay != 10*time.Millisecond {
		t.Errorf("second entry delay = %v, want 10ms", second.Delay)
	}

	if _, ok := h.At(2); ok {
		t.Error("At(2) returned a stale slot")
	}
	if _, ok := h.At(-1); ok {
		t.Error("At(-1) returned an entry")
	}
}

func TestHistoryOverflowDropsEverything(t *testing.T) {
	h := NewHistory[string](3)
	h.Append(entry("a"))
	h.Append(entry("b"))
	h.Append(entry("c"))

	if overflowed := h.Append(entry("d")); !overflowed {
		t.Error("Append to full buffer did not report overflow")
	}

	if got := ids(h.Entries()); !equalIDs(got, []string{"d"}) {
		t.Errorf("Entries() after overflow = %v, want [d]", got)
	}

	e, _ := h.At(0)
	if e.Delay != 0 {
		t.Errorf("entry after overflow delay = %v, want 0", e.Delay)
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory[string](2)
	h.Append(entry("a"))
	h.Append(entry("b"))
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", h.Len())
	}
	for i, e := range h.entries {
		if e != (Entry[string]{}) {
			t.Errorf("slot %d not reset: %+v", i, e)
		}
	}
}

func TestHistoryCompactFrom(t *testing.T) {
	tests := []struct {
		name  string
		start int
		want  []string
	}{
		{"zero is a no-op", 0, []string{"a", "b", "c"}},
		{"negative is a no-op", -1, []string{"a", "b", "c"}},
		{"capacity is a no-op", 4, []string{"a", "b", "c"}},
		{"beyond capacity is a no-op", 9, []string{"a", "b", "c"}},
		{"shift by one", 1, []string{"b", "c"}},
		{"shift to last", 2, []string{"c"}},
		{"start past live entries", 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory[string](4)
			h.Append(entry("a"))
			h.Append(entry("b"))
			h.Append(entry("c"))

			h.CompactFrom(tt.start)

			if got := ids(h.Entries()); !equalIDs(got, tt.want) {
				t.Errorf("Entries() = %v, want %v", got, tt.want)
			}
			for i := h.Len(); i < h.Cap(); i++ {
				if h.entries[i] != (Entry[string]{}) {
					t.Errorf("slot %d past the cursor not cleared: %+v", i, h.entries[i])
				}
			}
		})
	}
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory[string](0)
	if h.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1", h.Cap())
	}
}

func TestEntryIsHeld(t *testing.T) {
	if (Entry[string]{ActionID: "a"}).IsHeld() {
		t.Error("entry without hold reported IsHeld")
	}
	if !(Entry[string]{ActionID: "a", HoldDuration: time.Millisecond}).IsHeld() {
		t.Error("held entry did not report IsHeld")
	}
}
