package transcript

import "testing"

func TestRing_EvictsOldestAtCapacity(t *testing.T) {
	r := New(3)
	for i := 0; i < 5; i++ {
		r.Append(Entry{Channel: "console", Content: string(rune('a' + i))})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	want := []string{"c", "d", "e"}
	for i, e := range snap {
		if e.Content != want[i] {
			t.Fatalf("snap[%d] = %q, want %q", i, e.Content, want[i])
		}
	}
}

func TestRing_DefaultCapacity(t *testing.T) {
	r := New(0)
	if r.capacity != 1000 {
		t.Fatalf("capacity = %d, want 1000", r.capacity)
	}
}

func TestRing_UnderCapacityPreservesOrder(t *testing.T) {
	r := New(10)
	r.Append(Entry{Content: "a"})
	r.Append(Entry{Content: "b"})
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Content != "a" || snap[1].Content != "b" {
		t.Fatalf("snap = %+v", snap)
	}
}
