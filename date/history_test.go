package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if first, v := h.First(); first != d2 || v != v2 {
		t.Errorf("First() = %v, %v want %v, %v", first, v, d2, v2)
	}
	if last, v := h.Latest(); last != d1 || v != v1 {
		t.Errorf("Latest() = %v, %v want %v, %v", last, v, d1, v1)
	}
	if span := h.Span(); span.From != d2 || span.To != d1 {
		t.Errorf("Span() = %v want %v..%v", span, d2, d1)
	}
}

func TestAppendOverwrites(t *testing.T) {
	h := new(History[float64])
	on := New(2025, 1, 2)
	h.Append(on, 1).Append(on, 2)

	if h.Len() != 1 {
		t.Fatalf("Len() = %d want 1", h.Len())
	}
	if v, ok := h.Get(on); !ok || v != 2 {
		t.Errorf("Get() = %v, %v want 2, true", v, ok)
	}
}
