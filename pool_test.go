package scde

import "testing"

func TestGetPutHistClearsEntries(t *testing.T) {
	h := getHist()
	h[1.0] = 5
	h[2.0] = 6
	putHist(h)

	h2 := getHist()
	if len(h2) != 0 {
		t.Fatalf("pooled histogram should come back empty, got %v", h2)
	}
}

func TestGetFloatsGrowsCapacity(t *testing.T) {
	s := getFloats(1000)
	if cap(s) < 1000 {
		t.Fatalf("cap = %d, want >= 1000", cap(s))
	}
	if len(s) != 0 {
		t.Fatalf("len = %d, want 0", len(s))
	}
	putFloats(s)
}

func TestGetIntsGrowsCapacity(t *testing.T) {
	s := getInts(500)
	if cap(s) < 500 {
		t.Fatalf("cap = %d, want >= 500", cap(s))
	}
	putInts(s)
}

func TestPutFloatsDropsOversized(t *testing.T) {
	// Should not panic regardless of whether it's pooled or dropped.
	big := make([]float64, 0, 1<<20)
	putFloats(big)
}
