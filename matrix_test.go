package scde

import (
	"errors"
	"testing"
)

func smallCSC(t *testing.T) *CSC32 {
	t.Helper()
	// 3x3, column-major:
	// col0: row0=1, row2=3
	// col1: row1=2
	// col2: (empty)
	m, err := NewCSC[int32](3, 3,
		[]float64{1, 3, 2},
		[]int32{0, 2, 1},
		[]int32{0, 2, 3, 3},
		nil, nil)
	if err != nil {
		t.Fatalf("NewCSC: %v", err)
	}
	return m
}

func TestNewCSCValid(t *testing.T) {
	m := smallCSC(t)
	if m.NRow() != 3 || m.NCol() != 3 || m.NNZ() != 3 {
		t.Fatalf("got (%d,%d,%d) want (3,3,3)", m.NRow(), m.NCol(), m.NNZ())
	}
}

func TestNewCSCRejectsExplicitZero(t *testing.T) {
	_, err := NewCSC[int32](2, 1, []float64{0}, []int32{0}, []int32{0, 1}, nil, nil)
	if !errors.Is(err, ErrMalformedMatrix) {
		t.Fatalf("got %v, want ErrMalformedMatrix", err)
	}
}

func TestNewCSCRejectsNonAscendingRows(t *testing.T) {
	_, err := NewCSC[int32](2, 1, []float64{1, 2}, []int32{1, 0}, []int32{0, 2}, nil, nil)
	if !errors.Is(err, ErrMalformedMatrix) {
		t.Fatalf("got %v, want ErrMalformedMatrix", err)
	}
}

func TestNewCSCRejectsBadPointerLength(t *testing.T) {
	_, err := NewCSC[int32](2, 2, nil, nil, []int32{0}, nil, nil)
	if !errors.Is(err, ErrMalformedMatrix) {
		t.Fatalf("got %v, want ErrMalformedMatrix", err)
	}
}

func TestNewCSCRejectsNameMismatch(t *testing.T) {
	_, err := NewCSC[int32](2, 1, []float64{1}, []int32{0}, []int32{0, 1}, []string{"a"}, nil)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestAt(t *testing.T) {
	m := smallCSC(t)
	cases := []struct {
		row, col int
		want     float64
	}{
		{0, 0, 1}, {2, 0, 3}, {1, 0, 0},
		{1, 1, 2}, {0, 1, 0},
		{0, 2, 0}, {1, 2, 0}, {2, 2, 0},
	}
	for _, c := range cases {
		if got := m.At(c.row, c.col); got != c.want {
			t.Errorf("At(%d,%d) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	m := smallCSC(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range row")
		}
	}()
	m.At(99, 0)
}

func TestWidenTo64(t *testing.T) {
	m := smallCSC(t)
	w := WidenTo64(m)
	if w.NRow() != m.NRow() || w.NCol() != m.NCol() || w.NNZ() != m.NNZ() {
		t.Fatalf("widened dims mismatch: (%d,%d,%d) vs (%d,%d,%d)", w.NRow(), w.NCol(), w.NNZ(), m.NRow(), m.NCol(), m.NNZ())
	}
	for c := 0; c < m.NCol(); c++ {
		if w.ColPointers()[c] != int64(m.ColPointers()[c]) {
			t.Errorf("col pointer %d: got %d want %d", c, w.ColPointers()[c], m.ColPointers()[c])
		}
	}
}
