package scde

import (
	"errors"
	"math"
	"testing"
)

func TestTransposeInvolution(t *testing.T) {
	m := smallCSC(t)
	tr, err := Transpose(m)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	back, err := Transpose(tr)
	if err != nil {
		t.Fatalf("Transpose(Transpose): %v", err)
	}
	for c := 0; c < m.NCol(); c++ {
		for r := 0; r < m.NRow(); r++ {
			if back.At(r, c) != m.At(r, c) {
				t.Fatalf("At(%d,%d): got %v want %v", r, c, back.At(r, c), m.At(r, c))
			}
		}
	}
}

func TestTransposeAscendingWithinColumn(t *testing.T) {
	m := smallCSC(t)
	tr, err := Transpose(m)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	p := tr.ColPointers()
	rows := tr.RowIndices()
	for c := 0; c < tr.NCol(); c++ {
		lo, hi := int(p[c]), int(p[c+1])
		for k := lo + 1; k < hi; k++ {
			if rows[k] <= rows[k-1] {
				t.Fatalf("column %d not ascending: %v", c, rows[lo:hi])
			}
		}
	}
}

func TestRowColSumsSwapUnderTranspose(t *testing.T) {
	m := smallCSC(t)
	tr, err := Transpose(m)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	rs := m.RowSums()
	cs := tr.ColSums()
	if len(rs) != len(cs) {
		t.Fatalf("length mismatch: %d vs %d", len(rs), len(cs))
	}
	for i := range rs {
		if rs[i] != cs[i] {
			t.Errorf("index %d: RowSums=%v ColSums(transpose)=%v", i, rs[i], cs[i])
		}
	}
}

func TestRowSumsConcurrentMatchesSerial(t *testing.T) {
	m := smallCSC(t)
	serial := m.RowSums()
	concurrent := m.RowSumsConcurrent(4)
	for i := range serial {
		if math.Abs(serial[i]-concurrent[i]) > 1e-12 {
			t.Errorf("index %d: serial=%v concurrent=%v", i, serial[i], concurrent[i])
		}
	}
}

func TestToDenseRoundTrip(t *testing.T) {
	m := smallCSC(t)
	d := m.ToDense()
	r, c := d.Dims()
	if r != m.NRow() || c != m.NCol() {
		t.Fatalf("dims = (%d,%d), want (%d,%d)", r, c, m.NRow(), m.NCol())
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if d.At(i, j) != m.At(i, j) {
				t.Errorf("At(%d,%d): got %v want %v", i, j, d.At(i, j), m.At(i, j))
			}
		}
	}
}

func TestToDenseTMatchesTransposeThenDense(t *testing.T) {
	m := smallCSC(t)
	tr, err := Transpose(m)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	want := tr.ToDense()
	got := m.ToDenseT()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	if wr != gr || wc != gc {
		t.Fatalf("dims mismatch: (%d,%d) vs (%d,%d)", gr, gc, wr, wc)
	}
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			if want.At(i, j) != got.At(i, j) {
				t.Errorf("At(%d,%d): got %v want %v", i, j, got.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestCBindPreservesColumns(t *testing.T) {
	a := smallCSC(t)
	b := smallCSC(t)
	out, err := CBind[int32](a, b)
	if err != nil {
		t.Fatalf("CBind: %v", err)
	}
	if out.NCol() != a.NCol()+b.NCol() || out.NRow() != a.NRow() {
		t.Fatalf("dims = (%d,%d), want (%d,%d)", out.NRow(), out.NCol(), a.NRow(), a.NCol()+b.NCol())
	}
	for c := 0; c < a.NCol(); c++ {
		for r := 0; r < a.NRow(); r++ {
			if out.At(r, c) != a.At(r, c) {
				t.Errorf("left half At(%d,%d): got %v want %v", r, c, out.At(r, c), a.At(r, c))
			}
		}
	}
	for c := 0; c < b.NCol(); c++ {
		for r := 0; r < b.NRow(); r++ {
			if out.At(r, a.NCol()+c) != b.At(r, c) {
				t.Errorf("right half At(%d,%d): got %v want %v", r, c, out.At(r, a.NCol()+c), b.At(r, c))
			}
		}
	}
}

func TestCBindRejectsRowMismatch(t *testing.T) {
	a := smallCSC(t)
	b, err := NewCSC[int32](2, 1, []float64{1}, []int32{0}, []int32{0, 1}, nil, nil)
	if err != nil {
		t.Fatalf("NewCSC: %v", err)
	}
	_, err = CBind[int32](a, b)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestRBindIsCBindUnderTranspose(t *testing.T) {
	a := smallCSC(t)
	b := smallCSC(t)
	rb, err := RBind[int32](a, b)
	if err != nil {
		t.Fatalf("RBind: %v", err)
	}

	ta, _ := Transpose(a)
	tb, _ := Transpose(b)
	cb, err := CBind[int32](ta, tb)
	if err != nil {
		t.Fatalf("CBind: %v", err)
	}
	want, err := Transpose(cb)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}

	if rb.NRow() != want.NRow() || rb.NCol() != want.NCol() {
		t.Fatalf("dims mismatch: (%d,%d) vs (%d,%d)", rb.NRow(), rb.NCol(), want.NRow(), want.NCol())
	}
	for r := 0; r < rb.NRow(); r++ {
		for c := 0; c < rb.NCol(); c++ {
			if rb.At(r, c) != want.At(r, c) {
				t.Errorf("At(%d,%d): got %v want %v", r, c, rb.At(r, c), want.At(r, c))
			}
		}
	}
}

func TestCheckOverflowInt32(t *testing.T) {
	if err := checkOverflow[int32](math.MaxInt32 + 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("got %v, want ErrOverflow", err)
	}
	if err := checkOverflow[int32](10); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if err := checkOverflow[int64](math.MaxInt32 + 1); err != nil {
		t.Fatalf("int64 should never overflow here: %v", err)
	}
}
