package scde

// SparseColumn is a read-only view over one column's non-zero run within
// a CSC matrix: parallel Rows/Values slices, ascending by row. It is a
// zero-copy slice of an existing matrix rather than an owned, mutable
// vector.
type SparseColumn struct {
	Rows   []int32
	Values []float64
}

// Len returns the number of non-zero entries in the column.
func (c SparseColumn) Len() int { return len(c.Values) }

// DoNonZero calls fn once per non-zero entry in ascending row order.
func (c SparseColumn) DoNonZero(fn func(row int32, v float64)) {
	for k, v := range c.Values {
		fn(c.Rows[k], v)
	}
}

// Column returns a zero-copy view over column c's non-zero entries.
// Column panics if c is out of range.
func (m *CSC[P]) Column(c int) SparseColumn {
	if c < 0 || c >= m.ncol {
		panic("scde: column index out of range")
	}
	lo, hi := int(m.p[c]), int(m.p[c+1])
	return SparseColumn{Rows: m.i[lo:hi], Values: m.x[lo:hi]}
}
