package scde

import "sort"

// Builder accumulates (row, col, value) triples before conversion to a
// CSC matrix, narrowed to the one use this package needs: stream triples
// in any order, then finalize once into an immutable CSC. There is no
// random-access Set-then-read; ToCSC is the only way to observe the
// accumulated matrix.
type Builder[P Index] struct {
	nrow, ncol int
	rows       []int32
	cols       []int32
	vals       []float64

	RowNames []string
	ColNames []string
}

// NewBuilder returns an empty Builder for a matrix of the given extent.
func NewBuilder[P Index](nrow, ncol int) *Builder[P] {
	return &Builder[P]{nrow: nrow, ncol: ncol}
}

// Set appends one non-zero entry. Repeated calls for the same (row, col)
// accumulate rather than overwrite: ToCSC sums every entry sharing a cell
// before it appears in the output.
func (b *Builder[P]) Set(row, col int, v float64) {
	if row < 0 || row >= b.nrow || col < 0 || col >= b.ncol {
		panic("scde: builder index out of range")
	}
	if v == 0 {
		return
	}
	b.rows = append(b.rows, int32(row))
	b.cols = append(b.cols, int32(col))
	b.vals = append(b.vals, v)
}

// NNZ returns the number of entries appended so far, before dedup.
func (b *Builder[P]) NNZ() int { return len(b.vals) }

type builderEntry struct {
	row int32
	val float64
}

// ToCSC buckets the accumulated triples by column, sorts each bucket by row,
// sums entries sharing a (row, col) cell, drops any cell whose sum is
// exactly zero, and returns the resulting CSC matrix.
func (b *Builder[P]) ToCSC() (*CSC[P], error) {
	buckets := make([][]builderEntry, b.ncol)
	for idx := range b.vals {
		c := b.cols[idx]
		buckets[c] = append(buckets[c], builderEntry{row: b.rows[idx], val: b.vals[idx]})
	}

	p := make([]P, b.ncol+1)
	x := make([]float64, 0, len(b.vals))
	ri := make([]int32, 0, len(b.vals))

	for c := 0; c < b.ncol; c++ {
		es := buckets[c]
		sort.Slice(es, func(i, j int) bool { return es[i].row < es[j].row })

		var lastRow int32 = -1
		haveLast := false
		for _, e := range es {
			if haveLast && lastRow == e.row {
				x[len(x)-1] += e.val
				continue
			}
			x = append(x, e.val)
			ri = append(ri, e.row)
			lastRow = e.row
			haveLast = true
		}
		p[c+1] = P(len(x))
	}

	x, ri, p = dropZeros(x, ri, p)

	return NewCSC[P](b.nrow, b.ncol, x, ri, p, b.RowNames, b.ColNames)
}

// dropZeros removes any (x, i) pair whose value is exactly zero — the
// result of summing entries that cancel out — and shifts column pointers
// to match, preserving the CSC "no explicit zero" invariant.
func dropZeros[P Index](x []float64, ri []int32, p []P) ([]float64, []int32, []P) {
	hasZero := false
	for _, v := range x {
		if v == 0 {
			hasZero = true
			break
		}
	}
	if !hasZero {
		return x, ri, p
	}

	newX := make([]float64, 0, len(x))
	newRI := make([]int32, 0, len(ri))
	newP := make([]P, len(p))

	col := 0
	for idx := range x {
		for col+1 < len(p) && idx >= int(p[col+1]) {
			newP[col+1] = P(len(newX))
			col++
		}
		if x[idx] == 0 {
			continue
		}
		newX = append(newX, x[idx])
		newRI = append(newRI, ri[idx])
	}
	for c := col; c < len(p)-1; c++ {
		newP[c+1] = P(len(newX))
	}

	return newX, newRI, newP
}
