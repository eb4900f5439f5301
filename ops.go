package scde

import (
	"fmt"
	"math"
	"sync"

	"github.com/james-bowman/scde/blas"
	"gonum.org/v1/gonum/mat"
)

// Transpose produces a new CSC of shape (ncol, nrow) with nnz preserved.
// The algorithm bucket-counts non-zeros by source row (the destination
// column), prefix-sums to get per-column write cursors, then streams the
// source column-by-column (ascending) scattering each (sourceCol, value)
// into its destination column's next free slot. Because source columns
// are visited in ascending order, each destination column's row indices
// land in strictly ascending order without an explicit sort.
func Transpose[P Index](m *CSC[P]) (*CSC[P], error) {
	nnz := m.NNZ()
	out := newUninitCSC[P](m.ncol, m.nrow, nnz)

	for _, r := range m.i {
		out.p[r+1]++
	}
	for c := 1; c <= out.ncol; c++ {
		out.p[c] += out.p[c-1]
	}

	cursor := make([]P, out.ncol)
	copy(cursor, out.p[:out.ncol])

	for sc := 0; sc < m.ncol; sc++ {
		lo, hi := int(m.p[sc]), int(m.p[sc+1])
		for k := lo; k < hi; k++ {
			r := m.i[k]
			pos := cursor[r]
			out.i[pos] = int32(sc)
			out.x[pos] = m.x[k]
			cursor[r]++
		}
	}

	out.RowNames = m.ColNames
	out.ColNames = m.RowNames

	return out, nil
}

// ToDense allocates a zeroed dense nrow x ncol matrix and scatters the
// non-zero entries into it, a single pass over nnz. The scatter itself is
// blas.Dussc, the same sparse-scatter primitive a column-major
// "y[idx] <- x" BLAS routine would use, applied one column at a time with
// the row-major stride offset by the column index.
func (m *CSC[P]) ToDense() *mat.Dense {
	data := make([]float64, m.nrow*m.ncol)
	rowIdx := getInts(64)
	defer putInts(rowIdx)
	for c := 0; c < m.ncol; c++ {
		col := m.Column(c)
		rowIdx = rowIdx[:0]
		for _, r := range col.Rows {
			rowIdx = append(rowIdx, int(r))
		}
		blas.Dussc(col.Values, data[c:], m.ncol, rowIdx)
	}
	return mat.NewDense(m.nrow, m.ncol, data)
}

// ToDenseT densifies the transpose of the receiver (ncol x nrow) without
// materializing Transpose first — useful when only the densified
// transpose is needed and allocating the intermediate sparse transpose
// would be wasted work.
func (m *CSC[P]) ToDenseT() *mat.Dense {
	data := make([]float64, m.nrow*m.ncol)
	rowIdx := getInts(64)
	defer putInts(rowIdx)
	for c := 0; c < m.ncol; c++ {
		col := m.Column(c)
		rowIdx = rowIdx[:0]
		for _, r := range col.Rows {
			rowIdx = append(rowIdx, int(r))
		}
		// transposed layout: dest row is the source column c, dest column
		// is the source row r, so we scatter with stride 1 at offset c*nrow.
		blas.Dussc(col.Values, data[c*m.nrow:], 1, rowIdx)
	}
	return mat.NewDense(m.ncol, m.nrow, data)
}

// checkOverflow reports ErrOverflow if nnz cannot be represented by P.
func checkOverflow[P Index](nnz int) error {
	var zero P
	switch any(zero).(type) {
	case int32:
		if nnz > math.MaxInt32 {
			return fmt.Errorf("%w: nnz %d exceeds int32 range", ErrOverflow, nnz)
		}
	}
	return nil
}

// CBind concatenates matrices along columns: a pointer-array shift plus a
// value/row-index copy, O(total nnz + total ncol). All operands must
// share the same row count.
func CBind[P Index](mats ...*CSC[P]) (*CSC[P], error) {
	if len(mats) == 0 {
		return nil, fmt.Errorf("%w: cbind requires at least one matrix", ErrDimensionMismatch)
	}
	nrow := mats[0].nrow
	ncol, nnz := 0, 0
	namesOK := true
	for _, m := range mats {
		if m.nrow != nrow {
			return nil, fmt.Errorf("%w: cbind row count %d != %d", ErrDimensionMismatch, m.nrow, nrow)
		}
		ncol += m.ncol
		nnz += m.NNZ()
		if m.RowNames == nil {
			namesOK = false
		}
	}
	if err := checkOverflow[P](nnz); err != nil {
		return nil, err
	}

	out := newUninitCSC[P](nrow, ncol, nnz)
	colOffset := 0
	nnzOffset := 0
	var colNames []string
	for _, m := range mats {
		copy(out.x[nnzOffset:], m.x)
		copy(out.i[nnzOffset:], m.i)
		for c := 0; c < m.ncol; c++ {
			out.p[colOffset+c] = P(nnzOffset) + m.p[c]
		}
		if m.ColNames != nil {
			colNames = append(colNames, m.ColNames...)
		}
		colOffset += m.ncol
		nnzOffset += m.NNZ()
	}
	out.p[ncol] = P(nnz)

	if namesOK {
		out.RowNames = mats[0].RowNames
	}
	if len(colNames) == ncol {
		out.ColNames = colNames
	}

	return out, nil
}

// RBind concatenates matrices along rows. Unlike CBind, rbind requires
// re-bucketing non-zeros within each shared column, so it is implemented
// as a composition: stack each operand transposed (so the row axis being
// concatenated becomes the column axis), cbind those, then transpose the
// result back.
func RBind[P Index](mats ...*CSC[P]) (*CSC[P], error) {
	if len(mats) == 0 {
		return nil, fmt.Errorf("%w: rbind requires at least one matrix", ErrDimensionMismatch)
	}
	transposed := make([]*CSC[P], len(mats))
	for idx, m := range mats {
		t, err := Transpose(m)
		if err != nil {
			return nil, err
		}
		transposed[idx] = t
	}
	merged, err := CBind(transposed...)
	if err != nil {
		return nil, err
	}
	return Transpose(merged)
}

// ColSums returns, for each column, the sum of its non-zero values.
func (m *CSC[P]) ColSums() []float64 {
	sums := make([]float64, m.ncol)
	for c := 0; c < m.ncol; c++ {
		lo, hi := int(m.p[c]), int(m.p[c+1])
		var s float64
		for _, v := range m.x[lo:hi] {
			s += v
		}
		sums[c] = s
	}
	return sums
}

// RowSums returns, for each row, the sum of its non-zero values: a single
// scatter-add pass over all non-zeros keyed by row index, implemented
// with the same blas.Dusaxpy primitive a dense sparse-update BLAS routine
// would use.
func (m *CSC[P]) RowSums() []float64 {
	acc := make([]float64, m.nrow)
	rowIdx := getInts(64)
	defer putInts(rowIdx)
	for c := 0; c < m.ncol; c++ {
		col := m.Column(c)
		rowIdx = rowIdx[:0]
		for _, r := range col.Rows {
			rowIdx = append(rowIdx, int(r))
		}
		blas.Dusaxpy(1, col.Values, rowIdx, acc, 1)
	}
	return acc
}

// RowSumsConcurrent is the parallel form of RowSums: it partitions the
// column range across a worker pool, has each worker scatter-add into a
// private nrow-sized accumulator without any shared-memory locking on the
// hot path, hands its finished accumulator over under a mutex, and sums
// the handed-over accumulators serially once every chunk is done. It is
// intended for matrices wide enough that the reduction overhead is
// negligible next to the scatter-add work.
func (m *CSC[P]) RowSumsConcurrent(threads int) []float64 {
	pool := newWorkerPool(threads)
	defer pool.Close()

	type partial struct {
		acc []float64
	}
	var mu sync.Mutex
	var partials []partial

	pool.ParallelFor(m.ncol, func(start, end int) {
		acc := make([]float64, m.nrow)
		rowIdx := getInts(64)
		defer putInts(rowIdx)
		for c := start; c < end; c++ {
			col := m.Column(c)
			rowIdx = rowIdx[:0]
			for _, r := range col.Rows {
				rowIdx = append(rowIdx, int(r))
			}
			blas.Dusaxpy(1, col.Values, rowIdx, acc, 1)
		}
		mu.Lock()
		partials = append(partials, partial{acc: acc})
		mu.Unlock()
	})

	total := make([]float64, m.nrow)
	for _, p := range partials {
		for r, v := range p.acc {
			total[r] += v
		}
	}
	return total
}
