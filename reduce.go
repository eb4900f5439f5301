package scde

import (
	"fmt"
	"math"
)

// Labels is a validated, dense cluster-label vector over {0 .. K-1}. The
// kernels take the plain integer array; a driver-level side mapping from
// cluster id to a presentation name, if one is needed, lives with the
// caller.
type Labels struct {
	vals []int32
	k    int
}

// NewLabels validates vals and returns a Labels. Every entry must be in
// [0, K) where K = max(vals)+1; a negative entry is rejected with
// ErrInvalidLabels before any kernel sees it.
func NewLabels(vals []int32) (Labels, error) {
	if len(vals) == 0 {
		return Labels{}, fmt.Errorf("%w: empty label vector", ErrInvalidLabels)
	}
	max := int32(-1)
	for _, v := range vals {
		if v < 0 {
			return Labels{}, fmt.Errorf("%w: negative label %d", ErrInvalidLabels, v)
		}
		if v > max {
			max = v
		}
	}
	return Labels{vals: vals, k: int(max) + 1}, nil
}

// K returns the number of clusters.
func (l Labels) K() int { return l.k }

// Len returns the number of samples labeled.
func (l Labels) Len() int { return len(l.vals) }

// At returns the cluster id of sample i.
func (l Labels) At(i int) int32 { return l.vals[i] }

// Sizes returns n_k, the number of samples in each cluster.
func (l Labels) Sizes() []int {
	sizes := make([]int, l.k)
	for _, v := range l.vals {
		sizes[v]++
	}
	return sizes
}

// Aggregate is one (feature, cluster) reduction: the sum and count of
// non-zero values, their min/max, and — only when requested — the sum of
// squares (t-test path) and the per-distinct-value histogram (rank-sum
// path).
type Aggregate struct {
	Sum   float64
	SumSq float64
	Min   float64
	Max   float64
	NZ    int32

	// Hist maps each distinct non-zero value observed in this cluster to
	// its count. Populated only when ReduceOpts.Histogram is set; callers
	// that request it must return it via Reducer.Release.
	Hist map[float64]int32
}

// ReduceOpts selects which optional accumulations Reducer.Reduce
// performs, so callers that only need fold-change (sum, NZ) don't pay for
// the histogram or sum-of-squares passes.
type ReduceOpts struct {
	Histogram  bool // rank-sum (WMW) path
	SumSquares bool // t-test path
}

// Reducer is the shared inner loop of every statistical test: a single
// pass over one feature's non-zero entries, bucketed by cluster label. It
// holds no per-call state itself; all working memory is the
// caller-supplied out slice plus, when Histogram is requested, maps drawn
// from the package's histogram pool (see pool.go and Release).
type Reducer struct{}

// NewReducer returns a ready-to-use Reducer.
func NewReducer() *Reducer { return &Reducer{} }

// Reduce populates one Aggregate per cluster in out (len(out) must equal
// labels.K()) from col's non-zero entries. It never allocates in the hot
// loop beyond the optional histogram map, which is drawn from a pool
// rather than allocated fresh.
func (r *Reducer) Reduce(col SparseColumn, labels Labels, opts ReduceOpts, out []Aggregate) {
	for k := range out {
		out[k] = Aggregate{Min: math.Inf(1), Max: math.Inf(-1)}
		if opts.Histogram {
			out[k].Hist = getHist()
		}
	}

	col.DoNonZero(func(row int32, v float64) {
		k := labels.At(int(row))
		a := &out[k]
		a.Sum += v
		if opts.SumSquares {
			a.SumSq += v * v
		}
		a.NZ++
		if v < a.Min {
			a.Min = v
		}
		if v > a.Max {
			a.Max = v
		}
		if opts.Histogram {
			a.Hist[v]++
		}
	})
}

// Release returns any pooled histogram maps in out to the pool. Callers
// that requested ReduceOpts.Histogram must call Release once they're done
// consuming the aggregates for a feature, before reusing out for the next
// one.
func (r *Reducer) Release(out []Aggregate) {
	for k := range out {
		if out[k].Hist != nil {
			putHist(out[k].Hist)
			out[k].Hist = nil
		}
	}
}
