package scde

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TTest computes a two-sided Student's t p-value for cluster k of one
// feature from Reducer-populated aggregates. aggs must have been reduced
// with ReduceOpts.SumSquares set: zero-valued samples contribute 0 to
// both Sum and SumSq, so the t-test path needs no histogram at all, only
// sums.
//
// varEqual selects pooled variance (Student's classic two-sample t, N-2
// degrees of freedom) over Welch's unequal-variance t (the default,
// Welch-Satterthwaite degrees of freedom). Degenerate inputs (either
// group smaller than 2 samples, or zero pooled/group variance) report
// p = 1.0, matching the rank-sum kernel's degeneracy convention.
func TTest(aggs []Aggregate, sizes []int, k int, varEqual bool) (stat, p float64) {
	n1 := sizes[k]
	n2 := 0
	var sum2, sumSq2 float64
	for j := range aggs {
		if j == k {
			continue
		}
		n2 += sizes[j]
		sum2 += aggs[j].Sum
		sumSq2 += aggs[j].SumSq
	}

	sum1, sumSq1 := aggs[k].Sum, aggs[k].SumSq

	if n1 < 2 || n2 < 2 {
		return 0, 1.0
	}

	mean1 := sum1 / float64(n1)
	mean2 := sum2 / float64(n2)

	// Σ(x-mean)² = Σx² - n*mean² (zeros contribute 0 to both sums, so
	// this is exact over the full n1/n2 sample, not just the non-zeros).
	ss1 := sumSq1 - float64(n1)*mean1*mean1
	ss2 := sumSq2 - float64(n2)*mean2*mean2
	if ss1 < 0 {
		ss1 = 0
	}
	if ss2 < 0 {
		ss2 = 0
	}

	var se2, df float64
	if varEqual {
		pooledVar := (ss1 + ss2) / float64(n1+n2-2)
		if pooledVar <= 0 {
			return 0, 1.0
		}
		se2 = pooledVar * (1/float64(n1) + 1/float64(n2))
		df = float64(n1 + n2 - 2)
	} else {
		v1 := ss1 / float64(n1-1) / float64(n1)
		v2 := ss2 / float64(n2-1) / float64(n2)
		se2 = v1 + v2
		if se2 <= 0 {
			return 0, 1.0
		}
		df = se2 * se2 / (v1*v1/float64(n1-1) + v2*v2/float64(n2-1))
	}

	t := (mean1 - mean2) / math.Sqrt(se2)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	}
	return t, p
}
