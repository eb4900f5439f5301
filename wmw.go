package scde

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Alternative selects the tail of the rank-sum comparison. TTest does not
// take it: the t-test p-value is always two-sided.
type Alternative int

const (
	// TwoSided is the default: p = 2*Φ(-|z|).
	TwoSided Alternative = iota
	// Less tests whether the cluster's values are stochastically less
	// than the complement's.
	Less
	// Greater tests whether the cluster's values are stochastically
	// greater than the complement's.
	Greater
)

var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}

// RankSum computes the two-sided (or one-sided, per alt) Wilcoxon-Mann-
// Whitney p-value for every cluster of one feature in a single pass over
// the merged distinct-value set: no per-sample sort, no materialized rank
// array.
//
// aggs holds one Reducer-populated Aggregate per cluster with Histogram
// accumulation enabled; sizes holds each cluster's n_k; N is the total
// sample count. pOut, sized len(aggs), receives one p-value per cluster.
//
// Degenerate clusters (n_k == 0, its complement == 0, or zero variance
// because every sample shares one value) report p = 1.0 — never an
// error.
func RankSum(aggs []Aggregate, sizes []int, N int, continuityCorrection bool, alt Alternative, pOut []float64) {
	K := len(aggs)

	var nzTotal int32
	for k := range aggs {
		nzTotal += aggs[k].NZ
	}
	zeros := N - int(nzTotal)

	counted := make(map[float64]int32, 16)
	for k := range aggs {
		for v, c := range aggs[k].Hist {
			counted[v] += c
		}
	}

	values := getFloats(len(counted))
	for v := range counted {
		values = append(values, v)
	}
	sort.Float64s(values)
	defer putFloats(values)

	R := make([]float64, K)

	var T float64
	cumBelow := float64(zeros)
	if zeros > 0 {
		t := float64(zeros)
		T += t*t*t - t

		zeroRank := float64(1+zeros) / 2
		for k := range aggs {
			zerosK := float64(sizes[k]) - float64(aggs[k].NZ)
			R[k] += zeroRank * zerosK
		}
	}

	for _, v := range values {
		total := counted[v]
		meanRank := cumBelow + float64(total+1)/2
		for k := range aggs {
			if c, ok := aggs[k].Hist[v]; ok && c > 0 {
				R[k] += meanRank * float64(c)
			}
		}
		cumBelow += float64(total)
		t := float64(total)
		T += t*t*t - t
	}

	for k := 0; k < K; k++ {
		n1 := sizes[k]
		n2 := N - n1
		if n1 == 0 || n2 == 0 {
			pOut[k] = 1.0
			continue
		}

		U := R[k] - float64(n1)*float64(n1+1)/2
		mu := float64(n1) * float64(n2) / 2
		sigma2 := float64(n1) * float64(n2) * (float64(N+1) - T/float64(N*(N-1))) / 12
		if sigma2 <= 0 {
			pOut[k] = 1.0
			continue
		}

		diff := U - mu
		var cc float64
		if continuityCorrection {
			cc = 0.5
			if diff < 0 {
				cc = -0.5
			}
		}
		z := (diff - cc) / math.Sqrt(sigma2)
		pOut[k] = pValueFromZ(z, alt)
	}
}

func pValueFromZ(z float64, alt Alternative) float64 {
	switch alt {
	case Less:
		return standardNormal.CDF(z)
	case Greater:
		return 1 - standardNormal.CDF(z)
	default:
		p := 2 * standardNormal.CDF(-math.Abs(z))
		if p > 1 {
			p = 1
		}
		return p
	}
}
