package scde

import "math"

// FoldChange is the per-(feature, cluster) output of the detection-rate /
// fold-change kernel.
type FoldChange struct {
	Mean1, Mean2 float64
	Pct1, Pct2   float64
	AvgLogFC     float64
}

// FoldChangeOpts configures the log-fold-change computation.
type FoldChangeOpts struct {
	Pseudocount float64
	LogBase     float64
	UseExpm1    bool
}

// DefaultFoldChangeOpts matches the documented defaults: pseudocount 1,
// log base 2, expm1 inversion enabled (input assumed log1p-normalized).
func DefaultFoldChangeOpts() FoldChangeOpts {
	return FoldChangeOpts{Pseudocount: 1.0, LogBase: 2, UseExpm1: true}
}

// ComputeFoldChange derives mean/detection-rate/log-fold-change for
// cluster k of one feature from totals already known to the driver
// (totalSum, totalNZ, N) and the cluster's own Aggregate.
func ComputeFoldChange(agg Aggregate, sizeK int, totalSum float64, totalNZ int, N int, opts FoldChangeOpts) FoldChange {
	n2 := N - sizeK
	complementSum := totalSum - agg.Sum
	complementNZ := totalNZ - int(agg.NZ)

	fc := FoldChange{}
	if sizeK > 0 {
		fc.Mean1 = agg.Sum / float64(sizeK)
		fc.Pct1 = float64(agg.NZ) / float64(sizeK)
	}
	if n2 > 0 {
		fc.Mean2 = complementSum / float64(n2)
		fc.Pct2 = float64(complementNZ) / float64(n2)
	}

	if opts.UseExpm1 {
		a := math.Expm1(fc.Mean1) + opts.Pseudocount
		b := math.Expm1(fc.Mean2) + opts.Pseudocount
		fc.AvgLogFC = logBase(a, opts.LogBase) - logBase(b, opts.LogBase)
	} else {
		fc.AvgLogFC = fc.Mean1 - fc.Mean2
	}

	return fc
}

func logBase(v, base float64) float64 {
	return math.Log(v) / math.Log(base)
}
