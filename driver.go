package scde

import "fmt"

// Driver runs the full one-vs-rest differential-expression pipeline
// across every feature of a matrix against a fixed cluster labeling:
// reduce, test, fold-change, filter, sort, adjust.
type Driver struct {
	cfg Config
}

// NewDriver returns a Driver bound to cfg.
func NewDriver(cfg Config) *Driver { return &Driver{cfg: cfg} }

// Run executes the pipeline over m against labels, restricting the tested
// feature set to those where mask[i] is true (every feature, if mask is
// nil). mask is an explicit knob the source lacks: there the top-level
// call accepts a "features" subset argument that is parsed but never
// actually reaches the per-feature filtering loop, so every feature in
// the assay is tested regardless of what the caller asked for.
// Bonferroni adjustment still multiplies by m's full feature count
// (source parity, see AdjustBonferroni) even when mask narrows what is
// tested.
//
// m is oriented per cfg.FeaturesAsRows: when true (the default) rows are
// features and columns are samples; when false, columns are features.
// labels.Len() must equal the sample axis length.
func (d *Driver) Run(m *CSC64, labels Labels, featureNames, clusterNames []string, mask []bool) (Result, error) {
	if d.cfg.Test != RankSumTest && d.cfg.Test != StudentsTTest {
		return Result{}, ErrUnknownTest
	}

	nSamples := labels.Len()

	var source *CSC64
	if d.cfg.FeaturesAsRows {
		if m.NCol() != nSamples {
			return Result{}, fmt.Errorf("%w: %d samples in labels, %d columns in matrix", ErrDimensionMismatch, nSamples, m.NCol())
		}
		t, err := Transpose(m)
		if err != nil {
			return Result{}, err
		}
		source = t
	} else {
		if m.NRow() != nSamples {
			return Result{}, fmt.Errorf("%w: %d samples in labels, %d rows in matrix", ErrDimensionMismatch, nSamples, m.NRow())
		}
		source = m
	}

	nFeatures := source.NCol()
	if mask != nil && len(mask) != nFeatures {
		return Result{}, fmt.Errorf("%w: mask length %d, %d features", ErrDimensionMismatch, len(mask), nFeatures)
	}

	K := labels.K()
	sizes := labels.Sizes()
	filt := FilterOpts{
		MinPct:         d.cfg.MinPct,
		MinDiffPct:     d.cfg.MinDiffPct,
		LogFCThreshold: d.cfg.LogFCThreshold,
		OnlyPos:        d.cfg.OnlyPos,
		PThresh:        d.cfg.PThresh,
	}

	results := make([][]Row, nFeatures)

	pool := newWorkerPool(d.cfg.Threads)
	defer pool.Close()

	pool.ParallelFor(nFeatures, func(start, end int) {
		reducer := NewReducer()
		aggs := make([]Aggregate, K)
		pvals := make([]float64, K)
		opts := ReduceOpts{
			Histogram:  d.cfg.Test == RankSumTest,
			SumSquares: d.cfg.Test == StudentsTTest,
		}

		for f := start; f < end; f++ {
			if mask != nil && !mask[f] {
				continue
			}

			col := source.Column(f)
			reducer.Reduce(col, labels, opts, aggs)

			var totalSum float64
			var totalNZ int
			for k := 0; k < K; k++ {
				totalSum += aggs[k].Sum
				totalNZ += int(aggs[k].NZ)
			}

			switch d.cfg.Test {
			case RankSumTest:
				RankSum(aggs, sizes, nSamples, d.cfg.ContinuityCorrection, d.cfg.Alternative, pvals)
			case StudentsTTest:
				for k := 0; k < K; k++ {
					_, pvals[k] = TTest(aggs, sizes, k, d.cfg.VarEqual)
				}
			}

			var rows []Row
			for k := 0; k < K; k++ {
				fc := ComputeFoldChange(aggs[k], sizes[k], totalSum, totalNZ, nSamples, d.cfg.FoldChange)
				if !PassesPreFilter(fc, filt) {
					continue
				}
				rows = append(rows, Row{
					Feature:  f,
					Cluster:  k,
					PVal:     pvals[k],
					AvgLogFC: fc.AvgLogFC,
					Pct1:     fc.Pct1,
					Pct2:     fc.Pct2,
				})
			}

			reducer.Release(aggs)
			results[f] = rows
		}
	})

	var all []Row
	for _, rows := range results {
		all = append(all, rows...)
	}

	SortRows(all)
	AdjustBonferroni(all, nFeatures)
	all = FilterByPThresh(all, d.cfg.PThresh)

	return Result{Rows: all, FeatureNames: featureNames, ClusterNames: clusterNames}, nil
}
