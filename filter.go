package scde

import "sort"

// FilterOpts is the subset of Config the filter/rank/adjust pipeline
// reads.
type FilterOpts struct {
	MinPct         float64
	MinDiffPct     float64
	LogFCThreshold float64
	OnlyPos        bool
	PThresh        float64
}

// PassesPreFilter reports whether fc clears the detection-rate and
// fold-change gates a (feature, cluster) pair must pass before it is worth
// reporting: at least one of pct.1/pct.2 must meet MinPct, |pct.1 - pct.2|
// must meet MinDiffPct, and |avg_logFC| must meet LogFCThreshold. OnlyPos
// additionally drops any pair whose avg_logFC isn't strictly positive.
func PassesPreFilter(fc FoldChange, opts FilterOpts) bool {
	maxPct := fc.Pct1
	if fc.Pct2 > maxPct {
		maxPct = fc.Pct2
	}
	if maxPct < opts.MinPct {
		return false
	}

	diff := fc.Pct1 - fc.Pct2
	if diff < 0 {
		diff = -diff
	}
	if diff < opts.MinDiffPct {
		return false
	}

	logFC := fc.AvgLogFC
	if logFC < 0 {
		logFC = -logFC
	}
	if logFC < opts.LogFCThreshold {
		return false
	}

	if opts.OnlyPos && fc.AvgLogFC <= 0 {
		return false
	}

	return true
}

// SortRows orders rows by cluster ascending, then p-value ascending, then
// avg_logFC descending — a stable sort, so rows tied on all three keys
// keep the order the driver produced them in.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Cluster != rows[j].Cluster {
			return rows[i].Cluster < rows[j].Cluster
		}
		if rows[i].PVal != rows[j].PVal {
			return rows[i].PVal < rows[j].PVal
		}
		return rows[i].AvgLogFC > rows[j].AvgLogFC
	})
}

// AdjustBonferroni sets PValAdj = min(1, PVal * totalFeatures) on every row.
//
// totalFeatures is deliberately the full feature count of the matrix being
// tested, not len(rows) or the size of any feature mask passed to
// Driver.Run: the source computes p_val_adj with
// p.adjust(p_val, method = "bonferroni", n = nrow(x = object)), penalizing
// every surviving pair by every feature in the assay regardless of how many
// were actually filtered or tested. Preserved here rather than "fixed" so
// reported values match the source row for row.
func AdjustBonferroni(rows []Row, totalFeatures int) {
	for i := range rows {
		adj := rows[i].PVal * float64(totalFeatures)
		if adj > 1 {
			adj = 1
		}
		rows[i].PValAdj = adj
	}
}

// FilterByPThresh drops rows whose (pre-adjustment) p-value is at or
// above thresh, compacting rows in place. It matches the source's
// return.thresh gate, which is applied to p_val rather than the
// Bonferroni-adjusted value.
func FilterByPThresh(rows []Row, thresh float64) []Row {
	out := rows[:0]
	for _, r := range rows {
		if r.PVal < thresh {
			out = append(out, r)
		}
	}
	return out
}
