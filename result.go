package scde

import (
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Row is one (feature, cluster) record of the long-format result table:
// columns {p_val, p_val_adj, avg_logFC, pct.1, pct.2, cluster, gene},
// here as struct fields plus integer feature/cluster ids that Result
// resolves to names.
type Row struct {
	Feature  int
	Cluster  int
	PVal     float64
	PValAdj  float64
	AvgLogFC float64
	Pct1     float64
	Pct2     float64
}

// Result is the long-format output of Driver.Run: one Row per surviving
// (feature, cluster) pair, already filtered, sorted and Bonferroni-
// adjusted, plus the name vectors needed to present Feature/Cluster ids
// as gene/cluster labels.
type Result struct {
	Rows         []Row
	FeatureNames []string
	ClusterNames []string
}

// Gene returns the presentation name of row r's feature, falling back to
// its integer index (as a string) when FeatureNames is absent — matching
// the source's behavior of synthesizing integer labels when no factor
// names are available.
func (res Result) Gene(r Row) string {
	if res.FeatureNames != nil && r.Feature < len(res.FeatureNames) {
		return res.FeatureNames[r.Feature]
	}
	return strconv.Itoa(r.Feature)
}

// ClusterName returns the presentation name of row r's cluster.
func (res Result) ClusterName(r Row) string {
	if res.ClusterNames != nil && r.Cluster < len(res.ClusterNames) {
		return res.ClusterNames[r.Cluster]
	}
	return strconv.Itoa(r.Cluster)
}

// WidePVal returns the wide-matrix view of the result: an F x K (or K x
// F, transposed) dense matrix of p-values, with 1.0 in any cell whose
// (feature, cluster) pair was filtered out of Rows.
func (res Result) WidePVal(nFeatures, nClusters int, transposed bool) *mat.Dense {
	var out *mat.Dense
	if transposed {
		out = mat.NewDense(nClusters, nFeatures, nil)
		for i := range out.RawMatrix().Data {
			out.RawMatrix().Data[i] = 1.0
		}
		for _, r := range res.Rows {
			out.Set(r.Cluster, r.Feature, r.PVal)
		}
		return out
	}
	out = mat.NewDense(nFeatures, nClusters, nil)
	for i := range out.RawMatrix().Data {
		out.RawMatrix().Data[i] = 1.0
	}
	for _, r := range res.Rows {
		out.Set(r.Feature, r.Cluster, r.PVal)
	}
	return out
}
