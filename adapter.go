package scde

import "fmt"

// FeatureMatrixSource abstracts where a feature-by-sample matrix comes
// from, so Driver.Run can be handed anything from an in-memory Builder to
// a parsed feature-barcode HDF5 group without caring which. Every
// implementation returns its matrix already paired with the name vectors
// Result needs to resolve feature/cluster ids back to labels.
type FeatureMatrixSource interface {
	ToCSC64() (m *CSC64, featureNames, sampleNames []string, err error)
}

// RawSource adapts an already-built CSC64 plus its name vectors as a
// FeatureMatrixSource, for callers that already hold a matrix in memory.
type RawSource struct {
	Matrix       *CSC64
	FeatureNames []string
	SampleNames  []string
}

// ToCSC64 implements FeatureMatrixSource.
func (s RawSource) ToCSC64() (*CSC64, []string, []string, error) {
	return s.Matrix, s.FeatureNames, s.SampleNames, nil
}

// BuilderSource adapts a Builder[int64] mid-construction as a
// FeatureMatrixSource, converting it with Builder.ToCSC on every call to
// ToCSC64.
type BuilderSource struct {
	Builder      *Builder[int64]
	FeatureNames []string
	SampleNames  []string
}

// ToCSC64 implements FeatureMatrixSource.
func (s BuilderSource) ToCSC64() (*CSC64, []string, []string, error) {
	m, err := s.Builder.ToCSC()
	if err != nil {
		return nil, nil, nil, err
	}
	return m, s.FeatureNames, s.SampleNames, nil
}

// GenomeGroup is the shape of one genome's group within a feature-barcode
// matrix file laid out the way 10x Genomics' HDF5 format stores one. The
// engine does not read HDF5 itself; this struct is the contract a
// caller's HDF5 reader must fill in: three parallel CSC arrays, the
// matrix extent, and the axis labels.
type GenomeGroup struct {
	Data    []float64
	Indices []int32
	IndPtr  []int64

	// Shape is [nFeatures, nSamples], the on-disk convention: features as
	// rows, barcodes (samples) as columns.
	Shape [2]int

	FeatureNames []string
	Barcodes     []string
	FeatureType  []string
}

// ToCSC64 builds a CSC64 directly from the group's parallel arrays in
// features-as-rows orientation, matching the on-disk layout.
func (g GenomeGroup) ToCSC64() (*CSC64, []string, []string, error) {
	m, err := NewCSC[int64](g.Shape[0], g.Shape[1], g.Data, g.Indices, g.IndPtr, g.FeatureNames, g.Barcodes)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("genome group: %w", err)
	}
	return m, g.FeatureNames, g.Barcodes, nil
}
