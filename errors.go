package scde

import "errors"

// Sentinel errors returned by the matrix container, the kernels and the
// driver. Callers should compare with errors.Is rather than string
// matching; messages may gain context via fmt.Errorf("...: %w", ...) at
// call boundaries without breaking errors.Is.
var (
	// ErrMalformedMatrix is returned when a CSC triple violates one of the
	// invariants in §3: non-decreasing column pointers, strictly ascending
	// row indices within a column, p[0]==0, p[ncol]==nnz, or an explicit
	// zero stored in x.
	ErrMalformedMatrix = errors.New("scde: malformed matrix")

	// ErrDimensionMismatch is returned when a label vector's length
	// doesn't match the sample axis, or rbind/cbind operands disagree on
	// the axis being concatenated.
	ErrDimensionMismatch = errors.New("scde: dimension mismatch")

	// ErrOverflow is returned when nnz would exceed the range of the
	// selected pointer width.
	ErrOverflow = errors.New("scde: pointer width overflow")

	// ErrUnknownTest is returned when Config.Test names a statistical
	// kernel the driver doesn't recognise.
	ErrUnknownTest = errors.New("scde: unknown test")

	// ErrInvalidLabels is returned by NewLabels when the label vector is
	// empty or a cluster label falls outside [0, K). A label vector whose
	// length disagrees with the matrix is reported as ErrDimensionMismatch.
	ErrInvalidLabels = errors.New("scde: invalid cluster labels")
)
