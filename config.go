package scde

import "math"

// Test selects the statistical kernel the driver runs.
type Test int

const (
	// RankSumTest selects the Wilcoxon-Mann-Whitney kernel (the default).
	RankSumTest Test = iota
	// StudentsTTest selects the Student's t kernel.
	StudentsTTest
)

// Default option values for Config, matching the documented defaults of
// the underlying statistical kernels.
const (
	DefaultContinuityCorrection = true
	DefaultVarEqual             = false
	DefaultMinPct               = 0.1
	DefaultLogFCThreshold       = 0.25
	DefaultOnlyPos              = false
	DefaultPseudocount          = 1.0
	DefaultLogBase              = 2.0
	DefaultUseExpm1             = true
	DefaultPThresh              = 1e-2
	DefaultThreads              = 1
)

// DefaultMinDiffPct is -Inf: the detection-rate-difference filter is
// disabled unless a caller opts in with WithMinDiffPct.
var DefaultMinDiffPct = math.Inf(-1)

// Config holds the full set of options recognized by the DE driver.
// Build one with NewConfig and zero or more Option setters; the zero
// Config is not valid on its own — always go through NewConfig so the
// documented defaults are filled in.
type Config struct {
	Test                 Test
	ContinuityCorrection bool
	VarEqual             bool
	Alternative          Alternative
	MinPct               float64
	MinDiffPct           float64
	LogFCThreshold       float64
	OnlyPos              bool
	FoldChange           FoldChangeOpts
	PThresh              float64
	Threads              int
	FeaturesAsRows       bool
}

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig resolves zero or more Option setters against the documented
// defaults.
func NewConfig(opts ...Option) Config {
	c := Config{
		Test:                 RankSumTest,
		ContinuityCorrection: DefaultContinuityCorrection,
		VarEqual:             DefaultVarEqual,
		Alternative:          TwoSided,
		MinPct:               DefaultMinPct,
		MinDiffPct:           DefaultMinDiffPct,
		LogFCThreshold:       DefaultLogFCThreshold,
		OnlyPos:              DefaultOnlyPos,
		FoldChange:           DefaultFoldChangeOpts(),
		PThresh:              DefaultPThresh,
		Threads:              DefaultThreads,
		FeaturesAsRows:       true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithTest selects the statistical kernel.
func WithTest(t Test) Option { return func(c *Config) { c.Test = t } }

// WithContinuityCorrection toggles the WMW continuity correction.
func WithContinuityCorrection(v bool) Option {
	return func(c *Config) { c.ContinuityCorrection = v }
}

// WithVarEqual selects pooled (true) vs Welch (false) variance for the
// t-test kernel.
func WithVarEqual(v bool) Option { return func(c *Config) { c.VarEqual = v } }

// WithAlternative selects the comparison tail of the rank-sum kernel; the
// t-test kernel is always two-sided.
func WithAlternative(a Alternative) Option { return func(c *Config) { c.Alternative = a } }

// WithMinPct sets the minimum detection rate (in either group) a
// (feature, cluster) pair must clear to survive filtering.
func WithMinPct(v float64) Option { return func(c *Config) { c.MinPct = v } }

// WithMinDiffPct sets the minimum |pct.1 - pct.2| a pair must clear.
func WithMinDiffPct(v float64) Option { return func(c *Config) { c.MinDiffPct = v } }

// WithLogFCThreshold sets the minimum |avg_logFC| a pair must clear.
func WithLogFCThreshold(v float64) Option { return func(c *Config) { c.LogFCThreshold = v } }

// WithOnlyPos, when true, drops pairs with avg_logFC <= 0.
func WithOnlyPos(v bool) Option { return func(c *Config) { c.OnlyPos = v } }

// WithFoldChangeOpts overrides the pseudocount/log-base/expm1 semantics
// of the fold-change kernel.
func WithFoldChangeOpts(o FoldChangeOpts) Option { return func(c *Config) { c.FoldChange = o } }

// WithPThresh sets the p-value reporting cutoff.
func WithPThresh(v float64) Option { return func(c *Config) { c.PThresh = v } }

// WithThreads sets the worker-pool size; 0 means runtime.GOMAXPROCS(0).
func WithThreads(n int) Option { return func(c *Config) { c.Threads = n } }

// WithFeaturesAsRows selects whether matrix rows (true, the default) or
// columns (false) correspond to features.
func WithFeaturesAsRows(v bool) Option { return func(c *Config) { c.FeaturesAsRows = v } }
