package glcm

import (
	"fmt"
	"strings"
)

// Feature selects one optional texture descriptor.
type Feature uint

const (
	ASM Feature = iota
	Contrast
	Correlation
	IDM
	Entropy
	Dissimilarity
	INV
	Variance
	ClusterShade
	ClusterProminence
	INN
	IDN
	MaxProb
	SumAvg
	SumEntropy
	SumVariance
	DiffVariance
	DiffEntropy
	AutoCorrelation
	IMC1
	IMC2
	MCC

	featureCount
)

var featureKeys = [featureCount]string{
	ASM:               "asm",
	Contrast:          "contrast",
	Correlation:       "correlation",
	IDM:               "idm",
	Entropy:           "entropy",
	Dissimilarity:     "dissimilarity",
	INV:               "inv",
	Variance:          "variance",
	ClusterShade:      "cluster_shade",
	ClusterProminence: "cluster_prominence",
	INN:               "inn",
	IDN:               "idn",
	MaxProb:           "max_prob",
	SumAvg:            "sum_avg",
	SumEntropy:        "sum_entropy",
	SumVariance:       "sum_variance",
	DiffVariance:      "diff_variance",
	DiffEntropy:       "diff_entropy",
	AutoCorrelation:   "autocorrelation",
	IMC1:              "imc1",
	IMC2:              "imc2",
	MCC:               "mcc",
}

var featureTitles = [featureCount]string{
	ASM:               "Angular Second Moment (ASM)",
	Contrast:          "Contrast",
	Correlation:       "Correlation",
	IDM:               "Inverse Difference Moment (IDM)",
	Entropy:           "Entropy",
	Dissimilarity:     "Dissimilarity",
	INV:               "Inverse Difference (INV)",
	Variance:          "Variance",
	ClusterShade:      "Cluster Shade (CS)",
	ClusterProminence: "Cluster Prominence (CP)",
	INN:               "Inverse Difference Normalized (INN)",
	IDN:               "Inverse Difference Moment Normalized (IDN)",
	MaxProb:           "Maximum Probability (MaxProb)",
	SumAvg:            "Sum Average (SumAvg)",
	SumEntropy:        "Sum Entropy (SumEnth)",
	SumVariance:       "Sum Variance (SumVar)",
	DiffVariance:      "Difference Variance (DiffVar)",
	DiffEntropy:       "Difference Entropy (DiffEnth)",
	AutoCorrelation:   "Autocorrelation (AutoCorr)",
	IMC1:              "Information Measure of Correlation 1 (IMC1)",
	IMC2:              "Information Measure of Correlation 2 (IMC2)",
	MCC:               "Maximal Correlation Coefficient (MCC)",
}

// Key is the lower-case identifier used in flags and preset files.
func (f Feature) Key() string {
	if f >= featureCount {
		return fmt.Sprintf("feature(%d)", uint(f))
	}
	return featureKeys[f]
}

// Title is the human readable label shown next to selection checkboxes.
func (f Feature) Title() string {
	if f >= featureCount {
		return f.Key()
	}
	return featureTitles[f]
}

func (f Feature) String() string {
	return f.Key()
}

// AllFeatures lists every selectable feature in output column order.
func AllFeatures() []Feature {
	all := make([]Feature, featureCount)
	for i := range all {
		all[i] = Feature(i)
	}
	return all
}

// ParseFeature resolves a feature key, case-insensitively.
func ParseFeature(key string) (Feature, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for i, name := range featureKeys {
		if name == k {
			return Feature(i), nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q: %w", key, ErrInvalidInput)
}

// FeatureSet is an immutable bit set of selected features.
type FeatureSet uint32

// NewFeatureSet returns a set holding exactly fs.
func NewFeatureSet(fs ...Feature) FeatureSet {
	var s FeatureSet
	for _, f := range fs {
		s = s.With(f)
	}
	return s
}

// AllFeatureSet selects every feature.
func AllFeatureSet() FeatureSet {
	return NewFeatureSet(AllFeatures()...)
}

// ParseFeatureSet accepts a comma separated list of keys, or "all".
// An empty string yields the empty set.
func ParseFeatureSet(list string) (FeatureSet, error) {
	var s FeatureSet
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "all") {
			s |= AllFeatureSet()
			continue
		}
		f, err := ParseFeature(part)
		if err != nil {
			return 0, err
		}
		s = s.With(f)
	}
	return s, nil
}

func (s FeatureSet) With(f Feature) FeatureSet {
	if f >= featureCount {
		return s
	}
	return s | 1<<f
}

func (s FeatureSet) Without(f Feature) FeatureSet {
	return s &^ (1 << f)
}

func (s FeatureSet) Has(f Feature) bool {
	return f < featureCount && s&(1<<f) != 0
}

// Features returns the members of s in column order.
func (s FeatureSet) Features() []Feature {
	var out []Feature
	for _, f := range AllFeatures() {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FeatureSet) String() string {
	keys := make([]string, 0, featureCount)
	for _, f := range s.Features() {
		keys = append(keys, f.Key())
	}
	return strings.Join(keys, ",")
}

// Config is the per-call selection of what to compute. It is a value type;
// nothing in this package keeps a mutable default.
type Config struct {
	Step        int
	Features    FeatureSet
	ShowBasic   bool
	CheckCounts bool
}

// DefaultConfig matches the selection a fresh session starts with.
func DefaultConfig() Config {
	return Config{
		Step:        1,
		Features:    NewFeatureSet(Contrast, Correlation),
		ShowBasic:   true,
		CheckCounts: true,
	}
}

func (c Config) Validate() error {
	if c.Step < 1 {
		return fmt.Errorf("step must be at least 1, got %d: %w", c.Step, ErrInvalidInput)
	}
	return nil
}
