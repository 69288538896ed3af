package audit

import (
	"encoding/json"
	"math"
)

// RiskTier is the closed set of bias-risk classifications derived from KL divergence
type RiskTier int

const (
	RiskHigh RiskTier = iota
	RiskModerate
	RiskLow
)

// Thresholds on KL divergence between the unbiased and biased score series.
// Lower divergence means the fair scorer resembles the biased one.
const (
	HighRiskBelow     = 0.1
	ModerateRiskBelow = 0.5
)

// String returns the tier name
func (t RiskTier) String() string {
	switch t {
	case RiskHigh:
		return "High"
	case RiskModerate:
		return "Moderate"
	case RiskLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the tier by name
func (t RiskTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// RiskProfile is the fixed copy and color attached to a tier
type RiskProfile struct {
	Tier        RiskTier `json:"tier"`
	Headline    string   `json:"headline"`
	Color       string   `json:"color"`
	Explanation string   `json:"explanation"`
}

var riskProfiles = map[RiskTier]RiskProfile{
	RiskHigh: {
		Tier:     RiskHigh,
		Headline: "High Bias Detected",
		Color:    "#dc3545",
		Explanation: "The AI's scoring distribution is very similar to the biased judge's. " +
			"This is a high-risk finding, suggesting the AI has learned and replicated the human bias. " +
			"Immediate action is recommended to identify the source of the bias in the AI model.",
	},
	RiskModerate: {
		Tier:     RiskModerate,
		Headline: "Moderate Bias Detected",
		Color:    "#ffc107",
		Explanation: "The AI's scoring distribution shows some similarity to the biased judge's. " +
			"This indicates a potential risk of unfair outcomes that should be investigated to ensure " +
			"equitable results for all candidates.",
	},
	RiskLow: {
		Tier:     RiskLow,
		Headline: "Low Bias Detected",
		Color:    "#28a745",
		Explanation: "The AI's scoring distribution is significantly different from the biased judge's. " +
			"This suggests a lower risk of replicating this specific human bias, though continuous " +
			"monitoring is always recommended for fairness.",
	},
}

// ClassifyRisk maps a KL divergence onto a tier. NaN fails both threshold
// comparisons and lands in RiskLow.
func ClassifyRisk(kl float64) RiskTier {
	switch {
	case kl < HighRiskBelow:
		return RiskHigh
	case kl < ModerateRiskBelow:
		return RiskModerate
	default:
		return RiskLow
	}
}

// ProfileFor returns the fixed narrative for a tier
func ProfileFor(tier RiskTier) RiskProfile {
	if p, ok := riskProfiles[tier]; ok {
		return p
	}
	return RiskProfile{Tier: tier, Headline: "Unclassified", Color: "#6c757d"}
}

// SeriesSummary holds descriptive statistics of one score series
type SeriesSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// MeanShift is Welch's t-test of the difference between the A and B means.
// Defined is false when either series has fewer than two scores or both
// are constant; the remaining fields are then zero with PValue 1.
type MeanShift struct {
	Defined bool    `json:"defined"`
	TStat   float64 `json:"t_stat"`
	DF      float64 `json:"df"`
	PValue  float64 `json:"p_value"`
	CohensD float64 `json:"cohens_d"`
}

// ScoreSummary compares the unbiased (A) and biased (B) series
type ScoreSummary struct {
	A          SeriesSummary `json:"a"`
	B          SeriesSummary `json:"b"`
	PooledMean float64       `json:"pooled_mean"`
	MeanShift  MeanShift     `json:"mean_shift"`
}

// MetricsReport is recomputed on demand from a trial snapshot
type MetricsReport struct {
	Total        int          `json:"total"`
	Correct      int          `json:"correct"`
	Accuracy     float64      `json:"accuracy"`
	PValue       float64      `json:"p_value"`
	ExactPValue  float64      `json:"exact_p_value"`
	Significant  bool         `json:"significant"`
	KLDivergence float64      `json:"kl_divergence"`
	JSDivergence float64      `json:"js_divergence"`
	EMD          float64      `json:"emd"`
	RiskTier     RiskTier     `json:"risk_tier"`
	Scores       ScoreSummary `json:"scores"`
}

// MarshalJSON writes non-finite metrics as null; encoding/json rejects NaN
func (m MetricsReport) MarshalJSON() ([]byte, error) {
	type plain MetricsReport
	return json.Marshal(struct {
		plain
		KLDivergence *float64 `json:"kl_divergence"`
		JSDivergence *float64 `json:"js_divergence"`
		EMD          *float64 `json:"emd"`
	}{
		plain:        plain(m),
		KLDivergence: finiteOrNil(m.KLDivergence),
		JSDivergence: finiteOrNil(m.JSDivergence),
		EMD:          finiteOrNil(m.EMD),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
