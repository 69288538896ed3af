// Package divergence computes the distance and significance measures used by
// bias audits: a normal-approximation binomial test on human accuracy, and
// paired-sample surrogates of KL divergence, Jensen-Shannon divergence and
// Earth Mover's Distance between an unbiased and a biased score series.
//
// The divergence functions operate on raw, index-aligned score sequences, not
// on normalized probability histograms. Risk thresholds downstream are
// calibrated against exactly these surrogates, so they must not be replaced
// with textbook formulas.
//
// Every function is pure. Input-shape errors (mismatched lengths) are
// signaled with NaN rather than an error value.
package divergence
