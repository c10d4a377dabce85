// Package anomaly flags statistically unusual days in a net-change series
package anomaly

import "math"

// DefaultThreshold is the |z| bound above which a day counts as anomalous
const DefaultThreshold = 2.0

// minPoints is the smallest series that yields a meaningful dispersion
const minPoints = 3

// Classification is the direction of an anomaly
type Classification string

const (
	// Spike is an unusually large gain
	Spike Classification = "spike"
	// Drop is an unusually large loss
	Drop Classification = "drop"
)

// Severity buckets an anomaly by how far it sits from the mean
type Severity string

const (
	// SeverityLow covers threshold < |z| <= 2.5
	SeverityLow Severity = "low"
	// SeverityMedium covers 2.5 < |z| <= 3.0
	SeverityMedium Severity = "medium"
	// SeverityHigh covers |z| > 3.0
	SeverityHigh Severity = "high"
)

// Point is one day of the net-change series
type Point struct {
	Day       string
	NewCount  int
	LostCount int
	NetChange int
}

// Anomaly is a flagged point with its score and classification
type Anomaly struct {
	Point
	ZScore         float64
	Classification Classification
	Severity       Severity
}

// Detect scores every point against the window mean using the population
// standard deviation (divide by N) and returns the points whose |z| strictly
// exceeds threshold, preserving input order
//
// Fewer than three points return nil: not enough signal for dispersion.
// A flat series has sigma zero; by convention every z is then zero, so
// nothing is flagged and no NaN or Inf can escape
func Detect(points []Point, threshold float64) []Anomaly {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if len(points) < minPoints {
		return nil
	}

	n := float64(len(points))
	var sum float64
	for _, p := range points {
		sum += float64(p.NetChange)
	}
	mean := sum / n

	var sqdev float64
	for _, p := range points {
		d := float64(p.NetChange) - mean
		sqdev += d * d
	}
	sigma := math.Sqrt(sqdev / n)

	var out []Anomaly
	for _, p := range points {
		var z float64
		if sigma != 0 {
			z = (float64(p.NetChange) - mean) / sigma
		}
		if math.Abs(z) <= threshold {
			continue
		}
		a := Anomaly{Point: p, ZScore: z, Severity: severityOf(math.Abs(z))}
		if z > 0 {
			a.Classification = Spike
		} else {
			a.Classification = Drop
		}
		out = append(out, a)
	}
	return out
}

// severityOf tiers an absolute z-score, highest tier first
func severityOf(absZ float64) Severity {
	switch {
	case absZ > 3.0:
		return SeverityHigh
	case absZ > 2.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
