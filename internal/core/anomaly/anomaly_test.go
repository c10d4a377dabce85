package anomaly

import (
	"math"
	"testing"
)

func series(vals ...int) []Point {
	out := make([]Point, len(vals))
	for i, v := range vals {
		out[i] = Point{Day: "2026-03-01", NetChange: v}
	}
	return out
}

func TestDetect_TooFewPoints(t *testing.T) {
	t.Parallel()

	// two points can be arbitrarily extreme and still carry no signal
	if got := Detect(series(0, 1_000_000), DefaultThreshold); got != nil {
		t.Fatalf("Detect on 2 points = %+v, want nil", got)
	}
	if got := Detect(nil, DefaultThreshold); got != nil {
		t.Fatalf("Detect on empty = %+v, want nil", got)
	}
}

func TestDetect_FlatSeries(t *testing.T) {
	t.Parallel()

	// sigma is zero, so by convention every z is zero and nothing is flagged
	if got := Detect(series(7, 7, 7, 7, 7), DefaultThreshold); got != nil {
		t.Fatalf("Detect on flat series = %+v, want nil", got)
	}
}

func TestDetect_ExactThresholdNotFlagged(t *testing.T) {
	t.Parallel()

	// mean 12, population sigma 14, so the last point lands on z = 2.0 exactly
	// the threshold is strict, a z of exactly 2.0 is not an anomaly
	got := Detect(series(5, 5, 5, 5, 40), 2.0)
	if got != nil {
		t.Fatalf("z == 2.0 must not be flagged, got %+v", got)
	}
}

func TestDetect_SpikeFlagged(t *testing.T) {
	t.Parallel()

	// nine zeros and one 100: mean 10, population sigma 30, z = 3.0 for the spike
	points := series(0, 0, 0, 0, 0, 0, 0, 0, 0, 100)
	points[9].Day = "2026-03-10"

	got := Detect(points, DefaultThreshold)
	if len(got) != 1 {
		t.Fatalf("Detect flagged %d points, want 1: %+v", len(got), got)
	}
	a := got[0]
	if a.Day != "2026-03-10" || a.NetChange != 100 {
		t.Fatalf("wrong point flagged: %+v", a)
	}
	if a.Classification != Spike {
		t.Fatalf("Classification = %q, want spike", a.Classification)
	}
	// z of exactly 3.0 sits in the medium tier, high requires > 3.0
	if a.Severity != SeverityMedium {
		t.Fatalf("Severity = %q, want medium", a.Severity)
	}
	if math.Abs(a.ZScore-3.0) > 1e-9 {
		t.Fatalf("ZScore = %v, want 3.0", a.ZScore)
	}
}

func TestDetect_DropFlagged(t *testing.T) {
	t.Parallel()

	// nine tens and one -80: mean 1, population sigma 27, z = -3.0 for the drop
	got := Detect(series(10, 10, 10, 10, 10, 10, 10, 10, 10, -80), DefaultThreshold)
	if len(got) != 1 {
		t.Fatalf("Detect flagged %d points, want 1: %+v", len(got), got)
	}
	if got[0].Classification != Drop {
		t.Fatalf("Classification = %q, want drop", got[0].Classification)
	}
	if math.Abs(got[0].ZScore+3.0) > 1e-9 {
		t.Fatalf("ZScore = %v, want -3.0", got[0].ZScore)
	}
}

func TestDetect_ZeroThresholdFallsBack(t *testing.T) {
	t.Parallel()

	// a zero or negative threshold means "use the default", not "flag everything"
	if got := Detect(series(5, 5, 5, 5, 40), 0); got != nil {
		t.Fatalf("threshold 0 should fall back to default: %+v", got)
	}
}

func TestSeverityTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		absZ float64
		want Severity
	}{
		{3.1, SeverityHigh},
		{3.0, SeverityMedium}, // high is strict
		{2.6, SeverityMedium},
		{2.5, SeverityLow}, // medium is strict
		{2.1, SeverityLow},
	}
	for _, c := range cases {
		if got := severityOf(c.absZ); got != c.want {
			t.Errorf("severityOf(%v) = %q, want %q", c.absZ, got, c.want)
		}
	}
}
