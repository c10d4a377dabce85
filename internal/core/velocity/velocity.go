// Package velocity implements window statistics over daily backlink facts
package velocity

import (
	"sort"
	"time"
)

// DefaultWindowDays is the trailing window used when a caller passes none
const DefaultWindowDays = 30

// DayFact is one day of backlink movement for a domain
// Day is a calendar day formatted YYYY-MM-DD so lexicographic order is chronological
type DayFact struct {
	Day        string
	NewCount   int
	LostCount  int
	NetChange  int
	TotalCount int
}

// Stats summarizes a trailing window of day facts
// averages divide by DaysTracked, not the window size, so gap days do not dilute them
type Stats struct {
	AvgNewPerDay  float64
	AvgLostPerDay float64
	AvgNetChange  float64
	TotalNew      int
	TotalLost     int
	NetChange     int
	DaysTracked   int
}

// Cutoff returns the inclusive YYYY-MM-DD lower bound for a trailing window ending today
func Cutoff(today time.Time, windowDays int) string {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return today.UTC().AddDate(0, 0, -windowDays).Format(time.DateOnly)
}

// Window filters facts to Day >= cutoff and returns them ascending by day
func Window(facts []DayFact, cutoff string) []DayFact {
	out := make([]DayFact, 0, len(facts))
	for _, f := range facts {
		if f.Day >= cutoff {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// Compute reduces a window of day facts into Stats
// an empty window yields the zero Stats, never a division by zero
func Compute(facts []DayFact) Stats {
	var s Stats
	s.DaysTracked = len(facts)
	if s.DaysTracked == 0 {
		return s
	}
	for _, f := range facts {
		s.TotalNew += f.NewCount
		s.TotalLost += f.LostCount
		s.NetChange += f.NetChange
	}
	n := float64(s.DaysTracked)
	s.AvgNewPerDay = float64(s.TotalNew) / n
	s.AvgLostPerDay = float64(s.TotalLost) / n
	s.AvgNetChange = float64(s.NetChange) / n
	return s
}
