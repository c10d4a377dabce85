// Package trend buckets keyword position samples by day and averages them
package trend

import (
	"math"
	"sort"
)

// Sample is one keyword position observation on a calendar day
// Position nil means the keyword was not ranked that day and contributes nothing
type Sample struct {
	Day      string
	Position *int
}

// Point is one averaged position for a day, rounded to one decimal
type Point struct {
	Day             string
	AveragePosition float64
}

// Series buckets samples from any number of keywords into one point per day
//
// Unranked samples are skipped entirely: they neither count as zero nor shrink
// the denominator for ranked samples on the same day. Days where every member
// was unranked are absent from the output. Days ascend
func Series(samples []Sample) []Point {
	buckets := make(map[string][]int)
	for _, s := range samples {
		if s.Position == nil {
			continue
		}
		buckets[s.Day] = append(buckets[s.Day], *s.Position)
	}
	if len(buckets) == 0 {
		return nil
	}

	days := make([]string, 0, len(buckets))
	for d := range buckets {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]Point, 0, len(days))
	for _, d := range days {
		positions := buckets[d]
		var sum int
		for _, p := range positions {
			sum += p
		}
		avg := float64(sum) / float64(len(positions))
		out = append(out, Point{Day: d, AveragePosition: Round1(avg)})
	}
	return out
}

// Round1 rounds to one decimal place, the precision charts key off
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
