package interval

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether t lies within [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Buffer expands each interval by the given number of minutes on both sides.
// With minutes == 0 the input slice is returned as is.
func Buffer(intervals []Interval, minutes int) []Interval {
	if minutes == 0 {
		return intervals
	}

	d := time.Duration(minutes) * time.Minute
	expanded := make([]Interval, len(intervals))
	for i, iv := range intervals {
		expanded[i] = Interval{
			Start: iv.Start.Add(-d),
			End:   iv.End.Add(d),
		}
	}
	return expanded
}

// Merge sorts the intervals by start time and folds together any that overlap
// or touch. Touching counts: an interval starting exactly where the previous
// one ends is absorbed into it, which is what the buffered-busy math downstream
// expects.
//
// The result is sorted, pairwise disjoint, and covers exactly the union of the
// input. Merge(Merge(x)) == Merge(x).
func Merge(intervals []Interval) []Interval {
	if len(intervals) <= 1 {
		return intervals
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	merged = append(merged, sorted[0])

	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]

		if !cur.Start.After(last.End) {
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}

		merged = append(merged, cur)
	}

	return merged
}

// OverlapsAny reports whether the candidate range [start, end) overlaps any of
// the given intervals. Half-open semantics: touching endpoints are not an
// overlap, so a candidate ending exactly when a busy block starts is free.
func OverlapsAny(start, end time.Time, intervals []Interval) bool {
	for _, iv := range intervals {
		if start.Before(iv.End) && iv.Start.Before(end) {
			return true
		}
	}
	return false
}
