package timerange

import (
	"sort"
	"time"
)

// Range is a half-open time interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// New builds a range. Valid ranges have Start before End.
func New(start, end time.Time) Range {
	return Range{Start: start, End: end}
}

// IsValid returns true if the range has positive length.
func (r Range) IsValid() bool {
	return r.Start.Before(r.End)
}

// Duration returns the length of the range.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps reports whether two ranges actually intersect.
// Touching boundaries do not overlap: a range ending at T and one
// starting at T are adjacent, not conflicting.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Subtract removes all blockers from r and returns the remaining sub-ranges,
// ordered by start time. Blockers that do not overlap r are ignored.
func (r Range) Subtract(blockers []Range) []Range {
	if !r.IsValid() {
		return nil
	}

	// Only overlapping blockers matter; sort them so a single pass works.
	relevant := make([]Range, 0, len(blockers))
	for _, b := range blockers {
		if b.IsValid() && r.Overlaps(b) {
			relevant = append(relevant, b)
		}
	}
	sort.Slice(relevant, func(i, j int) bool {
		return relevant[i].Start.Before(relevant[j].Start)
	})

	remaining := make([]Range, 0)
	cursor := r.Start

	for _, b := range relevant {
		if b.Start.After(cursor) {
			remaining = append(remaining, Range{Start: cursor, End: minTime(b.Start, r.End)})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(r.End) {
			return remaining
		}
	}

	if cursor.Before(r.End) {
		remaining = append(remaining, Range{Start: cursor, End: r.End})
	}

	return remaining
}

// Slice splits r into consecutive sub-ranges of the given duration,
// aligned to the range start. A trailing partial shorter than duration
// is discarded.
func (r Range) Slice(duration time.Duration) []Range {
	if !r.IsValid() || duration <= 0 {
		return nil
	}

	slots := make([]Range, 0, r.Duration()/duration)
	cursor := r.Start

	for {
		end := cursor.Add(duration)
		if end.After(r.End) {
			return slots
		}
		slots = append(slots, Range{Start: cursor, End: end})
		cursor = end
	}
}

// Merge sorts rs by start time and coalesces overlapping or touching
// ranges into a disjoint union. Invalid ranges are dropped.
func Merge(rs []Range) []Range {
	valid := make([]Range, 0, len(rs))
	for _, r := range rs {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	merged := make([]Range, 0, len(valid))
	for _, r := range valid {
		if len(merged) == 0 || r.Start.After(merged[len(merged)-1].End) {
			merged = append(merged, r)
			continue
		}
		last := &merged[len(merged)-1]
		if r.End.After(last.End) {
			last.End = r.End
		}
	}

	return merged
}

// SubtractAll applies Subtract to every range in rs and concatenates
// the results, preserving order.
func SubtractAll(rs []Range, blockers []Range) []Range {
	out := make([]Range, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Subtract(blockers)...)
	}
	return out
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
