package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rng(t *testing.T, startHour, startMin, endHour, endMin int) Range {
	t.Helper()
	day := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	return Range{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"partial overlap", rng(t, 10, 0, 11, 0), rng(t, 10, 30, 11, 30), true},
		{"containment", rng(t, 9, 0, 12, 0), rng(t, 10, 0, 11, 0), true},
		{"identical", rng(t, 10, 0, 11, 0), rng(t, 10, 0, 11, 0), true},
		{"touching boundaries are adjacent", rng(t, 9, 0, 10, 0), rng(t, 10, 0, 11, 0), false},
		{"disjoint", rng(t, 9, 0, 10, 0), rng(t, 12, 0, 13, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestSubtract(t *testing.T) {
	t.Run("blocker in the middle splits the range", func(t *testing.T) {
		got := rng(t, 9, 0, 12, 0).Subtract([]Range{rng(t, 10, 0, 11, 0)})
		require.Len(t, got, 2)
		assert.Equal(t, rng(t, 9, 0, 10, 0), got[0])
		assert.Equal(t, rng(t, 11, 0, 12, 0), got[1])
	})

	t.Run("blocker covering everything leaves nothing", func(t *testing.T) {
		got := rng(t, 9, 0, 12, 0).Subtract([]Range{rng(t, 8, 0, 13, 0)})
		assert.Empty(t, got)
	})

	t.Run("non-overlapping blockers are ignored", func(t *testing.T) {
		got := rng(t, 9, 0, 12, 0).Subtract([]Range{rng(t, 13, 0, 14, 0)})
		require.Len(t, got, 1)
		assert.Equal(t, rng(t, 9, 0, 12, 0), got[0])
	})

	t.Run("unsorted overlapping blockers", func(t *testing.T) {
		got := rng(t, 9, 0, 13, 0).Subtract([]Range{
			rng(t, 11, 0, 11, 30),
			rng(t, 9, 30, 10, 0),
			rng(t, 11, 15, 12, 0),
		})
		require.Len(t, got, 3)
		assert.Equal(t, rng(t, 9, 0, 9, 30), got[0])
		assert.Equal(t, rng(t, 10, 0, 11, 0), got[1])
		assert.Equal(t, rng(t, 12, 0, 13, 0), got[2])
	})

	t.Run("blocker touching the edge leaves the range intact", func(t *testing.T) {
		got := rng(t, 9, 0, 12, 0).Subtract([]Range{rng(t, 8, 0, 9, 0), rng(t, 12, 0, 13, 0)})
		require.Len(t, got, 1)
		assert.Equal(t, rng(t, 9, 0, 12, 0), got[0])
	})
}

func TestMerge(t *testing.T) {
	t.Run("overlapping ranges coalesce", func(t *testing.T) {
		got := Merge([]Range{rng(t, 9, 0, 12, 0), rng(t, 10, 0, 13, 0)})
		require.Len(t, got, 1)
		assert.Equal(t, rng(t, 9, 0, 13, 0), got[0])
	})

	t.Run("touching ranges coalesce", func(t *testing.T) {
		got := Merge([]Range{rng(t, 9, 0, 10, 30), rng(t, 10, 30, 12, 0)})
		require.Len(t, got, 1)
		assert.Equal(t, rng(t, 9, 0, 12, 0), got[0])
	})

	t.Run("disjoint ranges stay separate", func(t *testing.T) {
		got := Merge([]Range{rng(t, 9, 0, 10, 0), rng(t, 14, 0, 16, 0)})
		require.Len(t, got, 2)
		assert.Equal(t, rng(t, 9, 0, 10, 0), got[0])
		assert.Equal(t, rng(t, 14, 0, 16, 0), got[1])
	})

	t.Run("contained range is absorbed", func(t *testing.T) {
		got := Merge([]Range{rng(t, 9, 0, 17, 0), rng(t, 10, 0, 11, 0)})
		require.Len(t, got, 1)
		assert.Equal(t, rng(t, 9, 0, 17, 0), got[0])
	})

	t.Run("unsorted input", func(t *testing.T) {
		got := Merge([]Range{
			rng(t, 14, 0, 15, 0),
			rng(t, 9, 0, 10, 0),
			rng(t, 9, 30, 11, 0),
		})
		require.Len(t, got, 2)
		assert.Equal(t, rng(t, 9, 0, 11, 0), got[0])
		assert.Equal(t, rng(t, 14, 0, 15, 0), got[1])
	})

	t.Run("invalid ranges are dropped", func(t *testing.T) {
		got := Merge([]Range{rng(t, 11, 0, 10, 0), rng(t, 9, 0, 9, 0)})
		assert.Empty(t, got)
	})

	t.Run("result is pairwise disjoint", func(t *testing.T) {
		got := Merge([]Range{
			rng(t, 9, 0, 11, 0),
			rng(t, 10, 0, 12, 0),
			rng(t, 13, 0, 14, 0),
			rng(t, 13, 30, 15, 0),
		})
		for i := range got {
			for j := i + 1; j < len(got); j++ {
				assert.False(t, got[i].Overlaps(got[j]), "ranges %d and %d overlap", i, j)
			}
		}
	})
}

func TestSlice(t *testing.T) {
	t.Run("exact division", func(t *testing.T) {
		got := rng(t, 9, 0, 12, 0).Slice(60 * time.Minute)
		require.Len(t, got, 3)
		assert.Equal(t, rng(t, 9, 0, 10, 0), got[0])
		assert.Equal(t, rng(t, 11, 0, 12, 0), got[2])
	})

	t.Run("trailing partial discarded", func(t *testing.T) {
		got := rng(t, 9, 0, 10, 30).Slice(60 * time.Minute)
		require.Len(t, got, 1)
		assert.Equal(t, rng(t, 9, 0, 10, 0), got[0])
	})

	t.Run("range shorter than duration yields nothing", func(t *testing.T) {
		assert.Empty(t, rng(t, 9, 0, 9, 30).Slice(60*time.Minute))
	})

	t.Run("slots are pairwise disjoint", func(t *testing.T) {
		got := rng(t, 8, 0, 18, 0).Slice(45 * time.Minute)
		for i := range got {
			for j := i + 1; j < len(got); j++ {
				assert.False(t, got[i].Overlaps(got[j]), "slots %d and %d overlap", i, j)
			}
		}
	})
}
