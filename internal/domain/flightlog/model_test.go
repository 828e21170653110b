package flightlog

import (
	"reflect"
	"testing"
)

// TestStars verifies full/half/empty expansion of average ratings.
func TestStars(t *testing.T) {
	cases := []struct {
		rating float64
		want   []string
	}{
		{0, []string{StarEmpty, StarEmpty, StarEmpty, StarEmpty, StarEmpty}},
		{2, []string{StarFull, StarFull, StarEmpty, StarEmpty, StarEmpty}},
		{3.5, []string{StarFull, StarFull, StarFull, StarHalf, StarEmpty}},
		{4.2, []string{StarFull, StarFull, StarFull, StarFull, StarEmpty}},
		{5, []string{StarFull, StarFull, StarFull, StarFull, StarFull}},
		{4.9, []string{StarFull, StarFull, StarFull, StarFull, StarHalf}},
		{7, []string{StarFull, StarFull, StarFull, StarFull, StarFull}},
		{-1, []string{StarEmpty, StarEmpty, StarEmpty, StarEmpty, StarEmpty}},
	}
	for _, c := range cases {
		if got := Stars(c.rating); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Stars(%v) = %v, want %v", c.rating, got, c.want)
		}
	}
}

// TestStars_AlwaysFive verifies the expansion always yields five symbols.
func TestStars_AlwaysFive(t *testing.T) {
	for _, r := range []float64{0, 0.4, 0.5, 1.9, 2.5, 3.3, 4.99, 5} {
		if got := Stars(r); len(got) != 5 {
			t.Errorf("Stars(%v) returned %d symbols, want 5", r, len(got))
		}
	}
}

// TestRatingColor verifies bucket boundaries.
func TestRatingColor(t *testing.T) {
	cases := []struct {
		rating float64
		want   string
	}{
		{4.5, "#10b981"},
		{4.49, "#3b82f6"},
		{3.5, "#3b82f6"},
		{2.5, "#f59e0b"},
		{2.49, "#ef4444"},
	}
	for _, c := range cases {
		if got := RatingColor(c.rating); got != c.want {
			t.Errorf("RatingColor(%v) = %q, want %q", c.rating, got, c.want)
		}
	}
}
