package testutil

import (
	"testing"
)

func TestRequireNear(t *testing.T) {
	RequireNear(t, 1.0, 1.0+1e-12, 1e-9)
	RequireNear(t, -3.5, -3.5, 0)
}

func TestRequireSliceNearlyEqual(t *testing.T) {
	got := []float64{1.0, 2.0, 3.0}
	want := []float64{1.0, 2.0 + 1e-12, 3.0}

	RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestRequireFinite(t *testing.T) {
	RequireFinite(t, []float64{0, -1.5, 1e300})
}
