package template

import (
	"math"
	"testing"
)

func TestCumulative(t *testing.T) {
	tests := []struct {
		pattern Pattern
		want    []float64
	}{
		{nil, []float64{}},
		{Pattern{1, 1}, []float64{1, 2}},
		{Pattern{1, 2, 1}, []float64{1, 3, 4}},
		{Pattern{-1}, []float64{-1}},
	}

	for _, tt := range tests {
		got := tt.pattern.Cumulative()
		if len(got) != len(tt.want) {
			t.Fatalf("Cumulative(%v) length = %d, want %d", tt.pattern, len(got), len(tt.want))
		}

		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Cumulative(%v)[%d] = %v, want %v", tt.pattern, i, got[i], tt.want[i])
			}
		}
	}
}

func TestRatios(t *testing.T) {
	p := Pattern{1, 1}

	got := p.Ratios(4)
	want := []float64{1, 1.25, 1.5}

	if len(got) != len(want) {
		t.Fatalf("Ratios length = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Errorf("Ratios(4)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRatiosRootIsExactlyOne(t *testing.T) {
	for _, x := range []float64{0.1, 1, 4, 1e9} {
		got := Pattern{1, 3, 1}.Ratios(x)
		if got[0] != 1 {
			t.Errorf("Ratios(%v)[0] = %v, want exact 1", x, got[0])
		}
	}
}

func TestRatiosApproachUnity(t *testing.T) {
	// Positive offsets shrink strictly toward the root as the divider
	// grows.
	p := Pattern{1, 2}

	prev := p.Ratios(2)
	for _, x := range []float64{4, 16, 256, 1e6} {
		cur := p.Ratios(x)

		for i := 1; i < len(cur); i++ {
			if !(cur[i] < prev[i]) {
				t.Fatalf("Ratios(%v)[%d] = %v, not below %v", x, i, cur[i], prev[i])
			}

			if cur[i] <= 1 {
				t.Fatalf("Ratios(%v)[%d] = %v, want > 1", x, i, cur[i])
			}
		}

		prev = cur
	}

	for i, r := range p.Ratios(1e12)[1:] {
		if math.Abs(r-1) > 1e-11 {
			t.Errorf("ratio %d = %v, want ~1 for a huge divider", i+1, r)
		}
	}
}

func TestRatiosEmptyPattern(t *testing.T) {
	got := Pattern{}.Ratios(2)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("empty pattern Ratios = %v, want [1]", got)
	}
}

func TestDegrees(t *testing.T) {
	if got := (Pattern{1, 2, 1}).Degrees(); got != 4 {
		t.Fatalf("Degrees = %d, want 4", got)
	}

	if got := (Pattern(nil)).Degrees(); got != 1 {
		t.Fatalf("nil pattern Degrees = %d, want 1", got)
	}
}
