package surface

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestRankBetween(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper string
	}{
		{name: "unbounded", lower: "", upper: ""},
		{name: "after", lower: "h", upper: ""},
		{name: "before", lower: "", upper: "h"},
		{name: "wide gap", lower: "a", upper: "z"},
		{name: "adjacent digits", lower: "a", upper: "b"},
		{name: "adjacent with tail", lower: "az", upper: "b"},
		{name: "shared prefix", lower: "m1", upper: "m2"},
		{name: "upper prefixed by zero", lower: "", upper: "01"},
		{name: "after last digit", lower: "z", upper: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rankBetween(tt.lower, tt.upper)
			if err != nil {
				t.Fatalf("rankBetween(%q, %q) error = %v", tt.lower, tt.upper, err)
			}
			if tt.lower != "" && got <= tt.lower {
				t.Errorf("rankBetween(%q, %q) = %q, not above lower", tt.lower, tt.upper, got)
			}
			if tt.upper != "" && got >= tt.upper {
				t.Errorf("rankBetween(%q, %q) = %q, not below upper", tt.lower, tt.upper, got)
			}
		})
	}
}

func TestRankBetween_InvalidBounds(t *testing.T) {
	if _, err := rankBetween("b", "a"); err == nil {
		t.Error("expected error for reversed bounds")
	}
	if _, err := rankBetween("A", ""); err == nil {
		t.Error("expected error for invalid character")
	}
}

func TestRankBetween_NoSpace(t *testing.T) {
	if _, err := rankBetween("", "0"); err != errNoRankSpace {
		t.Errorf("rankBetween(\"\", \"0\") error = %v, want errNoRankSpace", err)
	}
}

func TestSpreadRanks(t *testing.T) {
	for _, n := range []int{1, 2, 35, 36, 1000} {
		ranks := spreadRanks(n)
		if len(ranks) != n {
			t.Fatalf("spreadRanks(%d) returned %d ranks", n, len(ranks))
		}
		for i := 1; i < n; i++ {
			if ranks[i-1] >= ranks[i] {
				t.Fatalf("spreadRanks(%d): %q >= %q", n, ranks[i-1], ranks[i])
			}
		}
		if strings.Trim(ranks[0], "0") == "" {
			t.Errorf("spreadRanks(%d) starts at the bottom rank %q", n, ranks[0])
		}
	}
}

// Repeated insertion into the same gap must keep working, rebalancing if
// needed, and keep the buffer's order.
func TestBuffer_RanksUnderPressure(t *testing.T) {
	b := NewBuffer(BufferParams{})
	rng := rand.New(rand.NewPCG(7, 11))
	var want []Anchor

	for i := range 2000 {
		pos := len(want)
		if len(want) > 0 {
			switch i % 3 {
			case 0:
				pos = 0
			case 1:
				pos = rng.IntN(len(want))
			}
		}
		before := NoAnchor
		if pos < len(want) {
			before = want[pos]
		}
		a, err := b.InsertBlock(before, []string{"x"})
		if err != nil {
			t.Fatalf("InsertBlock() error = %v", err)
		}
		want = append(want, NoAnchor)
		copy(want[pos+1:], want[pos:])
		want[pos] = a
	}

	got := b.Anchors()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("anchor %d out of place", i)
		}
		if i > 0 && b.Compare(want[i-1], want[i]) >= 0 {
			t.Fatalf("Compare(%d, %d) >= 0", i-1, i)
		}
	}
}
