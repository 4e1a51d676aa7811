package coord

import "testing"

func TestSizes(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		want  int
	}{
		{"cross", Cross, 190080},
		{"corner", Corner, 24},
		{"edge", Edge, 24},
		{"two edges", New(2, 2, 12), 528},
		{"four corners", New(4, 3, 8), 1680 * 81},
	}

	for _, tt := range tests {
		if got := tt.codec.Size(); got != tt.want {
			t.Errorf("%s: Size() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestRoundTripAllCoordinates(t *testing.T) {
	for _, c := range []Codec{Cross, Corner, Edge, New(3, 3, 8), New(2, 2, 12)} {
		buf := make([]int, c.Pieces())
		for x := 0; x < c.Size(); x++ {
			c.Unrank(x, buf)
			if !c.Valid(buf) {
				t.Fatalf("Unrank(%d) = %v is not a valid selection", x, buf)
			}
			if got := c.Rank(buf); got != x {
				t.Fatalf("Rank(Unrank(%d)) = %d (placements %v)", x, got, buf)
			}
		}
	}
}

// enumerate calls fn with every valid placement tuple of the codec.
func enumerate(c Codec, fn func([]int)) {
	cur := make([]int, c.Pieces())
	used := make([]bool, c.Slots())
	var rec func(i int)
	rec = func(i int) {
		if i == c.Pieces() {
			fn(cur)
			return
		}
		for s := 0; s < c.Slots(); s++ {
			if used[s] {
				continue
			}
			used[s] = true
			for o := 0; o < c.Modulus(); o++ {
				cur[i] = c.Modulus()*s + o
				rec(i + 1)
			}
			used[s] = false
		}
	}
	rec(0)
}

func TestRankIsBijection(t *testing.T) {
	for _, c := range []Codec{Corner, Edge, New(3, 2, 7), New(2, 3, 8), New(4, 2, 12)} {
		seen := make([]bool, c.Size())
		count := 0
		buf := make([]int, c.Pieces())
		enumerate(c, func(p []int) {
			x := c.Rank(p)
			if x < 0 || x >= c.Size() {
				t.Fatalf("Rank(%v) = %d out of range", p, x)
			}
			if seen[x] {
				t.Fatalf("Rank(%v) = %d collides", p, x)
			}
			seen[x] = true
			count++

			c.Unrank(x, buf)
			for i := range p {
				if buf[i] != p[i] {
					t.Fatalf("Unrank(Rank(%v)) = %v", p, buf)
				}
			}
		})
		if count != c.Size() {
			t.Errorf("enumerated %d selections, Size() = %d", count, c.Size())
		}
	}
}

func TestSolvedCrossCoordinate(t *testing.T) {
	// The D layer edges 8..11 in place with no flip.
	if got := Cross.Rank([]int{16, 18, 20, 22}); got != 187520 {
		t.Errorf("solved cross = %d, want 187520", got)
	}
}

func TestSinglePieceIsPlacement(t *testing.T) {
	buf := make([]int, 1)
	for p := 0; p < 24; p++ {
		if got := Corner.Rank([]int{p}); got != p {
			t.Errorf("Corner.Rank(%d) = %d", p, got)
		}
		Edge.Unrank(p, buf)
		if buf[0] != p {
			t.Errorf("Edge.Unrank(%d) = %d", p, buf[0])
		}
	}
}

func TestUnrankOutOfRangePanics(t *testing.T) {
	for _, x := range []int{-1, Cross.Size()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Unrank(%d) should panic", x)
				}
			}()
			Cross.Unrank(x, make([]int, 4))
		}()
	}
}

func TestRankOutOfRangePanics(t *testing.T) {
	for _, p := range [][]int{{-1, 16, 18, 20}, {24, 16, 18, 20}, {0, 2, 4, 99}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Rank(%v) should panic", p)
				}
			}()
			Cross.Rank(p)
		}()
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   []int
		want bool
	}{
		{[]int{0, 2, 4, 6}, true},
		{[]int{0, 1, 4, 6}, false}, // slot 0 twice
		{[]int{0, 2, 4, 24}, false},
		{[]int{0, 2, 4}, false},
	}
	for _, tt := range tests {
		if got := Cross.Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func BenchmarkCrossUnrankRank(b *testing.B) {
	buf := make([]int, 4)
	for i := 0; i < b.N; i++ {
		x := i % Cross.Size()
		Cross.Unrank(x, buf)
		_ = Cross.Rank(buf)
	}
}
