package aggregate

import (
	"errors"
	"math/rand"
	"testing"
)

// synthetic holds a distance for every quadrant, corner slot, edge slot and
// orientation.
type synthetic struct {
	free, oris int
	dist       [numQuads][MaxFree][MaxFree][6]int
}

func newSynthetic(rng *rand.Rand, free, oris, maxDist int) *synthetic {
	s := &synthetic{free: free, oris: oris}
	for q := 0; q < numQuads; q++ {
		for u := 0; u < free; u++ {
			for v := 0; v < free; v++ {
				for o := 0; o < oris; o++ {
					s.dist[q][u][v][o] = rng.Intn(maxDist + 1)
				}
			}
		}
	}
	return s
}

func (s *synthetic) counts() *Counts {
	c := new(Counts)
	for q := 0; q < numQuads; q++ {
		for u := 0; u < s.free; u++ {
			for v := 0; v < s.free; v++ {
				for o := 0; o < s.oris; o++ {
					c[q][u][v][s.dist[q][u][v][o]]++
				}
			}
		}
	}
	c.accumulate(s.free)
	return c
}

// injections lists every assignment of four distinct values in 0..n-1.
func injections(n int) [][4]int {
	var out [][4]int
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				for d := 0; d < n; d++ {
					if a == b || a == c || a == d || b == c || b == d || c == d {
						continue
					}
					out = append(out, [4]int{a, b, c, d})
				}
			}
		}
	}
	return out
}

// bruteForce enumerates every placement of the four pairs and histograms
// the minimum distance.
func (s *synthetic) bruteForce() [Levels]int64 {
	var exact [Levels]int64
	inj := injections(s.free)
	var o [4]int
	for _, cs := range inj {
		for _, es := range inj {
			for o[0] = 0; o[0] < s.oris; o[0]++ {
				for o[1] = 0; o[1] < s.oris; o[1]++ {
					for o[2] = 0; o[2] < s.oris; o[2]++ {
						for o[3] = 0; o[3] < s.oris; o[3]++ {
							m := Levels
							for q := 0; q < numQuads; q++ {
								m = min(m, s.dist[q][cs[q]][es[q]][o[q]])
							}
							exact[m]++
						}
					}
				}
			}
		}
	}
	return exact
}

func TestJoinMatchesBruteForce(t *testing.T) {
	tests := []struct {
		name    string
		free    int
		oris    int
		maxDist int
		seed    int64
	}{
		{"4 free, 6 orientations", 4, 6, 5, 1},
		{"4 free, shallow", 4, 6, 1, 2},
		{"5 free, 3 orientations", 5, 3, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSynthetic(rand.New(rand.NewSource(tt.seed)), tt.free, tt.oris, tt.maxDist)

			got, err := Join(s.counts(), tt.free, Levels)
			if err != nil {
				t.Fatalf("Join: %v", err)
			}

			exact := s.bruteForce()
			var want [Levels]int64
			var sum int64
			for d := Levels - 1; d >= 0; d-- {
				sum += exact[d]
				want[d] = sum
			}

			if got != want {
				t.Errorf("Join = %v\nbrute force = %v", got, want)
			}
		})
	}
}

func TestJoinUniformMatchesClosedForm(t *testing.T) {
	// Every orientation at distance 0 counts every placement at k = 0.
	c := new(Counts)
	for q := 0; q < numQuads; q++ {
		for u := 0; u < MaxFree; u++ {
			for v := 0; v < MaxFree; v++ {
				c[q][u][v][0] = 6
			}
		}
	}
	c.accumulate(MaxFree)

	got, err := Join(c, MaxFree, 2)
	if err != nil {
		t.Fatal(err)
	}
	perCross := ConfigurationSpace() / 190080
	if got[0] != perCross {
		t.Errorf("k=0 total %d, want %d", got[0], perCross)
	}
	if got[1] != 0 {
		t.Errorf("k=1 total %d, want 0", got[1])
	}
}

func TestJoinRejectsBadShape(t *testing.T) {
	if _, err := Join(new(Counts), 3, Levels); !errors.Is(err, ErrTableShape) {
		t.Errorf("free=3: err = %v, want ErrTableShape", err)
	}
	if _, err := Join(new(Counts), 4, Levels+1); !errors.Is(err, ErrDepthRange) {
		t.Errorf("levels=%d: err = %v, want ErrDepthRange", Levels+1, err)
	}
}

func BenchmarkJoin(b *testing.B) {
	s := newSynthetic(rand.New(rand.NewSource(1)), MaxFree, 6, 10)
	c := s.counts()
	j := newJoiner(MaxFree)
	h := new(halves)
	var out [Levels]int64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j.join(c, h, 11, &out)
	}
}
