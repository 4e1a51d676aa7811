// Package cube provides a cubie-level 3x3 Rubik's cube model.
//
// Slots are numbered as follows.
//
//	corners: 0=UBL 1=UBR 2=UFR 3=UFL 4=DBL 5=DBR 6=DFR 7=DFL
//	edges:   0=BL  1=BR  2=FR  3=FL  4=UB  5=UR  6=UF  7=UL
//	         8=DB  9=DR 10=DF 11=DL
//
// Corner orientation is taken relative to the U/D axis (Z/3), edge
// orientation relative to the F/B axis (Z/2).
package cube

import "fmt"

const (
	NumCorners = 8
	NumEdges   = 12
)

// PieceKind selects corners or edges.
type PieceKind int

const (
	Corner PieceKind = iota
	Edge
)

func (k PieceKind) String() string {
	switch k {
	case Corner:
		return "corner"
	case Edge:
		return "edge"
	default:
		return "?"
	}
}

// Slots returns the number of slots of this kind.
func (k PieceKind) Slots() int {
	if k == Corner {
		return NumCorners
	}
	return NumEdges
}

// Modulus returns the orientation modulus of this kind.
func (k PieceKind) Modulus() int {
	if k == Corner {
		return 3
	}
	return 2
}

// State is a cube configuration in "replaced by" form: CP[j] is the corner
// that sits in slot j and CO[j] its twist, likewise for edges.
type State struct {
	CP [NumCorners]int8
	CO [NumCorners]int8
	EP [NumEdges]int8
	EO [NumEdges]int8
}

// New returns the solved state.
func New() State {
	var s State
	for i := range s.CP {
		s.CP[i] = int8(i)
	}
	for i := range s.EP {
		s.EP[i] = int8(i)
	}
	return s
}

// Multiply returns s followed by m.
func (s State) Multiply(m State) State {
	var r State
	for j := 0; j < NumCorners; j++ {
		from := m.CP[j]
		r.CP[j] = s.CP[from]
		r.CO[j] = (s.CO[from] + m.CO[j]) % 3
	}
	for j := 0; j < NumEdges; j++ {
		from := m.EP[j]
		r.EP[j] = s.EP[from]
		r.EO[j] = (s.EO[from] + m.EO[j]) % 2
	}
	return r
}

// IsSolved returns true if every piece is home and oriented.
func (s State) IsSolved() bool {
	return s == New()
}

// Valid reports whether both permutations are bijections and all
// orientations are reduced. Parity and twist sums are not checked.
func (s State) Valid() bool {
	var seenC [NumCorners]bool
	for j := 0; j < NumCorners; j++ {
		p := s.CP[j]
		if p < 0 || int(p) >= NumCorners || seenC[p] || s.CO[j] < 0 || s.CO[j] > 2 {
			return false
		}
		seenC[p] = true
	}
	var seenE [NumEdges]bool
	for j := 0; j < NumEdges; j++ {
		p := s.EP[j]
		if p < 0 || int(p) >= NumEdges || seenE[p] || s.EO[j] < 0 || s.EO[j] > 1 {
			return false
		}
		seenE[p] = true
	}
	return true
}

// Locate returns the slot holding the given piece and its orientation.
func (s State) Locate(kind PieceKind, piece int) (slot, ori int) {
	if kind == Corner {
		for j := 0; j < NumCorners; j++ {
			if int(s.CP[j]) == piece {
				return j, int(s.CO[j])
			}
		}
	} else {
		for j := 0; j < NumEdges; j++ {
			if int(s.EP[j]) == piece {
				return j, int(s.EO[j])
			}
		}
	}
	return -1, -1
}

// Placement returns modulus*slot + orientation for the given piece, the
// value the coordinate codecs work with.
func (s State) Placement(kind PieceKind, piece int) int {
	slot, ori := s.Locate(kind, piece)
	return kind.Modulus()*slot + ori
}

// String returns a compact text representation of the state.
func (s State) String() string {
	return fmt.Sprintf("cp=%v co=%v ep=%v eo=%v", s.CP, s.CO, s.EP, s.EO)
}
