package cube

import "github.com/SeamusWaldron/xcross/internal/coord"

// Slot is a first-two-layers slot: the corner and edge that belong
// together between the D layer and the middle layer.
type Slot struct {
	Name   string
	Corner int
	Edge   int
}

// F2LSlots lists the four slots. FR and FL are the y2 images of BL and BR.
var F2LSlots = [4]Slot{
	{Name: "BL", Corner: 4, Edge: 0},
	{Name: "BR", Corner: 5, Edge: 1},
	{Name: "FR", Corner: 6, Edge: 2},
	{Name: "FL", Corner: 7, Edge: 3},
}

// CrossEdges are the D layer edges forming the cross, in tracking order.
var CrossEdges = [4]int{8, 9, 10, 11}

// SolvedCross is the cross coordinate of the solved state.
var SolvedCross = New().CrossCoordinate()

// CrossCoordinate returns the coord.Cross coordinate of the cross edges,
// placements taken in CrossEdges order.
func (s State) CrossCoordinate() int {
	var p [len(CrossEdges)]int
	for k, e := range CrossEdges {
		p[k] = s.Placement(Edge, e)
	}
	return coord.Cross.Rank(p[:])
}

// Phase is how far a state is along cross + F2L. Phases are ordered, so
// they can be compared with < and >.
type Phase int

const (
	PhaseScrambled Phase = iota
	PhaseCross
	PhaseXCross
	PhaseXXCross
	PhaseXXXCross
	PhaseF2L
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseCross:
		return "cross"
	case PhaseXCross:
		return "xcross"
	case PhaseXXCross:
		return "xxcross"
	case PhaseXXXCross:
		return "xxxcross"
	case PhaseF2L:
		return "f2l"
	default:
		return "unknown"
	}
}

// IsCrossSolved returns true if all four cross edges are home and oriented.
func (s State) IsCrossSolved() bool {
	for _, e := range CrossEdges {
		if int(s.EP[e]) != e || s.EO[e] != 0 {
			return false
		}
	}
	return true
}

// IsSlotSolved returns true if the slot's corner and edge are home and
// oriented. The cross is not considered.
func (s State) IsSlotSolved(slot Slot) bool {
	return int(s.CP[slot.Corner]) == slot.Corner && s.CO[slot.Corner] == 0 &&
		int(s.EP[slot.Edge]) == slot.Edge && s.EO[slot.Edge] == 0
}

// SolvedSlots returns the number of solved F2L slots.
func (s State) SolvedSlots() int {
	n := 0
	for _, slot := range F2LSlots {
		if s.IsSlotSolved(slot) {
			n++
		}
	}
	return n
}

// DetectPhase determines the phase from the cube state.
func (s State) DetectPhase() Phase {
	if !s.IsCrossSolved() {
		return PhaseScrambled
	}
	return PhaseCross + Phase(s.SolvedSlots())
}
