package cube

import "github.com/SeamusWaldron/xcross/pkg/types"

// quarterTurns holds the clockwise quarter turn of each face. Half and
// counter-clockwise turns are derived from these.
var quarterTurns = map[types.Face]State{
	types.FaceU: {
		CP: [8]int8{3, 0, 1, 2, 4, 5, 6, 7},
		EP: [12]int8{0, 1, 2, 3, 7, 4, 5, 6, 8, 9, 10, 11},
	},
	types.FaceD: {
		CP: [8]int8{0, 1, 2, 3, 5, 6, 7, 4},
		EP: [12]int8{0, 1, 2, 3, 4, 5, 6, 7, 9, 10, 11, 8},
	},
	types.FaceL: {
		CP: [8]int8{4, 1, 2, 0, 7, 5, 6, 3},
		CO: [8]int8{2, 0, 0, 1, 1, 0, 0, 2},
		EP: [12]int8{11, 1, 2, 7, 4, 5, 6, 0, 8, 9, 10, 3},
	},
	types.FaceR: {
		CP: [8]int8{0, 2, 6, 3, 4, 1, 5, 7},
		CO: [8]int8{0, 1, 2, 0, 0, 2, 1, 0},
		EP: [12]int8{0, 5, 9, 3, 4, 2, 6, 7, 8, 1, 10, 11},
	},
	types.FaceF: {
		CP: [8]int8{0, 1, 3, 7, 4, 5, 2, 6},
		CO: [8]int8{0, 0, 1, 2, 0, 0, 2, 1},
		EP: [12]int8{0, 1, 6, 10, 4, 5, 3, 7, 8, 9, 2, 11},
		EO: [12]int8{0, 0, 1, 1, 0, 0, 1, 0, 0, 0, 1, 0},
	},
	types.FaceB: {
		CP: [8]int8{1, 5, 2, 3, 0, 4, 6, 7},
		CO: [8]int8{1, 2, 0, 0, 2, 1, 0, 0},
		EP: [12]int8{4, 8, 2, 3, 1, 5, 6, 7, 0, 9, 10, 11},
		EO: [12]int8{1, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
	},
}

// moves holds the 18 generators in types index order.
var moves [types.NumMoves]State

func init() {
	for f, face := range types.Faces {
		q := quarterTurns[face]
		half := q.Multiply(q)
		moves[3*f] = q
		moves[3*f+1] = half
		moves[3*f+2] = half.Multiply(q)
	}
}

// Generator returns the state of move index i (see types.Move.Index).
func Generator(i int) State {
	return moves[i]
}
