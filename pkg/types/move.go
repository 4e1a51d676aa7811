// Package types contains shared type definitions for the xcross application.
package types

// Face represents a cube face in standard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceL Face = "L" // Left
	FaceR Face = "R" // Right
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Faces lists the faces in generator order.
var Faces = [6]Face{FaceU, FaceD, FaceL, FaceR, FaceF, FaceB}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	TurnCW  Turn = 1  // Clockwise quarter turn
	TurnCCW Turn = -1 // Counter-clockwise quarter turn
	Turn180 Turn = 2  // 180 degree turn (half turn)
)

// NumMoves is the number of generators in the half-turn metric.
const NumMoves = 18

// Move represents a single face turn.
type Move struct {
	Face Face `json:"face"`
	Turn Turn `json:"turn"`
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case TurnCCW:
		suffix = "'"
	case Turn180:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// String returns the notation string.
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case TurnCW:
		inv.Turn = TurnCCW
	case TurnCCW:
		inv.Turn = TurnCW
	// Turn180 is its own inverse
	}
	return inv
}

// Index encodes the move as its generator index.
// Encoding: face*3 + turn_code where:
//   - face: U=0, D=1, L=2, R=3, F=4, B=5
//   - turn_code: CW=0, 180=1, CCW=2
//
// This gives the order U U2 U' D D2 D' L L2 L' R R2 R' F F2 F' B B2 B'.
func (m Move) Index() int {
	faceCode := -1
	for i, f := range Faces {
		if f == m.Face {
			faceCode = i
			break
		}
	}
	if faceCode < 0 {
		return -1
	}

	var turnCode int
	switch m.Turn {
	case TurnCW:
		turnCode = 0
	case Turn180:
		turnCode = 1
	case TurnCCW:
		turnCode = 2
	default:
		return -1
	}

	return faceCode*3 + turnCode
}

// MoveFromIndex decodes a generator index back into a Move.
func MoveFromIndex(index int) Move {
	face := Faces[index/3]

	var turn Turn
	switch index % 3 {
	case 0:
		turn = TurnCW
	case 1:
		turn = Turn180
	case 2:
		turn = TurnCCW
	}

	return Move{Face: face, Turn: turn}
}

// InverseIndex returns the generator index of the inverse of move index i.
func InverseIndex(i int) int {
	return 3*(i/3) + 2 - i%3
}

// AllMoves returns the 18 generators in index order.
func AllMoves() []Move {
	moves := make([]Move, NumMoves)
	for i := range moves {
		moves[i] = MoveFromIndex(i)
	}
	return moves
}
