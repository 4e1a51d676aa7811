package cube

// Y2Corner and Y2Edge give the slot (and piece) relabeling of a 180 degree
// rotation of the whole cube about the U/D axis. Both are involutions and
// leave orientations unchanged.
var (
	Y2Corner = [NumCorners]int{2, 3, 0, 1, 6, 7, 4, 5}
	Y2Edge   = [NumEdges]int{2, 3, 0, 1, 6, 7, 4, 5, 10, 11, 8, 9}
)

// RotateY2 returns the state seen after turning the whole cube by y2.
func (s State) RotateY2() State {
	var r State
	for j := 0; j < NumCorners; j++ {
		r.CP[Y2Corner[j]] = int8(Y2Corner[s.CP[j]])
		r.CO[Y2Corner[j]] = s.CO[j]
	}
	for j := 0; j < NumEdges; j++ {
		r.EP[Y2Edge[j]] = int8(Y2Edge[s.EP[j]])
		r.EO[Y2Edge[j]] = s.EO[j]
	}
	return r
}
