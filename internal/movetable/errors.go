package movetable

import "errors"

// ErrPlacements is returned when a codec does not match the 24 placements
// of a piece table.
var ErrPlacements = errors.New("movetable: codec does not use 24 placements")
