// Package geom provides the byte-range and grid-coordinate math that the
// rest of the editor is built on. A Region is an inclusive span of byte
// offsets, and a Perspective reinterprets a Region as a fixed-width grid.
package geom

import "fmt"

// Region is an inclusive byte-offset range [Begin, End] within a source.
// End is the last valid byte, not one-past.
type Region struct {
	Begin uint64
	End   uint64
}

// NewRegion returns a region spanning begin..end inclusive. Panics if
// end < begin, which indicates a caller bug rather than bad input.
func NewRegion(begin, end uint64) Region {
	if end < begin {
		panic(fmt.Sprintf("geom: region end %d < begin %d", end, begin))
	}
	return Region{Begin: begin, End: end}
}

// Len returns the number of bytes the region covers.
func (r Region) Len() uint64 {
	return r.End - r.Begin + 1
}

// Contains reports whether offset lies within the region.
func (r Region) Contains(offset uint64) bool {
	return offset >= r.Begin && offset <= r.End
}
