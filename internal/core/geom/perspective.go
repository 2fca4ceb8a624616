package geom

// Perspective reinterprets a Region as a two-dimensional grid with a fixed
// column count. It converts between linear byte offsets and (row, col)
// coordinates, optionally with mirrored row order.
//
// The last row may be partial: coordinate queries landing past the region's
// final byte are out of bounds, never a byte beyond Region.End.
type Perspective struct {
	Region Region
	// Cols is the grid width. Must be at least 1.
	Cols uint64
	// FlipRowOrder mirrors row indices in coordinate queries. The stored
	// data layout is unaffected.
	FlipRowOrder bool
}

// NewPerspective returns a perspective over region with the given column
// count. Panics if cols is zero.
func NewPerspective(region Region, cols uint64) Perspective {
	if cols == 0 {
		panic("geom: perspective with zero columns")
	}
	return Perspective{Region: region, Cols: cols}
}

// Rows returns the number of grid rows, counting a trailing partial row.
func (p Perspective) Rows() uint64 {
	return (p.Region.Len() + p.Cols - 1) / p.Cols
}

// LastRowIdx returns the index of the final row.
func (p Perspective) LastRowIdx() uint64 {
	return p.Rows() - 1
}

// LastColIdx returns the index of the final column.
func (p Perspective) LastColIdx() uint64 {
	return p.Cols - 1
}

// flipRow mirrors a row index when FlipRowOrder is set.
func (p Perspective) flipRow(row uint64) uint64 {
	if p.FlipRowOrder {
		return p.LastRowIdx() - row
	}
	return row
}

// ByteOffsetOfRowCol returns the absolute byte offset for a grid position.
// ok is false when the position falls outside the region, including the
// dead zone of a partial last row.
func (p Perspective) ByteOffsetOfRowCol(row, col uint64) (offset uint64, ok bool) {
	if row >= p.Rows() || col >= p.Cols {
		return 0, false
	}
	offset = p.Region.Begin + p.flipRow(row)*p.Cols + col
	if offset > p.Region.End {
		return 0, false
	}
	return offset, true
}

// RowColOfByteOffset returns the grid position of an absolute byte offset.
// ok is false when the offset lies outside the region.
func (p Perspective) RowColOfByteOffset(offset uint64) (row, col uint64, ok bool) {
	if !p.Region.Contains(offset) {
		return 0, 0, false
	}
	rel := offset - p.Region.Begin
	return p.flipRow(rel / p.Cols), rel % p.Cols, true
}

// RowColWithinBound reports whether the grid position maps to a byte inside
// the region.
func (p Perspective) RowColWithinBound(row, col uint64) bool {
	_, ok := p.ByteOffsetOfRowCol(row, col)
	return ok
}
