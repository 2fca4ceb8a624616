package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion_Len(t *testing.T) {
	assert.Equal(t, uint64(1), NewRegion(5, 5).Len())
	assert.Equal(t, uint64(10), NewRegion(0, 9).Len())
}

func TestNewRegion_PanicsOnInvertedBounds(t *testing.T) {
	assert.Panics(t, func() { NewRegion(10, 9) })
}

func TestPerspective_Rows(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		cols   uint64
		rows   uint64
	}{
		{"exact multiple", NewRegion(0, 15), 4, 4},
		{"partial last row", NewRegion(0, 16), 4, 5},
		{"single byte", NewRegion(7, 7), 4, 1},
		{"one column", NewRegion(0, 9), 1, 10},
		{"offset region", NewRegion(100, 119), 5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPerspective(tt.region, tt.cols)
			assert.Equal(t, tt.rows, p.Rows())
			assert.Equal(t, tt.rows-1, p.LastRowIdx())
			assert.Equal(t, tt.cols-1, p.LastColIdx())
		})
	}
}

func TestPerspective_ByteOffsetOfRowCol(t *testing.T) {
	p := NewPerspective(NewRegion(100, 119), 8) // 20 bytes, 3 rows, last row partial (4 cols)

	off, ok := p.ByteOffsetOfRowCol(0, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(100), off)

	off, ok = p.ByteOffsetOfRowCol(1, 7)
	require.True(t, ok)
	assert.Equal(t, uint64(115), off)

	off, ok = p.ByteOffsetOfRowCol(2, 3)
	require.True(t, ok)
	assert.Equal(t, uint64(119), off)

	// Dead zone of the partial last row.
	_, ok = p.ByteOffsetOfRowCol(2, 4)
	assert.False(t, ok)

	// Past the last row entirely.
	_, ok = p.ByteOffsetOfRowCol(3, 0)
	assert.False(t, ok)

	// Column out of range.
	_, ok = p.ByteOffsetOfRowCol(0, 8)
	assert.False(t, ok)
}

func TestPerspective_RoundTrip(t *testing.T) {
	for _, flip := range []bool{false, true} {
		p := Perspective{Region: NewRegion(10, 42), Cols: 7, FlipRowOrder: flip}
		for offset := p.Region.Begin; offset <= p.Region.End; offset++ {
			row, col, ok := p.RowColOfByteOffset(offset)
			require.True(t, ok, "offset %d flip=%v", offset, flip)
			back, ok := p.ByteOffsetOfRowCol(row, col)
			require.True(t, ok, "offset %d flip=%v", offset, flip)
			assert.Equal(t, offset, back, "offset %d flip=%v", offset, flip)
		}
	}
}

func TestPerspective_FlipRowOrder(t *testing.T) {
	p := Perspective{Region: NewRegion(0, 15), Cols: 4, FlipRowOrder: true}

	// With flip, screen row 0 is the last physical row.
	off, ok := p.ByteOffsetOfRowCol(0, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(12), off)

	off, ok = p.ByteOffsetOfRowCol(3, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(0), off)

	row, col, ok := p.RowColOfByteOffset(0)
	require.True(t, ok)
	assert.Equal(t, uint64(3), row)
	assert.Equal(t, uint64(0), col)
}

func TestPerspective_RowColWithinBound(t *testing.T) {
	p := NewPerspective(NewRegion(0, 9), 4) // partial last row: cols 2,3 of row 2 dead

	assert.True(t, p.RowColWithinBound(0, 0))
	assert.True(t, p.RowColWithinBound(2, 1))
	assert.False(t, p.RowColWithinBound(2, 2))
	assert.False(t, p.RowColWithinBound(3, 0))
}

func TestPerspective_OutOfRegionOffsets(t *testing.T) {
	p := NewPerspective(NewRegion(50, 59), 4)

	_, _, ok := p.RowColOfByteOffset(49)
	assert.False(t, ok)
	_, _, ok = p.RowColOfByteOffset(60)
	assert.False(t, ok)
}
