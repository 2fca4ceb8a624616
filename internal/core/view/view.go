// Package view implements the rectangular screen views that look at a
// perspective's grid: scroll state, cell geometry, hit testing, and the
// per-cell edit state machine.
package view

import (
	"github.com/colonyops/hexbench/internal/core/geom"
)

// comfyMargin is how many pixels of empty space are shown before the data
// at the very start. It visually signals that there is no more data before.
const comfyMargin = 12

// Rect is a view's rectangle in the viewport, in pixels.
type Rect struct {
	X, Y, W, H int
}

// relativeOffsetOfPos translates a viewport position into rect-relative
// coordinates, failing when the position is outside the rect.
func (r Rect) relativeOffsetOfPos(x, y int) (relX, relY int, ok bool) {
	if x < r.X || y < r.Y || x > r.X+r.W || y > r.Y+r.H {
		return 0, 0, false
	}
	return x - r.X, y - r.Y, true
}

// ScrollOffset is a scroll position decomposed into whole cells plus a
// sub-cell pixel remainder. After normalization the remainder is within
// (-cell, +cell), except at the very start of data where it may go
// arbitrarily negative to give a margin before the first row.
type ScrollOffset struct {
	Row     uint64
	Col     uint64
	PixXOff int
	PixYOff int
}

// Floor discards the pixel remainders.
func (s *ScrollOffset) Floor() {
	s.PixXOff = 0
	s.PixYOff = 0
}

// scrollAxis adds a pixel delta to one axis, carrying whole cells in and
// out of the pixel remainder. The whole coordinate saturates at 0; past
// that, the remainder is allowed to go unboundedly negative.
func scrollAxis(whole *uint64, pixel *int, pixelsPerWhole int, scrollBy int) {
	*pixel += scrollBy
	if *pixel < 0 {
		for *pixel <= -pixelsPerWhole {
			if *whole == 0 {
				break
			}
			*whole--
			*pixel += pixelsPerWhole
		}
	} else {
		for *pixel >= pixelsPerWhole {
			*whole++
			*pixel -= pixelsPerWhole
		}
	}
}

// View is a rectangular area of the viewport looking through a perspective
// at the data with one flavor of rendering and interaction.
//
// Several views can look through the same perspective. They normally sync
// their offsets, but each shows a different amount of data depending on its
// cell geometry and viewport share.
type View struct {
	// Viewport is the rectangle the view occupies.
	Viewport Rect
	Kind     Kind
	// TextKind and LineSpacing only apply to KindText.
	TextKind    TextKind
	LineSpacing int

	FontSize int
	// ColW and RowH are the cell dimensions in pixels, derived from the
	// kind and font size.
	ColW int
	RowH int

	Scroll      ScrollOffset
	ScrollSpeed int
	// BytesPerBlock is how many source bytes one rendered block covers.
	BytesPerBlock int
	// Active views render and take input; inactive ones are hidden without
	// being destroyed.
	Active bool

	EditBuf EditBuffer
}

// New creates an active view of the given kind and viewport rectangle.
func New(kind Kind, x, y, w, h int) *View {
	v := &View{
		Viewport:      Rect{X: x, Y: y, W: w, H: h},
		Kind:          kind,
		FontSize:      14,
		LineSpacing:   14,
		ScrollSpeed:   4,
		BytesPerBlock: 1,
		Active:        true,
	}
	v.AdjustStateToKind()
	return v
}

// AdjustBlockSize derives the cell geometry from the kind and font size.
func (v *View) AdjustBlockSize() {
	switch v.Kind {
	case KindHex:
		v.ColW, v.RowH = v.FontSize*2-2, v.FontSize
	case KindDec:
		v.ColW, v.RowH = v.FontSize*3-6, v.FontSize
	case KindText:
		v.ColW = v.FontSize
		v.RowH = max(v.LineSpacing, 1)
	case KindBlock:
		v.ColW, v.RowH = 4, 4
	}
}

// AdjustStateToKind re-derives geometry and edit-buffer capacity after the
// kind changed.
func (v *View) AdjustStateToKind() {
	v.AdjustBlockSize()
	if v.Kind == KindBlock {
		v.EditBuf.Resize(0)
		return
	}
	v.EditBuf.Resize(v.Kind.GlyphCount())
}

// ScrollX scrolls horizontally by a pixel amount.
func (v *View) ScrollX(amount int) {
	scrollAxis(&v.Scroll.Col, &v.Scroll.PixXOff, v.ColW, amount)
}

// ScrollY scrolls vertically by a pixel amount.
func (v *View) ScrollY(amount int) {
	scrollAxis(&v.Scroll.Row, &v.Scroll.PixYOff, v.RowH, amount)
}

// ScrollPageDown scrolls down by one viewport height.
func (v *View) ScrollPageDown() { v.ScrollY(v.Viewport.H) }

// ScrollPageUp scrolls up by one viewport height.
func (v *View) ScrollPageUp() { v.ScrollY(-v.Viewport.H) }

// ScrollPageLeft scrolls left by one viewport width.
func (v *View) ScrollPageLeft() { v.ScrollX(-v.Viewport.W) }

// GoHome resets the scroll to the origin, backed off by the comfy margin.
func (v *View) GoHome() {
	v.Scroll.Row = 0
	v.Scroll.Col = 0
	v.Scroll.PixXOff = -comfyMargin
	v.Scroll.PixYOff = -comfyMargin
}

// ScrollToEnd positions the view so the perspective's final row is the last
// visible row.
func (v *View) ScrollToEnd(p geom.Perspective) {
	v.Scroll.Row = p.LastRowIdx() + 1
	v.Scroll.Col = p.LastColIdx() + 1
	v.ScrollPageUp()
	v.ScrollPageLeft()
	v.Scroll.Floor()
	v.Scroll.PixXOff = comfyMargin
	v.Scroll.PixYOff = comfyMargin
}

// Rows returns how many rows fit in the viewport.
func (v *View) Rows() int {
	return v.Viewport.H / v.RowH
}

// BytesPerPage returns how many bytes one viewport page spans.
func (v *View) BytesPerPage(p geom.Perspective) uint64 {
	return uint64(v.Rows()) * p.Cols
}

// SyncTo adopts another view's whole-cell position and rescales its pixel
// remainders by the ratio of cell sizes, keeping two views over the same
// perspective visually aligned despite different cell geometries.
func (v *View) SyncTo(src *ScrollOffset, srcColW, srcRowH int) {
	v.Scroll.Row = src.Row
	v.Scroll.Col = src.Col
	yRatio := float64(srcRowH) / float64(v.RowH)
	xRatio := float64(srcColW) / float64(v.ColW)
	v.Scroll.PixYOff = int(float64(src.PixYOff) / yRatio)
	v.Scroll.PixXOff = int(float64(src.PixXOff) / xRatio)
}

// CenterOnOffset scrolls so the byte at offset is centered in the viewport.
func (v *View) CenterOnOffset(offset uint64, p geom.Perspective) {
	row, col, ok := p.RowColOfByteOffset(offset)
	if !ok {
		return
	}
	v.Scroll.Row = row
	v.Scroll.Col = col
	v.Scroll.Floor()
	v.ScrollX(-v.Viewport.W / 2)
	v.ScrollY(-v.Viewport.H / 2)
}

// ScrollToByteOffset scrolls to the position of a byte offset, with each
// axis updated selectively. Views locked on one axis pass false for the
// other.
func (v *View) ScrollToByteOffset(offset uint64, p geom.Perspective, doRow, doCol bool) {
	row, col, ok := p.RowColOfByteOffset(offset)
	if !ok {
		return
	}
	if doRow {
		v.Scroll.Row = row
	}
	if doCol {
		v.Scroll.Col = col
	}
	v.Scroll.Floor()
}

// Offsets describes where a view currently starts showing from.
type Offsets struct {
	Row  uint64
	Col  uint64
	Byte uint64
	// Valid is false when the scroll position is past the perspective's
	// data.
	Valid bool
}

// Offsets returns the (row, col, byte) triple at the view's scroll origin.
func (v *View) Offsets(p geom.Perspective) Offsets {
	byte_, ok := p.ByteOffsetOfRowCol(v.Scroll.Row, v.Scroll.Col)
	return Offsets{Row: v.Scroll.Row, Col: v.Scroll.Col, Byte: byte_, Valid: ok}
}

// RowColOffsetOfPos hit-tests a viewport pixel position against the
// perspective grid, including scrolling. ok is false when the position is
// outside the viewport or lands outside the perspective's data.
func (v *View) RowColOffsetOfPos(x, y int, p geom.Perspective) (row, col uint64, ok bool) {
	relX, relY, ok := v.Viewport.relativeOffsetOfPos(x, y)
	if !ok {
		return 0, 0, false
	}
	return v.rowColOfRelPos(relX, relY, p)
}

func (v *View) rowColOfRelPos(x, y int, p geom.Perspective) (uint64, uint64, bool) {
	relX := x + v.Scroll.PixXOff
	relY := y + v.Scroll.PixYOff
	relCol := relX / v.ColW
	relRow := relY / v.RowH
	if p.FlipRowOrder {
		relRow = v.Rows() - relRow
	}
	if relX <= 0 || relY <= 0 || relRow < 0 || relCol < 0 {
		return 0, 0, false
	}
	absRow := v.Scroll.Row + uint64(relRow)
	absCol := v.Scroll.Col + uint64(relCol)
	if !p.RowColWithinBound(absRow, absCol) {
		return 0, 0, false
	}
	return absRow, absCol, true
}
