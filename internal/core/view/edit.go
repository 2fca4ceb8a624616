package view

import (
	"strconv"

	"github.com/colonyops/hexbench/internal/core/damage"
	"github.com/colonyops/hexbench/pkg/hexfmt"
)

// ByteAccess is the part of the data source editing needs.
type ByteAccess interface {
	ReadByteAt(offset uint64) (b byte, ok bool)
	WriteByteAt(offset uint64, b byte) error
	Len() uint64
}

// EditContext carries the collaborators and preferences one edit keystroke
// acts on. The session builds it per event; the view never retains it.
type EditContext struct {
	Source ByteAccess
	Damage *damage.Tracker
	// Cursor is the byte offset being edited. Commit advances it unless
	// StickyEdit is set.
	Cursor *uint64
	// QuickEdit commits after a single typed digit.
	QuickEdit bool
	// StickyEdit keeps the cursor in place after a commit.
	StickyEdit bool
	// Warn surfaces a non-fatal user-visible warning.
	Warn func(msg string)
}

func (ctx *EditContext) warn(msg string) {
	if ctx.Warn != nil {
		ctx.Warn(msg)
	}
}

// CharValid reports whether c can be typed into a cell of this view's kind.
func (v *View) CharValid(c byte) bool {
	switch v.Kind {
	case KindHex:
		return hexfmt.IsHexDigit(c)
	case KindDec:
		return hexfmt.IsDecDigit(c)
	case KindText:
		return c < 0x80
	default:
		return false
	}
}

// HandleTextEntered stages a typed character into the edit buffer,
// committing when the cell is full or quick edit is on. Invalid characters
// for the kind are ignored. Returns whether a commit happened.
func (v *View) HandleTextEntered(c byte, ctx *EditContext) bool {
	if !v.CharValid(c) {
		return false
	}

	switch v.Kind {
	case KindHex:
		if !v.EditBuf.Dirty {
			if cur, ok := ctx.Source.ReadByteAt(*ctx.Cursor); ok {
				v.EditBuf.Seed(hexfmt.UpperHex(cur))
			}
		}
	case KindDec:
		if !v.EditBuf.Dirty {
			if cur, ok := ctx.Source.ReadByteAt(*ctx.Cursor); ok {
				v.EditBuf.Seed(hexfmt.PaddedDec(cur))
			}
		}
	case KindText:
		// Text cells take the raw character, no seeding.
	case KindBlock:
		return false
	}

	if v.EditBuf.EnterByte(c) || ctx.QuickEdit {
		v.FinishEditing(ctx)
		return true
	}
	return false
}

// FinishEditing parses the edit buffer per kind, writes the resulting byte
// at the cursor, widens the damage tracker, and advances the cursor. A
// parse failure warns and leaves the byte unmodified; the buffer is reset
// either way.
func (v *View) FinishEditing(ctx *EditContext) {
	switch v.Kind {
	case KindHex:
		buf := v.EditBuf.Bytes()
		v.commitByte(ctx, hexfmt.MergeHexHalves(buf[0], buf[1]))
	case KindDec:
		s := string(v.EditBuf.Bytes())
		n, err := strconv.Atoi(s)
		if err != nil || n > 255 {
			ctx.warn("invalid value: " + s)
		} else {
			v.commitByte(ctx, byte(n))
		}
	case KindText:
		v.commitByte(ctx, v.EditBuf.Bytes()[0])
	case KindBlock:
	}

	if *ctx.Cursor+1 < ctx.Source.Len() && !ctx.StickyEdit {
		*ctx.Cursor++
	}
	v.EditBuf.Reset()
}

func (v *View) commitByte(ctx *EditContext, b byte) {
	if err := ctx.Source.WriteByteAt(*ctx.Cursor, b); err != nil {
		ctx.warn("write failed: " + err.Error())
		return
	}
	ctx.Damage.WidenSingle(*ctx.Cursor)
}

// CancelEditing discards the staged edit without writing.
func (v *View) CancelEditing() {
	v.EditBuf.Reset()
}
