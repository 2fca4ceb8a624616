package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hexbench/internal/core/damage"
	"github.com/colonyops/hexbench/internal/core/source"
)

func newEditFixture(t *testing.T, kind Kind, data []byte) (*View, *EditContext, *[]string) {
	t.Helper()
	v := New(kind, 0, 0, 200, 100)
	var (
		cursor uint64
		warns  []string
	)
	ctx := &EditContext{
		Source: source.NewBuffer(data),
		Damage: &damage.Tracker{},
		Cursor: &cursor,
		Warn:   func(msg string) { warns = append(warns, msg) },
	}
	return v, ctx, &warns
}

func TestHexEdit_TwoDigitsCommit(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindHex, []byte{0x3F, 0x00})

	// First digit stages, second fills the cell and commits.
	assert.False(t, v.HandleTextEntered('a', ctx))
	assert.True(t, v.EditBuf.Dirty)
	assert.True(t, v.HandleTextEntered('5', ctx))

	b, ok := ctx.Source.ReadByteAt(0)
	require.True(t, ok)
	assert.Equal(t, byte(0xA5), b)

	// Cursor advanced past the committed cell.
	assert.Equal(t, uint64(1), *ctx.Cursor)

	// Damage covers exactly the edited byte.
	r, tracked := ctx.Damage.Tracked()
	require.True(t, tracked)
	assert.Equal(t, uint64(0), r.Begin)
	assert.Equal(t, uint64(0), r.End)

	// Buffer was reset for the next cell.
	assert.False(t, v.EditBuf.Dirty)
}

func TestHexEdit_SeedKeepsUntypedNibble(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindHex, []byte{0x3F, 0x00})
	ctx.QuickEdit = true

	// Quick edit: one typed digit replaces only the high nibble, the low
	// nibble comes from the pre-seeded current value.
	assert.True(t, v.HandleTextEntered('a', ctx))
	b, _ := ctx.Source.ReadByteAt(0)
	assert.Equal(t, byte(0xAF), b)
}

func TestHexEdit_StickyKeepsCursor(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindHex, []byte{0x00, 0x00})
	ctx.StickyEdit = true

	v.HandleTextEntered('1', ctx)
	v.HandleTextEntered('2', ctx)
	assert.Equal(t, uint64(0), *ctx.Cursor)
}

func TestHexEdit_CursorStopsAtLastByte(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindHex, []byte{0x00})

	v.HandleTextEntered('f', ctx)
	v.HandleTextEntered('f', ctx)
	// Single-byte source: nowhere to advance to.
	assert.Equal(t, uint64(0), *ctx.Cursor)
}

func TestHexEdit_RejectsInvalidChars(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindHex, []byte{0x00})

	assert.False(t, v.HandleTextEntered('g', ctx))
	assert.False(t, v.HandleTextEntered('A', ctx)) // uppercase is not typed directly
	assert.False(t, v.EditBuf.Dirty)
}

func TestDecEdit_Commit(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindDec, []byte{0x00, 0x00})

	v.HandleTextEntered('1', ctx)
	v.HandleTextEntered('2', ctx)
	assert.True(t, v.HandleTextEntered('7', ctx))

	b, _ := ctx.Source.ReadByteAt(0)
	assert.Equal(t, byte(127), b)
}

func TestDecEdit_OverflowWarnsAndLeavesByte(t *testing.T) {
	v, ctx, warns := newEditFixture(t, KindDec, []byte{0x42, 0x00})

	v.HandleTextEntered('9', ctx)
	v.HandleTextEntered('9', ctx)
	v.HandleTextEntered('9', ctx)

	// Parse failed: warned, byte unmodified, no damage, buffer reset.
	assert.NotEmpty(t, *warns)
	b, _ := ctx.Source.ReadByteAt(0)
	assert.Equal(t, byte(0x42), b)
	assert.False(t, ctx.Damage.Dirty())
	assert.False(t, v.EditBuf.Dirty)

	// Cursor still advances: the edit attempt is over either way.
	assert.Equal(t, uint64(1), *ctx.Cursor)
}

func TestTextEdit_StagesRawByte(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindText, []byte{0x00, 0x00})

	assert.True(t, v.HandleTextEntered('Q', ctx))
	b, _ := ctx.Source.ReadByteAt(0)
	assert.Equal(t, byte('Q'), b)
}

func TestBlockView_NoTextEntry(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindBlock, []byte{0x00})

	assert.False(t, v.HandleTextEntered('a', ctx))
	assert.False(t, ctx.Damage.Dirty())
}

func TestCancelEditing(t *testing.T) {
	v, ctx, _ := newEditFixture(t, KindHex, []byte{0x3F})

	v.HandleTextEntered('a', ctx)
	v.CancelEditing()

	assert.False(t, v.EditBuf.Dirty)
	b, _ := ctx.Source.ReadByteAt(0)
	assert.Equal(t, byte(0x3F), b)
}

func TestEdit_ReadOnlySourceWarns(t *testing.T) {
	v, _, _ := newEditFixture(t, KindHex, nil)

	var (
		cursor uint64
		warns  []string
	)
	ro := source.NewBufferWithAttrs([]byte{0x00}, source.Attributes{
		Seekable: true,
		Perms:    source.Permissions{Read: true},
	})
	ctx := &EditContext{
		Source: ro,
		Damage: &damage.Tracker{},
		Cursor: &cursor,
		Warn:   func(msg string) { warns = append(warns, msg) },
	}

	v.HandleTextEntered('1', ctx)
	v.HandleTextEntered('2', ctx)

	assert.NotEmpty(t, warns)
	assert.False(t, ctx.Damage.Dirty())
	b, _ := ro.ReadByteAt(0)
	assert.Equal(t, byte(0), b)
}
