package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hexbench/internal/core/geom"
	"github.com/colonyops/hexbench/internal/core/source"
	"github.com/colonyops/hexbench/internal/core/view"
)

func newTestSession(t *testing.T, data []byte) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	h, err := source.Open(source.OpenSpec{Path: path, Take: -1})
	require.NoError(t, err)

	s := New(h, Preferences{}, zerolog.Nop())
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSession_WriteByteWidensDamage(t *testing.T) {
	s, _ := newTestSession(t, []byte{0, 1, 2, 3})

	require.NoError(t, s.WriteByte(2, 0xAA))
	require.NoError(t, s.WriteByte(1, 0xBB))

	r, ok := s.DamageRegion()
	require.True(t, ok)
	assert.Equal(t, geom.Region{Begin: 1, End: 2}, r)
}

func TestSession_SaveWritesMinimalRangeAndClears(t *testing.T) {
	s, path := newTestSession(t, []byte{0, 1, 2, 3, 4})

	require.NoError(t, s.WriteByte(1, 0xAA))
	require.NoError(t, s.WriteByte(3, 0xBB))
	require.NoError(t, s.Save())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0xAA, 2, 0xBB, 4}, got)
	assert.False(t, s.Dirty())
}

func TestSession_FailedSaveKeepsDamage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	h, err := source.Open(source.OpenSpec{Path: "-", Take: -1, Stdin: os.Stdin})
	require.NoError(t, err)
	s := New(h, Preferences{}, zerolog.Nop())
	t.Cleanup(func() { _ = s.Close() })

	// Stream sources have no backing file, so saving fails. The damage
	// tracker must stay intact for a retry.
	s.damage.WidenSingle(0)
	assert.ErrorIs(t, s.Save(), source.ErrNoFile)
	assert.True(t, s.Dirty())
}

func TestSession_ReloadDiscardsEdits(t *testing.T) {
	s, _ := newTestSession(t, []byte{9, 9, 9})

	require.NoError(t, s.WriteByte(0, 0x11))
	require.NoError(t, s.Reload())

	v, ok := s.Source().ReadByteAt(0)
	require.True(t, ok)
	assert.Equal(t, byte(9), v)
	assert.False(t, s.Dirty())
}

func TestSession_FillRegion(t *testing.T) {
	s, _ := newTestSession(t, []byte{0, 0, 0, 0, 0})

	require.NoError(t, s.FillRegion(geom.NewRegion(1, 3), 0xEE))

	data, ok := s.Source().ReadRange(geom.NewRegion(0, 4))
	require.True(t, ok)
	assert.Equal(t, []byte{0, 0xEE, 0xEE, 0xEE, 0}, data)

	r, tracked := s.DamageRegion()
	require.True(t, tracked)
	assert.Equal(t, geom.Region{Begin: 1, End: 3}, r)
}

func TestSession_EditThroughView(t *testing.T) {
	s, _ := newTestSession(t, []byte{0x3F, 0x00})

	v := view.New(view.KindHex, 0, 0, 200, 100)
	v.HandleTextEntered('a', s.EditContext())
	v.HandleTextEntered('5', s.EditContext())

	b, ok := s.Source().ReadByteAt(0)
	require.True(t, ok)
	assert.Equal(t, byte(0xA5), b)
	assert.Equal(t, uint64(1), s.Cursor)
	assert.True(t, s.Dirty())
}

func TestSession_SearchAll(t *testing.T) {
	s, _ := newTestSession(t, []byte{0x61, 0x62, 0x61, 0x62})
	assert.Equal(t, []uint64{0, 2}, s.SearchAll([]byte{0x61, 0x62}))
	assert.Empty(t, s.SearchAll([]byte{0xFF}))
}

func TestSession_CursorStepping(t *testing.T) {
	s, _ := newTestSession(t, []byte{1, 2, 3})

	s.StepCursorBack()
	assert.Equal(t, uint64(0), s.Cursor)

	s.StepCursorForward()
	s.StepCursorForward()
	s.StepCursorForward()
	assert.Equal(t, uint64(2), s.Cursor)
}

func TestSession_BackupRoundTrip(t *testing.T) {
	s, path := newTestSession(t, []byte{1, 2, 3})

	require.NoError(t, s.CreateBackup())
	require.NoError(t, s.WriteByte(0, 0xFF))
	require.NoError(t, s.Save())

	require.NoError(t, s.RestoreBackup())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	v, _ := s.Source().ReadByteAt(0)
	assert.Equal(t, byte(1), v)
	assert.False(t, s.Dirty())
}

func TestSession_WarnFunc(t *testing.T) {
	s, _ := newTestSession(t, []byte{1})

	var got []string
	s.SetWarnFunc(func(msg string) { got = append(got, msg) })
	s.Warn("something odd")
	assert.Equal(t, []string{"something odd"}, got)
}
