package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hexbench/internal/core/config"
	"github.com/colonyops/hexbench/internal/core/session"
	"github.com/colonyops/hexbench/internal/core/source"
)

func newTestModel(t *testing.T, data []byte) *Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	h, err := source.Open(source.OpenSpec{Path: path, Take: -1})
	require.NoError(t, err)

	sess := session.New(h, session.Preferences{}, zerolog.Nop())
	t.Cleanup(func() { _ = sess.Close() })

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	m := New(Deps{Session: sess, Config: &cfg})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func pressRune(m *Model, r rune) tea.Cmd {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func typeString(m *Model, s string) {
	for _, r := range s {
		pressRune(m, r)
	}
}

func TestModel_HexEditCommitsCell(t *testing.T) {
	m := newTestModel(t, []byte{0x3F, 0x00})

	pressRune(m, 'a')
	pressRune(m, '5')

	b, ok := m.sess.Source().ReadByteAt(0)
	require.True(t, ok)
	assert.Equal(t, byte(0xA5), b)
	assert.Equal(t, uint64(1), m.sess.Cursor)
	assert.True(t, m.sess.Dirty())
}

func TestModel_CursorMovementClamps(t *testing.T) {
	m := newTestModel(t, make([]byte, 64))

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, uint64(1), m.sess.Cursor)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, uint64(17), m.sess.Cursor)

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, uint64(0), m.sess.Cursor)

	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, uint64(63), m.sess.Cursor)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, uint64(63), m.sess.Cursor)
}

func TestModel_GotoPrompt(t *testing.T) {
	m := newTestModel(t, make([]byte, 64))

	pressRune(m, ':')
	typeString(m, "0x10")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, uint64(0x10), m.sess.Cursor)
	assert.Equal(t, modeNormal, m.mode)
}

func TestModel_GotoOutOfRange(t *testing.T) {
	m := newTestModel(t, make([]byte, 8))

	pressRune(m, ':')
	typeString(m, "999")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, uint64(0), m.sess.Cursor)
	assert.Contains(t, m.toast, "out of range")
}

func TestModel_SearchJumpsBetweenMatches(t *testing.T) {
	m := newTestModel(t, []byte{0x61, 0x62, 0x61, 0x62})

	pressRune(m, '/')
	typeString(m, "6162")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, []uint64{0, 2}, m.matches)
	assert.Equal(t, uint64(0), m.sess.Cursor)

	pressRune(m, 'n')
	assert.Equal(t, uint64(2), m.sess.Cursor)

	// Wraps around.
	pressRune(m, 'n')
	assert.Equal(t, uint64(0), m.sess.Cursor)

	pressRune(m, 'N')
	assert.Equal(t, uint64(2), m.sess.Cursor)
}

func TestModel_SearchLiteralText(t *testing.T) {
	m := newTestModel(t, []byte("say hello twice, hello"))

	pressRune(m, '/')
	typeString(m, `"hello"`)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []uint64{4, 17}, m.matches)
}

func TestModel_SelectionFill(t *testing.T) {
	m := newTestModel(t, make([]byte, 8))

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	pressRune(m, '(')
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	pressRune(m, ')')

	pressRune(m, 'F')
	typeString(m, "ee")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	data := m.sess.Source().ReadRangeBounded(0, 8)
	assert.Equal(t, []byte{0, 0xEE, 0xEE, 0xEE, 0, 0, 0, 0}, data)
	assert.True(t, m.sess.Dirty())
}

func TestModel_FillWithoutSelectionWarns(t *testing.T) {
	m := newTestModel(t, make([]byte, 8))

	pressRune(m, 'F')
	assert.Equal(t, modeNormal, m.mode)
	assert.Contains(t, m.toast, "no selection")
}

func TestModel_ColsMutation(t *testing.T) {
	m := newTestModel(t, make([]byte, 256))

	pressRune(m, ']')
	assert.Equal(t, uint64(17), m.cols)

	pressRune(m, '}')
	assert.Equal(t, uint64(34), m.cols)

	pressRune(m, '{')
	assert.Equal(t, uint64(17), m.cols)

	pressRune(m, '[')
	assert.Equal(t, uint64(16), m.cols)
}

func TestModel_ColsChangeKeepsTopLeftByte(t *testing.T) {
	m := newTestModel(t, make([]byte, 1024))

	// Scroll down so the top-left byte is row 4: offset 64 with 16 cols.
	m.hex.Scroll.Row = 4
	m.syncText()

	pressRune(m, '}')
	p, ok := m.perspective()
	require.True(t, ok)

	off := m.hex.Offsets(p)
	require.True(t, off.Valid)
	assert.Equal(t, uint64(64), off.Byte)
}

func TestModel_ColsNeverBelowOne(t *testing.T) {
	m := newTestModel(t, make([]byte, 8))
	m.cols = 1

	pressRune(m, '[')
	assert.Equal(t, uint64(1), m.cols)
	pressRune(m, '{')
	assert.Equal(t, uint64(1), m.cols)
}

func TestModel_QuitConfirmsWhenDirty(t *testing.T) {
	m := newTestModel(t, []byte{0x3F})

	pressRune(m, 'a')
	pressRune(m, '5')
	require.True(t, m.sess.Dirty())

	cmd := pressRune(m, 'q')
	assert.Nil(t, cmd)
	assert.Contains(t, m.toast, "unsaved")

	cmd = pressRune(m, 'q')
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_QuitCleanExitsImmediately(t *testing.T) {
	m := newTestModel(t, []byte{1})

	cmd := pressRune(m, 'q')
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_BookmarkRoundTrip(t *testing.T) {
	m := newTestModel(t, make([]byte, 64))

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	pressRune(m, 'm')
	typeString(m, "spot")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	marks := m.sess.Meta().Bookmarks()
	require.Len(t, marks, 1)
	assert.Equal(t, "spot", marks[0].Name)
	assert.Equal(t, uint64(16), marks[0].Offset)

	press(m, tea.KeyMsg{Type: tea.KeyHome})
	pressRune(m, '\'')
	assert.Equal(t, uint64(16), m.sess.Cursor)
}

func TestModel_ViewRendersHexAndText(t *testing.T) {
	m := newTestModel(t, []byte("Hi!"))

	out := m.View()
	assert.Contains(t, out, "00000000")
	assert.Contains(t, out, "48")
	assert.Contains(t, out, "69")
	assert.Contains(t, out, "21")
}

func TestModel_ViewEmptySource(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Contains(t, m.View(), "(empty source)")
}

func TestParseSearchInput(t *testing.T) {
	got, err := parseSearchInput("de ad")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD}, got)

	got, err = parseSearchInput(`"abc"`)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = parseSearchInput("xyz")
	assert.Error(t, err)
}
