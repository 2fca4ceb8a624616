// Package tui implements the interactive hex editor on top of the core:
// a Bubble Tea model driving a session through views and perspectives.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/hexbench/internal/core/config"
	"github.com/colonyops/hexbench/internal/core/geom"
	"github.com/colonyops/hexbench/internal/core/session"
	"github.com/colonyops/hexbench/internal/core/view"
	"github.com/colonyops/hexbench/pkg/hexfmt"
)

// offsetColWidth is the width of the leading offset column, "00000000  ".
const offsetColWidth = 10

// chrome is the number of terminal rows reserved below the panes for the
// status bar and the prompt/toast line.
const chrome = 2

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeGoto
	modeFill
	modeBookmark
)

type pane int

const (
	paneHex pane = iota
	paneText
)

// Deps are the dependencies the TUI consumes.
type Deps struct {
	Session *session.Session
	Config  *config.Config
}

// Model is the Bubble Tea model for the editor.
type Model struct {
	sess *session.Session
	cfg  *config.Config
	keys keyMap
	st   styles

	// hex is the scroll owner; text follows it via SyncTo.
	hex  *view.View
	text *view.View
	cols uint64
	// Axis locks for column-count changes: a locked axis keeps its scroll
	// position instead of following the anchored byte.
	lockX bool
	lockY bool

	focus    pane
	showText bool
	debug    bool

	mode  mode
	input textinput.Model

	pattern  []byte
	matches  []uint64
	matchIdx int

	selA *uint64
	selB *uint64

	width  int
	height int

	toast       string
	confirmQuit bool
}

// New builds the editor model around an open session.
func New(deps Deps) *Model {
	cols := deps.Config.TUI.Cols
	if cols == 0 {
		cols = 16
	}

	// Terminal cells are the pixel unit here: a hex cell is "XX " wide,
	// a text cell one character, both one row tall.
	hex := view.New(view.KindHex, 0, 0, int(cols)*3, 24)
	hex.ColW, hex.RowH = 3, 1
	hex.ScrollSpeed = deps.Config.TUI.ScrollSpeed

	text := view.New(view.KindText, 0, 0, int(cols), 24)
	text.ColW, text.RowH = 1, 1
	text.ScrollSpeed = deps.Config.TUI.ScrollSpeed

	m := &Model{
		sess:     deps.Session,
		cfg:      deps.Config,
		keys:     defaultKeyMap(),
		st:       defaultStyles(),
		hex:      hex,
		text:     text,
		cols:     cols,
		showText: deps.Config.TUI.ShowText,
		debug:    deps.Config.TUI.DebugOverlay,
		input:    textinput.New(),
	}
	m.input.CharLimit = 256
	m.sess.SetWarnFunc(func(msg string) { m.toast = msg })
	return m
}

// Cols returns the current column count, persisted on exit.
func (m *Model) Cols() uint64 { return m.cols }

// perspective derives the grid over the full current source contents.
// ok is false for an empty source, which has no valid region.
func (m *Model) perspective() (geom.Perspective, bool) {
	n := m.sess.Source().Len()
	if n == 0 {
		return geom.Perspective{}, false
	}
	return geom.NewPerspective(geom.NewRegion(0, n-1), m.cols), true
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.updatePrompt(msg)
		}
		m.toast = ""
		return m.updateNormal(msg)
	}

	return m, nil
}

// layout divides the terminal between the panes and the chrome rows.
func (m *Model) layout() {
	rows := max(m.height-chrome, 1)
	m.hex.Viewport = view.Rect{X: 0, Y: 0, W: int(m.cols) * m.hex.ColW, H: rows}
	m.text.Viewport = view.Rect{X: 0, Y: 0, W: int(m.cols) * m.text.ColW, H: rows}
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.sess.Dirty() && !m.confirmQuit {
			m.confirmQuit = true
			m.toast = "unsaved edits: ctrl+s to save, quit again to discard"
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.activeView().CancelEditing()
		m.selA, m.selB = nil, nil
		m.matches = nil
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		if m.activeView().EditBuf.Dirty {
			m.activeView().FinishEditing(m.sess.EditContext())
			m.afterEdit()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-int64(m.cols))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(int64(m.cols))
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		if p, ok := m.perspective(); ok {
			m.moveCursor(-int64(m.hex.BytesPerPage(p)))
		}
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		if p, ok := m.perspective(); ok {
			m.moveCursor(int64(m.hex.BytesPerPage(p)))
		}
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.sess.Cursor = 0
		m.hex.GoHome()
		m.hex.Scroll.Floor()
		m.syncText()
		return m, nil
	case key.Matches(msg, m.keys.End):
		if p, ok := m.perspective(); ok {
			m.sess.Cursor = m.sess.Source().Len() - 1
			m.hex.ScrollToEnd(p)
			m.hex.Scroll.Floor()
			m.syncText()
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if err := m.sess.Save(); err != nil {
			m.toast = "save failed: " + err.Error()
		} else {
			m.toast = "saved"
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if err := m.sess.Reload(); err != nil {
			m.toast = "reload failed: " + err.Error()
		} else {
			m.toast = "reloaded"
			m.ensureVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Backup):
		if err := m.sess.CreateBackup(); err != nil {
			m.toast = "backup failed: " + err.Error()
		} else {
			m.toast = "backup created"
		}
		return m, nil

	case key.Matches(msg, m.keys.RestoreBackup):
		if err := m.sess.RestoreBackup(); err != nil {
			m.toast = "restore failed: " + err.Error()
		} else {
			m.toast = "backup restored"
			m.ensureVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		if m.showText {
			m.activeView().CancelEditing()
			if m.focus == paneHex {
				m.focus = paneText
			} else {
				m.focus = paneHex
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleText):
		m.showText = !m.showText
		if !m.showText {
			m.focus = paneHex
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleDebug):
		m.debug = !m.debug
		return m, nil
	}

	// In the text pane every printable character is an edit, so the
	// remaining bindings are reachable only from the hex pane (where
	// entry consumes just lowercase hex digits).
	if ch, ok := singleChar(msg); ok && m.activeView().CharValid(ch) {
		if m.activeView().HandleTextEntered(ch, m.sess.EditContext()) {
			m.afterEdit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(modeSearch, "hex pattern (or \"text\")")
	case key.Matches(msg, m.keys.Goto):
		return m.openPrompt(modeGoto, "offset (0x.. or decimal)")
	case key.Matches(msg, m.keys.Fill):
		if _, ok := m.selection(); !ok {
			m.toast = "no selection: set endpoints with ( and )"
			return m, nil
		}
		return m.openPrompt(modeFill, "fill byte (hex)")
	case key.Matches(msg, m.keys.Bookmark):
		return m.openPrompt(modeBookmark, "bookmark name")

	case key.Matches(msg, m.keys.NextMatch):
		m.stepMatch(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevMatch):
		m.stepMatch(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextMark):
		m.jumpNextBookmark()
		return m, nil

	case key.Matches(msg, m.keys.SelectA):
		off := m.sess.Cursor
		m.selA = &off
		return m, nil
	case key.Matches(msg, m.keys.SelectB):
		off := m.sess.Cursor
		m.selB = &off
		return m, nil

	case key.Matches(msg, m.keys.ColsDec):
		m.changeCols(func(c uint64) uint64 { return c - 1 })
		return m, nil
	case key.Matches(msg, m.keys.ColsInc):
		m.changeCols(func(c uint64) uint64 { return c + 1 })
		return m, nil
	case key.Matches(msg, m.keys.ColsHalve):
		m.changeCols(func(c uint64) uint64 { return c / 2 })
		return m, nil
	case key.Matches(msg, m.keys.ColsDouble):
		m.changeCols(func(c uint64) uint64 { return c * 2 })
		return m, nil

	case key.Matches(msg, m.keys.LockX):
		m.lockX = !m.lockX
		m.toast = fmt.Sprintf("column lock %s", onOff(m.lockX))
		return m, nil
	case key.Matches(msg, m.keys.LockY):
		m.lockY = !m.lockY
		m.toast = fmt.Sprintf("row lock %s", onOff(m.lockY))
		return m, nil
	}

	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.Commit):
		m.submitPrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(md mode, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) closePrompt() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) submitPrompt() {
	raw := strings.TrimSpace(m.input.Value())
	md := m.mode
	m.closePrompt()

	switch md {
	case modeSearch:
		m.runSearch(raw)
	case modeGoto:
		m.runGoto(raw)
	case modeFill:
		m.runFill(raw)
	case modeBookmark:
		m.runBookmark(raw)
	}
}

func (m *Model) runSearch(raw string) {
	needle, err := parseSearchInput(raw)
	if err != nil {
		m.toast = err.Error()
		return
	}

	m.pattern = needle
	m.matches = m.sess.SearchAll(needle)
	if len(m.matches) == 0 {
		m.toast = "no matches"
		return
	}
	m.matchIdx = 0
	m.jumpToMatch()
}

func (m *Model) runGoto(raw string) {
	off, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		m.toast = "bad offset: " + raw
		return
	}
	n := m.sess.Source().Len()
	if n == 0 || off >= n {
		m.toast = fmt.Sprintf("offset 0x%X out of range", off)
		return
	}
	m.sess.Cursor = off
	m.centerOnCursor()
}

func (m *Model) runFill(raw string) {
	r, ok := m.selection()
	if !ok {
		m.toast = "no selection"
		return
	}
	val, err := hexfmt.ParseHexPattern(raw)
	if err != nil || len(val) != 1 {
		m.toast = "fill value must be one hex byte"
		return
	}
	if err := m.sess.FillRegion(r, val[0]); err != nil {
		m.toast = "fill failed: " + err.Error()
		return
	}
	m.toast = fmt.Sprintf("filled %d bytes with %s", r.Len(), hexfmt.UpperHex(val[0]))
	m.autoSave()
}

func (m *Model) runBookmark(raw string) {
	if raw == "" {
		m.toast = "bookmark needs a name"
		return
	}
	m.sess.Meta().AddBookmark(session.Bookmark{Name: raw, Offset: m.sess.Cursor})
	m.toast = fmt.Sprintf("bookmark %q at 0x%X", raw, m.sess.Cursor)
}

// selection returns the inclusive region between the two endpoints, in
// either order.
func (m *Model) selection() (geom.Region, bool) {
	if m.selA == nil || m.selB == nil {
		return geom.Region{}, false
	}
	a, b := *m.selA, *m.selB
	if a > b {
		a, b = b, a
	}
	return geom.NewRegion(a, b), true
}

func (m *Model) stepMatch(dir int) {
	if len(m.matches) == 0 {
		m.toast = "no search results"
		return
	}
	m.matchIdx = (m.matchIdx + dir + len(m.matches)) % len(m.matches)
	m.jumpToMatch()
}

func (m *Model) jumpToMatch() {
	m.sess.Cursor = m.matches[m.matchIdx]
	m.centerOnCursor()
	m.toast = fmt.Sprintf("match %d/%d at 0x%X", m.matchIdx+1, len(m.matches), m.sess.Cursor)
}

func (m *Model) jumpNextBookmark() {
	marks := m.sess.Meta().Bookmarks()
	if len(marks) == 0 {
		m.toast = "no bookmarks"
		return
	}
	next := marks[0]
	for _, b := range marks {
		if b.Offset > m.sess.Cursor {
			next = b
			break
		}
	}
	m.sess.Cursor = next.Offset
	m.centerOnCursor()
	m.toast = fmt.Sprintf("bookmark %q at 0x%X", next.Name, next.Offset)
}

func (m *Model) centerOnCursor() {
	p, ok := m.perspective()
	if !ok {
		return
	}
	m.hex.CenterOnOffset(m.sess.Cursor, p)
	m.hex.Scroll.Floor()
	m.syncText()
}

// changeCols mutates the column count while keeping the view anchored on
// the byte that was at the top-left corner, unless an axis is locked.
func (m *Model) changeCols(fn func(uint64) uint64) {
	p, ok := m.perspective()
	if !ok {
		return
	}

	anchor := m.hex.Offsets(p)

	next := fn(m.cols)
	if next < 1 {
		next = 1
	}
	if next == m.cols {
		return
	}
	m.cols = next
	m.layout()

	p, _ = m.perspective()
	if anchor.Valid {
		m.hex.ScrollToByteOffset(anchor.Byte, p, !m.lockY, !m.lockX)
	}
	m.syncText()
	m.toast = fmt.Sprintf("%d columns", m.cols)
}

func (m *Model) activeView() *view.View {
	if m.focus == paneText {
		return m.text
	}
	return m.hex
}

// afterEdit runs after a committed cell: keep the cursor visible and
// honor the auto-save preference.
func (m *Model) afterEdit() {
	m.ensureVisible()
	m.autoSave()
}

func (m *Model) autoSave() {
	if m.sess.Prefs.AutoSave && m.sess.Dirty() {
		if err := m.sess.Save(); err != nil {
			m.toast = "auto-save failed: " + err.Error()
		}
	}
}

func (m *Model) moveCursor(delta int64) {
	m.activeView().CancelEditing()

	n := m.sess.Source().Len()
	if n == 0 {
		return
	}
	cur := int64(m.sess.Cursor) + delta
	if cur < 0 {
		cur = 0
	}
	if cur >= int64(n) {
		cur = int64(n) - 1
	}
	m.sess.Cursor = uint64(cur)
	m.ensureVisible()
}

// ensureVisible scrolls the hex view just enough to keep the cursor row
// on screen.
func (m *Model) ensureVisible() {
	p, ok := m.perspective()
	if !ok {
		return
	}
	row, _, ok := p.RowColOfByteOffset(m.sess.Cursor)
	if !ok {
		return
	}

	visible := uint64(max(m.hex.Rows(), 1))
	switch {
	case row < m.hex.Scroll.Row:
		m.hex.Scroll.Row = row
		m.hex.Scroll.Floor()
	case row >= m.hex.Scroll.Row+visible:
		m.hex.Scroll.Row = row - visible + 1
		m.hex.Scroll.Floor()
	}
	m.syncText()
}

func (m *Model) syncText() {
	m.text.SyncTo(&m.hex.Scroll, m.hex.ColW, m.hex.RowH)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.hex.ScrollY(-m.hex.ScrollSpeed * m.hex.RowH)
		m.syncText()
	case tea.MouseButtonWheelDown:
		m.hex.ScrollY(m.hex.ScrollSpeed * m.hex.RowH)
		m.syncText()
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		m.clickToCursor(msg.X, msg.Y)
	}
}

// clickToCursor hit-tests a terminal click against whichever pane it
// landed in and moves the cursor to that byte.
func (m *Model) clickToCursor(x, y int) {
	p, ok := m.perspective()
	if !ok {
		return
	}

	hexStart := offsetColWidth
	hexEnd := hexStart + m.hex.Viewport.W
	textStart := hexEnd + 2

	var row, col uint64
	switch {
	case x >= hexStart && x < hexEnd:
		row, col, ok = m.hex.RowColOffsetOfPos(x-hexStart, y, p)
	case m.showText && x >= textStart && x < textStart+m.text.Viewport.W:
		row, col, ok = m.text.RowColOffsetOfPos(x-textStart, y, p)
	default:
		return
	}
	if !ok {
		return
	}

	if off, valid := p.ByteOffsetOfRowCol(row, col); valid {
		m.activeView().CancelEditing()
		m.sess.Cursor = off
	}
}

func singleChar(msg tea.KeyMsg) (byte, bool) {
	if msg.Type == tea.KeySpace {
		return ' ', true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r > 0x7F {
		return 0, false
	}
	return byte(r), true
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
