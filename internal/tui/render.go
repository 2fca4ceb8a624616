package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hexbench/pkg/hexfmt"
)

// parseSearchInput turns prompt text into a needle: double-quoted input
// is literal bytes, anything else is a hex pattern.
func parseSearchInput(raw string) ([]byte, error) {
	if strings.HasPrefix(raw, `"`) {
		text := strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`)
		if text == "" {
			return nil, fmt.Errorf("empty text pattern")
		}
		return []byte(text), nil
	}
	needle, err := hexfmt.ParseHexPattern(raw)
	if err != nil {
		return nil, fmt.Errorf("bad pattern: %w", err)
	}
	return needle, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderPanes())
	b.WriteString(m.renderStatus())
	b.WriteByte('\n')
	b.WriteString(m.renderBottomLine())
	return b.String()
}

// renderPanes draws the visible rows: offset column, hex pane and,
// when enabled, the text pane.
func (m *Model) renderPanes() string {
	var b strings.Builder

	p, ok := m.perspective()
	if !ok {
		b.WriteString("(empty source)\n")
		for i := 1; i < max(m.height-chrome, 1); i++ {
			b.WriteByte('\n')
		}
		return b.String()
	}

	visible := uint64(max(m.hex.Rows(), 1))
	start := m.hex.Scroll.Row

	sel, hasSel := m.selection()

	for i := uint64(0); i < visible; i++ {
		row := start + i
		rowStart, valid := p.ByteOffsetOfRowCol(row, 0)
		if !valid {
			b.WriteByte('\n')
			continue
		}

		b.WriteString(m.st.OffsetCol.Render(fmt.Sprintf("%08X", rowStart)))
		b.WriteString("  ")

		var text strings.Builder
		for col := uint64(0); col < p.Cols; col++ {
			off, inData := p.ByteOffsetOfRowCol(row, col)
			if !inData {
				b.WriteString("   ")
				continue
			}

			val, _ := m.sess.Source().ReadByteAt(off)

			cell := hexfmt.UpperHex(val)
			style := lipgloss.NewStyle()
			editing := m.focus == paneHex && m.hex.EditBuf.Dirty && off == m.sess.Cursor

			switch {
			case editing:
				cell = string(m.hex.EditBuf.Bytes())
				style = m.st.Editing
			case off == m.sess.Cursor:
				style = m.st.Cursor
			case hasSel && sel.Contains(off):
				style = m.st.Selection
			case m.isMatchStart(off):
				style = m.st.Match
			}
			b.WriteString(style.Render(cell))
			b.WriteByte(' ')

			glyph := string(hexfmt.Printable(val))
			switch {
			case m.focus == paneText && off == m.sess.Cursor:
				glyph = m.st.Cursor.Render(glyph)
			case off == m.sess.Cursor:
				glyph = m.st.Match.Render(glyph)
			}
			text.WriteString(glyph)
		}

		if m.showText {
			b.WriteByte(' ')
			b.WriteString(text.String())
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func (m *Model) isMatchStart(off uint64) bool {
	_, found := slices.BinarySearch(m.matches, off)
	return found
}

func (m *Model) renderStatus() string {
	path := m.sess.Handle().Path()
	if path == "" {
		path = "(stdin)"
	}

	dirty := " "
	if m.sess.Dirty() {
		dirty = m.st.Dirty.Render("*")
	}

	status := fmt.Sprintf(" %s%s  0x%X/%d  %d cols  %s pane",
		path, dirty, m.sess.Cursor, m.sess.Source().Len(), m.cols, m.paneName())

	if m.debug {
		status += m.st.Debug.Render(fmt.Sprintf(
			"  [row=%d col=%d pix=%d,%d lockXY=%t,%t]",
			m.hex.Scroll.Row, m.hex.Scroll.Col,
			m.hex.Scroll.PixXOff, m.hex.Scroll.PixYOff,
			m.lockX, m.lockY))
	}

	return m.st.StatusBar.Render(status)
}

func (m *Model) renderBottomLine() string {
	if m.mode != modeNormal {
		return m.st.Prompt.Render(m.promptLabel()) + " " + m.input.View()
	}
	if m.toast != "" {
		return m.st.Toast.Render(m.toast)
	}
	return "/ search  : goto  ( ) select  F fill  m mark  [ ] cols  ctrl+s save  q quit"
}

func (m *Model) promptLabel() string {
	switch m.mode {
	case modeSearch:
		return "search:"
	case modeGoto:
		return "goto:"
	case modeFill:
		return "fill:"
	case modeBookmark:
		return "mark:"
	default:
		return ">"
	}
}

func (m *Model) paneName() string {
	if m.focus == paneText {
		return "text"
	}
	return "hex"
}
