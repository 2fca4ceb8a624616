package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hexbench/internal/core/source"
)

func TestRenderDumpRow(t *testing.T) {
	row := renderDumpRow(0x10, []byte("Hi!"), 4, true)
	assert.Equal(t, "00000010  48 69 21     |Hi!|\n", row)
}

func TestRenderDumpRow_NoText(t *testing.T) {
	row := renderDumpRow(0, []byte{0xDE, 0xAD}, 2, false)
	assert.Equal(t, "00000000  DE AD\n", row)
}

func TestRenderDumpRow_NonPrintable(t *testing.T) {
	row := renderDumpRow(0, []byte{0x00, 0x41, 0xFF}, 3, true)
	assert.Contains(t, row, "|.A.|")
}

func TestWriteDump(t *testing.T) {
	src := source.NewBuffer([]byte("abcdefgh"))
	var sb strings.Builder

	require.NoError(t, writeDump(&sb, src, 0, 4, true))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "00000000"))
	assert.True(t, strings.HasPrefix(lines[1], "00000004"))
	assert.Contains(t, lines[1], "|efgh|")
}

func TestWriteDump_SeekBaseShiftsOffsets(t *testing.T) {
	src := source.NewBuffer([]byte{1, 2})
	var sb strings.Builder

	require.NoError(t, writeDump(&sb, src, 0x100, 16, false))
	assert.True(t, strings.HasPrefix(sb.String(), "00000100"))
}

func TestWriteDump_EmptySource(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, writeDump(&sb, source.NewBuffer(nil), 0, 16, true))
	assert.Empty(t, sb.String())
}
