package source

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hexbench/internal/core/geom"
)

func TestBuffer_ReadRange(t *testing.T) {
	b := NewBuffer([]byte{0, 1, 2, 3, 4})

	data, ok := b.ReadRange(geom.NewRegion(1, 3))
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)

	// End is inclusive; the last valid region ends at Len-1.
	data, ok = b.ReadRange(geom.NewRegion(0, 4))
	require.True(t, ok)
	assert.Len(t, data, 5)

	_, ok = b.ReadRange(geom.NewRegion(3, 5))
	assert.False(t, ok)
}

func TestBuffer_ReadRangeBounded(t *testing.T) {
	b := NewBuffer([]byte{0, 1, 2, 3, 4})

	// The bound caps the result even when more is available.
	assert.Equal(t, []byte{1, 2}, b.ReadRangeBounded(1, 2))
	// Past the end, the remainder is returned.
	assert.Equal(t, []byte{3, 4}, b.ReadRangeBounded(3, 100))
	// Out of bounds start yields nothing.
	assert.Nil(t, b.ReadRangeBounded(5, 10))
}

func TestBuffer_WriteByteAt(t *testing.T) {
	b := NewBuffer([]byte{0, 1, 2})

	require.NoError(t, b.WriteByteAt(1, 0xFF))
	v, ok := b.ReadByteAt(1)
	require.True(t, ok)
	assert.Equal(t, byte(0xFF), v)

	assert.ErrorIs(t, b.WriteByteAt(3, 0), ErrOutOfBounds)
}

func TestBuffer_ReadOnlyRejectsWrites(t *testing.T) {
	b := NewBufferWithAttrs([]byte{0, 1, 2}, Attributes{
		Seekable: true,
		Perms:    Permissions{Read: true, Write: false},
	})

	assert.ErrorIs(t, b.WriteByteAt(0, 0xFF), ErrReadOnly)

	_, err := b.MutRange(geom.NewRegion(0, 1))
	assert.ErrorIs(t, err, ErrReadOnly)

	// A rejected write leaves the source untouched.
	assert.Equal(t, uint64(3), b.Len())
	v, _ := b.ReadByteAt(0)
	assert.Equal(t, byte(0), v)
}

func TestBuffer_Close(t *testing.T) {
	b := NewBuffer([]byte{1, 2, 3})
	require.NoError(t, b.Close())
	assert.Equal(t, uint64(0), b.Len())
	_, ok := b.ReadByteAt(0)
	assert.False(t, ok)
}

func TestBuffer_Bytes(t *testing.T) {
	b := NewBuffer([]byte{9, 8, 7})

	var got []byte
	for v := range b.Bytes() {
		got = append(got, v)
	}
	assert.Equal(t, []byte{9, 8, 7}, got)

	// Restartable: a second iteration sees the same contents.
	got = got[:0]
	for v := range b.Bytes() {
		got = append(got, v)
		break
	}
	assert.Equal(t, []byte{9}, got)
}

func TestFind_OverlappingMatches(t *testing.T) {
	b := NewBuffer([]byte{0x61, 0x62, 0x61, 0x62})
	assert.Equal(t, []uint64{0, 2}, slices.Collect(b.Find([]byte{0x61, 0x62})))

	// Overlapping starts are all reported.
	b = NewBuffer([]byte("aaab"))
	assert.Equal(t, []uint64{0, 1}, slices.Collect(b.Find([]byte("aab"))))
	assert.Equal(t, []uint64{0, 1, 2}, slices.Collect(b.Find([]byte("a"))))

	// No match and empty needle both yield nothing.
	assert.Empty(t, slices.Collect(b.Find([]byte("zz"))))
	assert.Empty(t, slices.Collect(b.Find(nil)))
}

func TestFind_EarlyStop(t *testing.T) {
	b := NewBuffer(bytes.Repeat([]byte{0xAA}, 1000))

	var got []uint64
	for off := range b.Find([]byte{0xAA}) {
		got = append(got, off)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []uint64{0, 1, 2}, got)
}

func TestStream_ForwardBoundedReads(t *testing.T) {
	s := NewStream(bytes.NewReader([]byte{0, 1, 2, 3, 4, 5}))

	attrs := s.Attrs()
	assert.False(t, attrs.Seekable)
	assert.True(t, attrs.Stream)
	assert.False(t, attrs.Perms.Write)

	// Length is unknown until materialized.
	assert.Equal(t, uint64(0), s.Len())

	data := s.ReadRangeBounded(2, 2)
	assert.Equal(t, []byte{2, 3}, data)
	assert.GreaterOrEqual(t, s.Len(), uint64(4))

	// Requests past the end return what exists.
	assert.Equal(t, []byte{5}, s.ReadRangeBounded(5, 10))
	assert.Nil(t, s.ReadRangeBounded(6, 10))
}

func TestStream_RejectsWrites(t *testing.T) {
	s := NewStream(bytes.NewReader([]byte{1, 2, 3}))

	assert.ErrorIs(t, s.WriteByteAt(0, 0xFF), ErrReadOnly)
	_, err := s.MutRange(geom.NewRegion(0, 1))
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestStream_Find(t *testing.T) {
	s := NewStream(bytes.NewReader([]byte("xxabxxab")))
	assert.Equal(t, []uint64{2, 6}, slices.Collect(s.Find([]byte("ab"))))
	// Searching consumed the whole stream.
	assert.Equal(t, uint64(8), s.Len())
}

func TestStream_Bytes(t *testing.T) {
	s := NewStream(bytes.NewReader([]byte{4, 5, 6}))
	got := slices.Collect(s.Bytes())
	assert.Equal(t, []byte{4, 5, 6}, got)
}
