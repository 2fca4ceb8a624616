package source

import (
	"iter"

	"github.com/colonyops/hexbench/internal/core/geom"
)

// Buffer holds all accessible data in a single contiguous allocation.
// It supports full random mutable access and is the variant used for files
// materialized fully in memory.
type Buffer struct {
	data  []byte
	attrs Attributes
}

var _ Source = (*Buffer)(nil)

// NewBuffer creates a writable buffer source over data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{
		data: data,
		attrs: Attributes{
			Seekable: true,
			Perms:    Permissions{Read: true, Write: true},
		},
	}
}

// NewBufferWithAttrs creates a buffer source with explicit attributes, used
// for read-only opens and stdin captures.
func NewBufferWithAttrs(data []byte, attrs Attributes) *Buffer {
	return &Buffer{data: data, attrs: attrs}
}

func (b *Buffer) Attrs() Attributes { return b.attrs }

func (b *Buffer) Len() uint64 { return uint64(len(b.data)) }

func (b *Buffer) ReadRange(r geom.Region) ([]byte, bool) {
	if r.End >= uint64(len(b.data)) {
		return nil, false
	}
	return b.data[r.Begin : r.End+1], true
}

func (b *Buffer) ReadRangeBounded(start, bound uint64) []byte {
	n := uint64(len(b.data))
	if start >= n {
		return nil
	}
	end := start + bound
	if end > n {
		end = n
	}
	// Even though the whole remainder is available here, honor the bound so
	// behavior matches the other variants.
	return b.data[start:end]
}

func (b *Buffer) MutRange(r geom.Region) ([]byte, error) {
	if !b.attrs.Perms.Write {
		return nil, ErrReadOnly
	}
	if r.End >= uint64(len(b.data)) {
		return nil, ErrOutOfBounds
	}
	return b.data[r.Begin : r.End+1], nil
}

func (b *Buffer) ReadByteAt(offset uint64) (byte, bool) {
	if offset >= uint64(len(b.data)) {
		return 0, false
	}
	return b.data[offset], true
}

func (b *Buffer) WriteByteAt(offset uint64, v byte) error {
	if !b.attrs.Perms.Write {
		return ErrReadOnly
	}
	if offset >= uint64(len(b.data)) {
		return ErrOutOfBounds
	}
	b.data[offset] = v
	return nil
}

func (b *Buffer) Bytes() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, v := range b.data {
			if !yield(v) {
				return
			}
		}
	}
}

func (b *Buffer) Find(needle []byte) iter.Seq[uint64] {
	return findAll(b.data, needle)
}

// Close drops the allocation. The buffer can have been large, so the slice
// is released rather than truncated.
func (b *Buffer) Close() error {
	b.data = nil
	return nil
}
