package source

import (
	"iter"
	"os"

	"github.com/colonyops/hexbench/internal/core/geom"
)

// Mapped serves reads directly out of a read-only memory mapping, so files
// larger than memory can be browsed without materializing them.
//
// The mapped variant is deliberately read-only: mutable access panics rather
// than silently no-oping, because reaching it means the session should have
// been opened through Buffer instead.
type Mapped struct {
	data  []byte
	attrs Attributes
}

var _ Source = (*Mapped)(nil)

// OpenMapped memory-maps the file at path.
func OpenMapped(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// The mapping outlives the descriptor.
	defer f.Close()

	data, err := mapFile(f)
	if err != nil {
		return nil, err
	}
	return &Mapped{
		data: data,
		attrs: Attributes{
			Seekable: true,
			Perms:    Permissions{Read: true, Write: false},
		},
	}, nil
}

func (m *Mapped) Attrs() Attributes { return m.attrs }

func (m *Mapped) Len() uint64 { return uint64(len(m.data)) }

func (m *Mapped) ReadRange(r geom.Region) ([]byte, bool) {
	if r.End >= uint64(len(m.data)) {
		return nil, false
	}
	return m.data[r.Begin : r.End+1], true
}

func (m *Mapped) ReadRangeBounded(start, bound uint64) []byte {
	n := uint64(len(m.data))
	if start >= n {
		return nil
	}
	end := start + bound
	if end > n {
		end = n
	}
	return m.data[start:end]
}

func (m *Mapped) MutRange(geom.Region) ([]byte, error) {
	panic("source: mutable range access on mapped source")
}

func (m *Mapped) ReadByteAt(offset uint64) (byte, bool) {
	if offset >= uint64(len(m.data)) {
		return 0, false
	}
	return m.data[offset], true
}

func (m *Mapped) WriteByteAt(uint64, byte) error {
	panic("source: byte write on mapped source")
}

func (m *Mapped) Bytes() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, v := range m.data {
			if !yield(v) {
				return
			}
		}
	}
}

func (m *Mapped) Find(needle []byte) iter.Seq[uint64] {
	return findAll(m.data, needle)
}

// Close unmaps the region.
func (m *Mapped) Close() error {
	if m.data == nil {
		return nil
	}
	err := unmapFile(m.data)
	m.data = nil
	return err
}
