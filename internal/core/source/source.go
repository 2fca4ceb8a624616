// Package source provides uniform byte-range access over the backing stores
// a file can be opened through: a fully materialized in-memory buffer, a
// read-only memory mapping, or a non-seekable stream.
//
// The variant is chosen once at open time based on the open spec and is not
// expected to change within a session. Exactly one Source is the owner of
// the file, mapping, or stream resources per session; views and perspectives
// only read bytes through it.
package source

import (
	"errors"
	"iter"

	"github.com/colonyops/hexbench/internal/core/geom"
)

var (
	// ErrReadOnly is returned by write operations on sources opened without
	// write permission.
	ErrReadOnly = errors.New("source: read-only")
	// ErrOutOfBounds is returned by mutable range requests outside the
	// source extent.
	ErrOutOfBounds = errors.New("source: out of bounds")
	// ErrNoFile is returned by file operations when no backing file is open.
	ErrNoFile = errors.New("source: no file open")
)

// Permissions describes what the session may do with a source.
type Permissions struct {
	Read  bool
	Write bool
}

// Attributes describes a bound source. Stable for the lifetime of the bind.
type Attributes struct {
	// Seekable is false for pipe-like inputs.
	Seekable bool
	// Stream is true when the length is unknown until fully consumed.
	Stream bool
	Perms  Permissions
}

// Source is the uniform interface over the backing-store variants.
//
// All operations fail fast: nothing auto-extends or wraps. Bounds failures
// on read queries are reported as a missing value, never a crash. Mutable
// access on the mapped variant panics, since reaching it means the caller
// chose the wrong variant for a writable session.
type Source interface {
	// Attrs returns the source attributes recorded at open time.
	Attrs() Attributes

	// Len returns the full logical length of the source. For a stream this
	// is the number of bytes materialized so far.
	Len() uint64

	// ReadRange returns the bytes of the inclusive region, or ok=false when
	// any part of it is out of bounds. The returned slice aliases the
	// backing store and is only valid until the next mutation.
	ReadRange(r geom.Region) (data []byte, ok bool)

	// ReadRangeBounded returns at most bound bytes starting at start, even
	// if more are available. All variants honor the cap so callers see a
	// consistent ceiling regardless of backing store.
	ReadRangeBounded(start, bound uint64) []byte

	// MutRange returns a mutable slice aliasing the inclusive region.
	// Returns ErrReadOnly when the source lacks write permission and
	// ErrOutOfBounds when the region exceeds the extent.
	MutRange(r geom.Region) ([]byte, error)

	// ReadByteAt returns the byte at offset, or ok=false out of bounds.
	ReadByteAt(offset uint64) (b byte, ok bool)

	// WriteByteAt stores a byte at offset.
	WriteByteAt(offset uint64, b byte) error

	// Bytes iterates all bytes of the source. The sequence is finite and
	// restartable; each call reflects contents at iteration time.
	Bytes() iter.Seq[byte]

	// Find yields the start offset of every needle match, including
	// overlapping ones. The caller may stop early by breaking out.
	Find(needle []byte) iter.Seq[uint64]

	// Close makes the source empty and releases backing memory, mapping or
	// handle. Len reports 0 afterwards.
	Close() error
}
