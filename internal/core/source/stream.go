package source

import (
	"io"
	"iter"

	"github.com/colonyops/hexbench/internal/core/geom"
)

// streamChunk is the read granularity when pulling from a stream.
const streamChunk = 64 * 1024

// Stream serves a non-seekable pipe-like input. Bytes are materialized
// forward on demand into a growing buffer; the total length is unknown
// until the input is fully consumed, so Len reports what has been
// materialized so far.
type Stream struct {
	r         io.Reader
	buf       []byte
	exhausted bool
	attrs     Attributes
}

var _ Source = (*Stream)(nil)

// NewStream creates a stream source pulling from r.
func NewStream(r io.Reader) *Stream {
	return &Stream{
		r: r,
		attrs: Attributes{
			Seekable: false,
			Stream:   true,
			Perms:    Permissions{Read: true, Write: false},
		},
	}
}

func (s *Stream) Attrs() Attributes { return s.attrs }

func (s *Stream) Len() uint64 { return uint64(len(s.buf)) }

// pullTo reads forward until at least n bytes are materialized or the input
// is exhausted.
func (s *Stream) pullTo(n uint64) {
	for !s.exhausted && uint64(len(s.buf)) < n {
		chunk := make([]byte, streamChunk)
		read, err := s.r.Read(chunk)
		if read > 0 {
			s.buf = append(s.buf, chunk[:read]...)
		}
		if err != nil {
			// A read error ends the stream the same way EOF does; there is
			// no position to retry from on a pipe.
			s.exhausted = true
		}
	}
}

func (s *Stream) ReadRange(r geom.Region) ([]byte, bool) {
	s.pullTo(r.End + 1)
	if r.End >= uint64(len(s.buf)) {
		return nil, false
	}
	return s.buf[r.Begin : r.End+1], true
}

func (s *Stream) ReadRangeBounded(start, bound uint64) []byte {
	// The hard cap is what keeps a streaming source from unbounded
	// materialization on open-ended requests.
	s.pullTo(start + bound)
	n := uint64(len(s.buf))
	if start >= n {
		return nil
	}
	end := start + bound
	if end > n {
		end = n
	}
	return s.buf[start:end]
}

func (s *Stream) MutRange(geom.Region) ([]byte, error) {
	return nil, ErrReadOnly
}

func (s *Stream) ReadByteAt(offset uint64) (byte, bool) {
	s.pullTo(offset + 1)
	if offset >= uint64(len(s.buf)) {
		return 0, false
	}
	return s.buf[offset], true
}

func (s *Stream) WriteByteAt(uint64, byte) error {
	return ErrReadOnly
}

// Bytes iterates all bytes, consuming the rest of the input as it goes.
func (s *Stream) Bytes() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := uint64(0); ; i++ {
			b, ok := s.ReadByteAt(i)
			if !ok {
				return
			}
			if !yield(b) {
				return
			}
		}
	}
}

// Find consumes the remaining input, then searches the materialized
// contents.
func (s *Stream) Find(needle []byte) iter.Seq[uint64] {
	s.pullAll()
	return findAll(s.buf, needle)
}

func (s *Stream) pullAll() {
	for !s.exhausted {
		s.pullTo(uint64(len(s.buf)) + streamChunk)
	}
}

// Close drops the materialized buffer and closes the input if it is
// closable.
func (s *Stream) Close() error {
	s.buf = nil
	s.exhausted = true
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
