package view

// EditBuffer accumulates the partially typed textual representation of the
// one cell currently being edited. It is reset on commit, cancel, and
// cursor movement.
type EditBuffer struct {
	buf []byte
	pos int
	// Dirty is set once the user has typed into the buffer. An undirty
	// buffer is pre-seeded from the current byte's textual form before the
	// first typed digit lands, so typing one digit replaces only part of
	// the value.
	Dirty bool
}

// Resize sets the buffer capacity to the view kind's glyph count and
// resets all entry state.
func (e *EditBuffer) Resize(n int) {
	e.buf = make([]byte, n)
	e.pos = 0
	e.Dirty = false
}

// Seed fills the buffer from the textual representation of the current
// byte without marking it dirty.
func (e *EditBuffer) Seed(s string) {
	copy(e.buf, s)
}

// EnterByte stores one typed character at the entry position and reports
// whether the buffer is now full (time to commit).
func (e *EditBuffer) EnterByte(c byte) (full bool) {
	if len(e.buf) == 0 {
		return false
	}
	e.Dirty = true
	e.buf[e.pos] = c
	e.pos++
	return e.pos >= len(e.buf)
}

// Bytes returns the current buffer contents.
func (e *EditBuffer) Bytes() []byte {
	return e.buf
}

// Reset discards entry state, keeping the capacity.
func (e *EditBuffer) Reset() {
	for i := range e.buf {
		e.buf[i] = 0
	}
	e.pos = 0
	e.Dirty = false
}
