package view

// Kind is the rendering/interaction flavor of a view. The set is closed:
// every view is exactly one of these.
type Kind int

const (
	// KindHex renders each byte as two hex digits.
	KindHex Kind = iota
	// KindDec renders each byte as three decimal digits.
	KindDec
	// KindText renders each byte as a text glyph.
	KindText
	// KindBlock renders each byte as an opaque block. No text entry.
	KindBlock
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHex:
		return "hex"
	case KindDec:
		return "dec"
	case KindText:
		return "text"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// GlyphCount returns how many typed characters fill one cell of this kind.
func (k Kind) GlyphCount() int {
	switch k {
	case KindHex:
		return 2
	case KindDec:
		return 3
	default:
		return 1
	}
}

// TextKind is the text encoding a text view presents. Multi-byte encodings
// are placeholder-only: they render but do not accept edits.
type TextKind int

const (
	TextASCII TextKind = iota
	TextUTF16LE
	TextUTF16BE
)

// String returns the display name of the text kind.
func (t TextKind) String() string {
	switch t {
	case TextASCII:
		return "ascii"
	case TextUTF16LE:
		return "utf-16 le"
	case TextUTF16BE:
		return "utf-16 be"
	default:
		return "unknown"
	}
}

// BytesNeeded returns how many source bytes one glyph of this text kind
// consumes.
func (t TextKind) BytesNeeded() int {
	switch t {
	case TextUTF16LE, TextUTF16BE:
		return 2
	default:
		return 1
	}
}
