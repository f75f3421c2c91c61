package vtcore

// CursorFlag is a bitset of cursor state flags (spec §3).
type CursorFlag uint8

const (
	// CursorWrapNext marks that a character was just printed in the last
	// column (the cursor stays on that column) and the next printable
	// character should first trigger a newline (spec §4.D step 2, §8
	// boundary behaviour).
	CursorWrapNext CursorFlag = 1 << iota
	// CursorOrigin is a cursor flag for origin mode. The emulator never sets
	// it: origin mode is read from ModeOrigin in the mode register.
	CursorOrigin
)

// CursorStyle selects how the cursor is rendered (DECSCUSR, §4.C.ii).
type CursorStyle int

const (
	CursorBlinkingBlock CursorStyle = iota
	CursorSteadyBlock
	CursorBlinkingUnderline
	CursorSteadyUnderline
	CursorBlinkingBar
	CursorSteadyBar
)

// Template holds the SGR attribute state stamped onto the next printed
// cell (spec §3: "attr holds the current SGR state").
type Template struct {
	Fg, Bg Color
	Attr   Attr
}

// Cursor is the cell-grid position plus pending attribute state (spec §3).
type Cursor struct {
	X, Y  int
	Flags CursorFlag
	Tmpl  Template
	Style CursorStyle
}

// NewCursor returns a cursor at the origin with default attributes.
func NewCursor() Cursor {
	return Cursor{Tmpl: Template{Fg: ColorDefault, Bg: ColorDefault}}
}

// HasFlag reports whether all bits in f are set.
func (c Cursor) HasFlag(f CursorFlag) bool {
	return c.Flags&f == f
}

// SavedCursor is the DECSC/DECRC snapshot. Each screen (primary, alternate)
// keeps its own slot (spec §3 "Each screen ... has an independently saved
// cursor slot"), indexed by whether the alternate screen is active
// (0=primary, 1=alternate).
type SavedCursor struct {
	X, Y    int
	Tmpl    Template
	Origin  bool
	Charset int
	G       [4]CharsetID
}
