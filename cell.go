package vtcore

// Attr is a bitset of per-cell rendering attributes (spec §3).
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrInvisible
	AttrStrike
	// AttrWrap marks that this cell's row continued onto the next row via
	// automatic wrap rather than an explicit newline (spec §4.D step 2,
	// §4.E extract_text's "unless WRAP-terminated" rule).
	AttrWrap
	// AttrWide marks the first column of a double-width glyph; the next
	// cell carries AttrWideDummy. Invariant (spec §3, §8.1): one implies
	// the other at the adjacent column.
	AttrWide
	AttrWideDummy
)

// Cell is one grid position: a code point plus its rendition (spec §3).
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
	Attr Attr
}

// BlankCell is the value every cleared cell takes: a space with no
// attributes and the default colors.
func BlankCell() Cell {
	return Cell{Rune: ' ', Fg: ColorDefault, Bg: ColorDefault}
}

// HasAttr reports whether all bits in a are set.
func (c Cell) HasAttr(a Attr) bool {
	return c.Attr&a == a
}

// SetAttr enables the given attribute bits, leaving others untouched.
func (c *Cell) SetAttr(a Attr) {
	c.Attr |= a
}

// ClearAttr disables the given attribute bits, leaving others untouched.
func (c *Cell) ClearAttr(a Attr) {
	c.Attr &^= a
}

// IsWide reports whether this cell is the leading column of a wide glyph.
func (c Cell) IsWide() bool {
	return c.HasAttr(AttrWide)
}

// IsWideDummy reports whether this cell is the trailing placeholder column
// of a wide glyph — it is never rendered or selected (spec §3 invariant).
func (c Cell) IsWideDummy() bool {
	return c.HasAttr(AttrWideDummy)
}
