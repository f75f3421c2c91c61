package vtcore

// applySGR implements spec §4.C.iv, grounded on original_source/st.c's
// tsetattr() and the teacher's attribute-application pattern (38/48
// sub-parameter consumption kept from phroun-purfecterm/parser.go's
// semicolon fallback path — the wire format here is always semicolon-
// separated, never colon sub-parameters).
func (e *Emulator) applySGR(c *csiSequence) {
	if len(c.params) == 0 {
		e.resetAttrs()
		return
	}
	for i := 0; i < len(c.params); i++ {
		p := c.paramRaw(i)
		switch {
		case p == 0:
			e.resetAttrs()
		case p == 1:
			e.cur.Tmpl.Attr |= AttrBold
		case p == 2:
			e.cur.Tmpl.Attr |= AttrFaint
		case p == 3:
			e.cur.Tmpl.Attr |= AttrItalic
		case p == 4:
			e.cur.Tmpl.Attr |= AttrUnderline
		case p == 5, p == 6:
			e.cur.Tmpl.Attr |= AttrBlink
		case p == 7:
			e.cur.Tmpl.Attr |= AttrReverse
		case p == 8:
			e.cur.Tmpl.Attr |= AttrInvisible
		case p == 9:
			e.cur.Tmpl.Attr |= AttrStrike
		case p == 22:
			e.cur.Tmpl.Attr &^= AttrBold | AttrFaint
		case p == 23:
			e.cur.Tmpl.Attr &^= AttrItalic
		case p == 24:
			e.cur.Tmpl.Attr &^= AttrUnderline
		case p == 25:
			e.cur.Tmpl.Attr &^= AttrBlink
		case p == 27:
			e.cur.Tmpl.Attr &^= AttrReverse
		case p == 28:
			e.cur.Tmpl.Attr &^= AttrInvisible
		case p == 29:
			e.cur.Tmpl.Attr &^= AttrStrike
		case p >= 30 && p <= 37:
			e.cur.Tmpl.Fg = Indexed(uint8(p - 30))
		case p == 38:
			n := e.consumeExtendedColor(c, &i)
			e.cur.Tmpl.Fg = n
		case p == 39:
			e.cur.Tmpl.Fg = ColorDefault
		case p >= 40 && p <= 47:
			e.cur.Tmpl.Bg = Indexed(uint8(p - 40))
		case p == 48:
			n := e.consumeExtendedColor(c, &i)
			e.cur.Tmpl.Bg = n
		case p == 49:
			e.cur.Tmpl.Bg = ColorDefault
		case p >= 90 && p <= 97:
			e.cur.Tmpl.Fg = Indexed(uint8(p-90) + 8)
		case p >= 100 && p <= 107:
			e.cur.Tmpl.Bg = Indexed(uint8(p-100) + 8)
		default:
			e.logDropped("unknown SGR parameter", byte(p))
		}
	}
}

func (e *Emulator) resetAttrs() {
	e.cur.Tmpl = Template{Fg: ColorDefault, Bg: ColorDefault}
}

// consumeExtendedColor reads the 5;n or 2;r;g;b sub-parameters following a
// 38/48 parameter, advancing *i past whatever it consumes. Malformed
// sequences are dropped and leave the color unset (spec §4.C.iv).
func (e *Emulator) consumeExtendedColor(c *csiSequence, i *int) Color {
	if *i+1 >= len(c.params) {
		return ColorDefault
	}
	kind := c.paramRaw(*i + 1)
	switch kind {
	case 5:
		if *i+2 >= len(c.params) {
			*i += 1
			return ColorDefault
		}
		idx := c.paramRaw(*i + 2)
		*i += 2
		return Indexed(uint8(idx))
	case 2:
		if *i+4 >= len(c.params) {
			*i = len(c.params) - 1
			return ColorDefault
		}
		r, g, b := c.paramRaw(*i+2), c.paramRaw(*i+3), c.paramRaw(*i+4)
		*i += 4
		return RGB(uint8(r), uint8(g), uint8(b))
	default:
		*i += 1
		return ColorDefault
	}
}
