package vtcore

import "strings"

// escState is the escape-sequence disambiguation bitset (spec §4.C): several
// bits are simultaneously set while a sequence is still being classified,
// rather than a single enum state, because the same trailing bytes mean
// different things depending on which bits got there first (UTF8_DESIGNATION
// vs ALTCHARSET vs TEST all share the generic "final ESC byte" bucket until
// their extending byte arrives).
type escState uint16

const (
	escStart escState = 1 << iota
	escCSI
	escStr
	escStrEnd
	escAltcharset
	escTest
	escUTF8Designation
	escDCS
)

const strBufCap = 64 * 1024

// csiSequence is one fully-parsed CSI escape: private marker, parameters,
// one intermediate byte, and the final byte (spec §4.C.ii).
type csiSequence struct {
	private      byte // one of "<=>?", or 0
	params       []int
	intermediate byte // one byte in 0x20-0x2F, or 0
	final        byte
}

// param returns params[i], or def if i is out of range or the parameter was
// omitted (encoded as 0 per spec §4.C.ii "empty = 0").
func (c *csiSequence) param(i, def int) int {
	if i >= len(c.params) || c.params[i] <= 0 {
		return def
	}
	return c.params[i]
}

// paramRaw returns params[i] verbatim (0 if omitted, -1 if out-of-range),
// for finals that must distinguish "not given" from "given as zero".
func (c *csiSequence) paramRaw(i int) int {
	if i >= len(c.params) {
		return 0
	}
	return c.params[i]
}

// parser implements component C: the escape state machine. It owns no
// terminal state of its own beyond the accumulator; every dispatch is a
// direct method call against the Emulator it was built for (spec §9 "thread
// a single Emulator value"). Grounded on phroun-purfecterm/parser.go's
// struct-based accumulator, re-expressed against the spec's explicit state
// bitset and STR accumulator discipline.
type parser struct {
	e     *Emulator
	state escState

	csi     csiSequence
	csiBuf  strings.Builder // digits of the parameter currently being read
	csiOver bool            // too many params already; further ones are dropped

	strType byte
	strBuf  []byte
}

func newParser(e *Emulator) *parser {
	return &parser{e: e}
}

// feed runs one decoded code point through the state machine (spec §4.C).
func (p *parser) feed(u rune) {
	if p.state&escStr != 0 && isStrTerminator(u) {
		p.state &^= escStart | escStr | escDCS
		p.state |= escStrEnd
		p.controlCode(u)
		return
	}
	if p.state&escStr != 0 {
		if len(p.strBuf) < strBufCap {
			var buf [4]byte
			n := encodeRuneUTF8(buf[:], u)
			p.strBuf = append(p.strBuf, buf[:n]...)
		}
		return
	}

	if isControl(u) {
		p.controlCode(u)
		return
	}

	if p.state&escStart != 0 {
		switch {
		case p.state&escCSI != 0:
			p.feedCSI(byte(u))
		case p.state&escUTF8Designation != 0:
			switch u {
			case 'G':
				p.e.decoder.setUTF8(true)
			case '@':
				p.e.decoder.setUTF8(false)
			}
			p.reset()
		case p.state&escAltcharset != 0:
			p.e.designateCharset(byte(u))
			p.reset()
		case p.state&escTest != 0:
			if u == '8' {
				p.e.screen().FillWithE()
			}
			p.reset()
		default:
			p.escFinal(byte(u))
		}
		return
	}

	p.e.writeRune(u)
}

// isStrTerminator reports the set of code points that end STR accumulation
// per spec §4.C step 1.
func isStrTerminator(u rune) bool {
	switch u {
	case 0x07, 0x18, 0x1A, 0x1B:
		return true
	}
	return u >= 0x80 && u <= 0x9F
}

func isControl(u rune) bool {
	return u < 0x20 || u == 0x7F || (u >= 0x80 && u <= 0x9F)
}

// reset clears all escape-disambiguation state (spec §4.C: "clear all
// escape state" after CSI dispatch or a final ESC byte consumes itself).
func (p *parser) reset() {
	p.state = 0
}

// controlCode implements §4.C.i. It runs for every C0/C1/DEL byte, whether
// or not an escape sequence is in flight (a control always interrupts one;
// spec §4.C step 2 precedes step 3).
func (p *parser) controlCode(u rune) {
	switch u {
	case 0x09: // HT
		p.e.advanceTab()
		return
	case 0x08: // BS
		p.e.moveCursorRel(-1, 0, false)
		return
	case 0x0D: // CR
		p.e.moveCursorAbsX(0)
		return
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		p.e.newline(p.e.mode.Has(ModeCRLF))
		return
	case 0x07: // BEL
		if p.state&escStrEnd != 0 {
			p.commitStr()
		} else {
			p.e.bell()
		}
	case 0x1B: // ESC
		p.csiReset()
		p.state &^= escCSI | escAltcharset | escTest
		p.state |= escStart
		return
	case 0x0E: // SO -> G1
		p.e.charsetIdx = 1
		return
	case 0x0F: // SI -> G0
		p.e.charsetIdx = 0
		return
	case 0x1A: // SUB
		p.e.writeRune('?')
		fallthrough
	case 0x18: // CAN
		p.csiReset()
		p.reset()
		return
	case 0x05, 0x00, 0x11, 0x13, 0x7F: // ENQ, NUL, XON, XOFF, DEL
		return
	case 0x90, 0x9D, 0x9E, 0x9F: // DCS, OSC, PM, APC
		p.startStr(byte(u))
		return
	case 0x85: // NEL
		p.e.newline(true)
	case 0x88: // HTS
		p.e.screen().SetTabStop(p.e.cursor().X)
	default:
		return
	}
	p.state &^= escStrEnd | escStr
}

func (p *parser) csiReset() {
	p.state &^= escCSI
	p.csi = csiSequence{}
	p.csiBuf.Reset()
	p.csiOver = false
}

// escFinal implements §4.C.iii: the non-CSI ESC final-byte table. Extending
// finals push new state rather than completing the sequence; everything
// else dispatches and clears.
func (p *parser) escFinal(u byte) {
	switch u {
	case '[':
		p.state |= escCSI
		p.csi = csiSequence{}
		p.csiBuf.Reset()
		p.csiOver = false
		return
	case '#':
		p.state |= escTest
		return
	case '%':
		p.state |= escUTF8Designation
		return
	case 'P', '_', '^', ']', 'k':
		p.startStr(u)
		return
	case '(', ')', '*', '+':
		p.e.icharset = int(u - '(')
		p.state |= escAltcharset
		return
	case 'n':
		p.e.charsetIdx = 2
	case 'o':
		p.e.charsetIdx = 3
	case 'D':
		p.e.index()
	case 'E':
		p.e.newline(true)
	case 'H':
		p.e.screen().SetTabStop(p.e.cursor().X)
	case 'M':
		p.e.reverseIndex()
	case 'c':
		p.e.fullReset()
	case '=':
		p.e.mode.Set(ModeAppKeypad)
	case '>':
		p.e.mode.Reset(ModeAppKeypad)
	case '7':
		p.e.saveCursor()
	case '8':
		p.e.restoreCursor()
	case '\\':
		if p.state&escStrEnd != 0 {
			p.commitStr()
		}
	default:
		p.e.logDropped("unknown ESC final", u)
	}
	p.reset()
}

func (p *parser) startStr(kind byte) {
	p.state = escStart | escStr
	if kind == 'P' || kind == 0x90 {
		p.state |= escDCS
	}
	p.strType = kind
	p.strBuf = p.strBuf[:0]
}

// commitStr implements §4.C.v dispatch once ST/BEL fires.
func (p *parser) commitStr() {
	args := string(p.strBuf)
	p.strBuf = p.strBuf[:0]
	p.state = 0
	p.e.dispatchStr(p.strType, args)
}

// feedCSI accumulates one CSI byte and dispatches on a final byte or an
// overfull buffer (spec §4.C step 3 CSI branch, §4.C.ii grammar).
func (p *parser) feedCSI(b byte) {
	if len(p.csi.params) == 0 && p.csi.private == 0 && p.csiBuf.Len() == 0 {
		switch b {
		case '<', '=', '>', '?':
			p.csi.private = b
			return
		}
	}

	switch {
	case b >= '0' && b <= '9':
		p.csiBuf.WriteByte(b)
		return
	case b == ';':
		p.pushCSIParam()
		return
	case b >= 0x20 && b <= 0x2F:
		p.pushCSIParam()
		p.csi.intermediate = b
		return
	case b >= 0x40 && b <= 0x7E:
		p.pushCSIParam()
		p.csi.final = b
		p.e.dispatchCSI(&p.csi)
		p.reset()
		return
	default:
		// Anything else inside a CSI is malformed; abort without dispatch.
		p.reset()
		return
	}
}

func (p *parser) pushCSIParam() {
	if p.csiOver {
		p.csiBuf.Reset()
		return
	}
	if len(p.csi.params) >= 16 {
		p.csiOver = true
		p.csiBuf.Reset()
		return
	}
	s := p.csiBuf.String()
	p.csiBuf.Reset()
	if s == "" {
		p.csi.params = append(p.csi.params, 0)
		return
	}
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	if n > 1<<20 {
		n = -1
	}
	p.csi.params = append(p.csi.params, n)
}

// encodeRuneUTF8 writes u's UTF-8 encoding into buf, returning the byte
// count. buf must be at least 4 bytes.
func encodeRuneUTF8(buf []byte, u rune) int {
	switch {
	case u < 0x80:
		buf[0] = byte(u)
		return 1
	case u < 0x800:
		buf[0] = 0xC0 | byte(u>>6)
		buf[1] = 0x80 | byte(u&0x3F)
		return 2
	case u < 0x10000:
		buf[0] = 0xE0 | byte(u>>12)
		buf[1] = 0x80 | byte((u>>6)&0x3F)
		buf[2] = 0x80 | byte(u&0x3F)
		return 3
	default:
		buf[0] = 0xF0 | byte(u>>18)
		buf[1] = 0x80 | byte((u>>12)&0x3F)
		buf[2] = 0x80 | byte((u>>6)&0x3F)
		buf[3] = 0x80 | byte(u&0x3F)
		return 4
	}
}
