package vtcore

// Mode is the terminal's boolean mode register (spec §4.H): a bitset for a
// reason — many dispatch sites toggle the same bit under different codes,
// so it stays one word with named accessors rather than a struct of bools
// (spec §9 design note).
type Mode uint32

const (
	// ModeWrap is DECAWM: wrap to the next line instead of overwriting
	// column col-1 (spec §4.D).
	ModeWrap Mode = 1 << iota
	// ModeInsert is IRM: printable characters shift cells right instead
	// of overwriting.
	ModeInsert
	// ModeOrigin is DECOM: cursor addressing is relative to the scroll
	// region.
	ModeOrigin
	// ModeAppKeypad is DECKPAM/DECKPNM: numeric keypad sends application
	// sequences instead of digits.
	ModeAppKeypad
	// ModeAppCursor is DECCKM: cursor keys send application sequences
	// (SS3) instead of ANSI cursor sequences (CSI).
	ModeAppCursor
	// ModeCRLF is LNM: line feed also returns to column 0.
	ModeCRLF
	// ModeAltScreen marks the alternate screen as active (mode 47/1047/1049).
	ModeAltScreen
	// ModeReverse is DECSCNM: swap default fg/bg for the whole screen.
	ModeReverse
	// ModeHide is DECTCEM cleared (mode 25 has inverted polarity: set ⇒
	// clear this bit, i.e. cursor visible).
	ModeHide
	// ModeEcho controls whether input is locally echoed (rarely used by a
	// real PTY-backed terminal, carried for completeness).
	ModeEcho
	// ModeMouseX10 is mode 9: press-only X10 mouse reporting.
	ModeMouseX10
	// ModeMouseBtn is mode 1000: press+release button reporting.
	ModeMouseBtn
	// ModeMouseMotion is mode 1002: button reporting plus motion while a
	// button is held.
	ModeMouseMotion
	// ModeMouseMany is mode 1003: all motion reported regardless of button
	// state.
	ModeMouseMany
	// ModeMouseSGR is mode 1006: SGR extended mouse coordinate encoding.
	ModeMouseSGR
	// ModeFocus is mode 1004: report focus in/out as CSI I / CSI O.
	ModeFocus
	// ModeEightBit is the 8-bit input mode bit. No escape sequence sets it
	// and neither EncodeKey nor EncodeMouse reads it.
	ModeEightBit
	// ModeBracketedPaste is mode 2004: frame pasted text in ESC[200~ / ESC[201~.
	ModeBracketedPaste
	// ModePrint routes printable output to the print sink (spec §4.D step 1).
	ModePrint
	// ModeUTF8 is set at construction and on RIS. The byte decoder does not
	// read it: decoding follows the decoder's own UTF-8 flag, which ESC % G
	// and ESC % @ switch, and those sequences leave this bit unchanged.
	ModeUTF8
	// ModeEnableColumnChange gates DECCOLM (mode 3) from resizing the
	// screen at all; the host toggles it with private mode 40 (spec §4.H).
	ModeEnableColumnChange
	// ModeClearOnDECCOLM makes a DECCOLM column change also clear the screen.
	ModeClearOnDECCOLM
	// ModeWritableStatusLine gates OSC 0/1/2 title-setting (spec §4.C.v —
	// deliberately more restrictive than xterm).
	ModeWritableStatusLine
	// ModeBlink toggles on the blink timer cadence; dirties only
	// blink-attributed cells (spec §5 Timers).
	ModeBlink
)

// Set enables the given mode bits.
func (m *Mode) Set(bits Mode) { *m |= bits }

// Reset clears the given mode bits.
func (m *Mode) Reset(bits Mode) { *m &^= bits }

// Assign sets or clears bits depending on set.
func (m *Mode) Assign(bits Mode, set bool) {
	if set {
		m.Set(bits)
	} else {
		m.Reset(bits)
	}
}

// Has reports whether all bits in the mask are set.
func (m Mode) Has(bits Mode) bool {
	return m&bits == bits
}

// Any reports whether any bit in the mask is set.
func (m Mode) Any(bits Mode) bool {
	return m&bits != 0
}
