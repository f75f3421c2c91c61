package vtcore

import "fmt"

// Modifier is a bitmask of held modifier keys, used by both the key and
// mouse encoders (spec §4.F).
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// sgrBits returns the xterm modifier-parameter encoding (+4 Shift, +8
// Meta, +16 Ctrl — spec §4.F mouse encoding bullet list) shared by the key
// and mouse encoders.
func (m Modifier) sgrBits() int {
	n := 0
	if m&ModShift != 0 {
		n += 4
	}
	if m&ModMeta != 0 {
		n += 8
	}
	if m&ModCtrl != 0 {
		n += 16
	}
	return n
}

// KeySym names a non-printable key the host can report to EncodeKey. The
// spec's keymap is "an ordered list of (keysym, mod_mask, output,
// appkey_req, appcursor_req, crlf_req)"; KeySym provides the symbolic
// table's keysym axis (a representative subset grounded on
// original_source/config.def.h's key[] table, not its XK_* universe).
type KeySym int

const (
	KeyUp KeySym = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyEnter
	KeyBackspace
	KeyTab
	KeyF1
	KeyF2
	KeyF3
	KeyF4
)

// keyEntry is one row of the keymap (spec §4.F): requirement fields are
// tri-state, 0 = don't care, +1 = mode must be on, -1 = mode must be off.
type keyEntry struct {
	sym          KeySym
	mask         Modifier // ANY if 0 and anyMod is true
	anyMod       bool
	output       string
	appcursorReq int
}

// arrow/navigation keys with no modifier encode as CSI in ANSI cursor mode
// or SS3 in application cursor mode; modified variants always use the
// CSI 1;<n> form regardless of DECCKM (grounded on config.def.h's XK_KP_Up
// family: modified entries precede the XK_ANY_MOD fallback pair).
var keymap = []keyEntry{
	{KeyUp, 0, true, "\x1b[A", -1},
	{KeyUp, 0, true, "\x1bOA", 1},
	{KeyDown, 0, true, "\x1b[B", -1},
	{KeyDown, 0, true, "\x1bOB", 1},
	{KeyRight, 0, true, "\x1b[C", -1},
	{KeyRight, 0, true, "\x1bOC", 1},
	{KeyLeft, 0, true, "\x1b[D", -1},
	{KeyLeft, 0, true, "\x1bOD", 1},
	{KeyHome, 0, true, "\x1b[H", -1},
	{KeyHome, 0, true, "\x1bOH", 1},
	{KeyEnd, 0, true, "\x1b[F", -1},
	{KeyEnd, 0, true, "\x1bOF", 1},
	{KeyPageUp, 0, true, "\x1b[5~", 0},
	{KeyPageDown, 0, true, "\x1b[6~", 0},
	{KeyInsert, 0, true, "\x1b[2~", 0},
	{KeyDelete, 0, true, "\x1b[3~", 0},
	{KeyBackspace, 0, true, "\x7f", 0},
	{KeyF1, 0, true, "\x1bOP", 0},
	{KeyF2, 0, true, "\x1bOQ", 0},
	{KeyF3, 0, true, "\x1bOR", 0},
	{KeyF4, 0, true, "\x1bOS", 0},
}

var modifiedFinal = map[KeySym]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
	KeyHome: 'H', KeyEnd: 'F',
}

// EncodeKey implements the keypress path's step 2 of spec §4.F: the keymap
// lookup for the non-printable keys named by KeySym. Shortcut lookup, step
// 1, is a host-level concern outside this core's contract: it requires
// host-defined actions like "copy"/"paste", not terminal state. Plain text
// input is not handled here: EncodeKey adds no ESC prefix for Alt and never
// sets bit 7, and Driver.SendRune writes runes verbatim.
func (e *Emulator) EncodeKey(sym KeySym, mods Modifier) []byte {
	if mods != 0 {
		if final, ok := modifiedFinal[sym]; ok {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", mods.sgrBits()/4+1, final))
		}
	}

	if sym == KeyEnter {
		switch {
		case e.mode.Has(ModeAppKeypad):
			return []byte("\x1bOM")
		case e.mode.Has(ModeCRLF):
			return []byte("\r\n")
		default:
			return []byte("\r")
		}
	}
	if sym == KeyTab {
		if mods&ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return []byte("\t")
	}

	for _, k := range keymap {
		if k.sym != sym {
			continue
		}
		if !k.anyMod && k.mask != mods {
			continue
		}
		if k.appcursorReq > 0 && !e.mode.Has(ModeAppCursor) {
			continue
		}
		if k.appcursorReq < 0 && e.mode.Has(ModeAppCursor) {
			continue
		}
		return []byte(k.output)
	}
	return nil
}

// MouseEventKind distinguishes press/release/motion reports.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

// MouseButton mirrors X11's button numbering: 0/1/2 are left/middle/right,
// 3 is "no button" (release), 4/5 are the wheel.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
	ButtonNone
	WheelUp
	WheelDown
)

// mouseState tracks the last reported button/position, needed to suppress
// redundant motion reports and to encode held-button motion as
// oldbutton+32 (spec §4.F, grounded on st.c's mousereport static ox/oy and
// oldbutton).
type mouseState struct {
	oldButton  MouseButton
	lastX      int
	lastY      int
	haveLast   bool
}

// EncodeMouse implements spec §4.F's mouse encoding bullet list. It returns
// nil when the event should not be reported at all (wrong mode, redundant
// motion, X10 release, wheel release, or a non-SGR report whose x or y is
// 223 or more).
func (e *Emulator) EncodeMouse(st *mouseState, kind MouseEventKind, btn MouseButton, x, y int, mods Modifier) []byte {
	var button int

	if kind == MouseMotion {
		if st.haveLast && x == st.lastX && y == st.lastY {
			return nil
		}
		if !e.mode.Has(ModeMouseMotion) && !e.mode.Has(ModeMouseMany) {
			return nil
		}
		if e.mode.Has(ModeMouseMotion) && st.oldButton == ButtonNone {
			return nil
		}
		button = int(st.oldButton) + 32
		st.lastX, st.lastY, st.haveLast = x, y, true
	} else {
		if !e.mode.Has(ModeMouseSGR) && kind == MouseRelease {
			button = 3
		} else {
			button = int(btn)
			if btn >= WheelUp {
				button += 64 - int(WheelUp)
			}
		}
		switch kind {
		case MousePress:
			st.oldButton = MouseButton(button)
			st.lastX, st.lastY, st.haveLast = x, y, true
		case MouseRelease:
			st.oldButton = ButtonNone
			if e.mode.Has(ModeMouseX10) {
				return nil
			}
			if button == 64 || button == 65 {
				return nil
			}
		}
	}

	if !e.mode.Has(ModeMouseX10) {
		button += mods.sgrBits()
	}

	if e.mode.Has(ModeMouseSGR) {
		c := 'M'
		if kind == MouseRelease {
			c = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", button, x+1, y+1, c))
	}
	if x < 223 && y < 223 {
		return []byte(fmt.Sprintf("\x1b[M%c%c%c", 32+button, 32+x+1, 32+y+1))
	}
	return nil
}

// WantsMouseReport reports whether any mouse tracking mode is on, and
// whether forceselmod should instead route the event to the selection
// engine (spec §4.F: "forceselmod bypasses mouse mode and routes the event
// to the selection engine").
func (e *Emulator) WantsMouseReport(mods Modifier) bool {
	if mods&e.cfg.ForceSelMod != 0 {
		return false
	}
	return e.mode.Any(ModeMouseX10 | ModeMouseBtn | ModeMouseMotion | ModeMouseMany)
}
