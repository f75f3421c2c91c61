package vtcore

import "testing"

// TestCSIParamCapIgnoresExcessParams exercises the 16-parameter cap: a CSI
// cursor-position request is still recognized and still moves the cursor
// using its first two parameters even when far more than 16 are given.
func TestCSIParamCapIgnoresExcessParams(t *testing.T) {
	e := New()
	var params string
	for i := 0; i < 19; i++ {
		if i > 0 {
			params += ";"
		}
		if i == 0 {
			params += "10"
		} else if i == 1 {
			params += "20"
		} else {
			params += "1"
		}
	}
	e.Feed([]byte("\x1b[" + params + "H"))
	x, y := e.CursorPosition()
	if x != 19 || y != 9 {
		t.Errorf("expected cursor at (19,9) despite a param-count overflow, got (%d,%d)", x, y)
	}
}

// TestMalformedCSIAbortsWithoutDispatch ensures a malformed intermediate
// byte (one that can't be classified as digit/semicolon/intermediate/final)
// aborts the sequence cleanly rather than leaving the parser stuck.
func TestMalformedCSIAbortsWithoutDispatch(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[5<X"))
	if got := lineText(e, 0); got != "X" {
		t.Errorf("expected the parser to recover and write 'X' as plain text, got %q", got)
	}
}

// TestSTRBufferCapPreventsUnboundedGrowth feeds an OSC title far larger than
// the 64KiB accumulator cap and confirms it neither panics nor grows the
// stored title past the cap.
func TestSTRBufferCapPreventsUnboundedGrowth(t *testing.T) {
	e := New()
	e.mode.Set(ModeWritableStatusLine)
	huge := make([]byte, strBufCap+4096)
	for i := range huge {
		huge[i] = 'a'
	}
	e.Feed([]byte("\x1b]0;"))
	e.Feed(huge)
	e.Feed([]byte("\x07"))
	if len(e.Title()) > strBufCap {
		t.Errorf("expected title capped at %d bytes, got %d", strBufCap, len(e.Title()))
	}
}

// TestCANAbortsEscapeSequence confirms CAN (0x18) inside an in-flight CSI
// resets parser state instead of leaving it stuck waiting for a final byte.
func TestCANAbortsEscapeSequence(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[3;3\x18X"))
	if got := lineText(e, 0); got != "X" {
		t.Errorf("expected CAN to abort the CSI and resume plain writes, got %q", got)
	}
}
