package vtcore

import (
	"strings"
	"testing"
)

func lineText(e *Emulator, y int) string {
	var b strings.Builder
	for x := 0; x < e.Cols(); x++ {
		c := e.Cell(x, y)
		if c.IsWideDummy() {
			continue
		}
		if c.Rune == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestNewDefaultsTo24x80(t *testing.T) {
	e := New()
	if e.Rows() != 24 || e.Cols() != 80 {
		t.Errorf("expected 24x80, got %dx%d", e.Rows(), e.Cols())
	}
}

func TestNewWithDimensions(t *testing.T) {
	e := New(WithDimensions(10, 40))
	if e.Rows() != 10 || e.Cols() != 40 {
		t.Errorf("expected 10x40, got %dx%d", e.Rows(), e.Cols())
	}
}

func TestFeedPlainText(t *testing.T) {
	e := New()
	e.Feed([]byte("hello"))
	if got := lineText(e, 0); got != "hello" {
		t.Errorf("expected \"hello\", got %q", got)
	}
	x, y := e.CursorPosition()
	if x != 5 || y != 0 {
		t.Errorf("expected cursor at (5,0), got (%d,%d)", x, y)
	}
}

func TestFeedCRLF(t *testing.T) {
	e := New()
	e.Feed([]byte("one\r\ntwo"))
	if got := lineText(e, 0); got != "one" {
		t.Errorf("expected \"one\" on row 0, got %q", got)
	}
	if got := lineText(e, 1); got != "two" {
		t.Errorf("expected \"two\" on row 1, got %q", got)
	}
}

func TestFeedLineWrap(t *testing.T) {
	e := New(WithDimensions(5, 5))
	e.Feed([]byte("abcdefg"))
	if got := lineText(e, 0); got != "abcde" {
		t.Errorf("expected \"abcde\" on row 0, got %q", got)
	}
	if got := lineText(e, 1); got != "fg" {
		t.Errorf("expected \"fg\" on row 1, got %q", got)
	}
}

func TestFeedBackspace(t *testing.T) {
	e := New()
	e.Feed([]byte("ab\bc"))
	if got := lineText(e, 0); got != "ac" {
		t.Errorf("expected \"ac\", got %q", got)
	}
}

func TestCSICursorMovement(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[10;20H"))
	x, y := e.CursorPosition()
	if x != 19 || y != 9 {
		t.Errorf("expected cursor at (19,9) (0-indexed), got (%d,%d)", x, y)
	}
}

func TestCSIEraseInLine(t *testing.T) {
	e := New()
	e.Feed([]byte("hello"))
	e.Feed([]byte("\x1b[3G")) // column 3
	e.Feed([]byte("\x1b[K"))  // erase to end of line
	if got := lineText(e, 0); got != "he" {
		t.Errorf("expected \"he\", got %q", got)
	}
}

func TestCSIEraseInDisplay(t *testing.T) {
	e := New()
	e.Feed([]byte("hello\r\nworld"))
	e.Feed([]byte("\x1b[H\x1b[2J"))
	if got := lineText(e, 0); got != "" {
		t.Errorf("expected blank row 0, got %q", got)
	}
	if got := lineText(e, 1); got != "" {
		t.Errorf("expected blank row 1, got %q", got)
	}
}

func TestSGRBoldAttribute(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[1mX"))
	c := e.Cell(0, 0)
	if !c.HasAttr(AttrBold) {
		t.Error("expected bold attribute on written cell")
	}
}

func TestSGRResetClearsAttributes(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[1m\x1b[0mX"))
	c := e.Cell(0, 0)
	if c.HasAttr(AttrBold) {
		t.Error("expected bold cleared by SGR 0")
	}
}

func TestSGRIndexedColor(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[31mX"))
	c := e.Cell(0, 0)
	if c.Fg.IsRGB() || c.Fg.Index() != 1 {
		t.Errorf("expected indexed red (1), got %v", c.Fg)
	}
}

func TestSGRExtendedRGBColor(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[38;2;10;20;30mX"))
	c := e.Cell(0, 0)
	if !c.Fg.IsRGB() {
		t.Fatal("expected RGB color")
	}
	r, g, b := c.Fg.RGBA()
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("expected (10,20,30), got (%d,%d,%d)", r, g, b)
	}
}

func TestSGRExtended256Color(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[38;5;200mX"))
	c := e.Cell(0, 0)
	if c.Fg.IsRGB() || c.Fg.Index() != 200 {
		t.Errorf("expected indexed 200, got %v", c.Fg)
	}
}

func TestWideCharacterPairing(t *testing.T) {
	e := New()
	e.Feed([]byte("中")) // a CJK ideograph, width 2
	c0 := e.Cell(0, 0)
	c1 := e.Cell(1, 0)
	if !c0.IsWide() {
		t.Error("expected leading cell marked WIDE")
	}
	if !c1.IsWideDummy() {
		t.Error("expected trailing cell marked WDUMMY")
	}
}

func TestWideCharacterOverwriteFixesUpDummy(t *testing.T) {
	e := New()
	e.Feed([]byte("中"))
	e.Feed([]byte("\x1b[HX")) // overwrite the leading column with a narrow char
	c1 := e.Cell(1, 0)
	if c1.IsWideDummy() {
		t.Error("expected the orphaned dummy cell cleared when its WIDE predecessor is overwritten")
	}
}

func TestModeInsert(t *testing.T) {
	e := New()
	e.Feed([]byte("abc"))
	e.Feed([]byte("\x1b[4h"))  // IRM on
	e.Feed([]byte("\x1b[HX"))  // insert X at col 0
	e.Feed([]byte("\x1b[4l")) // IRM off
	if got := lineText(e, 0); got != "Xabc" {
		t.Errorf("expected \"Xabc\", got %q", got)
	}
}

func TestDECAWMDisablesWrap(t *testing.T) {
	e := New(WithDimensions(5, 5))
	e.Feed([]byte("\x1b[?7l")) // DECAWM off
	e.Feed([]byte("abcdefg"))
	if got := lineText(e, 0); got != "abcdg" {
		t.Errorf("expected last column overwritten repeatedly, got %q", got)
	}
	x, y := e.CursorPosition()
	if y != 0 || x != 4 {
		t.Errorf("expected cursor pinned at last column (4,0), got (%d,%d)", x, y)
	}
}

func TestAlternateScreenSwap(t *testing.T) {
	e := New()
	e.Feed([]byte("primary"))
	e.Feed([]byte("\x1b[?1049h"))
	e.Feed([]byte("alt"))
	if got := lineText(e, 0); got != "       alt" {
		t.Errorf("expected alt screen content, got %q", got)
	}
	e.Feed([]byte("\x1b[?1049l"))
	if got := lineText(e, 0); got != "primary" {
		t.Errorf("expected primary screen content restored, got %q", got)
	}
}

func TestDECSCDECRC(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[5;5H\x1b7"))
	e.Feed([]byte("\x1b[1;1H"))
	e.Feed([]byte("\x1b8"))
	x, y := e.CursorPosition()
	if x != 4 || y != 4 {
		t.Errorf("expected cursor restored to (4,4), got (%d,%d)", x, y)
	}
}

func TestScrollRegion(t *testing.T) {
	e := New(WithDimensions(5, 5))
	e.Feed([]byte("1\r\n2\r\n3\r\n4\r\n5"))
	e.Feed([]byte("\x1b[2;4r")) // scroll region rows 2-4 (1-indexed)
	e.Feed([]byte("\x1b[2;1H"))
	e.Feed([]byte("\x1bM")) // reverse index scrolls region down at top
	if got := lineText(e, 0); got != "1" {
		t.Errorf("row outside scroll region should be untouched, got %q", got)
	}
}

func TestOSCTitleRequiresWritableStatusLine(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b]0;ignored\x07"))
	if e.Title() != "" {
		t.Errorf("expected title unchanged without writable-status-line mode, got %q", e.Title())
	}
}

func TestOSCTitleWithWritableStatusLine(t *testing.T) {
	e := New()
	e.mode.Set(ModeWritableStatusLine)
	e.Feed([]byte("\x1b]0;hello\x07"))
	if e.Title() != "hello" {
		t.Errorf("expected title \"hello\", got %q", e.Title())
	}
}

func TestOSCPaletteSetAndReset(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b]4;1;rgb:aa/bb/cc\x07"))
	if e.palette[1].R != 0xaa || e.palette[1].G != 0xbb || e.palette[1].B != 0xcc {
		t.Errorf("expected palette[1] updated, got %v", e.palette[1])
	}
	e.Feed([]byte("\x1b]104;1\x07"))
	if e.palette[1] != DefaultPalette[1] {
		t.Error("expected palette[1] reset to default")
	}
}

func TestOSC52NeverLeaksClipboard(t *testing.T) {
	var written []byte
	e := New(WithPTYWriter(writerFunc(func(p []byte) (int, error) {
		written = append(written, p...)
		return len(p), nil
	})))
	e.Feed([]byte("\x1b]52;c;?\x07"))
	if strings.Contains(string(written), "secret") {
		t.Error("clipboard read reply must never leak content")
	}
	if !strings.Contains(string(written), "\x1b]52;c;\x1b\\") {
		t.Errorf("expected empty-payload OSC 52 reply, got %q", written)
	}
}

func TestDA1Reply(t *testing.T) {
	var written []byte
	e := New(WithPTYWriter(writerFunc(func(p []byte) (int, error) {
		written = append(written, p...)
		return len(p), nil
	})))
	e.Feed([]byte("\x1b[c"))
	if string(written) != replyDA1 {
		t.Errorf("expected DA1 reply, got %q", written)
	}
}

func TestDSRCursorPositionReply(t *testing.T) {
	var written []byte
	e := New(WithPTYWriter(writerFunc(func(p []byte) (int, error) {
		written = append(written, p...)
		return len(p), nil
	})))
	e.Feed([]byte("\x1b[3;4H\x1b[6n"))
	if string(written) != "\x1b[3;4R" {
		t.Errorf("expected cursor position report, got %q", written)
	}
}

func TestBracketedPasteFraming(t *testing.T) {
	e := New()
	e.mode.Set(ModeBracketedPaste)
	var written []byte
	e.ptyWriter = writerFunc(func(p []byte) (int, error) {
		written = append(written, p...)
		return len(p), nil
	})
	e.bracketedPaste("hi")
	if string(written) != "\x1b[200~hi\x1b[201~" {
		t.Errorf("expected framed paste, got %q", written)
	}
}

func TestFullResetClearsState(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[1mhello"))
	e.Feed([]byte("\x1bc"))
	if got := lineText(e, 0); got != "" {
		t.Errorf("expected blank screen after RIS, got %q", got)
	}
	if e.cur.Tmpl.Attr != 0 {
		t.Error("expected attributes reset after RIS")
	}
}

func TestDECCOLMDisabledByDefault(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[?3h"))
	if e.Cols() != 80 {
		t.Errorf("expected DECCOLM to be a no-op without mode 40 enabled, got %d cols", e.Cols())
	}
}

func TestDECCOLMEnabledByMode40(t *testing.T) {
	e := New()
	e.Feed([]byte("\x1b[?40h\x1b[?3h"))
	if e.Cols() != 132 {
		t.Errorf("expected 132 cols after ?40h;?3h, got %d", e.Cols())
	}
	e.Feed([]byte("\x1b[?3l"))
	if e.Cols() != 80 {
		t.Errorf("expected 80 cols after ?3l, got %d", e.Cols())
	}
}

func TestAutowrapMarksRowWrapped(t *testing.T) {
	e := New(WithDimensions(3, 5))
	e.Feed([]byte("abcdefg"))
	if !e.primary.IsWrapped(0) {
		t.Error("expected row 0 marked wrapped after autowrap filled it")
	}
	if e.primary.IsWrapped(1) {
		t.Error("row 1 did not end via wrap, should not be marked wrapped")
	}
}

func TestWideRuneForcedWrapGoesToColumnZero(t *testing.T) {
	e := New(WithDimensions(3, 5))
	e.Feed([]byte("ab"))
	e.Feed([]byte("\x1b[5G")) // CHA to column 5 (1-indexed) = last column (index 4)
	e.Feed([]byte("中"))      // wide rune needs 2 columns but only 1 remains
	x, y := e.CursorPosition()
	if y != 1 || x != 2 {
		t.Errorf("expected the wide rune forced onto row 1 starting at column 0 (cursor at (2,1)), got (%d,%d)", x, y)
	}
	c0 := e.Cell(0, 1)
	c1 := e.Cell(1, 1)
	if !c0.IsWide() || !c1.IsWideDummy() {
		t.Error("expected the wide rune's pair written at the start of the new row")
	}
}

func TestResizePreservesContentNearCursor(t *testing.T) {
	e := New(WithDimensions(5, 10))
	e.Feed([]byte("1\r\n2\r\n3\r\n4\r\n5"))
	e.Resize(3, 10)
	if got := lineText(e, 2); got != "5" {
		t.Errorf("expected cursor row preserved at bottom, got %q", got)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
