package vtcore

import "testing"

func TestEncodeKeyArrowsANSIMode(t *testing.T) {
	e := New()
	if got := string(e.EncodeKey(KeyUp, 0)); got != "\x1b[A" {
		t.Errorf("expected CSI A in ANSI cursor mode, got %q", got)
	}
}

func TestEncodeKeyArrowsApplicationCursorMode(t *testing.T) {
	e := New()
	e.mode.Set(ModeAppCursor)
	if got := string(e.EncodeKey(KeyUp, 0)); got != "\x1bOA" {
		t.Errorf("expected SS3 A in application cursor mode, got %q", got)
	}
}

func TestEncodeKeyModifiedArrowAlwaysCSI1n(t *testing.T) {
	e := New()
	e.mode.Set(ModeAppCursor)
	got := string(e.EncodeKey(KeyUp, ModShift))
	if got != "\x1b[1;2A" {
		t.Errorf("expected CSI 1;2A regardless of DECCKM, got %q", got)
	}
}

func TestEncodeKeyModifiedArrowCombinedModifiers(t *testing.T) {
	e := New()
	got := string(e.EncodeKey(KeyLeft, ModShift|ModCtrl))
	// Shift(+4) + Ctrl(+16) = 20, encoded as param 20/4+1 = 6.
	if got != "\x1b[1;6D" {
		t.Errorf("expected CSI 1;6D, got %q", got)
	}
}

func TestEncodeKeyEnterPlain(t *testing.T) {
	e := New()
	if got := string(e.EncodeKey(KeyEnter, 0)); got != "\r" {
		t.Errorf("expected CR, got %q", got)
	}
}

func TestEncodeKeyEnterCRLFMode(t *testing.T) {
	e := New()
	e.mode.Set(ModeCRLF)
	if got := string(e.EncodeKey(KeyEnter, 0)); got != "\r\n" {
		t.Errorf("expected CRLF, got %q", got)
	}
}

func TestEncodeKeyEnterAppKeypad(t *testing.T) {
	e := New()
	e.mode.Set(ModeAppKeypad)
	if got := string(e.EncodeKey(KeyEnter, 0)); got != "\x1bOM" {
		t.Errorf("expected SS3 M, got %q", got)
	}
}

func TestEncodeKeyTabAndShiftTab(t *testing.T) {
	e := New()
	if got := string(e.EncodeKey(KeyTab, 0)); got != "\t" {
		t.Errorf("expected plain tab, got %q", got)
	}
	if got := string(e.EncodeKey(KeyTab, ModShift)); got != "\x1b[Z" {
		t.Errorf("expected CBT (back-tab), got %q", got)
	}
}

func TestEncodeKeyPageUpHasNoAppcursorRequirement(t *testing.T) {
	e := New()
	e.mode.Set(ModeAppCursor)
	if got := string(e.EncodeKey(KeyPageUp, 0)); got != "\x1b[5~" {
		t.Errorf("expected \\x1b[5~ regardless of DECCKM, got %q", got)
	}
}

func TestEncodeKeyUnknownReturnsNil(t *testing.T) {
	e := New()
	if got := e.EncodeKey(KeySym(999), 0); got != nil {
		t.Errorf("expected nil for an unmapped keysym, got %q", got)
	}
}

func TestEncodeMouseX10PressOnly(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseX10)
	st := &mouseState{}
	got := string(e.EncodeMouse(st, MousePress, ButtonLeft, 0, 0, 0))
	if got != "\x1b[M !!" {
		t.Errorf("expected X10 press report, got %q", got)
	}
	if got := e.EncodeMouse(st, MouseRelease, ButtonLeft, 0, 0, 0); got != nil {
		t.Errorf("expected no release report in X10 mode, got %q", got)
	}
}

func TestEncodeMouseBtnPressAndRelease(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseBtn)
	st := &mouseState{}
	press := string(e.EncodeMouse(st, MousePress, ButtonLeft, 1, 1, 0))
	if press != "\x1b[M \"\"" {
		t.Errorf("expected press report, got %q", press)
	}
	release := string(e.EncodeMouse(st, MouseRelease, ButtonLeft, 1, 1, 0))
	if release != "\x1b[M#\"\"" {
		t.Errorf("expected release (button=3) report, got %q", release)
	}
}

func TestEncodeMouseSGREncoding(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseSGR | ModeMouseBtn)
	st := &mouseState{}
	press := string(e.EncodeMouse(st, MousePress, ButtonLeft, 9, 4, 0))
	if press != "\x1b[<0;10;5M" {
		t.Errorf("expected SGR press, got %q", press)
	}
	release := string(e.EncodeMouse(st, MouseRelease, ButtonLeft, 9, 4, 0))
	if release != "\x1b[<0;10;5m" {
		t.Errorf("expected SGR release, got %q", release)
	}
}

func TestEncodeMouseSGRModifierBits(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseSGR | ModeMouseBtn)
	st := &mouseState{}
	got := string(e.EncodeMouse(st, MousePress, ButtonLeft, 0, 0, ModShift|ModCtrl))
	if got != "\x1b[<20;1;1M" {
		t.Errorf("expected button+20 (shift+ctrl), got %q", got)
	}
}

func TestEncodeMouseWheelNeverReleases(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseSGR | ModeMouseBtn)
	st := &mouseState{}
	press := e.EncodeMouse(st, MousePress, WheelUp, 0, 0, 0)
	if press == nil {
		t.Fatal("expected a press report for the wheel button")
	}
	release := e.EncodeMouse(st, MouseRelease, WheelUp, 0, 0, 0)
	if release != nil {
		t.Errorf("wheel buttons must never emit a release report, got %q", release)
	}
}

func TestEncodeMouseMotionSuppressedWithoutModeOn(t *testing.T) {
	e := New()
	st := &mouseState{}
	if got := e.EncodeMouse(st, MouseMotion, ButtonNone, 3, 3, 0); got != nil {
		t.Errorf("expected nil motion report with no motion-tracking mode on, got %q", got)
	}
}

func TestEncodeMouseMotionSuppressedWhenNoChange(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseMany)
	st := &mouseState{lastX: 2, lastY: 2, haveLast: true}
	if got := e.EncodeMouse(st, MouseMotion, ButtonNone, 2, 2, 0); got != nil {
		t.Errorf("expected nil for a redundant motion report, got %q", got)
	}
}

func TestEncodeMouseMotionRequiresHeldButtonInBtnMode(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseMotion)
	st := &mouseState{oldButton: ButtonNone}
	if got := e.EncodeMouse(st, MouseMotion, ButtonNone, 5, 5, 0); got != nil {
		t.Errorf("expected nil motion report with no button held in ModeMouseMotion, got %q", got)
	}
}

func TestEncodeMouseMotionReportsHeldButton(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseMany)
	st := &mouseState{oldButton: ButtonLeft}
	got := e.EncodeMouse(st, MouseMotion, ButtonNone, 5, 5, 0)
	if got == nil {
		t.Fatal("expected a motion report with a button held")
	}
}

func TestWantsMouseReportRequiresAMouseMode(t *testing.T) {
	e := New()
	if e.WantsMouseReport(0) {
		t.Error("expected false with no mouse tracking mode on")
	}
	e.mode.Set(ModeMouseBtn)
	if !e.WantsMouseReport(0) {
		t.Error("expected true once a mouse tracking mode is on")
	}
}

func TestWantsMouseReportForceSelModBypasses(t *testing.T) {
	e := New()
	e.mode.Set(ModeMouseBtn)
	if e.WantsMouseReport(e.cfg.ForceSelMod) {
		t.Error("expected forceselmod to bypass mouse reporting and route to selection")
	}
}
