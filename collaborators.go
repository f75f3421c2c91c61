package vtcore

import "io"

// Clipboard is the host's OSC 52 backing store. 'c' addresses the system
// clipboard, 'p' the primary selection, per spec §4.C.v. The core never
// calls Read: under the security policy in oscdcs.go an OSC 52 query is
// answered with an empty payload, so host clipboard content is never sent.
type Clipboard interface {
	Read(selector byte) string
	Write(selector byte, data []byte)
}

// NoopClipboard discards writes and reports empty on read (grounded on the
// teacher's providers.go NoopClipboard).
type NoopClipboard struct{}

func (NoopClipboard) Read(selector byte) string   { return "" }
func (NoopClipboard) Write(selector byte, _ []byte) {}

// Renderer is notified after a batch of bytes has been processed, so a
// host can schedule a repaint without the core knowing anything about
// pixels or fonts (spec §1 Non-goals: rendering is out of scope here).
type Renderer interface {
	// Damaged is called with the set of rows touched since the last call.
	Damaged(rows []int)
	// TitleChanged is called when OSC 0/1/2/k sets the window title.
	TitleChanged(title string)
	// BellRang is called on BEL, with urgent indicating the window was
	// unfocused when it rang (spec §4.C.i BEL row).
	BellRang(urgent bool)
}

// NoopRenderer ignores every notification.
type NoopRenderer struct{}

func (NoopRenderer) Damaged(_ []int)          {}
func (NoopRenderer) TitleChanged(_ string)    {}
func (NoopRenderer) BellRang(_ bool)          {}

// NoopWriter discards everything written to it; used as the default PTY
// writer so a headless Emulator (e.g. under test) never blocks on replies.
type NoopWriter struct{}

func (NoopWriter) Write(p []byte) (int, error) { return len(p), nil }

var _ io.Writer = NoopWriter{}
