package vtcore

import "fmt"

// Static reply strings (spec §4.G), transcribed from original_source/st.c's
// literal DA1/DA2 constants.
const (
	replyDA1 = "\x1b[?65;1;2;7;9;12;18;19;21;22;23;24;42;44;45;46c"
	replyDA2 = "\x1b[>41;1;0c"
	replyDECRQSS = "\x1bP65;1\"p\x1b\\"
	bracketedPasteStart = "\x1b[200~"
	bracketedPasteEnd   = "\x1b[201~"
)

func (e *Emulator) replyDA(private byte) {
	if private == '>' {
		e.ptyWriter.Write([]byte(replyDA2))
		return
	}
	e.ptyWriter.Write([]byte(replyDA1))
}

// dispatchDSR implements CSI n (DSR): only Ps=6 (cursor position report) is
// recognised, matching spec §4.C.ii.
func (e *Emulator) dispatchDSR(c *csiSequence) {
	if c.param(0, 0) != 6 {
		return
	}
	reply := fmt.Sprintf("\x1b[%d;%dR", e.cur.Y+1, e.cur.X+1)
	e.ptyWriter.Write([]byte(reply))
}

// replyDECRQSSForSCL answers DCS $q"p (request DECSCL) per spec §4.C.v.
func (e *Emulator) replyDECRQSSForSCL() {
	e.ptyWriter.Write([]byte(replyDECRQSS))
}

// bracketedPaste wraps text in the bracketed-paste framing when mode 2004
// is on, and writes it verbatim otherwise (spec §4.G).
func (e *Emulator) bracketedPaste(text string) {
	if e.mode.Has(ModeBracketedPaste) {
		e.ptyWriter.Write([]byte(bracketedPasteStart))
		e.ptyWriter.Write([]byte(text))
		e.ptyWriter.Write([]byte(bracketedPasteEnd))
		return
	}
	e.ptyWriter.Write([]byte(text))
}
