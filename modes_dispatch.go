package vtcore

// setModes implements spec §4.H: the CSI h/l (SM/RM) dispatch table mapping
// each DEC private or ANSI mode number to a (bit, polarity, side-effect).
// Grounded on original_source/st.c's tsetmode().
func (e *Emulator) setModes(c *csiSequence, set bool) {
	if c.private == '?' {
		for _, p := range c.params {
			e.setPrivateMode(p, set)
		}
		return
	}
	for _, p := range c.params {
		switch p {
		case 4: // IRM
			e.mode.Assign(ModeInsert, set)
		case 20: // LNM
			e.mode.Assign(ModeCRLF, set)
		default:
			e.logDropped("unknown ANSI mode", byte(p))
		}
	}
}

func (e *Emulator) setPrivateMode(p int, set bool) {
	switch p {
	case 1: // DECCKM
		e.mode.Assign(ModeAppCursor, set)
	case 3: // DECCOLM
		if e.mode.Has(ModeEnableColumnChange) {
			cols := 80
			if set {
				cols = 132
			}
			e.Resize(e.rows, cols)
			if e.mode.Has(ModeClearOnDECCOLM) {
				e.screen().ClearRegion(0, 0, e.cols-1, e.rows-1, e.template(), nil)
			}
		}
	case 5: // DECSCNM
		e.mode.Assign(ModeReverse, set)
		e.markDamagedRange(0, e.rows-1)
	case 6: // DECOM
		e.mode.Assign(ModeOrigin, set)
		e.moveCursorTo(0, 0)
	case 7: // DECAWM
		e.mode.Assign(ModeWrap, set)
	case 9: // X10 mouse
		e.mode.Assign(ModeMouseX10, set)
	case 40: // allow/disallow DECCOLM (80/132 column switching)
		e.mode.Assign(ModeEnableColumnChange, set)
	case 25: // DECTCEM -- inverted polarity: set means visible, clear HIDE
		e.mode.Assign(ModeHide, !set)
	case 47, 1047:
		if !e.cfg.AllowAltScreen {
			e.logDropped("alternate screen disabled", byte(p))
			return
		}
		if set != e.altMode {
			if set {
				e.alt.ClearRegion(0, 0, e.cols-1, e.rows-1, e.template(), nil)
			}
			e.swapScreens()
		}
	case 1000:
		e.mode.Assign(ModeMouseBtn, set)
	case 1002:
		e.mode.Assign(ModeMouseMotion, set)
	case 1003:
		e.mode.Assign(ModeMouseMany, set)
	case 1004:
		e.mode.Assign(ModeFocus, set)
	case 1005, 1015, 1001:
		e.logDropped("unsupported mouse protocol mode", byte(p))
	case 1006:
		e.mode.Assign(ModeMouseSGR, set)
	case 1048:
		if set {
			e.saveCursor()
		} else {
			e.restoreCursor()
		}
	case 1049:
		if !e.cfg.AllowAltScreen {
			e.logDropped("alternate screen disabled", byte(p))
			return
		}
		if set {
			if !e.altMode {
				e.saveCursor()
				e.alt.ClearRegion(0, 0, e.cols-1, e.rows-1, e.template(), nil)
				e.swapScreens()
			}
		} else {
			if e.altMode {
				e.swapScreens()
				e.restoreCursor()
			}
		}
	case 2004:
		e.mode.Assign(ModeBracketedPaste, set)
	default:
		e.logDropped("unknown DEC private mode", byte(p))
	}
}
