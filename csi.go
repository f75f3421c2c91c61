package vtcore

// dispatchCSI implements spec §4.C.ii: the CSI final-byte dispatch table.
// Grounded on original_source/st.c's csihandle() switch (same final-byte
// set) and the teacher's handler.go organization (one method per op).
func (e *Emulator) dispatchCSI(c *csiSequence) {
	if c.intermediate == '$' {
		e.dispatchCSIDollar(c)
		return
	}
	if c.intermediate == ' ' {
		if c.final == 'q' {
			e.decscusr(c.param(0, 1))
		}
		return
	}

	switch c.final {
	case '@': // ICH
		e.screen().InsertBlanks(e.cur.X, e.cur.Y, c.param(0, 1), e.template(), e.sel)
	case 'A': // CUU
		e.moveCursorRel(0, -c.param(0, 1), false)
	case 'B', 'e': // CUD, VPR
		e.moveCursorRel(0, c.param(0, 1), false)
	case 'C', 'a': // CUF, HPR
		e.moveCursorRel(c.param(0, 1), 0, false)
	case 'D': // CUB
		e.moveCursorRel(-c.param(0, 1), 0, false)
	case 'E': // CNL
		e.moveCursorRel(0, c.param(0, 1), false)
		e.moveCursorAbsX(0)
	case 'F': // CPL
		e.moveCursorRel(0, -c.param(0, 1), false)
		e.moveCursorAbsX(0)
	case 'G', '`': // CHA, HPA
		e.moveCursorAbsX(c.param(0, 1) - 1)
	case 'H', 'f': // CUP, HVP
		e.moveCursorTo(c.param(1, 1)-1, c.param(0, 1)-1)
	case 'I': // CHT
		e.tabForward(c.param(0, 1))
	case 'J': // ED
		e.eraseInDisplay(c.param(0, 0))
	case 'K': // EL
		e.eraseInLine(c.param(0, 0))
	case 'L': // IL
		e.insertLines(c.param(0, 1))
	case 'M': // DL
		e.deleteLines(c.param(0, 1))
	case 'P': // DCH
		e.screen().DeleteChars(e.cur.X, e.cur.Y, c.param(0, 1), e.template(), e.sel)
	case 'S': // SU
		e.screen().ScrollUp(e.top, e.bot, c.param(0, 1), e.template(), e.sel)
		e.markDamagedRange(e.top, e.bot)
	case 'T': // SD
		e.screen().ScrollDown(e.top, e.bot, c.param(0, 1), e.template(), e.sel)
		e.markDamagedRange(e.top, e.bot)
	case 'X': // ECH
		e.eraseChars(c.param(0, 1))
	case 'Z': // CBT
		e.tabBackward(c.param(0, 1))
	case 'c': // DA1 / DA2
		e.replyDA(c.private)
	case 'd': // VPA
		e.moveCursorTo(e.cur.X, c.param(0, 1)-1)
	case 'g': // TBC
		e.clearTabs(c.param(0, 0))
	case 'h': // SM
		e.setModes(c, true)
	case 'l': // RM
		e.setModes(c, false)
	case 'm': // SGR
		e.applySGR(c)
	case 'n': // DSR
		e.dispatchDSR(c)
	case 'r': // DECSTBM
		e.setScrollRegion(c)
	case 's': // DECSC / left-right margins when DECLRMM (not implemented)
		e.saveCursor()
	case 'u': // DECRC
		e.restoreCursor()
	default:
		e.logDropped("unknown CSI final", c.final)
	}
}

func (e *Emulator) dispatchCSIDollar(c *csiSequence) {
	switch c.final {
	case '|': // DECSCPP
		if e.mode.Has(ModeEnableColumnChange) {
			cols := c.param(0, e.cols)
			e.Resize(e.rows, cols)
		}
	case '~': // DECSSDT
		// Status-line type select: accepted and ignored (no status-line
		// rendering surface in this core; see spec §1 Non-goals).
	case 'q': // DECRQSS, STR-framed normally but some emit via CSI; drop.
		e.logDropped("DECRQSS via CSI", c.final)
	default:
		e.logDropped("unknown CSI $ final", c.final)
	}
}

func (e *Emulator) tabForward(n int) {
	for i := 0; i < n; i++ {
		e.cur.X = e.screen().NextTabStop(e.cur.X)
	}
}

func (e *Emulator) tabBackward(n int) {
	for i := 0; i < n; i++ {
		e.cur.X = e.screen().PrevTabStop(e.cur.X)
	}
}

func (e *Emulator) eraseInDisplay(mode int) {
	scr := e.screen()
	switch mode {
	case 0:
		scr.ClearRegion(e.cur.X, e.cur.Y, e.cols-1, e.cur.Y, e.template(), e.sel)
		scr.ClearRegion(0, e.cur.Y+1, e.cols-1, e.rows-1, e.template(), e.sel)
		e.markDamagedRange(e.cur.Y, e.rows-1)
	case 1:
		scr.ClearRegion(0, 0, e.cols-1, e.cur.Y-1, e.template(), e.sel)
		scr.ClearRegion(0, e.cur.Y, e.cur.X, e.cur.Y, e.template(), e.sel)
		e.markDamagedRange(0, e.cur.Y)
	case 2, 3:
		scr.ClearRegion(0, 0, e.cols-1, e.rows-1, e.template(), e.sel)
		e.markDamagedRange(0, e.rows-1)
	}
}

func (e *Emulator) eraseInLine(mode int) {
	scr := e.screen()
	switch mode {
	case 0:
		scr.ClearRegion(e.cur.X, e.cur.Y, e.cols-1, e.cur.Y, e.template(), e.sel)
	case 1:
		scr.ClearRegion(0, e.cur.Y, e.cur.X, e.cur.Y, e.template(), e.sel)
	case 2:
		scr.ClearRegion(0, e.cur.Y, e.cols-1, e.cur.Y, e.template(), e.sel)
	}
	e.markDamaged(e.cur.Y)
}

func (e *Emulator) insertLines(n int) {
	if e.cur.Y < e.top || e.cur.Y > e.bot {
		return
	}
	e.screen().ScrollDown(e.cur.Y, e.bot, n, e.template(), e.sel)
	e.markDamagedRange(e.cur.Y, e.bot)
}

func (e *Emulator) deleteLines(n int) {
	if e.cur.Y < e.top || e.cur.Y > e.bot {
		return
	}
	e.screen().ScrollUp(e.cur.Y, e.bot, n, e.template(), e.sel)
	e.markDamagedRange(e.cur.Y, e.bot)
}

func (e *Emulator) eraseChars(n int) {
	scr := e.screen()
	end := e.cur.X + n - 1
	if end >= e.cols {
		end = e.cols - 1
	}
	scr.ClearRegion(e.cur.X, e.cur.Y, end, e.cur.Y, e.template(), e.sel)
	e.markDamaged(e.cur.Y)
}

func (e *Emulator) clearTabs(mode int) {
	switch mode {
	case 0:
		e.screen().ClearTabStop(e.cur.X)
	case 3:
		e.screen().ClearAllTabStops()
	}
}

func (e *Emulator) setScrollRegion(c *csiSequence) {
	top := c.param(0, 1) - 1
	bot := c.param(1, e.rows) - 1
	if top < 0 {
		top = 0
	}
	if bot >= e.rows {
		bot = e.rows - 1
	}
	if top >= bot {
		top, bot = 0, e.rows-1
	}
	e.top, e.bot = top, bot
	e.moveCursorTo(0, 0)
}

func (e *Emulator) decscusr(style int) {
	switch {
	case style == 0 || style == 1:
		e.cur.Style = CursorBlinkingBlock
	case style >= 2 && style <= 6:
		e.cur.Style = CursorStyle(style - 1)
	}
}
