package vtcore

import (
	"image/color"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	defaultRows = 24
	defaultCols = 80
)

// Emulator threads together the screen/cursor/mode/selection state behind
// one value with method-call entry points, instead of a package of globals
// (spec §9 design note "thread a single Emulator value that owns the
// screen/mode/selection and exposes methods; collaborators held as
// capability objects, not globals"). Grounded on the teacher's Terminal,
// replacing its go-ansicode-driven Handler with the hand-rolled parser in
// parser.go/csi.go/sgr.go/oscdcs.go (ESC finals are dispatched by the
// parser's escFinal in parser.go).
type Emulator struct {
	mu sync.RWMutex

	rows, cols int
	tabWidth   int

	primary *Screen
	alt     *Screen
	altMode bool // true while the alternate screen is the active grid

	cur     Cursor
	saved   [2]SavedCursor // indexed by altMode at the time of DECSC/CSI s
	g       [4]CharsetID
	charsetIdx int // active G slot, 0-3 ("charset" in st.c)
	icharset int // pending G slot for the next ALTCHARSET final

	top, bot int // scroll region, 0-indexed, inclusive

	mode Mode
	sel  *Selection

	palette [256]color.RGBA

	title      string
	titleStack []string

	focused bool

	parser  *parser
	decoder *byteDecoder

	cfg Config

	ptyWriter io.Writer
	clipboard Clipboard
	renderer  Renderer
	printSink io.Writer

	log *logrus.Entry

	damaged map[int]struct{}
}

// Option configures an Emulator during construction (functional-options
// pattern kept from the teacher's terminal.go).
type Option func(*Emulator)

// WithDimensions sets the initial grid size. Values <= 0 fall back to the
// package defaults (24x80).
func WithDimensions(rows, cols int) Option {
	if rows <= 0 {
		rows = defaultRows
	}
	if cols <= 0 {
		cols = defaultCols
	}
	return func(e *Emulator) {
		e.rows, e.cols = rows, cols
	}
}

// WithPTYWriter sets the writer replies (DSR/DA/DECRQSS/bracketed paste
// framing/mouse reports) are written to. Defaults to a discarding writer.
func WithPTYWriter(w io.Writer) Option {
	return func(e *Emulator) { e.ptyWriter = w }
}

// WithClipboard sets the OSC 52 backing store. Defaults to NoopClipboard,
// which is also the security-safe choice: see dispatchOSC52 in oscdcs.go.
func WithClipboard(c Clipboard) Option {
	return func(e *Emulator) { e.clipboard = c }
}

// WithRenderer sets the damage/title/bell notification sink.
func WithRenderer(r Renderer) Option {
	return func(e *Emulator) { e.renderer = r }
}

// WithPrintSink sets the writer mode PRINT output is copied to.
func WithPrintSink(w io.Writer) Option {
	return func(e *Emulator) { e.printSink = w }
}

// WithConfig installs a fully-built Config (see config.go), replacing the
// whole record; no other option changes individual Config fields.
func WithConfig(cfg Config) Option {
	return func(e *Emulator) { e.cfg = cfg }
}

// WithLogger overrides the default logrus logger.
func WithLogger(log *logrus.Entry) Option {
	return func(e *Emulator) { e.log = log }
}

// New builds an Emulator at 24x80 unless overridden, with every collaborator
// defaulted to its Noop implementation.
func New(opts ...Option) *Emulator {
	e := &Emulator{
		rows:      defaultRows,
		cols:      defaultCols,
		cfg:       DefaultConfig(),
		ptyWriter: NoopWriter{},
		clipboard: NoopClipboard{},
		renderer:  NoopRenderer{},
		printSink: io.Discard,
		log:       logrus.NewEntry(logrus.StandardLogger()),
		focused:   true,
		damaged:   make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.tabWidth = e.cfg.TabSpaces
	e.title = e.cfg.Title
	e.primary = NewScreen(e.rows, e.cols, e.tabWidth)
	e.alt = NewScreen(e.rows, e.cols, e.tabWidth)
	e.bot = e.rows - 1
	e.cur = NewCursor()
	e.palette = DefaultPalette
	e.sel = NewSelection(e.cfg.WordDelimiters, e.cfg.DoubleClickTimeout, e.cfg.TripleClickTimeout)
	e.decoder = newByteDecoder()
	e.decoder.c1Policy = e.cfg.C1UTF8As
	e.parser = newParser(e)
	e.mode.Set(ModeWrap | ModeUTF8)
	return e
}

// Feed decodes and interprets a chunk of PTY output (spec §4.A entry
// point). Safe for a single reader goroutine; callers running concurrent
// writers (e.g. resize from another goroutine) should serialize through
// the same lock surface the exported accessors use.
func (e *Emulator) Feed(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, b := range data {
		if r, ok := e.decoder.feed(b); ok {
			e.parser.feed(r)
		}
	}
	e.flushDamage()
}

func (e *Emulator) flushDamage() {
	if len(e.damaged) == 0 {
		return
	}
	rows := make([]int, 0, len(e.damaged))
	for y := range e.damaged {
		rows = append(rows, y)
	}
	e.damaged = make(map[int]struct{})
	e.renderer.Damaged(rows)
}

func (e *Emulator) markDamaged(y int) {
	e.damaged[y] = struct{}{}
}

// screen returns the currently active grid.
func (e *Emulator) screen() *Screen {
	if e.altMode {
		return e.alt
	}
	return e.primary
}

// cursor returns the live cursor register.
func (e *Emulator) cursor() *Cursor {
	return &e.cur
}

// Rows and Cols report the current grid size.
func (e *Emulator) Rows() int { return e.rows }
func (e *Emulator) Cols() int { return e.cols }

// Cell returns the cell at (x,y) on the active screen.
func (e *Emulator) Cell(x, y int) Cell {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.screen().Cell(x, y)
}

// CursorPosition returns the live cursor's column and row.
func (e *Emulator) CursorPosition() (x, y int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur.X, e.cur.Y
}

// Title returns the current window title.
func (e *Emulator) Title() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.title
}

// Selection exposes the selection engine for host-driven mouse/keyboard
// selection gestures; callers must not retain it across a Resize.
func (e *Emulator) Selection() *Selection { return e.sel }

func (e *Emulator) template() Template {
	return Template{Fg: e.cur.Tmpl.Fg, Bg: e.cur.Tmpl.Bg, Attr: e.cur.Tmpl.Attr}
}

// writeRune implements the write_character contract of spec §4.D.
func (e *Emulator) writeRune(u rune) {
	if e.mode.Has(ModePrint) {
		var buf [4]byte
		n := encodeRuneUTF8(buf[:], u)
		e.printSink.Write(buf[:n])
	}

	u = translate(u, e.g[e.charsetIdx])
	width := runeWidth(u)
	if width <= 0 {
		width = 1
	}
	scr := e.screen()

	if e.cur.HasFlag(CursorWrapNext) && e.mode.Has(ModeWrap) {
		c := scr.Cell(e.cur.X, e.cur.Y)
		c.SetAttr(AttrWrap)
		scr.writeCell(e.cur.X, e.cur.Y, c, e.sel)
		scr.setWrapped(e.cur.Y, true)
		e.newlineAt(e.cur.Y, true)
		e.cur.Flags &^= CursorWrapNext
	}

	if e.mode.Has(ModeInsert) && e.cur.X+width <= e.cols {
		scr.InsertBlanks(e.cur.X, e.cur.Y, width, e.template(), e.sel)
	}

	if e.cur.X+width > e.cols {
		e.newlineAt(e.cur.Y, true)
		e.cur.Flags &^= CursorWrapNext
	}

	e.fixupWideDummy(e.cur.X, e.cur.Y)
	cell := Cell{Rune: u, Fg: e.cur.Tmpl.Fg, Bg: e.cur.Tmpl.Bg, Attr: e.cur.Tmpl.Attr}
	if width == 2 {
		cell.SetAttr(AttrWide)
	}
	scr.writeCell(e.cur.X, e.cur.Y, cell, e.sel)
	if width == 2 && e.cur.X+1 < e.cols {
		dummy := Cell{Rune: 0, Attr: AttrWideDummy}
		scr.writeCell(e.cur.X+1, e.cur.Y, dummy, e.sel)
	}
	e.markDamaged(e.cur.Y)

	e.cur.X += width
	if e.cur.X >= e.cols {
		e.cur.X = e.cols - 1
		e.cur.Flags |= CursorWrapNext
	}
}

// fixupWideDummy restores a WIDE predecessor to a plain space when the
// cell about to be overwritten is its WDUMMY half (spec §4.D step 5).
func (e *Emulator) fixupWideDummy(x, y int) {
	scr := e.screen()
	if x > 0 && scr.Cell(x, y).IsWideDummy() {
		prev := scr.Cell(x-1, y)
		if prev.IsWide() {
			prev.ClearAttr(AttrWide)
			prev.Rune = ' '
			scr.writeCell(x-1, y, prev, e.sel)
		}
	}
	if scr.Cell(x, y).IsWide() && x+1 < e.cols && scr.Cell(x+1, y).IsWideDummy() {
		blank := BlankCell()
		scr.writeCell(x+1, y, blank, e.sel)
	}
}

// newline implements the LF/VT/FF control-code row (spec §4.C.i): scroll
// if at the scroll-region bottom, else move down; return to column 0 iff
// toCol0.
func (e *Emulator) newline(toCol0 bool) {
	e.newlineAt(e.cur.Y, toCol0)
}

func (e *Emulator) newlineAt(y int, toCol0 bool) {
	if y == e.bot {
		e.screen().ScrollUp(e.top, e.bot, 1, e.template(), e.sel)
		e.markDamagedRange(e.top, e.bot)
	} else if y+1 < e.rows {
		e.cur.Y++
	}
	if toCol0 {
		e.cur.X = 0
	}
}

func (e *Emulator) markDamagedRange(top, bot int) {
	for y := top; y <= bot; y++ {
		e.markDamaged(y)
	}
}

// index is ESC D (IND): like LF but never changes column.
func (e *Emulator) index() {
	e.newlineAt(e.cur.Y, false)
}

// reverseIndex is ESC M (RI): move up, scrolling the region down at top.
func (e *Emulator) reverseIndex() {
	if e.cur.Y == e.top {
		e.screen().ScrollDown(e.top, e.bot, 1, e.template(), e.sel)
		e.markDamagedRange(e.top, e.bot)
	} else if e.cur.Y > 0 {
		e.cur.Y--
	}
}

func (e *Emulator) advanceTab() {
	e.cur.X = e.screen().NextTabStop(e.cur.X)
}

func (e *Emulator) moveCursorRel(dx, dy int, wrap bool) {
	x, y := e.cur.X+dx, e.cur.Y+dy
	if x < 0 {
		x = 0
	}
	if x >= e.cols {
		x = e.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= e.rows {
		y = e.rows - 1
	}
	e.cur.X, e.cur.Y = x, y
	if !wrap {
		e.cur.Flags &^= CursorWrapNext
	}
}

func (e *Emulator) moveCursorAbsX(x int) {
	if x < 0 {
		x = 0
	}
	if x >= e.cols {
		x = e.cols - 1
	}
	e.cur.X = x
	e.cur.Flags &^= CursorWrapNext
}

func (e *Emulator) moveCursorTo(x, y int) {
	top, bot := 0, e.rows-1
	if e.mode.Has(ModeOrigin) {
		top, bot = e.top, e.bot
		y += top
	}
	if y < top {
		y = top
	}
	if y > bot {
		y = bot
	}
	if x < 0 {
		x = 0
	}
	if x >= e.cols {
		x = e.cols - 1
	}
	e.cur.X, e.cur.Y = x, y
	e.cur.Flags &^= CursorWrapNext
}

func (e *Emulator) designateCharset(final byte) {
	var id CharsetID
	switch final {
	case '0':
		id = CharsetSpecialGraphics
	case '<':
		id = CharsetTechnical
	case '>':
		id = CharsetCurses
	default: // 'B' and anything else: US ASCII
		id = CharsetASCII
	}
	if e.icharset >= 0 && e.icharset < 4 {
		e.g[e.icharset] = id
	}
}

// saveCursor implements DECSC (ESC 7 / CSI s): spec §4.D "saved cursors
// are indexed by alt so each screen keeps its own."
func (e *Emulator) saveCursor() {
	idx := 0
	if e.altMode {
		idx = 1
	}
	e.saved[idx] = SavedCursor{
		X: e.cur.X, Y: e.cur.Y,
		Tmpl:    e.cur.Tmpl,
		Origin:  e.mode.Has(ModeOrigin),
		Charset: e.charsetIdx,
		G:       e.g,
	}
}

// restoreCursor implements DECRC (ESC 8 / CSI u).
func (e *Emulator) restoreCursor() {
	idx := 0
	if e.altMode {
		idx = 1
	}
	s := e.saved[idx]
	e.cur.X, e.cur.Y = s.X, s.Y
	e.cur.Tmpl = s.Tmpl
	e.mode.Assign(ModeOrigin, s.Origin)
	e.charsetIdx = s.Charset
	e.g = s.G
	e.cur.Flags &^= CursorWrapNext
}

// swapScreens implements spec §4.D swap_screens: toggle ALTSCREEN, swap
// the active grid pointer, mark the whole new grid dirty.
func (e *Emulator) swapScreens() {
	e.altMode = !e.altMode
	e.mode.Assign(ModeAltScreen, e.altMode)
	e.screen().MarkAllDirty()
	e.markDamagedRange(0, e.rows-1)
}

func (e *Emulator) bell() {
	e.renderer.BellRang(!e.focused)
}

// SetFocused records window focus state, used both for BEL urgency and for
// mode 1004 focus in/out reporting (see input.go).
func (e *Emulator) SetFocused(focused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if focused == e.focused {
		return
	}
	e.focused = focused
	if e.mode.Has(ModeFocus) {
		if focused {
			e.ptyWriter.Write([]byte("\x1b[I"))
		} else {
			e.ptyWriter.Write([]byte("\x1b[O"))
		}
	}
}

// fullReset implements RIS (ESC c): reinitialize mode/cursor/charset state
// and blank both screens, without reallocating them.
func (e *Emulator) fullReset() {
	e.mode = 0
	e.mode.Set(ModeWrap | ModeUTF8)
	e.cur = NewCursor()
	e.g = [4]CharsetID{}
	e.charsetIdx = 0
	e.top, e.bot = 0, e.rows-1
	e.altMode = false
	e.saved = [2]SavedCursor{}
	e.sel.Clear()
	e.title = ""
	e.titleStack = nil
	e.primary.ClearRegion(0, 0, e.cols-1, e.rows-1, Template{Fg: ColorDefault, Bg: ColorDefault}, nil)
	e.alt.ClearRegion(0, 0, e.cols-1, e.rows-1, Template{Fg: ColorDefault, Bg: ColorDefault}, nil)
	e.primary.ClearAllTabStops()
	e.alt.ClearAllTabStops()
	e.markDamagedRange(0, e.rows-1)
}

// ToggleBlink flips the BLINK mode bit and dirties only blink-attributed
// cells on the active screen (spec §5 Timers), driven by Driver's blink
// ticker rather than by any escape sequence.
func (e *Emulator) ToggleBlink() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode ^= ModeBlink
	scr := e.screen()
	for y := 0; y < e.rows; y++ {
		for x := 0; x < e.cols; x++ {
			if scr.Cell(x, y).HasAttr(AttrBlink) {
				e.markDamaged(y)
				break
			}
		}
	}
	e.flushDamage()
}

func (e *Emulator) logDropped(reason string, b byte) {
	e.log.WithField("final", string(rune(b))).Warn(reason)
}

// Resize implements spec §4.D resize: preserve content, reallocate both
// grids, clamp cursor and scroll region.
func (e *Emulator) Resize(rows, cols int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if rows <= 0 || cols <= 0 || (rows == e.rows && cols == e.cols) {
		return
	}
	dropped := e.primary.Resize(rows, cols, e.cur.Y, e.tabWidth)
	e.alt.Resize(rows, cols, e.cur.Y, e.tabWidth)
	e.rows, e.cols = rows, cols
	e.cur.Y -= dropped
	if e.cur.Y < 0 {
		e.cur.Y = 0
	}
	if e.cur.X >= cols {
		e.cur.X = cols - 1
	}
	e.top = 0
	e.bot = rows - 1
	e.markDamagedRange(0, rows-1)
}
