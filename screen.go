package vtcore

// Screen is a fixed-dimension row×col grid of cells (spec §3). Rows are
// independently allocated slices so that scrolling is pointer rotation, not
// an O(row·col) copy (spec §9 "arena-free lifetime" design note) — grounded
// on the teacher's buffer.go, which already rotates row slices on scroll.
type Screen struct {
	rows, cols int
	cells      [][]Cell
	wrapped    []bool // per-row: did this row end via wrap rather than newline
	dirty      []bool // per-row dirty flag, for the renderer collaborator
	tabstop    []bool
}

// NewScreen allocates a blank screen with a tab stop every tabWidth columns.
func NewScreen(rows, cols, tabWidth int) *Screen {
	s := &Screen{
		rows:    rows,
		cols:    cols,
		cells:   make([][]Cell, rows),
		wrapped: make([]bool, rows),
		dirty:   make([]bool, rows),
		tabstop: make([]bool, cols),
	}
	for i := range s.cells {
		s.cells[i] = blankRow(cols)
	}
	s.resetTabStops(tabWidth, 0)
	return s
}

func blankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = BlankCell()
	}
	return row
}

func (s *Screen) Rows() int { return s.rows }
func (s *Screen) Cols() int { return s.cols }

// Cell returns a copy of the cell at (x,y). Out-of-range coordinates return
// a blank cell.
func (s *Screen) Cell(x, y int) Cell {
	if y < 0 || y >= s.rows || x < 0 || x >= s.cols {
		return BlankCell()
	}
	return s.cells[y][x]
}

// writeCell is the sole mutation choke point for single-cell writes (spec
// §9: "route all grid mutations through two choke points"). Callers that
// clear or overwrite a WDUMMY cell's WIDE predecessor must fix it up
// themselves (spec §4.D step 5); writeCell only sets the new value and
// marks dirty.
func (s *Screen) writeCell(x, y int, c Cell, sel *Selection) {
	if y < 0 || y >= s.rows || x < 0 || x >= s.cols {
		return
	}
	s.cells[y][x] = c
	s.dirty[y] = true
	if sel != nil {
		sel.onMutate(x, y)
	}
}

// IsDirty reports whether row y has been modified since the last ClearDirty.
func (s *Screen) IsDirty(y int) bool {
	if y < 0 || y >= s.rows {
		return false
	}
	return s.dirty[y]
}

// ClearDirty resets every row's dirty flag.
func (s *Screen) ClearDirty() {
	for i := range s.dirty {
		s.dirty[i] = false
	}
}

// MarkAllDirty marks every row dirty (used after swap/resize).
func (s *Screen) MarkAllDirty() {
	for i := range s.dirty {
		s.dirty[i] = true
	}
}

func (s *Screen) markDirty(y int) {
	if y >= 0 && y < s.rows {
		s.dirty[y] = true
	}
}

// IsWrapped reports whether row y ended via automatic wrap.
func (s *Screen) IsWrapped(y int) bool {
	if y < 0 || y >= s.rows {
		return false
	}
	return s.wrapped[y]
}

func (s *Screen) setWrapped(y int, wrapped bool) {
	if y >= 0 && y < s.rows {
		s.wrapped[y] = wrapped
	}
}

// LineLength returns the column index one past the last non-blank cell on
// row y (used by selection snap/extract; spec §4.E).
func (s *Screen) LineLength(y int) int {
	if y < 0 || y >= s.rows {
		return 0
	}
	row := s.cells[y]
	for x := s.cols - 1; x >= 0; x-- {
		if row[x].Rune != ' ' || row[x].Attr != 0 {
			return x + 1
		}
	}
	return 0
}

// ScrollUp shifts rows [top,bot] up by n, rotating row pointers (spec §4.D
// scroll_up). Cleared rows at the bottom get fresh cell slices.
func (s *Screen) ScrollUp(top, bot, n int, tmpl Template, sel *Selection) {
	top, bot = clampRegion(top, bot, s.rows)
	if n <= 0 || top > bot {
		return
	}
	if n > bot-top+1 {
		n = bot - top + 1
	}
	for y := top; y <= bot-n; y++ {
		s.cells[y] = s.cells[y+n]
		s.wrapped[y] = s.wrapped[y+n]
		s.dirty[y] = true
	}
	for y := bot - n + 1; y <= bot; y++ {
		s.cells[y] = blankFilledRow(s.cols, tmpl)
		s.wrapped[y] = false
		s.dirty[y] = true
	}
	if sel != nil {
		sel.onScroll(top, bot, -n, s.cols)
	}
}

// ScrollDown shifts rows [top,bot] down by n (spec §4.D scroll_down).
func (s *Screen) ScrollDown(top, bot, n int, tmpl Template, sel *Selection) {
	top, bot = clampRegion(top, bot, s.rows)
	if n <= 0 || top > bot {
		return
	}
	if n > bot-top+1 {
		n = bot - top + 1
	}
	for y := bot; y >= top+n; y-- {
		s.cells[y] = s.cells[y-n]
		s.wrapped[y] = s.wrapped[y-n]
		s.dirty[y] = true
	}
	for y := top; y < top+n; y++ {
		s.cells[y] = blankFilledRow(s.cols, tmpl)
		s.wrapped[y] = false
		s.dirty[y] = true
	}
	if sel != nil {
		sel.onScroll(top, bot, n, s.cols)
	}
}

func blankFilledRow(cols int, tmpl Template) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = Cell{Rune: ' ', Fg: tmpl.Fg, Bg: tmpl.Bg}
	}
	return row
}

func clampRegion(top, bot, rows int) (int, int) {
	if top < 0 {
		top = 0
	}
	if bot > rows-1 {
		bot = rows - 1
	}
	return top, bot
}

// InsertBlanks inserts n blank cells at (x,y), shifting the remainder of
// the row right and dropping cells that fall off the edge (ICH, spec
// §4.C.ii).
func (s *Screen) InsertBlanks(x, y, n int, tmpl Template, sel *Selection) {
	if y < 0 || y >= s.rows || x < 0 || x >= s.cols || n <= 0 {
		return
	}
	row := s.cells[y]
	if n > s.cols-x {
		n = s.cols - x
	}
	copy(row[x+n:], row[x:s.cols-n])
	for i := x; i < x+n; i++ {
		row[i] = Cell{Rune: ' ', Fg: tmpl.Fg, Bg: tmpl.Bg}
	}
	s.dirty[y] = true
	if sel != nil {
		sel.onMutateRange(x, s.cols-1, y)
	}
}

// DeleteChars removes n cells at (x,y), shifting the remainder left and
// filling the vacated tail with blanks (DCH, spec §4.C.ii).
func (s *Screen) DeleteChars(x, y, n int, tmpl Template, sel *Selection) {
	if y < 0 || y >= s.rows || x < 0 || x >= s.cols || n <= 0 {
		return
	}
	row := s.cells[y]
	if n > s.cols-x {
		n = s.cols - x
	}
	copy(row[x:], row[x+n:])
	for i := s.cols - n; i < s.cols; i++ {
		row[i] = Cell{Rune: ' ', Fg: tmpl.Fg, Bg: tmpl.Bg}
	}
	s.dirty[y] = true
	if sel != nil {
		sel.onMutateRange(x, s.cols-1, y)
	}
}

// ClearRegion normalises and clamps (x1,y1)-(x2,y2), fills it with blanks
// carrying tmpl's colors, and clears any selection it intersects (spec
// §4.D clear_region, §8 invariant 4).
func (s *Screen) ClearRegion(x1, y1, x2, y2 int, tmpl Template, sel *Selection) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 >= s.cols {
		x2 = s.cols - 1
	}
	if y2 >= s.rows {
		y2 = s.rows - 1
	}
	for y := y1; y <= y2; y++ {
		row := s.cells[y]
		for x := x1; x <= x2; x++ {
			row[x] = Cell{Rune: ' ', Fg: tmpl.Fg, Bg: tmpl.Bg}
		}
		s.dirty[y] = true
	}
	if sel != nil {
		sel.onClearRegion(x1, y1, x2, y2)
	}
}

// FillWithE fills the entire grid with 'E' (DECALN, spec §4.C step 3 TEST).
func (s *Screen) FillWithE() {
	for y := 0; y < s.rows; y++ {
		row := s.cells[y]
		for x := 0; x < s.cols; x++ {
			row[x] = Cell{Rune: 'E'}
		}
		s.dirty[y] = true
	}
}

// Resize reallocates rows to the new dimensions, preserving cursor-relative
// content by dropping the top rows that no longer fit (spec §4.D resize).
// cursorY is the cursor's row before the resize; the returned int is the
// number of rows dropped from the top, which the caller must subtract from
// the cursor and scroll-region state.
func (s *Screen) Resize(rows, cols, cursorY, tabWidth int) int {
	oldCols := s.cols
	dropped := 0
	if rows < cursorY+1 {
		dropped = cursorY + 1 - rows
	}

	newCells := make([][]Cell, rows)
	newWrapped := make([]bool, rows)
	for y := 0; y < rows; y++ {
		src := y + dropped
		if src >= 0 && src < s.rows {
			old := s.cells[src]
			row := make([]Cell, cols)
			n := cols
			if len(old) < n {
				n = len(old)
			}
			copy(row, old[:n])
			for x := n; x < cols; x++ {
				row[x] = BlankCell()
			}
			newCells[y] = row
			newWrapped[y] = s.wrapped[src]
		} else {
			newCells[y] = blankRow(cols)
		}
	}

	newTabstop := make([]bool, cols)
	copy(newTabstop, s.tabstop)

	s.cells = newCells
	s.wrapped = newWrapped
	s.tabstop = newTabstop
	s.rows = rows
	s.cols = cols
	s.dirty = make([]bool, rows)
	if cols > oldCols {
		s.resetTabStops(tabWidth, oldCols)
	}
	s.MarkAllDirty()
	return dropped
}

func (s *Screen) resetTabStops(tabWidth, from int) {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	for i := from; i < len(s.tabstop); i++ {
		if i%tabWidth == 0 {
			s.tabstop[i] = true
		}
	}
}

// SetTabStop sets a tab stop at column x.
func (s *Screen) SetTabStop(x int) {
	if x >= 0 && x < s.cols {
		s.tabstop[x] = true
	}
}

// ClearTabStop clears the tab stop at column x.
func (s *Screen) ClearTabStop(x int) {
	if x >= 0 && x < s.cols {
		s.tabstop[x] = false
	}
}

// ClearAllTabStops clears every tab stop.
func (s *Screen) ClearAllTabStops() {
	for i := range s.tabstop {
		s.tabstop[i] = false
	}
}

// NextTabStop returns the next tab stop at or after x+1, or cols-1.
func (s *Screen) NextTabStop(x int) int {
	for i := x + 1; i < s.cols; i++ {
		if s.tabstop[i] {
			return i
		}
	}
	return s.cols - 1
}

// PrevTabStop returns the previous tab stop at or before x-1, or 0.
func (s *Screen) PrevTabStop(x int) int {
	for i := x - 1; i >= 0; i-- {
		if s.tabstop[i] {
			return i
		}
	}
	return 0
}
