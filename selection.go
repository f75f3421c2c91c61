package vtcore

import (
	"strings"
	"time"
)

// SelectMode tracks the lifecycle of a selection (spec §3).
type SelectMode int

const (
	SelIdle SelectMode = iota
	SelEmpty
	SelReady
)

// SelectKind is the shape of the selection (spec §3).
type SelectKind int

const (
	SelRegular SelectKind = iota
	SelRectangular
)

// SnapMode is the unit a selection snaps to on multi-click (spec §3, §4.E).
type SnapMode int

const (
	SnapNone SnapMode = iota
	SnapWord
	SnapLine
)

// Point is a grid coordinate.
type Point struct{ X, Y int }

// Selection tracks an anchored selection over a Screen (spec §3, component
// E). Grounded on original_source/st.c's `sel` global (selnormalize,
// selsnap, getsel) since the teacher (a headless render-only library) has
// no selection concept to adapt — this is new code.
type Selection struct {
	Mode   SelectMode
	Kind   SelectKind
	Snap   SnapMode
	Screen int // which screen (0=primary,1=alternate) the selection lives on

	origBegin, origEnd Point
	normBegin, normEnd Point

	delimiters string

	lastClick   time.Time
	clickCount  int
	doubleClick time.Duration
	tripleClick time.Duration
}

// NewSelection returns an idle selection configured with the given
// word-delimiter set and multi-click timing windows (spec §4.E, supplement:
// these are configurable per config.def.h's worddelimiters/doubleclick).
func NewSelection(delimiters string, doubleClick, tripleClick time.Duration) *Selection {
	return &Selection{delimiters: delimiters, doubleClick: doubleClick, tripleClick: tripleClick}
}

// Begin anchors a new selection at (x,y) on the given screen index, at time
// now. The snap mode is derived from how recently the previous click
// landed (spec §4.E: double/triple click ⇒ WORD/LINE).
func (s *Selection) Begin(x, y, screen int, kind SelectKind, now time.Time) {
	if s.clickCount > 0 && !s.lastClick.IsZero() {
		elapsed := now.Sub(s.lastClick)
		switch {
		case elapsed <= s.tripleClick && s.clickCount >= 2:
			s.Snap = SnapLine
		case elapsed <= s.doubleClick:
			s.Snap = SnapWord
		default:
			s.Snap = SnapNone
			s.clickCount = 0
		}
	} else {
		s.Snap = SnapNone
	}
	s.clickCount++
	s.lastClick = now

	s.Mode = SelEmpty
	s.Kind = kind
	s.Screen = screen
	s.origBegin = Point{x, y}
	s.origEnd = Point{x, y}
	s.normBegin = Point{x, y}
	s.normEnd = Point{x, y}
}

// Extend updates the moving end of the selection on drag.
func (s *Selection) Extend(x, y int) {
	if s.Mode == SelIdle {
		return
	}
	s.Mode = SelReady
	s.origEnd = Point{x, y}
}

// Clear resets the selection to idle.
func (s *Selection) Clear() {
	s.Mode = SelIdle
	s.origBegin = Point{-1, -1}
	s.origEnd = Point{-1, -1}
}

// Active reports whether there is a non-idle selection anchored on the grid.
func (s *Selection) Active() bool {
	return s.Mode != SelIdle && s.origBegin.X != -1
}

func isDelimiter(r rune, delimiters string) bool {
	if r == ' ' {
		return true
	}
	return strings.ContainsRune(delimiters, r)
}

// Normalize computes the rectangular hull of the anchors and applies the
// snap mode, against the given screen's content (spec §4.E).
func (s *Selection) Normalize(scr *Screen) {
	if !s.Active() {
		return
	}

	bx, by, ex, ey := s.origBegin.X, s.origBegin.Y, s.origEnd.X, s.origEnd.Y
	if s.Kind == SelRegular && by != ey {
		if by < ey {
			// bx/ex already in temporal order
		} else {
			bx, ex = ex, bx
		}
	} else {
		if bx > ex {
			bx, ex = ex, bx
		}
	}
	if by > ey {
		by, ey = ey, by
	}

	s.normBegin = Point{bx, by}
	s.normEnd = Point{ex, ey}

	s.snapBegin(scr)
	s.snapEnd(scr)

	if s.Kind == SelRectangular {
		return
	}

	lineLen := scr.LineLength(s.normBegin.Y)
	if lineLen < s.normBegin.X {
		s.normBegin.X = lineLen
	}
	if scr.LineLength(s.normEnd.Y) <= s.normEnd.X {
		s.normEnd.X = scr.Cols() - 1
	}
}

func (s *Selection) snapBegin(scr *Screen) {
	switch s.Snap {
	case SnapWord:
		x, y := s.normBegin.X, s.normBegin.Y
		for {
			px, py := x-1, y
			if px < 0 {
				if py > 0 && scr.IsWrapped(py-1) {
					px, py = scr.Cols()-1, py-1
				} else {
					break
				}
			}
			c := scr.Cell(px, py)
			if c.IsWideDummy() {
				px--
				if px < 0 {
					break
				}
				c = scr.Cell(px, py)
			}
			if isDelimiter(c.Rune, s.delimiters) {
				break
			}
			x, y = px, py
		}
		s.normBegin = Point{x, y}
	case SnapLine:
		y := s.normBegin.Y
		for y > 0 && scr.IsWrapped(y-1) {
			y--
		}
		s.normBegin = Point{0, y}
	}
}

func (s *Selection) snapEnd(scr *Screen) {
	switch s.Snap {
	case SnapWord:
		x, y := s.normEnd.X, s.normEnd.Y
		for {
			nx, ny := x+1, y
			if nx >= scr.Cols() {
				if scr.IsWrapped(y) {
					nx, ny = 0, y+1
				} else {
					break
				}
			}
			if ny >= scr.Rows() {
				break
			}
			c := scr.Cell(nx, ny)
			if isDelimiter(c.Rune, s.delimiters) {
				break
			}
			x, y = nx, ny
			if scr.Cell(x, y).IsWide() {
				x++
			}
		}
		s.normEnd = Point{x, y}
	case SnapLine:
		y := s.normEnd.Y
		for y < scr.Rows()-1 && scr.IsWrapped(y) {
			y++
		}
		s.normEnd = Point{scr.Cols() - 1, y}
	}
}

// IsSelected is an O(1) predicate for whether (x,y) lies inside the
// normalized selection (spec §4.E, §8 invariant 5).
func (s *Selection) IsSelected(x, y int) bool {
	if !s.Active() {
		return false
	}
	if y < s.normBegin.Y || y > s.normEnd.Y {
		return false
	}
	if s.Kind == SelRectangular {
		return x >= s.normBegin.X && x <= s.normEnd.X
	}
	if y == s.normBegin.Y && x < s.normBegin.X {
		return false
	}
	if y == s.normEnd.Y && x > s.normEnd.X {
		return false
	}
	return true
}

// ExtractText renders the selected cells to UTF-8 text, one line per
// selected row, trimming trailing spaces and skipping WDUMMY cells (spec
// §4.E extract_text, grounded on st.c's getsel()).
func (s *Selection) ExtractText(scr *Screen) string {
	if !s.Active() {
		return ""
	}
	var b strings.Builder
	for y := s.normBegin.Y; y <= s.normEnd.Y; y++ {
		lineLen := scr.LineLength(y)
		if lineLen == 0 {
			b.WriteByte('\n')
			continue
		}
		var startX, endX int
		if s.Kind == SelRectangular {
			startX, endX = s.normBegin.X, s.normEnd.X
		} else {
			if s.normBegin.Y == y {
				startX = s.normBegin.X
			}
			if s.normEnd.Y == y {
				endX = s.normEnd.X
			} else {
				endX = scr.Cols() - 1
			}
		}
		if endX > lineLen-1 {
			endX = lineLen - 1
		}
		for endX >= startX && scr.Cell(endX, y).Rune == ' ' {
			endX--
		}
		for x := startX; x <= endX; x++ {
			c := scr.Cell(x, y)
			if c.IsWideDummy() {
				continue
			}
			b.WriteRune(c.Rune)
		}
		wrapped := scr.IsWrapped(y)
		if (y < s.normEnd.Y || endX >= lineLen-1) && !wrapped {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// onMutate clears the selection if (x,y) falls inside it (spec §3
// lifecycle: "cell mutation inside its rectangle").
func (s *Selection) onMutate(x, y int) {
	if s.Active() && s.IsSelected(x, y) {
		s.Clear()
	}
}

// onMutateRange clears the selection if any cell in [x0,x1] on row y falls
// inside it.
func (s *Selection) onMutateRange(x0, x1, y int) {
	if !s.Active() {
		return
	}
	for x := x0; x <= x1; x++ {
		if s.IsSelected(x, y) {
			s.Clear()
			return
		}
	}
}

// onClearRegion clears the selection if the cleared rectangle intersects it.
func (s *Selection) onClearRegion(x1, y1, x2, y2 int) {
	if !s.Active() {
		return
	}
	if s.normEnd.Y < y1 || s.normBegin.Y > y2 {
		return
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if s.IsSelected(x, y) {
				s.Clear()
				return
			}
		}
	}
}

// onScroll shifts the anchors when a scroll carries them within [top,bot]
// (spec §4.E on_scroll). For REGULAR selections an anchor that scrolls out
// of the region clears the whole selection; RECTANGULAR selections are
// clamped to the region edge instead (spec §3 Lifecycles).
func (s *Selection) onScroll(top, bot, delta, cols int) {
	if !s.Active() {
		return
	}
	beginIn := s.origBegin.Y >= top && s.origBegin.Y <= bot
	endIn := s.origEnd.Y >= top && s.origEnd.Y <= bot
	if !beginIn && !endIn {
		return
	}

	newBeginY := s.origBegin.Y + delta
	newEndY := s.origEnd.Y + delta

	if s.Kind == SelRegular {
		if newBeginY < top || newBeginY > bot || newEndY < top || newEndY > bot {
			s.Clear()
			return
		}
		s.origBegin.Y = newBeginY
		s.origEnd.Y = newEndY
		return
	}

	// Rectangular: clamp into range instead of clearing.
	if newBeginY < top {
		newBeginY = top
		s.origBegin.X = 0
	}
	if newBeginY > bot {
		newBeginY = bot
	}
	if newEndY < top {
		newEndY = top
	}
	if newEndY > bot {
		newEndY = bot
		s.origEnd.X = cols
	}
	s.origBegin.Y = newBeginY
	s.origEnd.Y = newEndY
}
