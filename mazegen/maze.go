/*
Package mazegen implements the maze engine: the wall-mask grid model, the
randomized generation algorithms (frontier growth and randomized
backtracking), the loop breaker for imperfect mazes, the resumable step
sequencer that drives both, and the breadth-first multi-path solver.

A maze is a dense Height x Width grid of cells. Every cell starts fully
walled; generation carves a spanning structure over the non-pattern cells
reachable from the entry, and an imperfect run then opens a bounded number
of extra walls under the 2x2 guard. The grid serializes to one hex digit
per cell (the wall nibble), rows separated by newlines.
*/
package mazegen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrBadDimensions is returned when width or height is not positive.
	ErrBadDimensions = errors.New("width and height must be positive")

	// ErrSameEntryExit is returned when entry and exit coincide.
	ErrSameEntryExit = errors.New("entry and exit must be different")
)

// Maze is a rectangular grid of cells with a fixed entry and exit. It is
// created fresh per generation run, mutated in place by the generator, and
// read-only (marker bits aside) afterwards.
type Maze struct {
	Width  int
	Height int
	Entry  CellPosition
	Exit   CellPosition

	grid [][]Cell
}

// New creates a fully-walled maze and validates the construction
// parameters. No maze is produced on a validation failure.
func New(width, height int, entry, exit CellPosition) (*Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadDimensions
	}

	m := &Maze{Width: width, Height: height, Entry: entry, Exit: exit}
	if !m.InBounds(entry) {
		return nil, fmt.Errorf("entry %s is out of maze bounds", FormatPosition(entry))
	}
	if !m.InBounds(exit) {
		return nil, fmt.Errorf("exit %s is out of maze bounds", FormatPosition(exit))
	}
	if entry == exit {
		return nil, ErrSameEntryExit
	}

	m.grid = make([][]Cell, height)
	for r := range m.grid {
		m.grid[r] = make([]Cell, width)
		for c := range m.grid[r] {
			m.grid[r][c] = newCell()
		}
	}
	m.CellAt(entry).IsEntry = true
	m.CellAt(exit).IsExit = true
	return m, nil
}

// InBounds reports whether the position lies inside the grid.
func (m *Maze) InBounds(p CellPosition) bool {
	return p.Row >= 0 && p.Row < m.Height && p.Col >= 0 && p.Col < m.Width
}

// CellAt returns the cell at the given position. The position must be in
// bounds.
func (m *Maze) CellAt(p CellPosition) *Cell {
	return &m.grid[p.Row][p.Col]
}

// Neighbors returns the in-bounds cardinal neighbors of a position in
// north, east, south, west order.
func (m *Maze) Neighbors(p CellPosition) []CellPosition {
	result := make([]CellPosition, 0, 4)
	for _, d := range cardinal {
		n := CellPosition{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if m.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

// OpenWall clears the shared wall between two adjacent cells on both sides.
// Positions that are not Manhattan-adjacent are silently ignored.
func (m *Maze) OpenWall(a, b CellPosition) {
	if !m.InBounds(a) || !m.InBounds(b) {
		return
	}
	dr, dc := b.Row-a.Row, b.Col-a.Col
	if abs(dr)+abs(dc) != 1 {
		return
	}

	ca, cb := m.CellAt(a), m.CellAt(b)
	switch {
	case dc == 1:
		ca.removeWall(WallEast)
		cb.removeWall(WallWest)
	case dc == -1:
		ca.removeWall(WallWest)
		cb.removeWall(WallEast)
	case dr == 1:
		ca.removeWall(WallSouth)
		cb.removeWall(WallNorth)
	case dr == -1:
		ca.removeWall(WallNorth)
		cb.removeWall(WallSouth)
	}
}

// WallOpen reports whether the wall between two adjacent cells is open.
func (m *Maze) WallOpen(a, b CellPosition) bool {
	if !m.InBounds(a) || !m.InBounds(b) {
		return false
	}
	ca := m.CellAt(a)
	switch {
	case b.Col-a.Col == 1:
		return !ca.HasEastWall()
	case b.Col-a.Col == -1:
		return !ca.HasWestWall()
	case b.Row-a.Row == 1:
		return !ca.HasSouthWall()
	case b.Row-a.Row == -1:
		return !ca.HasNorthWall()
	}
	return false
}

// ClearAllPaths clears both marker bits on every cell without touching
// wall state.
func (m *Maze) ClearAllPaths() {
	for r := range m.grid {
		for c := range m.grid[r] {
			m.grid[r][c].clearPaths()
		}
	}
}

// String serializes the maze to one uppercase hex digit per cell (the wall
// nibble; bit0=N, bit1=E, bit2=S, bit3=W), rows separated by newlines.
func (m *Maze) String() string {
	var b strings.Builder
	for r := 0; r < m.Height; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < m.Width; c++ {
			fmt.Fprintf(&b, "%X", m.grid[r][c].WallMask())
		}
	}
	return b.String()
}

// ParseHex rebuilds a maze from its hex serialization. Entry and exit are
// not part of the format and must be supplied by the caller.
func ParseHex(s string, entry, exit CellPosition) (*Maze, error) {
	rows := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(rows) == 0 || rows[0] == "" {
		return nil, errors.New("empty maze data")
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), width)
		}
	}

	m, err := New(width, len(rows), entry, exit)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, digit := range []byte(row) {
			v, err := hexNibble(digit)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			m.grid[r][c].value = v
		}
	}
	return m, nil
}

func hexNibble(d byte) (uint8, error) {
	switch {
	case d >= '0' && d <= '9':
		return d - '0', nil
	case d >= 'A' && d <= 'F':
		return d - 'A' + 10, nil
	case d >= 'a' && d <= 'f':
		return d - 'a' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit %q", d)
}

// PrettyString renders the maze as ASCII box art. Entry and exit show as E
// and X, pattern cells as ###, solved routes as * and o.
func (m *Maze) PrettyString() string {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("---+", m.Width) + "\n")

	for r := 0; r < m.Height; r++ {
		cellRow := "|"
		wallRow := "+"
		for c := 0; c < m.Width; c++ {
			cell := &m.grid[r][c]

			switch {
			case cell.IsEntry:
				cellRow += " E "
			case cell.IsExit:
				cellRow += " X "
			case cell.IsPattern:
				cellRow += "###"
			case cell.HasPath(PathBitPrimary):
				cellRow += " * "
			case cell.HasPath(PathBitSecondary):
				cellRow += " o "
			default:
				cellRow += "   "
			}

			if cell.HasEastWall() {
				cellRow += "|"
			} else {
				cellRow += " "
			}
			if cell.HasSouthWall() {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		b.WriteString(cellRow + "\n")
		b.WriteString(wallRow + "\n")
	}
	return b.String()
}

// FormatPosition renders a position in the textual "x,y" form used by
// config files and the result file.
func FormatPosition(p CellPosition) string {
	return fmt.Sprintf("%d,%d", p.Col, p.Row)
}

// ParsePosition parses the textual "x,y" form into a position.
func ParsePosition(s string) (CellPosition, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return CellPosition{}, fmt.Errorf("%q must be in format x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return CellPosition{}, fmt.Errorf("%q must be in format x,y", s)
	}
	return CellPosition{Row: y, Col: x}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
