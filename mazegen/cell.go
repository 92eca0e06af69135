package mazegen

// Wall bits occupy the low nibble of a cell's value. A set bit means the
// wall is closed. The nibble is also the cell's hex-serialized digit.
const (
	WallNorth uint8 = 1 << 0
	WallEast  uint8 = 1 << 1
	WallSouth uint8 = 1 << 2
	WallWest  uint8 = 1 << 3

	wallMask uint8 = WallNorth | WallEast | WallSouth | WallWest
)

// Marker bits tag cells that belong to a solved route. They live above the
// wall nibble so applying or clearing a route never disturbs wall state.
const (
	PathBitPrimary   uint8 = 1 << 5
	PathBitSecondary uint8 = 1 << 6

	pathMask uint8 = PathBitPrimary | PathBitSecondary
)

// Cell is a single cell in the maze grid: the wall/marker value plus the
// status flags set at construction or pattern time.
type Cell struct {
	value uint8

	IsEntry   bool
	IsExit    bool
	IsPattern bool
}

func newCell() Cell {
	return Cell{value: wallMask}
}

// HasNorthWall returns true if the north wall of the cell is closed.
func (c *Cell) HasNorthWall() bool { return c.value&WallNorth != 0 }

// HasEastWall returns true if the east wall of the cell is closed.
func (c *Cell) HasEastWall() bool { return c.value&WallEast != 0 }

// HasSouthWall returns true if the south wall of the cell is closed.
func (c *Cell) HasSouthWall() bool { return c.value&WallSouth != 0 }

// HasWestWall returns true if the west wall of the cell is closed.
func (c *Cell) HasWestWall() bool { return c.value&WallWest != 0 }

// WallMask returns the 4-bit wall state of the cell.
func (c *Cell) WallMask() uint8 { return c.value & wallMask }

// HasPath reports whether the given marker bit is set on the cell.
func (c *Cell) HasPath(bit uint8) bool { return c.value&bit&pathMask != 0 }

func (c *Cell) removeWall(bit uint8) { c.value &^= bit & wallMask }

func (c *Cell) setPath(bit uint8) { c.value |= bit & pathMask }

func (c *Cell) clearPaths() { c.value &^= pathMask }

// CellPosition addresses a cell in the grid. Row grows southward and Col
// grows eastward; the textual "x,y" form maps to Col=x, Row=y.
type CellPosition struct {
	Row int
	Col int
}

// cardinal offsets in the canonical scan order: north, east, south, west.
var cardinal = [4]CellPosition{
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
}
