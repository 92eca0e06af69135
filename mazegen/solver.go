package mazegen

import "fmt"

// Solver enumerates entry-to-exit routes over the open walls of a
// finished maze with breadth-first search. It never mutates wall state;
// only the marker operations touch the grid.
type Solver struct {
	maze *Maze
}

// Direction tables share one index: letter, grid offset, and the wall bit
// that must be open on the current cell to move that way.
var (
	dirLetters = [4]byte{'N', 'S', 'E', 'W'}
	dirOffsets = [4]CellPosition{
		{Row: -1, Col: 0},
		{Row: 1, Col: 0},
		{Row: 0, Col: 1},
		{Row: 0, Col: -1},
	}
	dirWalls = [4]uint8{WallNorth, WallSouth, WallEast, WallWest}
)

// NewSolver wraps a maze for solving.
func NewSolver(m *Maze) *Solver {
	return &Solver{maze: m}
}

type searchNode struct {
	pos     CellPosition
	path    string
	visited map[CellPosition]struct{}
}

// Solve returns up to count distinct entry-to-exit paths as NSEW direction
// strings, in the order they complete in BFS expansion. The first path is
// a shortest route; later paths are only guaranteed distinct. An empty
// slice (not an error) means the exit is unreachable.
//
// Each queued node carries its own visited set so a cell may be re-entered
// along a different route, which is what lets imperfect mazes yield more
// than one path.
func (s *Solver) Solve(count int) []string {
	var paths []string
	if count <= 0 {
		return paths
	}

	queue := []searchNode{{
		pos:     s.maze.Entry,
		visited: map[CellPosition]struct{}{s.maze.Entry: {}},
	}}

	for len(queue) > 0 && len(paths) < count {
		node := queue[0]
		queue = queue[1:]

		if node.pos == s.maze.Exit {
			paths = append(paths, node.path)
			continue
		}

		cell := s.maze.CellAt(node.pos)
		for i := 0; i < 4; i++ {
			if cell.WallMask()&dirWalls[i] != 0 {
				continue
			}
			next := CellPosition{Row: node.pos.Row + dirOffsets[i].Row, Col: node.pos.Col + dirOffsets[i].Col}
			if !s.maze.InBounds(next) {
				continue
			}
			if _, seen := node.visited[next]; seen {
				continue
			}

			visited := make(map[CellPosition]struct{}, len(node.visited)+1)
			for p := range node.visited {
				visited[p] = struct{}{}
			}
			visited[next] = struct{}{}

			queue = append(queue, searchNode{
				pos:     next,
				path:    node.path + string(dirLetters[i]),
				visited: visited,
			})
		}
	}
	return paths
}

// ApplyPathToMaze walks the direction string from the entry and sets the
// given marker bit on every cell along the way, the entry included.
func (s *Solver) ApplyPathToMaze(path string, bit uint8) error {
	pos := s.maze.Entry
	s.maze.CellAt(pos).setPath(bit)

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case 'N':
			pos.Row--
		case 'S':
			pos.Row++
		case 'E':
			pos.Col++
		case 'W':
			pos.Col--
		default:
			return fmt.Errorf("invalid direction %q at index %d", path[i], i)
		}
		if !s.maze.InBounds(pos) {
			return fmt.Errorf("path leaves the maze at index %d", i)
		}
		s.maze.CellAt(pos).setPath(bit)
	}
	return nil
}
