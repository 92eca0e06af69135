package mazegen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Algorithm selects the carving strategy.
type Algorithm string

const (
	// AlgorithmPrim grows the maze from a random frontier, Prim-style.
	AlgorithmPrim Algorithm = "prim"
	// AlgorithmDFS carves with randomized depth-first backtracking.
	AlgorithmDFS Algorithm = "dfs"
)

// ParseAlgorithm maps a configuration string to an Algorithm. The empty
// string selects the frontier-growth default.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(AlgorithmPrim):
		return AlgorithmPrim, nil
	case string(AlgorithmDFS):
		return AlgorithmDFS, nil
	}
	return "", fmt.Errorf("unknown algorithm %q", s)
}

// DefaultLoopDivisor is the divisor of the cell count that bounds how many
// extra walls the loop breaker may open on an imperfect run.
const DefaultLoopDivisor = 10

// StepResult reports the outcome of one sequencer step.
type StepResult int

const (
	// Progressed means one atomic mutation happened (a wall opened, or a
	// backtracking push/pop).
	Progressed StepResult = iota
	// Done means the sequence is complete; further steps are no-ops.
	Done
)

// Config holds the construction parameters of a generation run.
type Config struct {
	Width  int
	Height int
	Entry  CellPosition
	Exit   CellPosition

	// Perfect selects a pure spanning structure; when false the loop
	// breaker runs after carving.
	Perfect bool

	Algorithm Algorithm

	// Seed makes the run reproducible. Nil seeds from the clock.
	Seed *int64

	// LoopDivisor overrides DefaultLoopDivisor; zero keeps the default.
	LoopDivisor int
}

type phase int

const (
	phaseCarve phase = iota
	phaseLoops
	phaseDone
)

// Generator owns one maze construction: the grid, the seeded random
// source, the pattern mask, and the step state of the chosen algorithm.
// It is the single mutator of its maze until the sequence is Done.
type Generator struct {
	maze        *Maze
	rng         *rand.Rand
	algorithm   Algorithm
	perfect     bool
	loopDivisor int
	pattern     map[CellPosition]struct{}
	patternDiag error

	phase phase

	// frontier growth
	visited map[CellPosition]struct{}
	options []CellPosition

	// backtracking
	stack []CellPosition

	// loop breaking
	pairs    [][2]CellPosition
	pairIdx  int
	broken   int
	loopsMax int
}

// NewGenerator validates the config and prepares a run. The grid starts
// fully walled; nothing is carved until Step or Generate is called.
// Abandoning the sequence early leaves a structurally valid but possibly
// disconnected grid.
//
// A pattern shape that splits the grid can leave the exit unreachable from
// the entry; generation does not detect or repair that, the solver simply
// finds no path.
func NewGenerator(cfg Config) (*Generator, error) {
	algo, err := ParseAlgorithm(string(cfg.Algorithm))
	if err != nil {
		return nil, err
	}

	maze, err := New(cfg.Width, cfg.Height, cfg.Entry, cfg.Exit)
	if err != nil {
		return nil, err
	}

	divisor := cfg.LoopDivisor
	if divisor == 0 {
		divisor = DefaultLoopDivisor
	}
	if divisor < 0 {
		return nil, fmt.Errorf("loop divisor must be positive, got %d", divisor)
	}

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	g := &Generator{
		maze:        maze,
		rng:         rand.New(rand.NewSource(seed)),
		algorithm:   algo,
		perfect:     cfg.Perfect,
		loopDivisor: divisor,
		visited:     map[CellPosition]struct{}{cfg.Entry: {}},
		stack:       []CellPosition{cfg.Entry},
	}

	g.pattern, g.patternDiag = PatternMask(cfg.Width, cfg.Height, cfg.Entry, cfg.Exit)
	for p := range g.pattern {
		maze.CellAt(p).IsPattern = true
	}

	g.addOptions(cfg.Entry)
	return g, nil
}

// Maze returns the grid owned by this run. Shared by reference with the
// solver and renderers; no component keeps a divergent copy.
func (g *Generator) Maze() *Maze { return g.maze }

// PatternDiagnostic returns the non-fatal reason the decorative pattern
// was omitted, or nil when the pattern was placed.
func (g *Generator) PatternDiagnostic() error { return g.patternDiag }

// Finished reports whether the step sequence has completed.
func (g *Generator) Finished() bool { return g.phase == phaseDone }

// Generate runs the whole step sequence eagerly and returns the finished
// maze.
func (g *Generator) Generate() *Maze {
	for g.Step() != Done {
	}
	return g.maze
}

// Step advances the sequence by exactly one atomic mutation: one wall
// opened during carving or loop breaking, or one push/pop of the
// backtracking stack. Callers animating the build redraw between calls.
func (g *Generator) Step() StepResult {
	for {
		switch g.phase {
		case phaseCarve:
			if g.stepCarve() {
				return Progressed
			}
			if g.perfect {
				g.phase = phaseDone
				continue
			}
			g.initLoops()
			g.phase = phaseLoops
		case phaseLoops:
			if g.stepLoop() {
				return Progressed
			}
			g.phase = phaseDone
		case phaseDone:
			return Done
		}
	}
}

func (g *Generator) stepCarve() bool {
	if g.algorithm == AlgorithmDFS {
		return g.stepBacktracking()
	}
	return g.stepFrontier()
}

// stepFrontier opens one wall by attaching a random frontier candidate to
// a random already-visited neighbor. Stale candidates (already visited, or
// left without visited neighbors) are discarded without counting as steps.
func (g *Generator) stepFrontier() bool {
	for len(g.options) > 0 {
		i := g.rng.Intn(len(g.options))
		current := g.options[i]
		g.options = append(g.options[:i], g.options[i+1:]...)

		if _, ok := g.visited[current]; ok {
			continue
		}

		candidates := g.visitedNeighbors(current)
		if len(candidates) == 0 {
			continue
		}

		neighbor := candidates[g.rng.Intn(len(candidates))]
		g.maze.OpenWall(current, neighbor)
		g.visited[current] = struct{}{}
		g.addOptions(current)
		return true
	}
	return false
}

// stepBacktracking advances the depth-first carve by one push (opening a
// wall to a random unvisited neighbor) or one pop when the top of the
// stack is exhausted.
func (g *Generator) stepBacktracking() bool {
	if len(g.stack) == 0 {
		return false
	}
	top := g.stack[len(g.stack)-1]

	var candidates []CellPosition
	for _, d := range cardinal {
		n := CellPosition{Row: top.Row + d.Row, Col: top.Col + d.Col}
		if !g.maze.InBounds(n) {
			continue
		}
		if _, ok := g.visited[n]; ok {
			continue
		}
		if _, ok := g.pattern[n]; ok {
			continue
		}
		candidates = append(candidates, n)
	}

	if len(candidates) == 0 {
		g.stack = g.stack[:len(g.stack)-1]
		return true
	}

	next := candidates[g.rng.Intn(len(candidates))]
	g.maze.OpenWall(top, next)
	g.visited[next] = struct{}{}
	g.stack = append(g.stack, next)
	return true
}

func (g *Generator) addOptions(p CellPosition) {
	for _, n := range g.maze.Neighbors(p) {
		if _, ok := g.visited[n]; ok {
			continue
		}
		if _, ok := g.pattern[n]; ok {
			continue
		}
		g.options = append(g.options, n)
	}
}

func (g *Generator) visitedNeighbors(p CellPosition) []CellPosition {
	var result []CellPosition
	for _, n := range g.maze.Neighbors(p) {
		if _, ok := g.pattern[n]; ok {
			continue
		}
		if _, ok := g.visited[n]; ok {
			result = append(result, n)
		}
	}
	return result
}

// initLoops enumerates every horizontal and vertical adjacent pair in
// row-major order, shuffles them with the run's random source, and fixes
// the wall budget.
func (g *Generator) initLoops() {
	for r := 0; r < g.maze.Height; r++ {
		for c := 0; c < g.maze.Width; c++ {
			if r < g.maze.Height-1 {
				g.pairs = append(g.pairs, [2]CellPosition{{Row: r, Col: c}, {Row: r + 1, Col: c}})
			}
			if c < g.maze.Width-1 {
				g.pairs = append(g.pairs, [2]CellPosition{{Row: r, Col: c}, {Row: r, Col: c + 1}})
			}
		}
	}
	g.rng.Shuffle(len(g.pairs), func(i, j int) {
		g.pairs[i], g.pairs[j] = g.pairs[j], g.pairs[i]
	})
	g.loopsMax = g.maze.Width * g.maze.Height / g.loopDivisor
}

// stepLoop opens one additional wall, skipping pattern cells, open walls,
// and candidates rejected by the 2x2 guard. Returns false once the budget
// or the candidate list is exhausted.
func (g *Generator) stepLoop() bool {
	for g.pairIdx < len(g.pairs) && g.broken < g.loopsMax {
		a, b := g.pairs[g.pairIdx][0], g.pairs[g.pairIdx][1]
		g.pairIdx++

		if _, ok := g.pattern[a]; ok {
			continue
		}
		if _, ok := g.pattern[b]; ok {
			continue
		}
		if g.maze.WallOpen(a, b) {
			continue
		}
		if !g.breakable(a, b) {
			continue
		}

		g.maze.OpenWall(a, b)
		g.broken++
		return true
	}
	return false
}

// window2x2Blocked counts the open internal walls of the 2x2 window whose
// top-left cell is (row, col); three or more means opening another wall in
// that window would melt it into a room.
func (g *Generator) window2x2Blocked(row, col int) bool {
	leftTop := g.maze.CellAt(CellPosition{Row: row, Col: col})
	rightTop := g.maze.CellAt(CellPosition{Row: row, Col: col + 1})
	leftBot := g.maze.CellAt(CellPosition{Row: row + 1, Col: col})

	open := 0
	if !leftTop.HasEastWall() {
		open++
	}
	if !leftTop.HasSouthWall() {
		open++
	}
	if !rightTop.HasSouthWall() {
		open++
	}
	if !leftBot.HasEastWall() {
		open++
	}
	return open >= 3
}

// breakable applies the 2x2 guard to the up-to-two windows bordering the
// candidate wall. The guard is local: it inspects current wall state only.
func (g *Generator) breakable(a, b CellPosition) bool {
	if a.Row < b.Row { // horizontal wall between vertical neighbors
		if a.Col > 0 && g.window2x2Blocked(a.Row, a.Col-1) {
			return false
		}
		if a.Col < g.maze.Width-1 && g.window2x2Blocked(a.Row, a.Col) {
			return false
		}
	} else { // vertical wall between horizontal neighbors
		if a.Row > 0 && g.window2x2Blocked(a.Row-1, a.Col) {
			return false
		}
		if a.Row < g.maze.Height-1 && g.window2x2Blocked(a.Row, a.Col) {
			return false
		}
	}
	return true
}
