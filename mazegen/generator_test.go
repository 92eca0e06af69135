package mazegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seedCfg(width, height int, perfect bool, algo Algorithm, seed int64) Config {
	return Config{
		Width:     width,
		Height:    height,
		Entry:     CellPosition{Row: 0, Col: 0},
		Exit:      CellPosition{Row: height - 1, Col: width - 1},
		Perfect:   perfect,
		Algorithm: algo,
		Seed:      &seed,
	}
}

// openEdgeCount sums the open walls of the grid; each shared wall is
// counted once.
func openEdgeCount(m *Maze) int {
	open := 0
	for r := 0; r < m.Height; r++ {
		for c := 0; c < m.Width; c++ {
			cell := m.CellAt(CellPosition{Row: r, Col: c})
			if !cell.HasEastWall() && c < m.Width-1 {
				open++
			}
			if !cell.HasSouthWall() && r < m.Height-1 {
				open++
			}
		}
	}
	return open
}

// reachableFrom walks the open-wall graph with a plain flood fill.
func reachableFrom(m *Maze, start CellPosition) map[CellPosition]struct{} {
	seen := map[CellPosition]struct{}{start: {}}
	frontier := []CellPosition{start}
	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]
		for _, n := range m.Neighbors(p) {
			if !m.WallOpen(p, n) {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			frontier = append(frontier, n)
		}
	}
	return seen
}

func TestGeneratorValidation(t *testing.T) {
	t.Run("unknown algorithm", func(t *testing.T) {
		cfg := seedCfg(5, 5, true, Algorithm("kruskal"), 1)
		_, err := NewGenerator(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown algorithm")
	})

	t.Run("empty algorithm defaults to prim", func(t *testing.T) {
		cfg := seedCfg(5, 5, true, "", 1)
		gen, err := NewGenerator(cfg)
		assert.NoError(t, err)
		assert.Equal(t, AlgorithmPrim, gen.algorithm)
	})

	t.Run("invalid grid rejected before any carving", func(t *testing.T) {
		cfg := seedCfg(5, 5, true, AlgorithmPrim, 1)
		cfg.Exit = cfg.Entry
		gen, err := NewGenerator(cfg)
		assert.ErrorIs(t, err, ErrSameEntryExit)
		assert.Nil(t, gen)
	})

	t.Run("negative loop divisor rejected", func(t *testing.T) {
		cfg := seedCfg(5, 5, false, AlgorithmPrim, 1)
		cfg.LoopDivisor = -4
		_, err := NewGenerator(cfg)
		assert.Error(t, err)
	})
}

func TestSpanningProperty(t *testing.T) {
	for _, algo := range []Algorithm{AlgorithmPrim, AlgorithmDFS} {
		t.Run(string(algo), func(t *testing.T) {
			gen, err := NewGenerator(seedCfg(16, 12, true, algo, 42))
			assert.NoError(t, err)
			m := gen.Generate()

			reachable := reachableFrom(m, m.Entry)
			pattern := len(gen.pattern)

			// a spanning tree over the reachable region: edges = nodes - 1
			assert.Equal(t, len(reachable)-1, openEdgeCount(m))
			// everything outside the pattern is connected to the entry
			assert.Equal(t, m.Width*m.Height-pattern, len(reachable))

			_, exitReachable := reachable[m.Exit]
			assert.True(t, exitReachable)
		})
	}
}

func TestDeterminism(t *testing.T) {
	t.Run("same seed reproduces the layout byte for byte", func(t *testing.T) {
		for _, algo := range []Algorithm{AlgorithmPrim, AlgorithmDFS} {
			a, err := NewGenerator(seedCfg(15, 15, false, algo, 99))
			assert.NoError(t, err)
			b, err := NewGenerator(seedCfg(15, 15, false, algo, 99))
			assert.NoError(t, err)
			assert.Equal(t, a.Generate().String(), b.Generate().String())
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		a, err := NewGenerator(seedCfg(15, 15, true, AlgorithmPrim, 1))
		assert.NoError(t, err)
		b, err := NewGenerator(seedCfg(15, 15, true, AlgorithmPrim, 2))
		assert.NoError(t, err)
		assert.NotEqual(t, a.Generate().String(), b.Generate().String())
	})

	t.Run("5x5 prim seed 1 eager vs single-step", func(t *testing.T) {
		eager, err := NewGenerator(seedCfg(5, 5, true, AlgorithmPrim, 1))
		assert.NoError(t, err)
		eagerOut := eager.Generate().String()

		stepped, err := NewGenerator(seedCfg(5, 5, true, AlgorithmPrim, 1))
		assert.NoError(t, err)
		steps := 0
		for stepped.Step() == Progressed {
			steps++
		}
		assert.True(t, stepped.Finished())
		assert.Equal(t, eagerOut, stepped.Maze().String())
		// one wall opened per step, spanning all 25 cells from the entry
		assert.Equal(t, 24, steps)
	})
}

func TestStepSequencer(t *testing.T) {
	t.Run("step after done is a no-op", func(t *testing.T) {
		gen, err := NewGenerator(seedCfg(4, 4, true, AlgorithmPrim, 5))
		assert.NoError(t, err)
		gen.Generate()
		before := gen.Maze().String()
		assert.Equal(t, Done, gen.Step())
		assert.Equal(t, before, gen.Maze().String())
	})

	t.Run("abandoned run leaves a valid grid", func(t *testing.T) {
		gen, err := NewGenerator(seedCfg(8, 8, true, AlgorithmDFS, 5))
		assert.NoError(t, err)
		for i := 0; i < 10; i++ {
			assert.Equal(t, Progressed, gen.Step())
		}

		// partial grid still parses and shared walls stay consistent
		m := gen.Maze()
		_, err = ParseHex(m.String(), m.Entry, m.Exit)
		assert.NoError(t, err)
		for r := 0; r < m.Height; r++ {
			for c := 0; c < m.Width-1; c++ {
				a := CellPosition{Row: r, Col: c}
				b := CellPosition{Row: r, Col: c + 1}
				assert.Equal(t, m.CellAt(a).HasEastWall(), m.CellAt(b).HasWestWall())
			}
		}
	})

	t.Run("dfs counts pushes and pops", func(t *testing.T) {
		gen, err := NewGenerator(seedCfg(3, 3, true, AlgorithmDFS, 5))
		assert.NoError(t, err)
		steps := 0
		for gen.Step() == Progressed {
			steps++
		}
		// 8 pushes to visit the remaining cells, 9 pops to drain the stack
		assert.Equal(t, 17, steps)
	})
}

func TestLoopBreaker(t *testing.T) {
	t.Run("imperfect mazes gain extra edges", func(t *testing.T) {
		perfect, err := NewGenerator(seedCfg(20, 20, true, AlgorithmPrim, 7))
		assert.NoError(t, err)
		loopy, err := NewGenerator(seedCfg(20, 20, false, AlgorithmPrim, 7))
		assert.NoError(t, err)

		perfectEdges := openEdgeCount(perfect.Generate())
		loopyEdges := openEdgeCount(loopy.Generate())
		assert.Greater(t, loopyEdges, perfectEdges)
		// budget: at most cells/divisor extra walls
		assert.LessOrEqual(t, loopyEdges-perfectEdges, 20*20/DefaultLoopDivisor)
	})

	t.Run("2x2 guard holds after loop breaking", func(t *testing.T) {
		for seed := int64(0); seed < 8; seed++ {
			gen, err := NewGenerator(seedCfg(18, 14, false, AlgorithmDFS, seed))
			assert.NoError(t, err)
			m := gen.Generate()

			for r := 0; r < m.Height-1; r++ {
				for c := 0; c < m.Width-1; c++ {
					lt := m.CellAt(CellPosition{Row: r, Col: c})
					rt := m.CellAt(CellPosition{Row: r, Col: c + 1})
					lb := m.CellAt(CellPosition{Row: r + 1, Col: c})
					open := 0
					if !lt.HasEastWall() {
						open++
					}
					if !lt.HasSouthWall() {
						open++
					}
					if !rt.HasSouthWall() {
						open++
					}
					if !lb.HasEastWall() {
						open++
					}
					assert.Less(t, open, 4, "seed %d: fully open 2x2 block at row %d col %d", seed, r, c)
				}
			}
		}
	})

	t.Run("custom divisor shrinks the budget", func(t *testing.T) {
		cfg := seedCfg(20, 20, false, AlgorithmPrim, 7)
		cfg.LoopDivisor = 200
		gen, err := NewGenerator(cfg)
		assert.NoError(t, err)
		m := gen.Generate()

		perfect, err := NewGenerator(seedCfg(20, 20, true, AlgorithmPrim, 7))
		assert.NoError(t, err)
		assert.LessOrEqual(t, openEdgeCount(m)-openEdgeCount(perfect.Generate()), 2)
	})
}
