package mazegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMazeValidation(t *testing.T) {
	entry := CellPosition{Row: 0, Col: 0}
	exit := CellPosition{Row: 4, Col: 4}

	t.Run("valid construction", func(t *testing.T) {
		m, err := New(5, 5, entry, exit)
		assert.NoError(t, err)
		assert.True(t, m.CellAt(entry).IsEntry)
		assert.True(t, m.CellAt(exit).IsExit)

		// every cell starts fully walled with no flags
		for r := 0; r < m.Height; r++ {
			for c := 0; c < m.Width; c++ {
				cell := m.CellAt(CellPosition{Row: r, Col: c})
				assert.Equal(t, wallMask, cell.WallMask())
				assert.False(t, cell.IsPattern)
			}
		}
	})

	t.Run("non-positive dimensions", func(t *testing.T) {
		_, err := New(0, 5, entry, exit)
		assert.ErrorIs(t, err, ErrBadDimensions)
		_, err = New(5, -1, entry, exit)
		assert.ErrorIs(t, err, ErrBadDimensions)
	})

	t.Run("entry out of bounds", func(t *testing.T) {
		_, err := New(5, 5, CellPosition{Row: 5, Col: 0}, exit)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "entry")
	})

	t.Run("exit out of bounds", func(t *testing.T) {
		_, err := New(5, 5, entry, CellPosition{Row: 2, Col: -1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exit")
	})

	t.Run("identical entry and exit rejected", func(t *testing.T) {
		m, err := New(5, 5, entry, entry)
		assert.ErrorIs(t, err, ErrSameEntryExit)
		assert.Nil(t, m)
	})
}

func TestOpenWall(t *testing.T) {
	m, err := New(3, 3, CellPosition{Row: 0, Col: 0}, CellPosition{Row: 2, Col: 2})
	assert.NoError(t, err)

	t.Run("symmetric clear on both sides", func(t *testing.T) {
		a := CellPosition{Row: 1, Col: 1}
		b := CellPosition{Row: 1, Col: 2}
		m.OpenWall(a, b)
		assert.False(t, m.CellAt(a).HasEastWall())
		assert.False(t, m.CellAt(b).HasWestWall())
		assert.True(t, m.WallOpen(a, b))
		assert.True(t, m.WallOpen(b, a))
	})

	t.Run("non-adjacent is a silent no-op", func(t *testing.T) {
		before := m.String()
		m.OpenWall(CellPosition{Row: 0, Col: 0}, CellPosition{Row: 2, Col: 2})
		m.OpenWall(CellPosition{Row: 0, Col: 0}, CellPosition{Row: 0, Col: 0})
		assert.Equal(t, before, m.String())
	})

	t.Run("out of bounds is a silent no-op", func(t *testing.T) {
		before := m.String()
		m.OpenWall(CellPosition{Row: 0, Col: 0}, CellPosition{Row: -1, Col: 0})
		assert.Equal(t, before, m.String())
	})
}

func TestHexSerialization(t *testing.T) {
	entry := CellPosition{Row: 0, Col: 0}
	exit := CellPosition{Row: 3, Col: 3}

	t.Run("fully walled grid is all F", func(t *testing.T) {
		m, err := New(4, 4, entry, exit)
		assert.NoError(t, err)
		assert.Equal(t, "FFFF\nFFFF\nFFFF\nFFFF", m.String())
	})

	t.Run("round trip reproduces wall masks", func(t *testing.T) {
		seed := int64(7)
		gen, err := NewGenerator(Config{
			Width: 12, Height: 9,
			Entry: entry, Exit: CellPosition{Row: 8, Col: 11},
			Perfect: false, Algorithm: AlgorithmPrim, Seed: &seed,
		})
		assert.NoError(t, err)
		m := gen.Generate()

		parsed, err := ParseHex(m.String(), m.Entry, m.Exit)
		assert.NoError(t, err)
		assert.Equal(t, m.String(), parsed.String())
	})

	t.Run("lowercase digits accepted", func(t *testing.T) {
		parsed, err := ParseHex("ff\nff", entry, CellPosition{Row: 1, Col: 1})
		assert.NoError(t, err)
		assert.Equal(t, "FF\nFF", parsed.String())
	})

	t.Run("ragged rows rejected", func(t *testing.T) {
		_, err := ParseHex("FFF\nFF", entry, CellPosition{Row: 1, Col: 1})
		assert.Error(t, err)
	})

	t.Run("junk digits rejected", func(t *testing.T) {
		_, err := ParseHex("FG\nFF", entry, CellPosition{Row: 1, Col: 1})
		assert.Error(t, err)
	})
}

func TestClearAllPaths(t *testing.T) {
	m, err := New(3, 3, CellPosition{Row: 0, Col: 0}, CellPosition{Row: 2, Col: 2})
	assert.NoError(t, err)

	p := CellPosition{Row: 1, Col: 1}
	m.CellAt(p).setPath(PathBitPrimary)
	m.CellAt(p).setPath(PathBitSecondary)
	assert.True(t, m.CellAt(p).HasPath(PathBitPrimary))

	before := m.String()
	m.ClearAllPaths()
	assert.False(t, m.CellAt(p).HasPath(PathBitPrimary))
	assert.False(t, m.CellAt(p).HasPath(PathBitSecondary))
	assert.Equal(t, before, m.String(), "clearing markers must not touch walls")
}

func TestPositionText(t *testing.T) {
	t.Run("format is x,y", func(t *testing.T) {
		assert.Equal(t, "3,7", FormatPosition(CellPosition{Row: 7, Col: 3}))
	})

	t.Run("parse round trip", func(t *testing.T) {
		p, err := ParsePosition("3,7")
		assert.NoError(t, err)
		assert.Equal(t, CellPosition{Row: 7, Col: 3}, p)
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, bad := range []string{"", "3", "a,b", "3,7,9x", "3;7"} {
			_, err := ParsePosition(bad)
			assert.Error(t, err, bad)
		}
	})
}

func TestPrettyString(t *testing.T) {
	m, err := New(2, 2, CellPosition{Row: 0, Col: 0}, CellPosition{Row: 1, Col: 1})
	assert.NoError(t, err)
	out := m.PrettyString()
	assert.True(t, strings.Contains(out, " E "))
	assert.True(t, strings.Contains(out, " X "))
	assert.Equal(t, 2*m.Height+1, strings.Count(out, "\n"))
}
