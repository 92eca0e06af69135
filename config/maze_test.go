package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amazeing/maze-api/mazegen"
	"github.com/stretchr/testify/assert"
)

func validMazeData() map[string]string {
	return map[string]string{
		"WIDTH":       "10",
		"HEIGHT":      "8",
		"ENTRY":       "0,0",
		"EXIT":        "9,7",
		"PERFECT":     "true",
		"OUTPUT_FILE": "maze.txt",
	}
}

func TestParseMazeConfig(t *testing.T) {
	t.Run("valid minimal config", func(t *testing.T) {
		cfg, err := ParseMazeConfig(validMazeData())
		assert.NoError(t, err)
		assert.Equal(t, 10, cfg.Width)
		assert.Equal(t, 8, cfg.Height)
		assert.Equal(t, mazegen.CellPosition{Row: 0, Col: 0}, cfg.Entry)
		assert.Equal(t, mazegen.CellPosition{Row: 7, Col: 9}, cfg.Exit)
		assert.True(t, cfg.Perfect)
		assert.Equal(t, mazegen.AlgorithmPrim, cfg.Algorithm)
		assert.Nil(t, cfg.Seed)
	})

	t.Run("optional keys", func(t *testing.T) {
		data := validMazeData()
		data["ALGO"] = "DFS"
		data["SEED"] = "42"
		data["LOOP_DIVISOR"] = "20"
		cfg, err := ParseMazeConfig(data)
		assert.NoError(t, err)
		assert.Equal(t, mazegen.AlgorithmDFS, cfg.Algorithm)
		assert.NotNil(t, cfg.Seed)
		assert.Equal(t, int64(42), *cfg.Seed)
		assert.Equal(t, 20, cfg.LoopDivisor)
	})

	t.Run("missing keys listed", func(t *testing.T) {
		data := validMazeData()
		delete(data, "WIDTH")
		delete(data, "PERFECT")
		_, err := ParseMazeConfig(data)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "WIDTH")
		assert.Contains(t, err.Error(), "PERFECT")
	})

	t.Run("rejections", func(t *testing.T) {
		cases := map[string]map[string]string{
			"WIDTH must be an integer":   {"WIDTH": "ten"},
			"HEIGHT must be positive":    {"HEIGHT": "0"},
			"ENTRY must be in format":    {"ENTRY": "0;0"},
			"EXIT is out of maze bounds": {"EXIT": "10,7"},
			"PERFECT must be true":       {"PERFECT": "yes"},
			"OUTPUT_FILE must end":       {"OUTPUT_FILE": "maze.json"},
			"unknown algorithm":          {"ALGO": "wilson"},
			"SEED must be an integer":    {"SEED": "abc"},
			"LOOP_DIVISOR must be":       {"LOOP_DIVISOR": "-1"},
		}
		for fragment, override := range cases {
			data := validMazeData()
			for k, v := range override {
				data[k] = v
			}
			_, err := ParseMazeConfig(data)
			assert.Error(t, err, fragment)
			assert.Contains(t, err.Error(), fragment)
		}
	})

	t.Run("entry equals exit", func(t *testing.T) {
		data := validMazeData()
		data["EXIT"] = "0,0"
		_, err := ParseMazeConfig(data)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be different")
	})
}

func TestLoadMazeFile(t *testing.T) {
	t.Run("reads dotenv-style file with comments", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "maze.conf")
		content := "# maze parameters\nWIDTH=6\nHEIGHT=5\nENTRY=0,0\nEXIT=5,4\nPERFECT=false\nALGO=prim\nSEED=1\nOUTPUT_FILE=out.txt\n"
		assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadMazeFile(path)
		assert.NoError(t, err)
		assert.Equal(t, 6, cfg.Width)
		assert.False(t, cfg.Perfect)
		assert.Equal(t, "out.txt", cfg.OutputFile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMazeFile(filepath.Join(t.TempDir(), "nope.conf"))
		assert.Error(t, err)
	})
}
