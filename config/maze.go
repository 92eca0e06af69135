package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amazeing/maze-api/mazegen"
	"github.com/joho/godotenv"
)

// requiredMazeKeys must all be present in a maze parameter file.
var requiredMazeKeys = []string{"WIDTH", "HEIGHT", "ENTRY", "EXIT", "OUTPUT_FILE", "PERFECT"}

// MazeConfig is a validated maze parameter file. The file uses KEY=VALUE
// lines with # comments, which godotenv parses directly.
type MazeConfig struct {
	Width       int
	Height      int
	Entry       mazegen.CellPosition
	Exit        mazegen.CellPosition
	Perfect     bool
	Algorithm   mazegen.Algorithm
	Seed        *int64
	LoopDivisor int
	OutputFile  string
}

// GeneratorConfig converts the file values into a generation config.
func (c *MazeConfig) GeneratorConfig() mazegen.Config {
	return mazegen.Config{
		Width:       c.Width,
		Height:      c.Height,
		Entry:       c.Entry,
		Exit:        c.Exit,
		Perfect:     c.Perfect,
		Algorithm:   c.Algorithm,
		Seed:        c.Seed,
		LoopDivisor: c.LoopDivisor,
	}
}

// LoadMazeFile reads and validates a maze parameter file.
func LoadMazeFile(path string) (*MazeConfig, error) {
	data, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading maze config %s: %w", path, err)
	}
	return ParseMazeConfig(data)
}

// ParseMazeConfig validates raw key-value pairs into a MazeConfig.
// Validation failures here are fatal to the construction attempt.
func ParseMazeConfig(data map[string]string) (*MazeConfig, error) {
	var missing []string
	for _, key := range requiredMazeKeys {
		if _, ok := data[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}

	cfg := &MazeConfig{}
	var err error

	if cfg.Width, err = parsePositiveInt(data, "WIDTH"); err != nil {
		return nil, err
	}
	if cfg.Height, err = parsePositiveInt(data, "HEIGHT"); err != nil {
		return nil, err
	}
	if cfg.Entry, err = parsePoint(data, "ENTRY", cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if cfg.Exit, err = parsePoint(data, "EXIT", cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if cfg.Entry == cfg.Exit {
		return nil, errors.New("ENTRY and EXIT must be different")
	}
	if cfg.Perfect, err = parseBool(data, "PERFECT"); err != nil {
		return nil, err
	}

	cfg.OutputFile = data["OUTPUT_FILE"]
	if !strings.HasSuffix(cfg.OutputFile, ".txt") {
		return nil, errors.New("OUTPUT_FILE must end with .txt")
	}

	if cfg.Algorithm, err = mazegen.ParseAlgorithm(data["ALGO"]); err != nil {
		return nil, fmt.Errorf("ALGO: %w", err)
	}

	if raw, ok := data["SEED"]; ok && raw != "" {
		seed, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil {
			return nil, errors.New("SEED must be an integer")
		}
		cfg.Seed = &seed
	}

	if raw, ok := data["LOOP_DIVISOR"]; ok && raw != "" {
		divisor, convErr := strconv.Atoi(raw)
		if convErr != nil || divisor <= 0 {
			return nil, errors.New("LOOP_DIVISOR must be a positive integer")
		}
		cfg.LoopDivisor = divisor
	}

	return cfg, nil
}

func parsePositiveInt(data map[string]string, key string) (int, error) {
	value, err := strconv.Atoi(data[key])
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return value, nil
}

func parsePoint(data map[string]string, key string, width, height int) (mazegen.CellPosition, error) {
	pos, err := mazegen.ParsePosition(data[key])
	if err != nil {
		return mazegen.CellPosition{}, fmt.Errorf("%s must be in format x,y", key)
	}
	if pos.Col < 0 || pos.Col >= width || pos.Row < 0 || pos.Row >= height {
		return mazegen.CellPosition{}, fmt.Errorf("%s is out of maze bounds", key)
	}
	return pos, nil
}

func parseBool(data map[string]string, key string) (bool, error) {
	switch strings.ToLower(data[key]) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%s must be true or false", key)
}
