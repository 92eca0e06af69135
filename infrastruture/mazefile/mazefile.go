// Package mazefile reads and writes the on-disk maze result format: the
// hex-serialized grid, a blank line, the entry and exit in x,y form, and
// the first solution as a direction string, one item per line.
package mazefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amazeing/maze-api/mazegen"
)

// Result is a parsed maze result file.
type Result struct {
	Maze     *mazegen.Maze
	Solution string
}

// Write serializes a finished maze and its first solution. The solution
// may be empty when no entry-to-exit route exists.
func Write(w io.Writer, m *mazegen.Maze, solution string) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s\n%s\n%s\n",
		m.String(),
		mazegen.FormatPosition(m.Entry),
		mazegen.FormatPosition(m.Exit),
		solution,
	)
	return err
}

// Save writes the result format to a file, truncating any previous
// content.
func Save(path string, m *mazegen.Maze, solution string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving maze to %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Write(f, m, solution)
}

// Parse reads the result format back into a maze and solution string.
func Parse(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)

	var gridLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		gridLines = append(gridLines, line)
	}
	if len(gridLines) == 0 {
		return nil, fmt.Errorf("result file has no maze block")
	}

	var meta []string
	for len(meta) < 3 && scanner.Scan() {
		meta = append(meta, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(meta) < 2 {
		return nil, fmt.Errorf("result file is missing entry/exit lines")
	}

	entry, err := mazegen.ParsePosition(meta[0])
	if err != nil {
		return nil, fmt.Errorf("entry line: %w", err)
	}
	exit, err := mazegen.ParsePosition(meta[1])
	if err != nil {
		return nil, fmt.Errorf("exit line: %w", err)
	}

	m, err := mazegen.ParseHex(strings.Join(gridLines, "\n"), entry, exit)
	if err != nil {
		return nil, err
	}

	result := &Result{Maze: m}
	if len(meta) == 3 {
		result.Solution = meta[2]
	}
	return result, nil
}

// Load reads a result file from disk.
func Load(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading maze from %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f)
}
