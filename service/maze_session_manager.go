package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amazeing/maze-api/mazegen"
	"github.com/amazeing/maze-api/service/i"
	"github.com/google/uuid"
)

const maxPathMarks = 2

var pathBits = [maxPathMarks]uint8{mazegen.PathBitPrimary, mazegen.PathBitSecondary}

// ErrSessionNotFound is returned for unknown or discarded session IDs.
var ErrSessionNotFound = errors.New("maze session not found")

type mazeSession struct {
	gen       *mazegen.Generator
	maze      *mazegen.Maze
	fromCache bool
}

// MazeSessionManager implements i.MazeSessionManager with in-memory
// sessions. A session's grid has exactly one logical owner; all step and
// solve calls funnel through the manager's lock, so a generator never
// runs from two goroutines.
type MazeSessionManager struct {
	sessions map[uuid.UUID]*mazeSession
	cache    i.MazeCache // optional; nil disables caching
	logger   i.Logger
	sync.RWMutex
}

// NewMazeSessionManager wires a session manager. The cache may be nil.
func NewMazeSessionManager(cache i.MazeCache, logger i.Logger) (*MazeSessionManager, error) {
	if logger == nil {
		return nil, errors.New("maze session manager needs a logger")
	}
	return &MazeSessionManager{
		sessions: make(map[uuid.UUID]*mazeSession),
		cache:    cache,
		logger:   logger,
	}, nil
}

// cacheKey identifies a deterministic generation run. Only seeded runs are
// cacheable.
func cacheKey(cfg mazegen.Config) string {
	divisor := cfg.LoopDivisor
	if divisor == 0 {
		divisor = mazegen.DefaultLoopDivisor
	}
	return fmt.Sprintf("maze:%dx%d:%s:%s:%t:%s:%d:%d",
		cfg.Width, cfg.Height,
		mazegen.FormatPosition(cfg.Entry), mazegen.FormatPosition(cfg.Exit),
		cfg.Perfect, cfg.Algorithm, *cfg.Seed, divisor)
}

// Create starts a session. Eager seeded runs go through the cache when one
// is configured; animated sessions always generate locally so the caller
// can drive the steps.
func (m *MazeSessionManager) Create(ctx context.Context, cfg mazegen.Config, eager bool) (*i.SessionState, error) {
	session := &mazeSession{}

	if eager && m.cache != nil && cfg.Seed != nil {
		maze, hit, err := m.throughCache(ctx, cfg)
		if err != nil {
			return nil, err
		}
		session.maze = maze
		session.fromCache = hit
	} else {
		gen, err := mazegen.NewGenerator(cfg)
		if err != nil {
			return nil, err
		}
		if diag := gen.PatternDiagnostic(); diag != nil {
			m.logger.Warning(diag.Error())
		}
		session.gen = gen
		session.maze = gen.Maze()
		if eager {
			gen.Generate()
		}
	}

	m.Lock()
	defer m.Unlock()
	id := uuid.New()
	for {
		if _, ok := m.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}
	m.sessions[id] = session

	m.logger.Info(fmt.Sprintf("created maze session %s (%dx%d, eager=%t)", id, cfg.Width, cfg.Height, eager))
	return m.snapshot(id, session), nil
}

// throughCache resolves a deterministic run via the cache, regenerating on
// a miss under the cache's lock.
func (m *MazeSessionManager) throughCache(ctx context.Context, cfg mazegen.Config) (*mazegen.Maze, bool, error) {
	generated := false
	hexGrid, err := m.cache.Remember(ctx, cacheKey(cfg), func() (string, error) {
		gen, err := mazegen.NewGenerator(cfg)
		if err != nil {
			return "", err
		}
		if diag := gen.PatternDiagnostic(); diag != nil {
			m.logger.Warning(diag.Error())
		}
		generated = true
		return gen.Generate().String(), nil
	})
	if err != nil {
		return nil, false, err
	}

	maze, err := mazegen.ParseHex(hexGrid, cfg.Entry, cfg.Exit)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt cached maze: %w", err)
	}
	// the hex form drops the flags; re-derive the pattern cells
	if mask, diag := mazegen.PatternMask(cfg.Width, cfg.Height, cfg.Entry, cfg.Exit); diag == nil {
		for p := range mask {
			maze.CellAt(p).IsPattern = true
		}
	}
	return maze, !generated, nil
}

// Step advances an animated session by up to n steps.
func (m *MazeSessionManager) Step(id uuid.UUID, n int) (*i.SessionState, error) {
	m.Lock()
	defer m.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.gen == nil {
		return nil, errors.New("session was built from cache and cannot be stepped")
	}

	for i := 0; i < n; i++ {
		if session.gen.Step() == mazegen.Done {
			break
		}
	}
	return m.snapshot(id, session), nil
}

// State returns a snapshot of the session.
func (m *MazeSessionManager) State(id uuid.UUID) (*i.SessionState, error) {
	m.RLock()
	defer m.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return m.snapshot(id, session), nil
}

// Solve runs the path solver on a finished session, marking the first two
// paths with the marker bits. Earlier marks are cleared first.
func (m *MazeSessionManager) Solve(id uuid.UUID, count int) ([]string, error) {
	m.Lock()
	defer m.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.gen != nil && !session.gen.Finished() {
		return nil, errors.New("maze generation is not finished")
	}

	session.maze.ClearAllPaths()
	solver := mazegen.NewSolver(session.maze)
	paths := solver.Solve(count)
	for idx, path := range paths {
		if idx >= maxPathMarks {
			break
		}
		if err := solver.ApplyPathToMaze(path, pathBits[idx]); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// Discard drops a session; its grid is superseded.
func (m *MazeSessionManager) Discard(id uuid.UUID) error {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.logger.Info(fmt.Sprintf("discarded maze session %s", id))
	return nil
}

func (m *MazeSessionManager) snapshot(id uuid.UUID, s *mazeSession) *i.SessionState {
	done := s.gen == nil || s.gen.Finished()
	return &i.SessionState{
		ID:    id,
		Maze:  s.maze,
		Done:  done,
		Cache: s.fromCache,
	}
}
