package i

import (
	"context"

	"github.com/amazeing/maze-api/mazegen"
	"github.com/google/uuid"
)

// SessionState is a renderer-facing snapshot of a maze session.
type SessionState struct {
	ID    uuid.UUID
	Maze  *mazegen.Maze
	Done  bool
	Cache bool // true when the grid came from the maze cache
}

// MazeSessionManager owns the active maze sessions. Each session holds one
// grid with a single logical owner; step and solve calls on a session are
// serialized by the manager.
type MazeSessionManager interface {
	// Create starts a session. Eager sessions run the whole step sequence
	// before returning; animated sessions are left for Step to drive.
	Create(ctx context.Context, cfg mazegen.Config, eager bool) (*SessionState, error)

	// Step advances an animated session by up to n steps and reports
	// whether the sequence completed.
	Step(id uuid.UUID, n int) (*SessionState, error)

	// State returns the session snapshot.
	State(id uuid.UUID) (*SessionState, error)

	// Solve finds up to count paths and marks the first two on the grid.
	Solve(id uuid.UUID, count int) ([]string, error)

	// Discard drops a session.
	Discard(id uuid.UUID) error
}

// MazeCache stores finished seeded mazes by parameter key. Remember
// returns the cached hex serialization or builds, stores, and returns it,
// holding a distributed lock so concurrent identical requests generate
// once.
type MazeCache interface {
	Remember(ctx context.Context, key string, build func() (string, error)) (string, error)
}
