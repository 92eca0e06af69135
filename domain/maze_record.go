package domain

import (
	"errors"
	"time"

	"github.com/amazeing/maze-api/mazegen"
	"github.com/google/uuid"
)

// MazeRecord is the BSON version of a saved maze: the generated grid in
// its hex text form plus the first entry-to-exit route.
type MazeRecord struct {
	ID        uuid.UUID `bson:"_id"`
	OwnerID   uuid.UUID `bson:"ownerId"`
	Width     int       `bson:"width"`
	Height    int       `bson:"height"`
	Grid      string    `bson:"grid"`
	Entry     string    `bson:"entry"` // "x,y"
	Exit      string    `bson:"exit"`  // "x,y"
	Solution  string    `bson:"solution"`
	CreatedAt time.Time `bson:"createdAt"`
}

// NewMazeRecord captures a finished maze for persistence. The solution may
// be empty when the exit is unreachable.
func NewMazeRecord(id, ownerID uuid.UUID, m *mazegen.Maze, solution string) (*MazeRecord, error) {
	if m == nil {
		return nil, errors.New("maze must not be nil")
	}
	return &MazeRecord{
		ID:        id,
		OwnerID:   ownerID,
		Width:     m.Width,
		Height:    m.Height,
		Grid:      m.String(),
		Entry:     mazegen.FormatPosition(m.Entry),
		Exit:      mazegen.FormatPosition(m.Exit),
		Solution:  solution,
		CreatedAt: time.Now().UTC(),
	}, nil
}
