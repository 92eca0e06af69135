package i

import (
	dmn "github.com/amazeing/maze-api/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	ByUsername(username string) (*dmn.User, error)
}

// MazeRepo defines the interface for saved-maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze record.
	Save(record *dmn.MazeRecord) error

	// ByID retrieves a saved maze by its ID.
	ByID(id uuid.UUID) (*dmn.MazeRecord, error)

	// ByOwner lists the mazes saved by a user, newest first.
	ByOwner(ownerID uuid.UUID) ([]*dmn.MazeRecord, error)
}
