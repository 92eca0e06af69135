package i

import (
	dmn "github.com/amazeing/maze-api/domain"
)

// Authenticator registers users and signs them in.
type Authenticator interface {
	// Register creates a user from a username and plain password.
	Register(username, password string) error

	// SignIn verifies credentials and returns the user with a fresh token.
	SignIn(username, password string) (*dmn.User, string, error)
}
