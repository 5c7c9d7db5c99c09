package auth

import (
	"context"

	"github.com/itswalshy/sbux.tipjar/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping auth methods (password, SSO, etc.) without
// changing the HTTP layer.
type Authenticator interface {
	// Register creates a new user account. The password format depends on
	// the implementation.
	Register(ctx context.Context, email, name, password string) (*models.User, error)

	// Authenticate verifies credentials and returns the user if valid.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
