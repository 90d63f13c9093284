// Package credentials declares the repository contract for the
// authentication columns of the employees table.
package credentials

import (
	"context"

	"github.com/staffdesk-io/staffdesk/internal/server/models"
)

type Repository interface {
	// Create inserts a new credential and returns it with the generated id.
	// A duplicate username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, username, passwordHash string) (*models.Credential, error)

	// GetByUsername returns the credential for the username, or
	// common.ErrorNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.Credential, error)
}
