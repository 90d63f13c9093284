// Package employees declares the repository contract for employee profile
// records.
package employees

import (
	"context"

	"github.com/staffdesk-io/staffdesk/internal/server/models"
)

// Repository defines CRUD operations on employee rows. Operations that
// target a single row return common.ErrorNotFound when no row matched.
type Repository interface {
	Get(ctx context.Context, id int64) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)

	// Update replaces the profile columns of the row. An empty
	// ProfilePicture keeps the stored picture (COALESCE semantics).
	Update(ctx context.Context, emp *models.Employee) error

	// PartialUpdate sets only the given columns. Column names outside the
	// allow-list or an empty field set yield common.ErrorValidation.
	PartialUpdate(ctx context.Context, id int64, fields map[string]any) error

	Delete(ctx context.Context, id int64) error

	// SetProfilePicture stores the object-storage key of the picture.
	SetProfilePicture(ctx context.Context, id int64, storageKey string) error
}
