// Package repomanager wires repositories to a storage backend and owns
// schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/staffdesk-io/staffdesk/internal/dbx"
	"github.com/staffdesk-io/staffdesk/internal/server/repositories/credentials"
	"github.com/staffdesk-io/staffdesk/internal/server/repositories/employees"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Credentials(db dbx.DBTX) credentials.Repository
	Employees(db dbx.DBTX) employees.Repository
}
