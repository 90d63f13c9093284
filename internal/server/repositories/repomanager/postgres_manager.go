package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/staffdesk-io/staffdesk/internal/dbx"
	"github.com/staffdesk-io/staffdesk/internal/server/migrations"
	"github.com/staffdesk-io/staffdesk/internal/server/repositories/credentials"
	"github.com/staffdesk-io/staffdesk/internal/server/repositories/employees"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Employees(db dbx.DBTX) employees.Repository {
	return employees.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
