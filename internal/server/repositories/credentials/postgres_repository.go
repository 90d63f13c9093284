package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffdesk-io/staffdesk/internal/common"
	"github.com/staffdesk-io/staffdesk/internal/dbx"
	"github.com/staffdesk-io/staffdesk/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, username, passwordHash string) (*models.Credential, error) {

	query :=
		`INSERT INTO employees (username, password_hash)
         VALUES ($1, $2)
		 RETURNING id
		 `

	cred := &models.Credential{Username: username, PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&cred.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Credential, error) {
	query :=
		`SELECT id, username, password_hash FROM employees
		 WHERE username = $1
		 `

	cred := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&cred.ID, &cred.Username, &cred.PasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}
