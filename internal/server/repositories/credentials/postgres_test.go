package credentials

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffdesk-io/staffdesk/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+employees\s*\(username,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(42))
	mock.ExpectQuery(q).
		WithArgs("alice", "hashed-pw").
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), "alice", "hashed-pw")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.Username != "alice" || got.PasswordHash != "hashed-pw" {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+employees`).
		WithArgs("alice", "hashed-pw").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_username_key"})

	_, err := repo.Create(context.Background(), "alice", "hashed-pw")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+employees`).
		WithArgs("alice", "hashed-pw").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), "alice", "hashed-pw")
	if err == nil || errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,\s*password_hash\s+FROM\s+employees\s+WHERE\s+username\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash"}).
		AddRow(int64(7), "alice", "hashed-pw")
	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != 7 || got.Username != "alice" || got.PasswordHash != "hashed-pw" {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*username,\s*password_hash`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
