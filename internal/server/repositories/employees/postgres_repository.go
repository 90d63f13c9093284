package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/staffdesk-io/staffdesk/internal/common"
	"github.com/staffdesk-io/staffdesk/internal/dbx"
	"github.com/staffdesk-io/staffdesk/internal/server/models"
)

// updatableColumns is the allow-list for PartialUpdate. Field names coming
// from clients must never reach the SQL text unchecked.
var updatableColumns = map[string]struct{}{
	"first_name":    {},
	"last_name":     {},
	"email":         {},
	"phone_number":  {},
	"date_of_birth": {},
	"gender":        {},
	"address":       {},
	"city":          {},
	"state":         {},
	"country":       {},
	"zip_code":      {},
	"department":    {},
	"job_title":     {},
	"salary":        {},
	"hire_date":     {},
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, username, first_name, last_name, email, phone_number, date_of_birth,
		gender, address, city, state, country, zip_code, department, job_title,
		salary, hire_date, profile_picture, created_at`

func scanEmployee(scan func(dest ...any) error) (*models.Employee, error) {
	emp := &models.Employee{}
	var (
		dob, hire sql.NullTime
		salary    sql.NullFloat64
	)
	err := scan(&emp.ID, &emp.Username, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.PhoneNumber, &dob, &emp.Gender, &emp.Address, &emp.City, &emp.State,
		&emp.Country, &emp.ZipCode, &emp.Department, &emp.JobTitle, &salary,
		&hire, &emp.ProfilePicture, &emp.CreatedAt)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		t := dob.Time
		emp.DateOfBirth = &t
	}
	if hire.Valid {
		t := hire.Time
		emp.HireDate = &t
	}
	if salary.Valid {
		emp.Salary = salary.Float64
	}
	return emp, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Employee, error) {
	query := `SELECT ` + selectColumns + ` FROM employees WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	emp, err := scanEmployee(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return emp, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Employee, error) {
	query := `SELECT ` + selectColumns + ` FROM employees ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, emp *models.Employee) error {
	query :=
		`UPDATE employees SET
			first_name = $1, last_name = $2, email = $3, phone_number = $4,
			date_of_birth = $5, gender = $6, address = $7, city = $8, state = $9,
			country = $10, zip_code = $11, department = $12, job_title = $13,
			salary = $14, hire_date = $15,
			profile_picture = COALESCE(NULLIF($16, ''), profile_picture)
		 WHERE id = $17`

	res, err := r.db.ExecContext(ctx, query,
		emp.FirstName, emp.LastName, emp.Email, emp.PhoneNumber, emp.DateOfBirth,
		emp.Gender, emp.Address, emp.City, emp.State, emp.Country, emp.ZipCode,
		emp.Department, emp.JobTitle, emp.Salary, emp.HireDate,
		emp.ProfilePicture, emp.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkOneRow(res)
}

func (r *PostgresRepository) PartialUpdate(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return common.ErrorValidation
	}

	// Deterministic column order keeps the statement stable for tests/logs.
	columns := make([]string, 0, len(fields))
	for col := range fields {
		if _, ok := updatableColumns[col]; !ok {
			return fmt.Errorf("%w: unknown column %q", common.ErrorValidation, col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	assignments := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, col := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d",
		strings.Join(assignments, ", "), len(columns)+1)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkOneRow(res)
}

func (r *PostgresRepository) SetProfilePicture(ctx context.Context, id int64, storageKey string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET profile_picture = $1 WHERE id = $2`, storageKey, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkOneRow(res)
}

func checkOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
